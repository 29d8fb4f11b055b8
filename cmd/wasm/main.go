//go:build js && wasm

package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-rsa-demo/internal/session"
	"github.com/smallyu/go-rsa-demo/pkg/rsa"
)

// Active demo sessions, keyed by the handle returned from NewSession.
var sessions = make(map[string]*session.Session)

var nextHandle int

func main() {
	c := make(chan struct{})

	fmt.Println("Go RSA demo WASM initialized")

	// Expose Go functions to JS
	js.Global().Set("GoRSADemo", map[string]interface{}{
		"NewSession": js.FuncOf(NewSession),
		"Generate":   js.FuncOf(Generate),
		"Encrypt":    js.FuncOf(Encrypt),
		"Decrypt":    js.FuncOf(Decrypt),
		"Verify":     js.FuncOf(Verify),
		"IsPrime":    js.FuncOf(IsPrime),
	})

	<-c
}

// NewSession creates an empty demo session and returns its handle.
func NewSession(this js.Value, args []js.Value) interface{} {
	nextHandle++
	handle := fmt.Sprintf("session-%d", nextHandle)
	sessions[handle] = session.New(nil)
	return handle
}

// Generate creates a keypair for a session.
// Arguments: sessionHandle (string), bits (int).
// Returns a JSON object with n/e/d/p/q/phi as decimal strings; big.Int
// would marshal as a JSON number and lose precision in JS.
func Generate(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (sessionHandle, bits)"
	}

	sess, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	kp, err := sess.Generate(args[1].Int())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	resp := map[string]string{
		"n":   kp.Public.N.String(),
		"e":   kp.Public.E.String(),
		"d":   kp.Private.D.String(),
		"p":   kp.P.String(),
		"q":   kp.Q.String(),
		"phi": kp.Phi.String(),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// Encrypt encrypts a message within a session.
// Arguments: sessionHandle (string), message (string).
// Returns a JSON array of decimal strings.
func Encrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (sessionHandle, message)"
	}

	sess, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	ct, err := sess.Encrypt(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	values := make([]string, len(ct))
	for i, v := range ct {
		values[i] = v.String()
	}
	respBytes, _ := json.Marshal(values)
	return string(respBytes)
}

// Decrypt decrypts the session's held ciphertext.
// Arguments: sessionHandle (string).
func Decrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (sessionHandle)"
	}

	sess, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	msg, err := sess.Decrypt()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return msg
}

// Verify reports whether the session's decryption matches its original
// message. Arguments: sessionHandle (string).
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (sessionHandle)"
	}

	sess, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	match, err := sess.Verify()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return match
}

// IsPrime runs the Miller-Rabin test on a candidate.
// Arguments: candidate (decimal string), rounds (int, 0 for default).
func IsPrime(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (candidate, rounds)"
	}

	candidate, ok := new(big.Int).SetString(args[0].String(), 10)
	if !ok {
		return "error: candidate is not a decimal integer"
	}

	prime, err := rsa.IsPrime(rand.Reader, candidate, args[1].Int())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return prime
}
