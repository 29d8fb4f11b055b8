// Package session holds the mutable demo state that the presentation layer
// threads through the RSA engine: the current keypair, the last message, its
// ciphertext and its decryption. The core engine itself is stateless; this
// package enforces the demo's lifecycle around it.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/smallyu/go-rsa-demo/pkg/rsa"
)

// State identifies how far the demo lifecycle has progressed.
type State int

const (
	StateNoKeys State = iota
	StateKeysGenerated
	StateMessageEncrypted
	StateMessageDecrypted
)

func (s State) String() string {
	switch s {
	case StateNoKeys:
		return "NoKeys"
	case StateKeysGenerated:
		return "KeysGenerated"
	case StateMessageEncrypted:
		return "MessageEncrypted"
	case StateMessageDecrypted:
		return "MessageDecrypted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Errors returned when operations are called out of lifecycle order.
var (
	ErrNoKeys       = errors.New("session: no keypair generated yet")
	ErrNoCiphertext = errors.New("session: no message encrypted yet")
	ErrNoDecryption = errors.New("session: no message decrypted yet")
)

// Session is the explicit state object passed through the demo operations.
// It is not safe for concurrent use; the demo is strictly sequential.
type Session struct {
	random io.Reader
	state  State

	keys       *rsa.KeyPair
	original   string
	ciphertext rsa.Ciphertext
	decrypted  string
}

// New returns an empty session drawing randomness from random, or from
// crypto/rand if random is nil.
func New(random io.Reader) *Session {
	if random == nil {
		random = rand.Reader
	}
	return &Session{random: random, state: StateNoKeys}
}

// Generate creates a fresh keypair. It is legal from any state and discards
// every artifact of the previous generation wholesale.
func (s *Session) Generate(bits int) (*rsa.KeyPair, error) {
	kp, err := rsa.GenerateKeyPair(s.random, bits)
	if err != nil {
		return nil, err
	}

	s.keys = kp
	s.original = ""
	s.ciphertext = nil
	s.decrypted = ""
	s.state = StateKeysGenerated

	return kp, nil
}

// Encrypt encrypts message under the session's public key and stores both
// for the later decryption and verification steps. Requires a keypair.
// Re-encrypting replaces the previous message and drops any decryption.
func (s *Session) Encrypt(message string) (rsa.Ciphertext, error) {
	if s.state == StateNoKeys {
		return nil, ErrNoKeys
	}

	ct, err := rsa.Encrypt(s.keys.Public, message)
	if err != nil {
		return nil, err
	}

	s.original = message
	s.ciphertext = ct
	s.decrypted = ""
	s.state = StateMessageEncrypted

	return ct, nil
}

// Decrypt decrypts the held ciphertext with the session's private key.
// Requires a prior encryption.
func (s *Session) Decrypt() (string, error) {
	if s.state < StateMessageEncrypted {
		return "", ErrNoCiphertext
	}

	msg, err := rsa.Decrypt(s.keys.Private, s.ciphertext)
	if err != nil {
		return "", err
	}

	s.decrypted = msg
	s.state = StateMessageDecrypted

	return msg, nil
}

// Verify reports whether the decrypted message matches the original.
// Requires a prior decryption.
func (s *Session) Verify() (bool, error) {
	if s.state < StateMessageDecrypted {
		return false, ErrNoDecryption
	}
	return s.original == s.decrypted, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Keys returns the current keypair, or nil before the first generation.
func (s *Session) Keys() *rsa.KeyPair {
	return s.keys
}

// Details returns a human-readable description of the session state.
func (s *Session) Details() string {
	return fmt.Sprintf("RSA demo session: %s", s.state)
}
