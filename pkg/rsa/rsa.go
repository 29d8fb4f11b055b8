// Package rsa implements a toy RSA scheme for teaching purposes: keypair
// generation from two probable primes, and character-by-character
// encryption and decryption of short text messages.
//
// This is NOT a production cryptosystem. There is no padding, so identical
// symbols always encrypt to identical ciphertext values, and the default
// primality confidence is demonstration-grade. Use crypto/rsa for real work.
package rsa

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/smallyu/go-rsa-demo/internal/crypto/modmath"
	"github.com/smallyu/go-rsa-demo/internal/crypto/primes"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// MinBits is the smallest modulus bit length the engine accepts. Below this
// the two prime halves get small enough that no valid public exponent with
// 1 < e < phi exists.
const MinBits = 6

// PublicKey is the public half of a keypair: the modulus n and the public
// exponent e.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is the private half of a keypair: the modulus n and the
// private exponent d.
type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// KeyPair holds a matched public/private key pair together with the
// intermediate values of its generation (p, q and the totient phi), which
// the demo surfaces step by step. Keys are immutable once generated; mixing
// halves from different generations produces garbage on decryption.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey

	P   *big.Int
	Q   *big.Int
	Phi *big.Int
}

// Ciphertext is an ordered sequence of encrypted symbols, one value in
// [0, n) per input symbol.
type Ciphertext []*big.Int

// GenerateKeyPair generates an RSA keypair whose modulus is the product of
// two distinct probable primes of bits/2 bits each. The public exponent is
// drawn uniformly from [2, phi-1] until one coprime to phi is found, and
// the private exponent is its modular inverse.
//
// Generation is a blocking, potentially slow call at large bit lengths.
func GenerateKeyPair(random io.Reader, bits int) (*KeyPair, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("%w: %d bits (minimum %d)", ErrKeyTooSmall, bits, MinBits)
	}

	// 1. Two probable primes of half the modulus size, resampling q until
	// the pair is distinct.
	p, err := primes.Prime(random, bits/2, primes.DefaultRounds)
	if err != nil {
		return nil, err
	}
	q, err := primes.Prime(random, bits/2, primes.DefaultRounds)
	if err != nil {
		return nil, err
	}
	for p.Cmp(q) == 0 {
		q, err = primes.Prime(random, bits/2, primes.DefaultRounds)
		if err != nil {
			return nil, err
		}
	}

	// 2. n = p*q and phi = (p-1)(q-1).
	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, one),
		new(big.Int).Sub(q, one),
	)

	// 3. Draw e from [2, phi-1] until gcd(e, phi) == 1.
	eRange := new(big.Int).Sub(phi, two)
	var e *big.Int
	for {
		e, err = rand.Int(random, eRange)
		if err != nil {
			return nil, err
		}
		e.Add(e, two)
		if modmath.GCD(e, phi).Cmp(one) == 0 {
			break
		}
	}

	// 4. d = e^-1 mod phi.
	d := modmath.ModInverse(e, phi)

	return &KeyPair{
		Public:  &PublicKey{N: n, E: e},
		Private: &PrivateKey{N: n, D: d},
		P:       p,
		Q:       q,
		Phi:     phi,
	}, nil
}

// Encrypt encrypts a message symbol by symbol: each code point c becomes
// c^e mod n. Every code point must be strictly below the modulus; if any is
// not, the whole call fails and no partial ciphertext is returned.
//
// Identical symbols produce identical ciphertext values. That is a known
// weakness of this unpadded scheme, kept on purpose for clarity.
func Encrypt(pub *PublicKey, message string) (Ciphertext, error) {
	if pub == nil || pub.N == nil || pub.E == nil {
		return nil, ErrNilKey
	}

	ct := make(Ciphertext, 0, utf8.RuneCountInString(message))
	for _, r := range message {
		code := big.NewInt(int64(r))
		if code.Cmp(pub.N) >= 0 {
			return nil, fmt.Errorf("%w: symbol %q has code %d, modulus is %s",
				ErrSymbolTooLarge, r, r, pub.N)
		}
		ct = append(ct, modmath.Exp(code, pub.E, pub.N))
	}

	return ct, nil
}

// Decrypt decrypts a ciphertext produced by the matching public key: each
// value c becomes the symbol with code c^d mod n. Any value in [0, n)
// decrypts to some symbol, so decrypting with a mismatched key yields
// garbage rather than an error.
func Decrypt(priv *PrivateKey, ct Ciphertext) (string, error) {
	if priv == nil || priv.N == nil || priv.D == nil {
		return "", ErrNilKey
	}

	var b strings.Builder
	for _, c := range ct {
		m := modmath.Exp(c, priv.D, priv.N)
		if !m.IsInt64() {
			// Mismatched keys can decrypt to values beyond any code
			// point. Garbage in, replacement rune out.
			b.WriteRune(utf8.RuneError)
			continue
		}
		b.WriteRune(rune(m.Int64()))
	}

	return b.String(), nil
}

// IsPrime reports whether candidate is probably prime, for diagnostic
// display alongside the cipher operations. rounds <= 0 selects the default
// of 5 Miller–Rabin rounds.
func IsPrime(random io.Reader, candidate *big.Int, rounds int) (bool, error) {
	return primes.IsPrime(random, candidate, rounds)
}
