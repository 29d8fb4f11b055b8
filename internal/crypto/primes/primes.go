// Package primes provides a Miller–Rabin probabilistic primality test and a
// generator for probable primes of an exact bit length.
package primes

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/smallyu/go-rsa-demo/internal/crypto/modmath"
)

// DefaultRounds is the number of Miller–Rabin rounds used when the caller
// does not specify one. Each round has an error probability of at most 1/4,
// so 5 rounds bound the false-positive rate below 1/1000. That is fine for a
// demonstration and NOT for production key generation; callers wanting more
// confidence at large bit lengths should pass a larger round count.
const DefaultRounds = 5

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// IsPrime reports whether n is probably prime using the Miller–Rabin test
// with the given number of rounds. rounds <= 0 selects DefaultRounds.
// Witnesses are drawn from random; the only error condition is a failing
// reader.
func IsPrime(random io.Reader, n *big.Int, rounds int) (bool, error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}

	// Small cases. 4 is caught here so the witness range [2, n-2] below is
	// never empty.
	if n.Cmp(one) <= 0 || n.Cmp(four) == 0 {
		return false, nil
	}
	if n.Cmp(three) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	// Write n-1 as 2^s * d with d odd.
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	// n-3 is the size of the witness range [2, n-2].
	witnessRange := new(big.Int).Sub(n, three)

	for i := 0; i < rounds; i++ {
		a, err := rand.Int(random, witnessRange)
		if err != nil {
			return false, err
		}
		a.Add(a, two)

		x := modmath.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}

		witnessed := false
		for j := 0; j < s-1; j++ {
			x = modmath.Exp(x, two, n)
			if x.Cmp(nMinus1) == 0 {
				witnessed = true
				break
			}
		}
		if !witnessed {
			return false, nil
		}
	}

	return true, nil
}

// Prime returns a probable prime with exactly the requested bit length.
// The top bit is forced so the bit length is exact and the bottom bit is
// forced so the candidate is odd. There is no retry cap: by the prime number
// theorem the expected number of candidates is linear in bits.
func Prime(random io.Reader, bits, rounds int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.New("primes: bit length must be at least 2")
	}

	bytes := make([]byte, (bits+7)/8)
	p := new(big.Int)

	for {
		if _, err := io.ReadFull(random, bytes); err != nil {
			return nil, err
		}
		p.SetBytes(bytes)

		// Truncate to bits, then pin MSB and LSB.
		if p.BitLen() > bits {
			p.Rsh(p, uint(p.BitLen()-bits))
		}
		p.SetBit(p, bits-1, 1)
		p.SetBit(p, 0, 1)

		ok, err := IsPrime(random, p, rounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return new(big.Int).Set(p), nil
		}
	}
}
