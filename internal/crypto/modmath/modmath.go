// Package modmath implements the modular arithmetic primitives the RSA
// engine is built on: exponentiation by repeated squaring, the Euclidean
// algorithm, and the extended Euclidean algorithm for modular inverses.
//
// math/big already ships Exp/GCD/ModInverse, but the point of this library
// is to show the algorithms themselves, so they are written out explicitly.
package modmath

import "math/big"

var one = big.NewInt(1)

// Exp computes base^exponent mod modulus by repeated squaring.
// base and exponent must be non-negative and modulus must be positive;
// behavior for negative operands is undefined. A modulus of 1 yields 0.
func Exp(base, exponent, modulus *big.Int) *big.Int {
	result := big.NewInt(1)
	result.Mod(result, modulus) // modulus == 1 -> 0

	b := new(big.Int).Mod(base, modulus)

	// Walk the exponent bits from least significant to most significant,
	// squaring the running base once per bit.
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}

	return result
}

// GCD computes the greatest common divisor of a and b using the iterative
// Euclidean algorithm: replace (a, b) with (b, a mod b) until b is zero.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)

	for y.Sign() != 0 {
		x, y = y, x.Mod(x, y)
	}

	return x
}

// ModInverse computes the modular multiplicative inverse of a modulo m via
// the extended Euclidean algorithm, i.e. the x with (a * x) mod m == 1,
// normalized into [0, m). a and m are expected to be coprime; m == 1 returns
// 0 by convention.
func ModInverse(a, m *big.Int) *big.Int {
	if m.Cmp(one) == 0 {
		return big.NewInt(0)
	}

	m0 := new(big.Int).Set(m)
	av := new(big.Int).Set(a)
	mv := new(big.Int).Set(m)

	// Bézout coefficient of a, updated as the remainders shrink.
	x := big.NewInt(1)
	y := big.NewInt(0)

	q := new(big.Int)
	t := new(big.Int)

	for av.Cmp(one) > 0 {
		q.Div(av, mv)

		t.Set(mv)
		mv.Mod(av, mv)
		av.Set(t)

		t.Set(y)
		y.Sub(x, new(big.Int).Mul(q, y))
		x.Set(t)
	}

	if x.Sign() < 0 {
		x.Add(x, m0)
	}

	return x
}
