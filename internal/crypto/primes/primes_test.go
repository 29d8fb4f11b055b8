package primes

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestIsPrimeKnownValues(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 97, 7919}
	composites := []int64{0, 1, 4, 9, 100, 7920}

	for _, p := range primes {
		ok, err := IsPrime(rand.Reader, big.NewInt(p), 0)
		if err != nil {
			t.Fatalf("IsPrime(%d) error: %v", p, err)
		}
		if !ok {
			t.Errorf("IsPrime(%d) = false, want true", p)
		}
	}

	for _, c := range composites {
		ok, err := IsPrime(rand.Reader, big.NewInt(c), 0)
		if err != nil {
			t.Fatalf("IsPrime(%d) error: %v", c, err)
		}
		if ok {
			t.Errorf("IsPrime(%d) = true, want false", c)
		}
	}
}

func TestIsPrimeNegative(t *testing.T) {
	ok, err := IsPrime(rand.Reader, big.NewInt(-7), 0)
	if err != nil {
		t.Fatalf("IsPrime(-7) error: %v", err)
	}
	if ok {
		t.Errorf("IsPrime(-7) = true, want false")
	}
}

func TestIsPrimeLarge(t *testing.T) {
	// 2^127 - 1 is a Mersenne prime; 2^128 + 1 is composite (factor 59649589127497217).
	mersenne := new(big.Int).Lsh(big.NewInt(1), 127)
	mersenne.Sub(mersenne, big.NewInt(1))

	fermat := new(big.Int).Lsh(big.NewInt(1), 128)
	fermat.Add(fermat, big.NewInt(1))

	ok, err := IsPrime(rand.Reader, mersenne, 10)
	if err != nil {
		t.Fatalf("IsPrime error: %v", err)
	}
	if !ok {
		t.Errorf("IsPrime(2^127-1) = false, want true")
	}

	ok, err = IsPrime(rand.Reader, fermat, 10)
	if err != nil {
		t.Fatalf("IsPrime error: %v", err)
	}
	if ok {
		t.Errorf("IsPrime(2^128+1) = true, want false")
	}
}

func TestIsPrimeAgainstBigInt(t *testing.T) {
	// Cross-check every odd candidate below 2000 against math/big's
	// deterministic-for-small-inputs ProbablyPrime. 15 rounds keeps the
	// aggregate false-positive chance across ~1000 composites negligible.
	for i := int64(3); i < 2000; i += 2 {
		n := big.NewInt(i)
		want := n.ProbablyPrime(20)
		got, err := IsPrime(rand.Reader, n, 15)
		if err != nil {
			t.Fatalf("IsPrime(%d) error: %v", i, err)
		}
		if got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestPrimeBitLength(t *testing.T) {
	for _, bits := range []int{8, 16, 32, 64} {
		for i := 0; i < 5; i++ {
			p, err := Prime(rand.Reader, bits, 0)
			if err != nil {
				t.Fatalf("Prime(%d) error: %v", bits, err)
			}
			if p.BitLen() != bits {
				t.Errorf("Prime(%d) has bit length %d", bits, p.BitLen())
			}
			if p.Bit(0) != 1 {
				t.Errorf("Prime(%d) = %s is even", bits, p)
			}
			if !p.ProbablyPrime(20) {
				t.Errorf("Prime(%d) = %s is not prime", bits, p)
			}
		}
	}
}

func TestPrimeRejectsTinyBitLength(t *testing.T) {
	if _, err := Prime(rand.Reader, 1, 0); err == nil {
		t.Error("Prime(1) succeeded, want error")
	}
}
