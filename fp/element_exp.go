package fp

import (
	"math/big"
)

var (
	// (q - 1) / 2
	qMinusOneOverTwo big.Int

	// (q + 1) / 4, the square root exponent for q ≡ 3 mod 4
	qPlusOneOverFour big.Int
)

func init() {
	var one big.Int
	one.SetUint64(1)
	qMinusOneOverTwo.Sub(&_modulus, &one).Rsh(&qMinusOneOverTwo, 1)
	qPlusOneOverFour.Add(&_modulus, &one).Rsh(&qPlusOneOverFour, 2)
}

// Exp z = xᵏ (mod q)
//
// The squaring schedule depends only on the bit length of k, never on the
// values of the bits.
func (z *Element) Exp(x Element, k *big.Int) *Element {
	if k.IsUint64() && k.Uint64() == 0 {
		return z.SetOne()
	}

	e := k
	if k.Sign() == -1 {
		// negative k, we invert
		// if k < 0: xᵏ (mod q) == (x⁻¹)ᵏ (mod q)
		x.Inverse(&x)

		// we negate k in a temp big.Int since
		// Int.Bit(_) of k and -k is different
		e = new(big.Int)
		e.Neg(k)
	}

	z.Set(&x)

	for i := e.BitLen() - 2; i >= 0; i-- {
		z.Square(z)
		if e.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}

	return z
}

// Legendre returns the Legendre symbol of z (either +1, -1, or 0.)
func (z *Element) Legendre() int {
	var l Element
	// z^((q-1)/2)
	l.Exp(*z, &qMinusOneOverTwo)

	if l.IsZero() {
		return 0
	}

	// if l == 1
	if l.IsOne() {
		return 1
	}
	return -1
}

// Sqrt z = √x (mod q)
// if the square root doesn't exist (x is not a square mod q)
// Sqrt leaves z unchanged and returns nil
func (z *Element) Sqrt(x *Element) *Element {
	// q ≡ 3 (mod 4)
	// using  z ≡ ± x^((q+1)/4) (mod q)
	var y, square Element
	y.Exp(*x, &qPlusOneOverFour)
	// as we didn't compute the legendre symbol, ensure we found y such that y² == x
	square.Square(&y)
	if square.Equal(x) {
		return z.Set(&y)
	}
	return nil
}
