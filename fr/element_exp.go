package fr

import (
	"math/big"
)

var (
	// (q - 1) / 2
	qMinusOneOverTwo big.Int

	// q - 1 = 2^sqrtE * sqrtS with sqrtS odd
	sqrtS big.Int
	sqrtE uint64

	// (sqrtS - 1) / 2
	sqrtSMinusOneOverTwo big.Int

	// g^sqrtS where g is the smallest quadratic non-residue; a primitive
	// 2^sqrtE-th root of unity
	sqrtGenerator Element
)

func init() {
	var one big.Int
	one.SetUint64(1)
	qMinusOneOverTwo.Sub(&_modulus, &one).Rsh(&qMinusOneOverTwo, 1)

	sqrtS.Sub(&_modulus, &one)
	for sqrtS.Bit(0) == 0 {
		sqrtS.Rsh(&sqrtS, 1)
		sqrtE++
	}
	sqrtSMinusOneOverTwo.Sub(&sqrtS, &one).Rsh(&sqrtSMinusOneOverTwo, 1)

	// smallest quadratic non-residue (5 for this modulus)
	var g Element
	for k := uint64(2); ; k++ {
		g.SetUint64(k)
		if g.Legendre() == -1 {
			break
		}
	}
	sqrtGenerator.Exp(g, &sqrtS)
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
	// q ≡ 1 (mod 4), Tonelli-Shanks

	if x.IsZero() {
		return z.SetZero()
	}

	var w, y, b, t, g Element

	// w = x^((sqrtS-1)/2)
	w.Exp(*x, &sqrtSMinusOneOverTwo)
	y.Mul(x, &w)  // y = x^((sqrtS+1)/2)
	b.Mul(&w, &y) // b = x^sqrtS

	g = sqrtGenerator
	r := sqrtE

	for {
		var m uint64
		t = b
		for !t.IsOne() {
			t.Square(&t)
			m++
		}

		if m == 0 {
			return z.Set(&y)
		}
		if m == r {
			// x is not a square
			return nil
		}

		// t = g^(2^(r-m-1))
		t = g
		for i := uint64(0); i < r-m-1; i++ {
			t.Square(&t)
		}
		g.Square(&t)
		y.Mul(&y, &t)
		b.Mul(&b, &g)
		r = m
	}
}
