// Package fptower implements the extension-field tower used by the pairing:
//
//	𝔽p²  = 𝔽p[u]/(u²+1)
//	𝔽p⁶  = 𝔽p²[v]/(v³-(9+u))
//	𝔽p¹² = 𝔽p⁶[w]/(w²-v)
//
// All types follow the same mutable-receiver, chainable convention as fp.Element.
package fptower

import (
	"math/big"

	"github.com/consensys/bn254/fp"
)

// E2 is a degree two finite field extension of fp.Element, A0 + A1·u with u²=-1
type E2 struct {
	A0, A1 fp.Element
}

// Equal returns true if z equals x, false otherwise
func (z *E2) Equal(x *E2) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1)
}

// Cmp compares (lexicographic order) z and x and returns:
//
//	-1 if z <  x
//	 0 if z == x
//	+1 if z >  x
func (z *E2) Cmp(x *E2) int {
	if a1 := z.A1.Cmp(&x.A1); a1 != 0 {
		return a1
	}
	return z.A0.Cmp(&x.A0)
}

// LexicographicallyLargest returns true if this element is strictly lexicographically
// larger than its negation, false otherwise
func (z *E2) LexicographicallyLargest() bool {
	// adapted from github.com/zkcrypto/bls12_381
	if z.A1.IsZero() {
		return z.A0.LexicographicallyLargest()
	}
	return z.A1.LexicographicallyLargest()
}

// SetString sets a E2 element from strings
func (z *E2) SetString(s1, s2 string) *E2 {
	z.A0.SetString(s1)
	z.A1.SetString(s2)
	return z
}

// SetZero sets an E2 elmt to zero
func (z *E2) SetZero() *E2 {
	z.A0.SetZero()
	z.A1.SetZero()
	return z
}

// Set sets an E2 from x
func (z *E2) Set(x *E2) *E2 {
	z.A0 = x.A0
	z.A1 = x.A1
	return z
}

// SetOne sets z to 1 in Montgomery form and returns z
func (z *E2) SetOne() *E2 {
	z.A0.SetOne()
	z.A1.SetZero()
	return z
}

// SetRandom sets a0 and a1 to random values
func (z *E2) SetRandom() (*E2, error) {
	if _, err := z.A0.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z.A1.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

// IsZero returns true if z is zero, false otherwise
func (z *E2) IsZero() bool {
	return z.A0.IsZero() && z.A1.IsZero()
}

// IsOne returns true if z is one, false otherwise
func (z *E2) IsOne() bool {
	return z.A0.IsOne() && z.A1.IsZero()
}

// Add adds two elements of E2
func (z *E2) Add(x, y *E2) *E2 {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	return z
}

// Sub subtracts two elements of E2
func (z *E2) Sub(x, y *E2) *E2 {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	return z
}

// Double doubles an E2 element
func (z *E2) Double(x *E2) *E2 {
	z.A0.Double(&x.A0)
	z.A1.Double(&x.A1)
	return z
}

// Halve sets z to z / 2
func (z *E2) Halve() {
	z.A0.Halve()
	z.A1.Halve()
}

// Neg negates an E2 element
func (z *E2) Neg(x *E2) *E2 {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// String implements Stringer interface for fancy printing
func (z *E2) String() string {
	return z.A0.String() + "+" + z.A1.String() + "*u"
}

// Conjugate conjugates an element in E2
func (z *E2) Conjugate(x *E2) *E2 {
	z.A0 = x.A0
	z.A1.Neg(&x.A1)
	return z
}

// Select is a constant-time conditional move.
// If c=0, z = x0. Else z = x1
func (z *E2) Select(c int, x0 *E2, x1 *E2) *E2 {
	z.A0.Select(c, &x0.A0, &x1.A0)
	z.A1.Select(c, &x0.A1, &x1.A1)
	return z
}

// Mul sets z to the E2-product of x,y, returns z
func (z *E2) Mul(x, y *E2) *E2 {
	// Karatsuba, with u² = -1:
	// (a0+a1u)(b0+b1u) = (a0b0 - a1b1) + ((a0+a1)(b0+b1) - a0b0 - a1b1)u
	var a, b, c fp.Element
	a.Add(&x.A0, &x.A1)
	b.Add(&y.A0, &y.A1)
	a.Mul(&a, &b)
	b.Mul(&x.A0, &y.A0)
	c.Mul(&x.A1, &y.A1)
	z.A1.Sub(&a, &b).Sub(&z.A1, &c)
	z.A0.Sub(&b, &c)
	return z
}

// Square sets z to the E2-product of x,x returns z
func (z *E2) Square(x *E2) *E2 {
	// (a0+a1u)² = (a0+a1)(a0-a1) + 2a0a1 u
	var a, b fp.Element
	a.Add(&x.A0, &x.A1)
	b.Sub(&x.A0, &x.A1)
	a.Mul(&a, &b)
	b.Mul(&x.A0, &x.A1).Double(&b)
	z.A0 = a
	z.A1 = b
	return z
}

// MulByElement multiplies an element in E2 by an element in fp
func (z *E2) MulByElement(x *E2, y *fp.Element) *E2 {
	z.A0.Mul(&x.A0, y)
	z.A1.Mul(&x.A1, y)
	return z
}

// MulByNonResidue multiplies an E2 element by the quadratic/cubic non-residue
// ξ = 9+u
func (z *E2) MulByNonResidue(x *E2) *E2 {
	// (9a0 - a1) + (9a1 + a0)u
	var a, b fp.Element
	a.Double(&x.A0).Double(&a).Double(&a).Add(&a, &x.A0).Sub(&a, &x.A1)
	b.Double(&x.A1).Double(&b).Double(&b).Add(&b, &x.A1).Add(&b, &x.A0)
	z.A0 = a
	z.A1 = b
	return z
}

// Inverse sets z to the E2-inverse of x, returns z.
//
// If x == 0, z is set to 0.
func (z *E2) Inverse(x *E2) *E2 {
	// Algorithm 8 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1 fp.Element
	t0.Square(&x.A0)
	t1.Square(&x.A1)
	t0.Add(&t0, &t1)
	t1.Inverse(&t0)
	z.A0.Mul(&x.A0, &t1)
	z.A1.Mul(&x.A1, &t1).Neg(&z.A1)
	return z
}

// Exp sets z=xᵏ (mod q²) and returns it
func (z *E2) Exp(x E2, k *big.Int) *E2 {
	if k.IsUint64() && k.Uint64() == 0 {
		return z.SetOne()
	}

	e := k
	if k.Sign() == -1 {
		x.Inverse(&x)
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

// Legendre returns the Legendre symbol of z
func (z *E2) Legendre() int {
	// z is a square in 𝔽p² iff its norm is a square in 𝔽p
	var n fp.Element
	z.norm(&n)
	return n.Legendre()
}

// norm sets x to the norm of z
func (z *E2) norm(x *fp.Element) *fp.Element {
	var tmp fp.Element
	x.Square(&z.A0)
	tmp.Square(&z.A1)
	x.Add(x, &tmp)
	return x
}

// Sqrt sets z to the square root of x and returns z.
//
// The result is not guaranteed to be the lexicographically smallest root; if x
// is not a square, z is left unchanged and nil is returned.
func (z *E2) Sqrt(x *E2) *E2 {
	// since p ≡ 3 (mod 4) the base-field square root is a single
	// exponentiation, and the extension square root reduces to two of them

	if x.A1.IsZero() {
		var s fp.Element
		if x.A0.Legendre() >= 0 {
			// root lies in the base field
			s.Sqrt(&x.A0)
			z.A0 = s
			z.A1.SetZero()
			return z
		}
		// -a0 is a square, the root is purely imaginary: (s·u)² = -s²
		s.Neg(&x.A0)
		s.Sqrt(&s)
		z.A0.SetZero()
		z.A1 = s
		return z
	}

	// norm(x) = a0² + a1² is a square in 𝔽p iff x is a square in 𝔽p²
	var alpha, delta, x0, t fp.Element
	x.norm(&alpha)
	if alpha.Sqrt(&alpha) == nil {
		return nil
	}

	// exactly one of (a0 ± α)/2 is a square; their product is -(a1/2)²
	delta.Add(&x.A0, &alpha)
	delta.Halve()
	if delta.Legendre() == -1 {
		delta.Sub(&x.A0, &alpha)
		delta.Halve()
	}
	if x0.Sqrt(&delta) == nil {
		return nil
	}

	t.Double(&x0).Inverse(&t)
	z.A1.Mul(&x.A1, &t)
	z.A0 = x0
	return z
}
