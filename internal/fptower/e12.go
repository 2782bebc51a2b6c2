package fptower

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/consensys/bn254/fp"
	"github.com/consensys/bn254/fr"
)

// E12 is a degree two finite field extension of fp⁶, C0 + C1·w with w² = v
type E12 struct {
	C0, C1 E6
}

// Equal returns true if z equals x, false otherwise
func (z *E12) Equal(x *E12) bool {
	return z.C0.Equal(&x.C0) && z.C1.Equal(&x.C1)
}

// String puts E12 elmt in string form
func (z *E12) String() string {
	return "(" + z.C0.String() + "," + z.C1.String() + ")"
}

// SetString sets a E12 elmt from string
func (z *E12) SetString(s0, s1, s2, s3, s4, s5, s6, s7, s8, s9, s10, s11 string) *E12 {
	z.C0.SetString(s0, s1, s2, s3, s4, s5)
	z.C1.SetString(s6, s7, s8, s9, s10, s11)
	return z
}

// Set copies x into z and returns z
func (z *E12) Set(x *E12) *E12 {
	z.C0 = x.C0
	z.C1 = x.C1
	return z
}

// SetOne sets z to 1 in Montgomery form and returns z
func (z *E12) SetOne() *E12 {
	*z = E12{}
	z.C0.B0.A0.SetOne()
	return z
}

// SetZero sets z to 0 and returns z
func (z *E12) SetZero() *E12 {
	*z = E12{}
	return z
}

// SetRandom used only in tests
func (z *E12) SetRandom() (*E12, error) {
	if _, err := z.C0.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z.C1.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

// IsZero returns true if z is zero, false otherwise
func (z *E12) IsZero() bool {
	return z.C0.IsZero() && z.C1.IsZero()
}

// IsOne returns true if z is one, false otherwise
func (z *E12) IsOne() bool {
	return z.C0.IsOne() && z.C1.IsZero()
}

// Add sets z=x+y in E12 and returns z
func (z *E12) Add(x, y *E12) *E12 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	return z
}

// Sub sets z to x-y and returns z
func (z *E12) Sub(x, y *E12) *E12 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	return z
}

// Double sets z=2*x and returns z
func (z *E12) Double(x *E12) *E12 {
	z.C0.Double(&x.C0)
	z.C1.Double(&x.C1)
	return z
}

// Conjugate sets z to x conjugated and returns z
func (z *E12) Conjugate(x *E12) *E12 {
	z.C0 = x.C0
	z.C1.Neg(&x.C1)
	return z
}

// Mul sets z to the E12-product of x,y, returns z
func (z *E12) Mul(x, y *E12) *E12 {
	// Algorithm 20 from https://eprint.iacr.org/2010/354.pdf
	var a, b, c E6
	a.Add(&x.C0, &x.C1)
	b.Add(&y.C0, &y.C1)
	a.Mul(&a, &b)
	b.Mul(&x.C0, &y.C0)
	c.Mul(&x.C1, &y.C1)
	z.C1.Sub(&a, &b).Sub(&z.C1, &c)
	z.C0.MulByNonResidue(&c).Add(&z.C0, &b)
	return z
}

// Square sets z to the E12-product of x,x returns z
func (z *E12) Square(x *E12) *E12 {
	// Complex squaring, Algorithm 22 from https://eprint.iacr.org/2010/354.pdf
	var c0, c2, c3 E6
	c0.Sub(&x.C0, &x.C1)
	c3.MulByNonResidue(&x.C1).Neg(&c3).Add(&x.C0, &c3)
	c2.Mul(&x.C0, &x.C1)
	c0.Mul(&c0, &c3).Add(&c0, &c2)
	z.C1.Double(&c2)
	c2.MulByNonResidue(&c2)
	z.C0.Add(&c0, &c2)
	return z
}

// CyclotomicSquare squares a cyclotomic-subgroup element (Granger-Scott).
//
// Valid only for inputs of order dividing p⁴-p²+1, i.e. after the easy part of
// the final exponentiation.
func (z *E12) CyclotomicSquare(x *E12) *E12 {
	// x=(x0,x1,x2,x3,x4,x5,x6,x7) in E2⁶
	// cyclosquare(x)=(3*x4²*u + 3*x0² - 2*x0,
	//					3*x2²*u + 3*x3² - 2*x1,
	//					3*x5²*u + 3*x1² - 2*x2,
	//					6*x1*x5*u + 2*x3,
	//					6*x0*x4 + 2*x4,
	//					6*x2*x3 + 2*x5)

	var t [9]E2

	t[0].Square(&x.C1.B1)
	t[1].Square(&x.C0.B0)
	t[6].Add(&x.C1.B1, &x.C0.B0).Square(&t[6]).Sub(&t[6], &t[0]).Sub(&t[6], &t[1]) // 2*x4*x0
	t[2].Square(&x.C0.B2)
	t[3].Square(&x.C1.B0)
	t[7].Add(&x.C0.B2, &x.C1.B0).Square(&t[7]).Sub(&t[7], &t[2]).Sub(&t[7], &t[3]) // 2*x2*x3
	t[4].Square(&x.C1.B2)
	t[5].Square(&x.C0.B1)
	t[8].Add(&x.C1.B2, &x.C0.B1).Square(&t[8]).Sub(&t[8], &t[4]).Sub(&t[8], &t[5]).MulByNonResidue(&t[8]) // 2*x5*x1*u

	t[0].MulByNonResidue(&t[0]).Add(&t[0], &t[1]) // x4²*u + x0²
	t[2].MulByNonResidue(&t[2]).Add(&t[2], &t[3]) // x2²*u + x3²
	t[4].MulByNonResidue(&t[4]).Add(&t[4], &t[5]) // x5²*u + x1²

	z.C0.B0.Sub(&t[0], &x.C0.B0).Double(&z.C0.B0).Add(&z.C0.B0, &t[0])
	z.C0.B1.Sub(&t[2], &x.C0.B1).Double(&z.C0.B1).Add(&z.C0.B1, &t[2])
	z.C0.B2.Sub(&t[4], &x.C0.B2).Double(&z.C0.B2).Add(&z.C0.B2, &t[4])

	z.C1.B0.Add(&t[8], &x.C1.B0).Double(&z.C1.B0).Add(&z.C1.B0, &t[8])
	z.C1.B1.Add(&t[6], &x.C1.B1).Double(&z.C1.B1).Add(&z.C1.B1, &t[6])
	z.C1.B2.Add(&t[7], &x.C1.B2).Double(&z.C1.B2).Add(&z.C1.B2, &t[7])

	return z
}

// Inverse sets z to the E12-inverse of x, returns z.
//
// If x == 0, z is set to 0.
func (z *E12) Inverse(x *E12) *E12 {
	// Algorithm 23 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1, tmp E6
	t0.Square(&x.C0)
	t1.Square(&x.C1)
	tmp.MulByNonResidue(&t1)
	t0.Sub(&t0, &tmp)
	t1.Inverse(&t0)
	z.C0.Mul(&x.C0, &t1)
	z.C1.Mul(&x.C1, &t1).Neg(&z.C1)
	return z
}

// Exp sets z=xᵏ (mod q¹²) and returns it
//
// The squaring schedule depends only on the bit length of k.
func (z *E12) Exp(x E12, k *big.Int) *E12 {
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

// curve seed; the Miller loop length 6t+2 and the final exponentiation
// schedule both derive from it
const tAbs uint64 = 4965661367192848881

// Expt sets z to xᵗ where t is the curve seed, and returns z.
//
// The input must lie in the cyclotomic subgroup.
func (z *E12) Expt(x *E12) *E12 {
	var result E12
	result.Set(x)
	for i := bits.Len64(tAbs) - 2; i >= 0; i-- {
		result.CyclotomicSquare(&result)
		if (tAbs>>uint(i))&1 == 1 {
			result.Mul(&result, x)
		}
	}
	z.Set(&result)
	return z
}

// MulBy034 multiplication by sparse element (c0, 0, 0, c3, c4, 0); this is the
// shape of a Miller-loop line evaluation
func (z *E12) MulBy034(c0, c3, c4 *E2) *E12 {
	var a, b, d E6
	var t E2

	a.MulByE2(&z.C0, c0)

	b.Set(&z.C1)
	b.MulBy01(c3, c4)

	t.Add(c0, c3)
	d.Add(&z.C0, &z.C1)
	d.MulBy01(&t, c4)

	z.C1.Add(&a, &b).Neg(&z.C1).Add(&z.C1, &d)
	z.C0.MulByNonResidue(&b).Add(&z.C0, &a)

	return z
}

// IsInSubGroup returns true if z has order dividing r, i.e. lies in the image
// of the pairing.
//
// The r-torsion sits inside the cyclotomic subgroup (r divides p⁴-p²+1,
// which divides p⁶+1), so the norm condition conj(z)·z == 1 is checked
// first; the r-exponentiation then runs its squarings through
// CyclotomicSquare.
func (z *E12) IsInSubGroup() bool {
	var t, res E12
	t.Conjugate(z).Mul(&t, z)
	if !t.IsOne() {
		return false
	}

	r := fr.Modulus()
	res.Set(z)
	for i := r.BitLen() - 2; i >= 0; i-- {
		res.CyclotomicSquare(&res)
		if r.Bit(i) == 1 {
			res.Mul(&res, z)
		}
	}
	return res.IsOne()
}

// SizeOfGT represents the size in bytes that a GT element need in binary form
const SizeOfGT = fp.Bytes * 12

// Bytes returns the regular (non compressed) value
// of z as a big-endian byte array.
// z.C1.B2.A1 | z.C1.B2.A0 | z.C1.B1.A1 | ...
func (z *E12) Bytes() (r [SizeOfGT]byte) {
	offset := 0
	for _, e := range []*fp.Element{
		&z.C1.B2.A1, &z.C1.B2.A0, &z.C1.B1.A1, &z.C1.B1.A0, &z.C1.B0.A1, &z.C1.B0.A0,
		&z.C0.B2.A1, &z.C0.B2.A0, &z.C0.B1.A1, &z.C0.B1.A0, &z.C0.B0.A1, &z.C0.B0.A0,
	} {
		fp.BigEndian.PutElement((*[fp.Bytes]byte)(r[offset:offset+fp.Bytes]), *e)
		offset += fp.Bytes
	}
	return
}

// SetBytes interprets e as the bytes of a big-endian E12, sets z to that value
// and returns z; every coordinate must be a canonical field element.
func (z *E12) SetBytes(e []byte) error {
	if len(e) != SizeOfGT {
		return errors.New("invalid buffer size")
	}
	offset := 0
	for _, coord := range []*fp.Element{
		&z.C1.B2.A1, &z.C1.B2.A0, &z.C1.B1.A1, &z.C1.B1.A0, &z.C1.B0.A1, &z.C1.B0.A0,
		&z.C0.B2.A1, &z.C0.B2.A0, &z.C0.B1.A1, &z.C0.B1.A0, &z.C0.B0.A1, &z.C0.B0.A0,
	} {
		elem, err := fp.BigEndian.Element((*[fp.Bytes]byte)(e[offset : offset+fp.Bytes]))
		if err != nil {
			return err
		}
		*coord = elem
		offset += fp.Bytes
	}
	return nil
}
