package bn254

import (
	"math/big"

	"github.com/consensys/bn254/fr"
)

// G2Affine is a point in affine coordinates (x,y) on the twist
// y² = x³ + 3/(9+u), over 𝔽p².
//
// The point at infinity is represented by (0,0).
type G2Affine struct {
	X, Y E2
}

// G2Jac is a point in Jacobian coordinates (x=X/Z², y=Y/Z³) on the twist.
//
// The point at infinity is any point with Z == 0.
type G2Jac struct {
	X, Y, Z E2
}

// -------------------------------------------------------------------------------------------------
// affine

// Set sets p to a and returns p
func (p *G2Affine) Set(a *G2Affine) *G2Affine {
	p.X, p.Y = a.X, a.Y
	return p
}

// SetInfinity sets p to the infinity point, encoded as (0,0)
func (p *G2Affine) SetInfinity() *G2Affine {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

// IsInfinity checks if the point is infinity
// in affine, it's encoded as (0,0)
// (0,0) is never on the curve for j=0 curves
func (p *G2Affine) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equal tests if two points (in Affine coordinates) are equal
func (p *G2Affine) Equal(a *G2Affine) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Neg computes -G
func (p *G2Affine) Neg(a *G2Affine) *G2Affine {
	p.X = a.X
	p.Y.Neg(&a.Y)
	return p
}

// Add adds two points in affine coordinates, going through Jacobian
func (p *G2Affine) Add(a, b *G2Affine) *G2Affine {
	var q G2Jac
	q.FromAffine(a)
	q.AddMixed(b)
	return p.FromJacobian(&q)
}

// Sub subtracts two points in affine coordinates
func (p *G2Affine) Sub(a, b *G2Affine) *G2Affine {
	var negB G2Affine
	negB.Neg(b)
	return p.Add(a, &negB)
}

// Double doubles a point in affine coordinates
func (p *G2Affine) Double(a *G2Affine) *G2Affine {
	var q G2Jac
	q.FromAffine(a)
	q.DoubleAssign()
	return p.FromJacobian(&q)
}

// ScalarMultiplication computes and returns p = [s]a
func (p *G2Affine) ScalarMultiplication(a *G2Affine, s *big.Int) *G2Affine {
	var q, j G2Jac
	j.FromAffine(a)
	q.ScalarMultiplication(&j, s)
	return p.FromJacobian(&q)
}

// ScalarMultiplicationBase computes and returns p = [s]g where g is the generator
func (p *G2Affine) ScalarMultiplicationBase(s *big.Int) *G2Affine {
	var q G2Jac
	q.ScalarMultiplication(&g2Gen, s)
	return p.FromJacobian(&q)
}

// ClearCofactor maps a point on the twist to the r-torsion
func (p *G2Affine) ClearCofactor(a *G2Affine) *G2Affine {
	var q G2Jac
	q.FromAffine(a)
	q.ClearCofactor(&q)
	return p.FromJacobian(&q)
}

// FromJacobian converts a point from Jacobian to affine coordinates
func (p *G2Affine) FromJacobian(q *G2Jac) *G2Affine {
	if q.Z.IsZero() {
		return p.SetInfinity()
	}

	var a, b E2
	a.Inverse(&q.Z)
	b.Square(&a)
	p.X.Mul(&q.X, &b)
	p.Y.Mul(&q.Y, &b).Mul(&p.Y, &a)
	return p
}

// IsOnCurve returns true if p in on the twist
func (p *G2Affine) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	var left, right E2
	left.Square(&p.Y)
	right.Square(&p.X).Mul(&right, &p.X).Add(&right, &bTwistCurveCoeff)
	return left.Equal(&right)
}

// IsInSubGroup returns true if p is in the r-torsion, false otherwise
func (p *G2Affine) IsInSubGroup() bool {
	var q G2Jac
	q.FromAffine(p)
	return q.IsInSubGroup()
}

func (p *G2Affine) String() string {
	if p.IsInfinity() {
		return "O"
	}
	return "E([" + p.X.String() + "," + p.Y.String() + "])"
}

// -------------------------------------------------------------------------------------------------
// Jacobian

// Set sets p to a and returns p
func (p *G2Jac) Set(a *G2Jac) *G2Jac {
	p.X, p.Y, p.Z = a.X, a.Y, a.Z
	return p
}

// Equal tests if two points (in Jacobian coordinates) are equal, comparing
// the underlying affine points
func (p *G2Jac) Equal(a *G2Jac) bool {
	if p.Z.IsZero() {
		return a.Z.IsZero()
	}
	if a.Z.IsZero() {
		return false
	}

	var pZSquare, aZSquare, lhs, rhs E2
	pZSquare.Square(&p.Z)
	aZSquare.Square(&a.Z)

	lhs.Mul(&p.X, &aZSquare)
	rhs.Mul(&a.X, &pZSquare)
	if !lhs.Equal(&rhs) {
		return false
	}
	pZSquare.Mul(&pZSquare, &p.Z)
	aZSquare.Mul(&aZSquare, &a.Z)
	lhs.Mul(&p.Y, &aZSquare)
	rhs.Mul(&a.Y, &pZSquare)
	return lhs.Equal(&rhs)
}

// Neg computes -G
func (p *G2Jac) Neg(a *G2Jac) *G2Jac {
	*p = *a
	p.Y.Neg(&a.Y)
	return p
}

// SubAssign subtracts two points on the twist
func (p *G2Jac) SubAssign(a *G2Jac) *G2Jac {
	var tmp G2Jac
	tmp.Set(a)
	tmp.Y.Neg(&tmp.Y)
	return p.AddAssign(&tmp)
}

// AddAssign point addition in Jacobian coordinates
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (p *G2Jac) AddAssign(a *G2Jac) *G2Jac {

	// a is infinity, return p
	if a.Z.IsZero() {
		return p
	}

	// p is infinity, return a
	if p.Z.IsZero() {
		p.Set(a)
		return p
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V E2
	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)
	U1.Mul(&a.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)
	S1.Mul(&a.Y, &p.Z).Mul(&S1, &Z2Z2)
	S2.Mul(&p.Y, &a.Z).Mul(&S2, &Z1Z1)

	// if p == a, we double instead
	if U1.Equal(&U2) && S1.Equal(&S2) {
		return p.DoubleAssign()
	}

	H.Sub(&U2, &U1)
	I.Double(&H).Square(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &S1).Double(&r)
	V.Mul(&U1, &I)
	p.X.Square(&r).Sub(&p.X, &J).Sub(&p.X, &V).Sub(&p.X, &V)
	p.Y.Sub(&V, &p.X).Mul(&p.Y, &r)
	S1.Mul(&S1, &J).Double(&S1)
	p.Y.Sub(&p.Y, &S1)
	p.Z.Add(&p.Z, &a.Z).Square(&p.Z).Sub(&p.Z, &Z1Z1).Sub(&p.Z, &Z2Z2).Mul(&p.Z, &H)

	return p
}

// AddMixed point addition
// assumes a is in affine coordinates
// http://www.hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-madd-2007-bl
func (p *G2Jac) AddMixed(a *G2Affine) *G2Jac {

	// a is infinity, return p
	if a.IsInfinity() {
		return p
	}

	// p is infinity, return a
	if p.Z.IsZero() {
		p.X = a.X
		p.Y = a.Y
		p.Z.SetOne()
		return p
	}

	var Z1Z1, U2, S2, H, HH, I, J, r, V E2
	Z1Z1.Square(&p.Z)
	U2.Mul(&a.X, &Z1Z1)
	S2.Mul(&a.Y, &p.Z).Mul(&S2, &Z1Z1)

	// if p == a, we double instead
	if U2.Equal(&p.X) && S2.Equal(&p.Y) {
		return p.DoubleAssign()
	}

	H.Sub(&U2, &p.X)
	HH.Square(&H)
	I.Double(&HH).Double(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &p.Y).Double(&r)
	V.Mul(&p.X, &I)
	p.X.Square(&r).Sub(&p.X, &J).Sub(&p.X, &V).Sub(&p.X, &V)
	J.Mul(&J, &p.Y).Double(&J)
	p.Y.Sub(&V, &p.X).Mul(&p.Y, &r)
	p.Y.Sub(&p.Y, &J)
	p.Z.Add(&p.Z, &H).Square(&p.Z).Sub(&p.Z, &Z1Z1).Sub(&p.Z, &HH)

	return p
}

// Double doubles a point in Jacobian coordinates, stores the result in p
func (p *G2Jac) Double(q *G2Jac) *G2Jac {
	p.Set(q)
	return p.DoubleAssign()
}

// DoubleAssign doubles a point in Jacobian coordinates
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2007-bl
func (p *G2Jac) DoubleAssign() *G2Jac {

	var XX, YY, YYYY, ZZ, S, M, T E2

	XX.Square(&p.X)
	YY.Square(&p.Y)
	YYYY.Square(&YY)
	ZZ.Square(&p.Z)
	S.Add(&p.X, &YY).Square(&S).Sub(&S, &XX).Sub(&S, &YYYY).Double(&S)
	M.Double(&XX).Add(&M, &XX)
	p.Z.Add(&p.Z, &p.Y).Square(&p.Z).Sub(&p.Z, &YY).Sub(&p.Z, &ZZ)
	T.Square(&M)
	p.X = T
	T.Double(&S)
	p.X.Sub(&p.X, &T)
	p.Y.Sub(&S, &p.X).Mul(&p.Y, &M)
	YYYY.Double(&YYYY).Double(&YYYY).Double(&YYYY)
	p.Y.Sub(&p.Y, &YYYY)

	return p
}

// ScalarMultiplication computes and returns p = [s]a
// using a fixed 4-bit window with constant-time table lookups
func (p *G2Jac) ScalarMultiplication(a *G2Jac, s *big.Int) *G2Jac {
	return p.mulFixedWindow(a, s)
}

// ScalarMultiplicationBase computes and returns p = [s]g where g is the generator
func (p *G2Jac) ScalarMultiplicationBase(s *big.Int) *G2Jac {
	return p.mulFixedWindow(&g2Gen, s)
}

// selectEntry sets p to table[idx], 0 <= idx < 16, scanning the whole table
// with conditional moves; see G1Jac.selectEntry
func (p *G2Jac) selectEntry(table *[16]G2Jac, idx uint64) *G2Jac {
	p.Set(&table[0])
	for j := uint64(1); j < 16; j++ {
		// underflows to all-ones exactly when j == idx
		c := int(((idx ^ j) - 1) >> 63)
		p.X.Select(c, &p.X, &table[j].X)
		p.Y.Select(c, &p.Y, &table[j].Y)
		p.Z.Select(c, &p.Z, &table[j].Z)
	}
	return p
}

// mulFixedWindow computes [s]a with a fixed 4-bit window and constant-time
// table lookups; see G1Jac.mulFixedWindow
func (p *G2Jac) mulFixedWindow(a *G2Jac, s *big.Int) *G2Jac {

	var res, t G2Jac
	var ops [16]G2Jac // ops[k] == [k]a
	k := new(big.Int)

	ops[0].Set(&g2Infinity)
	if s.Sign() == -1 {
		k.Neg(s)
		ops[1].Neg(a)
	} else {
		k.Set(s)
		ops[1].Set(a)
	}
	for j := 2; j < 16; j += 2 {
		ops[j].Double(&ops[j/2])
		ops[j+1].Set(&ops[j]).AddAssign(&ops[1])
	}

	b := k.Bytes()
	if len(b) < fr.Bytes {
		padded := make([]byte, fr.Bytes)
		copy(padded[fr.Bytes-len(b):], b)
		b = padded
	}

	res.Set(&g2Infinity)
	for i := 0; i < len(b); i++ {
		w := b[i]
		res.DoubleAssign().DoubleAssign().DoubleAssign().DoubleAssign()
		t.selectEntry(&ops, uint64(w>>4))
		res.AddAssign(&t)
		res.DoubleAssign().DoubleAssign().DoubleAssign().DoubleAssign()
		t.selectEntry(&ops, uint64(w&0x0f))
		res.AddAssign(&t)
	}
	p.Set(&res)

	return p
}

// mulWindowed computes [s]a with a fixed 4-bit window: 15 precomputed
// multiples, then 2 window evaluations per scalar byte. The add schedule
// branches on the scalar digits, so it is reserved for public scalars
// (cofactor clearing, subgroup checks); see G1Jac.mulWindowed
func (p *G2Jac) mulWindowed(a *G2Jac, s *big.Int) *G2Jac {

	var res G2Jac
	var ops [15]G2Jac // ops[k] == [k+1]a
	k := new(big.Int)

	if s.Sign() == -1 {
		k.Neg(s)
		ops[0].Neg(a)
	} else {
		k.Set(s)
		ops[0].Set(a)
	}
	for j := 1; j < 15; j += 2 {
		ops[j].Double(&ops[j/2])
		ops[j+1].Set(&ops[(j+1)/2]).AddAssign(&ops[j/2])
	}

	res.Set(&g2Infinity)
	b := k.Bytes()
	for i := 0; i < len(b); i++ {
		w := b[i]
		res.DoubleAssign().DoubleAssign().DoubleAssign().DoubleAssign()
		if c := w >> 4; c != 0 {
			res.AddAssign(&ops[c-1])
		}
		res.DoubleAssign().DoubleAssign().DoubleAssign().DoubleAssign()
		if c := w & 0x0f; c != 0 {
			res.AddAssign(&ops[c-1])
		}
	}
	p.Set(&res)

	return p
}

// psi sets p to ψ(q) = u ∘ π ∘ u⁻¹ where u:E'→E is the isomorphism from the
// twist to the curve and π the p-power Frobenius
func (p *G2Jac) psi(q *G2Jac) *G2Jac {
	p.X.Conjugate(&q.X).MulByNonResidue1Power2(&p.X)
	p.Y.Conjugate(&q.Y).MulByNonResidue1Power3(&p.Y)
	p.Z.Conjugate(&q.Z)
	return p
}

// ClearCofactor maps a point on the twist to the r-torsion, multiplying by
// the cofactor p + 6x₀²
func (p *G2Jac) ClearCofactor(q *G2Jac) *G2Jac {
	return p.mulWindowed(q, &g2Cofactor)
}

// FromAffine sets p = Q, p in Jacobian, Q in affine
func (p *G2Jac) FromAffine(Q *G2Affine) *G2Jac {
	if Q.IsInfinity() {
		p.Z.SetZero()
		p.X.SetOne()
		p.Y.SetOne()
		return p
	}
	p.Z.SetOne()
	p.X.Set(&Q.X)
	p.Y.Set(&Q.Y)
	return p
}

// IsOnCurve returns true if p in on the twist
func (p *G2Jac) IsOnCurve() bool {
	var left, right, tmp, zz E2
	left.Square(&p.Y)
	right.Square(&p.X).Mul(&right, &p.X)
	zz.Square(&p.Z)
	tmp.Square(&zz).Mul(&tmp, &zz).Mul(&tmp, &bTwistCurveCoeff)
	right.Add(&right, &tmp)
	return left.Equal(&right)
}

// IsInSubGroup returns true if p is in the r-torsion, false otherwise
//
// [r]Q == 0 iff ψ(Q) == [6x₀²]Q
func (p *G2Jac) IsInSubGroup() bool {
	var a, res G2Jac
	a.psi(p)
	res.mulWindowed(p, &sixXSquared)
	return a.Equal(&res)
}

func (p *G2Jac) String() string {
	var a G2Affine
	a.FromJacobian(p)
	return a.String()
}
