package bn254

import (
	"math/big"

	"github.com/consensys/bn254/fp"
	"github.com/consensys/bn254/fr"
)

// G1Affine is a point in affine coordinates (x,y) on the curve y² = x³ + 3.
//
// The point at infinity is represented by (0,0).
type G1Affine struct {
	X, Y fp.Element
}

// G1Jac is a point in Jacobian coordinates (x=X/Z², y=Y/Z³).
//
// The point at infinity is any point with Z == 0.
type G1Jac struct {
	X, Y, Z fp.Element
}

// -------------------------------------------------------------------------------------------------
// affine

// Set sets p to a and returns p
func (p *G1Affine) Set(a *G1Affine) *G1Affine {
	p.X, p.Y = a.X, a.Y
	return p
}

// SetInfinity sets p to the infinity point, encoded as (0,0)
func (p *G1Affine) SetInfinity() *G1Affine {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

// IsInfinity checks if the point is infinity
// in affine, it's encoded as (0,0)
// (0,0) is never on the curve for j=0 curves
func (p *G1Affine) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equal tests if two points (in Affine coordinates) are equal
func (p *G1Affine) Equal(a *G1Affine) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Neg computes -G
func (p *G1Affine) Neg(a *G1Affine) *G1Affine {
	p.X = a.X
	p.Y.Neg(&a.Y)
	return p
}

// Add adds two points in affine coordinates, going through Jacobian
func (p *G1Affine) Add(a, b *G1Affine) *G1Affine {
	var q G1Jac
	q.FromAffine(a)
	q.AddMixed(b)
	return p.FromJacobian(&q)
}

// Sub subtracts two points in affine coordinates
func (p *G1Affine) Sub(a, b *G1Affine) *G1Affine {
	var negB G1Affine
	negB.Neg(b)
	return p.Add(a, &negB)
}

// Double doubles a point in affine coordinates
func (p *G1Affine) Double(a *G1Affine) *G1Affine {
	var q G1Jac
	q.FromAffine(a)
	q.DoubleAssign()
	return p.FromJacobian(&q)
}

// ScalarMultiplication computes and returns p = [s]a
func (p *G1Affine) ScalarMultiplication(a *G1Affine, s *big.Int) *G1Affine {
	var q, j G1Jac
	j.FromAffine(a)
	q.ScalarMultiplication(&j, s)
	return p.FromJacobian(&q)
}

// ScalarMultiplicationBase computes and returns p = [s]g where g is the generator
func (p *G1Affine) ScalarMultiplicationBase(s *big.Int) *G1Affine {
	var q G1Jac
	q.ScalarMultiplication(&g1Gen, s)
	return p.FromJacobian(&q)
}

// FromJacobian converts a point from Jacobian to affine coordinates
func (p *G1Affine) FromJacobian(q *G1Jac) *G1Affine {
	if q.Z.IsZero() {
		return p.SetInfinity()
	}

	var a, b fp.Element
	a.Inverse(&q.Z)
	b.Square(&a)
	p.X.Mul(&q.X, &b)
	p.Y.Mul(&q.Y, &b).Mul(&p.Y, &a)
	return p
}

// IsOnCurve returns true if p in on the curve
func (p *G1Affine) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	var left, right fp.Element
	left.Square(&p.Y)
	right.Square(&p.X).Mul(&right, &p.X).Add(&right, &bCurveCoeff)
	return left.Equal(&right)
}

// IsInSubGroup returns true if p is in the correct subgroup.
//
// The curve group over 𝔽p has prime order r (cofactor 1), so membership is
// exactly the curve equation.
func (p *G1Affine) IsInSubGroup() bool {
	return p.IsOnCurve()
}

// ClearCofactor maps a point in the curve to the r-torsion; the G1 cofactor
// is 1 so this is the identity map
func (p *G1Affine) ClearCofactor(a *G1Affine) *G1Affine {
	return p.Set(a)
}

func (p *G1Affine) String() string {
	if p.IsInfinity() {
		return "O"
	}
	return "E([" + p.X.String() + "," + p.Y.String() + "])"
}

// -------------------------------------------------------------------------------------------------
// Jacobian

// Set sets p to a and returns p
func (p *G1Jac) Set(a *G1Jac) *G1Jac {
	p.X, p.Y, p.Z = a.X, a.Y, a.Z
	return p
}

// Equal tests if two points (in Jacobian coordinates) are equal, comparing
// the underlying affine points
func (p *G1Jac) Equal(a *G1Jac) bool {
	if p.Z.IsZero() {
		return a.Z.IsZero()
	}
	if a.Z.IsZero() {
		return false
	}

	// compare x*z'² == x'*z² and y*z'³ == y'*z³
	var pZSquare, aZSquare, lhs, rhs fp.Element
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
func (p *G1Jac) Neg(a *G1Jac) *G1Jac {
	*p = *a
	p.Y.Neg(&a.Y)
	return p
}

// SubAssign subtracts two points on the curve
func (p *G1Jac) SubAssign(a *G1Jac) *G1Jac {
	var tmp G1Jac
	tmp.Set(a)
	tmp.Y.Neg(&tmp.Y)
	return p.AddAssign(&tmp)
}

// AddAssign point addition in Jacobian coordinates
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (p *G1Jac) AddAssign(a *G1Jac) *G1Jac {

	// a is infinity, return p
	if a.Z.IsZero() {
		return p
	}

	// p is infinity, return a
	if p.Z.IsZero() {
		p.Set(a)
		return p
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V fp.Element
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
func (p *G1Jac) AddMixed(a *G1Affine) *G1Jac {

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

	var Z1Z1, U2, S2, H, HH, I, J, r, V fp.Element
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
func (p *G1Jac) Double(q *G1Jac) *G1Jac {
	p.Set(q)
	return p.DoubleAssign()
}

// DoubleAssign doubles a point in Jacobian coordinates
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2007-bl
func (p *G1Jac) DoubleAssign() *G1Jac {

	var XX, YY, YYYY, ZZ, S, M, T fp.Element

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
func (p *G1Jac) ScalarMultiplication(a *G1Jac, s *big.Int) *G1Jac {
	return p.mulFixedWindow(a, s)
}

// ScalarMultiplicationBase computes and returns p = [s]g where g is the generator
func (p *G1Jac) ScalarMultiplicationBase(s *big.Int) *G1Jac {
	return p.mulFixedWindow(&g1Gen, s)
}

// selectEntry sets p to table[idx], 0 <= idx < 16, scanning the whole table
// with conditional moves so that the memory access pattern and the executed
// instructions do not depend on idx.
func (p *G1Jac) selectEntry(table *[16]G1Jac, idx uint64) *G1Jac {
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

// mulFixedWindow computes [s]a with a fixed 4-bit window. The scalar bytes
// are zero-padded to at least fr.Bytes, every window runs four doublings and
// one addition, and the addend is picked from a 16-entry table (entry 0 is
// the point at infinity, absorbed by the addition) with selectEntry. The
// schedule and table accesses depend only on the padded scalar length, never
// on its bits, so this is the path for secret scalars.
func (p *G1Jac) mulFixedWindow(a *G1Jac, s *big.Int) *G1Jac {

	var res, t G1Jac
	var ops [16]G1Jac // ops[k] == [k]a
	k := new(big.Int)

	ops[0].Set(&g1Infinity)
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

	res.Set(&g1Infinity)
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

// mulWindowed computes [s]a with a fixed 4-bit window: 15 precomputed odd and
// even multiples, then 2 window evaluations per scalar byte. The add schedule
// branches on the scalar digits, so it is reserved for public scalars
// (cofactor clearing, subgroup checks).
func (p *G1Jac) mulWindowed(a *G1Jac, s *big.Int) *G1Jac {

	var res G1Jac
	var ops [15]G1Jac // ops[k] == [k+1]a
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

	res.Set(&g1Infinity)
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

// FromAffine sets p = Q, p in Jacobian, Q in affine
func (p *G1Jac) FromAffine(Q *G1Affine) *G1Jac {
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

// IsOnCurve returns true if p in on the curve
func (p *G1Jac) IsOnCurve() bool {
	var left, right, tmp, zz fp.Element
	left.Square(&p.Y)
	right.Square(&p.X).Mul(&right, &p.X)
	zz.Square(&p.Z)
	tmp.Square(&zz).Mul(&tmp, &zz).Mul(&tmp, &bCurveCoeff)
	right.Add(&right, &tmp)
	return left.Equal(&right)
}

// IsInSubGroup returns true if p is in the correct subgroup; the G1 cofactor
// is 1 so this is the curve membership test
func (p *G1Jac) IsInSubGroup() bool {
	return p.IsOnCurve()
}

func (p *G1Jac) String() string {
	var a G1Affine
	a.FromJacobian(p)
	return a.String()
}
