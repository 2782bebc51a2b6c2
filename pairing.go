package bn254

import (
	"errors"

	"github.com/consensys/bn254/internal/fptower"
)

// GT is the target group of the pairing, an r-th root of unity in 𝔽p¹²
type GT = fptower.E12

// ErrInvalidWitness mismatched input slice lengths
var ErrInvalidWitness = errors.New("invalid inputs sizes")

// millerPoint is a Jacobian point on the twist carrying t = z² cached, the
// shape the line functions consume
type millerPoint struct {
	x, y, z, t E2
}

func (m *millerPoint) set(q *G2Affine) {
	m.x = q.X
	m.y = q.Y
	m.z.SetOne()
	m.t.SetOne()
}

// lineFunctionDouble doubles r and evaluates the tangent line at r in the
// G1 point q; the evaluation is the sparse 𝔽p¹² element a·vw + b·w + c
// https://arxiv.org/pdf/0904.0854v3.pdf
func lineFunctionDouble(r *millerPoint, q *G1Affine) (rOut millerPoint, a, b, c E2) {
	var A, B, C, D, E, G, t E2

	A.Square(&r.x)
	B.Square(&r.y)
	C.Square(&B)

	D.Add(&r.x, &B)
	D.Square(&D).Sub(&D, &A).Sub(&D, &C).Double(&D)

	E.Double(&A).Add(&E, &A)

	G.Square(&E)

	rOut.x.Sub(&G, &D).Sub(&rOut.x, &D)

	rOut.z.Add(&r.y, &r.z).Square(&rOut.z).Sub(&rOut.z, &B).Sub(&rOut.z, &r.t)

	rOut.y.Sub(&D, &rOut.x).Mul(&rOut.y, &E)
	t.Double(&C).Double(&t).Double(&t)
	rOut.y.Sub(&rOut.y, &t)

	rOut.t.Square(&rOut.z)

	t.Mul(&E, &r.t).Double(&t)
	b.Neg(&t)
	b.MulByElement(&b, &q.X)

	a.Add(&r.x, &E)
	a.Square(&a).Sub(&a, &A).Sub(&a, &G)
	t.Double(&B).Double(&t)
	a.Sub(&a, &t)

	c.Mul(&rOut.z, &r.t)
	c.Double(&c).MulByElement(&c, &q.Y)

	return
}

// lineFunctionAdd adds the affine twist point p to r and evaluates the line
// through them at the G1 point q; r2 caches p.y²
func lineFunctionAdd(r *millerPoint, p *G2Affine, q *G1Affine, r2 *E2) (rOut millerPoint, a, b, c E2) {
	var B, D, H, I, E, J, L1, V, t, t2 E2

	B.Mul(&p.X, &r.t)

	D.Add(&p.Y, &r.z)
	D.Square(&D).Sub(&D, r2).Sub(&D, &r.t).Mul(&D, &r.t)

	H.Sub(&B, &r.x)
	I.Square(&H)

	E.Double(&I).Double(&E)

	J.Mul(&H, &E)

	L1.Sub(&D, &r.y).Sub(&L1, &r.y)

	V.Mul(&r.x, &E)

	rOut.x.Square(&L1).Sub(&rOut.x, &J).Sub(&rOut.x, &V).Sub(&rOut.x, &V)

	rOut.z.Add(&r.z, &H).Square(&rOut.z).Sub(&rOut.z, &r.t).Sub(&rOut.z, &I)

	t.Sub(&V, &rOut.x)
	t.Mul(&t, &L1)
	t2.Mul(&r.y, &J)
	t2.Double(&t2)
	rOut.y.Sub(&t, &t2)

	rOut.t.Square(&rOut.z)

	t.Add(&p.Y, &rOut.z).Square(&t).Sub(&t, r2).Sub(&t, &rOut.t)

	t2.Mul(&L1, &p.X)
	t2.Double(&t2)
	a.Sub(&t2, &t)

	c.MulByElement(&rOut.z, &q.Y)
	c.Double(&c)

	b.Neg(&L1)
	b.MulByElement(&b, &q.X).Double(&b)

	return
}

// mulLine multiplies acc by the line evaluation a·vw + b·w + c
func mulLine(acc *GT, a, b, c *E2) {
	acc.MulBy034(c, b, a)
}

// MillerLoop computes the product of Miller loops
//
//	∏ᵢ f_{6x₀+2, Q[i]}(P[i]) · l_{[6x₀+2]Q[i],π(Q[i])}(P[i]) · l_{[6x₀+2]Q[i]+π(Q[i]),-π²(Q[i])}(P[i])
//
// Infinity entries contribute 1 and are skipped; len(P) must equal len(Q).
func MillerLoop(P []G1Affine, Q []G2Affine) (GT, error) {
	n := len(P)
	if n == 0 || n != len(Q) {
		return GT{}, ErrInvalidWitness
	}

	// filter infinity points
	p := make([]G1Affine, 0, n)
	q := make([]G2Affine, 0, n)
	for k := 0; k < n; k++ {
		if P[k].IsInfinity() || Q[k].IsInfinity() {
			continue
		}
		p = append(p, P[k])
		q = append(q, Q[k])
	}
	n = len(p)

	var result GT
	result.SetOne()
	if n == 0 {
		return result, nil
	}

	// accumulator points, negated Q and cached y² per pair
	r := make([]millerPoint, n)
	negQ := make([]G2Affine, n)
	r2 := make([]E2, n)
	for k := 0; k < n; k++ {
		r[k].set(&q[k])
		negQ[k].Neg(&q[k])
		r2[k].Square(&q[k].Y)
	}

	var a, b, c E2

	for i := len(loopCounter) - 2; i >= 0; i-- {
		if i != len(loopCounter)-2 {
			result.Square(&result)
		}

		for k := 0; k < n; k++ {
			r[k], a, b, c = lineFunctionDouble(&r[k], &p[k])
			mulLine(&result, &a, &b, &c)

			switch loopCounter[i] {
			case 1:
				r[k], a, b, c = lineFunctionAdd(&r[k], &q[k], &p[k], &r2[k])
			case -1:
				r[k], a, b, c = lineFunctionAdd(&r[k], &negQ[k], &p[k], &r2[k])
			default:
				continue
			}
			mulLine(&result, &a, &b, &c)
		}
	}

	// closing steps: add π(Q) then -π²(Q).
	//
	// π(Q) is computed by untwisting, applying Frobenius and twisting back:
	// the twist isomorphism is (x,y) → (xω², yω³), so the Frobenius picks up
	// ξ^((p-1)/3) on x and ξ^((p-1)/2) on y on top of the conjugation.
	//
	// For π²(Q) the conjugations cancel and the x factor ξ^((p²-1)/3) lies in
	// 𝔽p; the y factor is ξ^((p²-1)/2) = -1, absorbed by adding -π²(Q)
	// instead.
	for k := 0; k < n; k++ {
		var q1, minusQ2 G2Affine
		q1.X.Conjugate(&q[k].X).MulByNonResidue1Power2(&q1.X)
		q1.Y.Conjugate(&q[k].Y).MulByNonResidue1Power3(&q1.Y)

		minusQ2.X.MulByNonResidue2Power2(&q[k].X)
		minusQ2.Y.Set(&q[k].Y)

		var y2 E2
		y2.Square(&q1.Y)
		r[k], a, b, c = lineFunctionAdd(&r[k], &q1, &p[k], &y2)
		mulLine(&result, &a, &b, &c)

		y2.Square(&minusQ2.Y)
		r[k], a, b, c = lineFunctionAdd(&r[k], &minusQ2, &p[k], &y2)
		mulLine(&result, &a, &b, &c)
	}

	return result, nil
}

// FinalExponentiation computes the exponentiation (∏ᵢ zᵢ)ᵈ where
//
//	d = (p¹² - 1) / r
//
// in three parts: the easy part z^((p⁶-1)(p²+1)) then the hard part
// following Devegili et al. https://eprint.iacr.org/2007/390.pdf
func FinalExponentiation(z *GT, _z ...*GT) GT {
	var result GT
	result.Set(z)
	for _, e := range _z {
		result.Mul(&result, e)
	}

	// easy part
	var t1, inv GT
	t1.Conjugate(&result)
	inv.Inverse(&result)
	t1.Mul(&t1, &inv) // z^(p⁶-1)
	inv.FrobeniusSquare(&t1)
	t1.Mul(&t1, &inv) // z^((p⁶-1)(p²+1)), now in the cyclotomic subgroup

	// hard part
	var f1, f2, f3, fu, fu2, fu3, fu2p, fu3p GT
	var y0, y1, y2, y3, y4, y5, y6, t0 GT

	f1.Frobenius(&t1)
	f2.FrobeniusSquare(&t1)
	f3.FrobeniusCube(&t1)

	fu.Expt(&t1)
	fu2.Expt(&fu)
	fu3.Expt(&fu2)

	y3.Frobenius(&fu)
	fu2p.Frobenius(&fu2)
	fu3p.Frobenius(&fu3)
	y2.FrobeniusSquare(&fu2)

	y0.Mul(&f1, &f2).Mul(&y0, &f3)
	y1.Conjugate(&t1)
	y5.Conjugate(&fu2)
	y3.Conjugate(&y3)
	y4.Mul(&fu, &fu2p).Conjugate(&y4)
	y6.Mul(&fu3, &fu3p).Conjugate(&y6)

	t0.CyclotomicSquare(&y6).Mul(&t0, &y4).Mul(&t0, &y5)
	t1.Mul(&y3, &y5).Mul(&t1, &t0)
	t0.Mul(&t0, &y2)
	t1.CyclotomicSquare(&t1).Mul(&t1, &t0).CyclotomicSquare(&t1)
	t0.Mul(&t1, &y1)
	t1.Mul(&t1, &y0)
	t0.CyclotomicSquare(&t0).Mul(&t0, &t1)

	return t0
}

// Pair calculates the reduced pairing ∏ᵢ e(P[i], Q[i])
func Pair(P []G1Affine, Q []G2Affine) (GT, error) {
	f, err := MillerLoop(P, Q)
	if err != nil {
		return GT{}, err
	}
	return FinalExponentiation(&f), nil
}

// PairingCheck calculates the reduced pairing ∏ᵢ e(P[i], Q[i]) and returns
// true if the result is 1
func PairingCheck(P []G1Affine, Q []G2Affine) (bool, error) {
	f, err := Pair(P, Q)
	if err != nil {
		return false, err
	}
	var one GT
	one.SetOne()
	return f.Equal(&one), nil
}
