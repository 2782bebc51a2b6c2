package bn254

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/bn254/fp"
	"github.com/consensys/bn254/fr"
)

func TestG1AffineIsOnCurve(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("[s]g stays on the curve and in the subgroup", prop.ForAll(
		func(s fr.Element) bool {
			var b big.Int
			s.BigInt(&b)
			var p G1Affine
			p.ScalarMultiplicationBase(&b)
			return p.IsOnCurve() && p.IsInSubGroup()
		},
		genFr(),
	))

	properties.Property("rescaling the Jacobian coordinates preserves the curve equation", prop.ForAll(
		func(f fp.Element) bool {
			if f.IsZero() {
				return true
			}
			fuzzed := fuzzG1Jac(&g1Gen, &f)
			return fuzzed.IsOnCurve() && fuzzed.Equal(&g1Gen)
		},
		genFp(),
	))

	properties.Property("a tampered point is rejected", prop.ForAll(
		func(s fr.Element) bool {
			var b big.Int
			s.BigInt(&b)
			var p G1Affine
			p.ScalarMultiplicationBase(&b)
			if p.IsInfinity() {
				return true
			}
			p.Y.Add(&p.Y, &p.X)
			return !p.IsOnCurve()
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1Conversions(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("affine / Jacobian round trip", prop.ForAll(
		func(f fp.Element) bool {
			if f.IsZero() {
				return true
			}
			fuzzed := fuzzG1Jac(&g1Gen, &f)
			var aff G1Affine
			aff.FromJacobian(&fuzzed)
			var back G1Jac
			back.FromAffine(&aff)
			return back.Equal(&g1Gen)
		},
		genFp(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	assert := require.New(t)

	// infinity round trips
	var inf G1Affine
	inf.SetInfinity()
	var j G1Jac
	j.FromAffine(&inf)
	assert.True(j.Z.IsZero())
	var back G1Affine
	back.FromJacobian(&j)
	assert.True(back.IsInfinity())
	assert.True(inf.IsOnCurve())
}

func TestG1Ops(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("p+q == q+p", prop.ForAll(
		func(a, b fr.Element) bool {
			var ba, bb big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)
			var p, q, l, r G1Jac
			p.ScalarMultiplicationBase(&ba)
			q.ScalarMultiplicationBase(&bb)
			l.Set(&p).AddAssign(&q)
			r.Set(&q).AddAssign(&p)
			return l.Equal(&r)
		},
		genFr(), genFr(),
	))

	properties.Property("2p == p+p", prop.ForAll(
		func(a fr.Element) bool {
			var ba big.Int
			a.BigInt(&ba)
			var p, d, s G1Jac
			p.ScalarMultiplicationBase(&ba)
			d.Double(&p)
			s.Set(&p).AddAssign(&p)
			return d.Equal(&s)
		},
		genFr(),
	))

	properties.Property("mixed addition matches Jacobian addition", prop.ForAll(
		func(a, b fr.Element) bool {
			var ba, bb big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)
			var p, q, full G1Jac
			p.ScalarMultiplicationBase(&ba)
			q.ScalarMultiplicationBase(&bb)
			full.Set(&p).AddAssign(&q)

			var qAff G1Affine
			qAff.FromJacobian(&q)
			var mixed G1Jac
			mixed.Set(&p).AddMixed(&qAff)
			return mixed.Equal(&full)
		},
		genFr(), genFr(),
	))

	properties.Property("[a+b]g == [a]g + [b]g", prop.ForAll(
		func(a, b fr.Element) bool {
			var s fr.Element
			s.Add(&a, &b)
			var ba, bb, bs big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)
			s.BigInt(&bs)

			var l, p, q G1Jac
			l.ScalarMultiplicationBase(&bs)
			p.ScalarMultiplicationBase(&ba)
			q.ScalarMultiplicationBase(&bb)
			p.AddAssign(&q)
			return l.Equal(&p)
		},
		genFr(), genFr(),
	))

	properties.Property("[a]([b]g) == [ab]g", prop.ForAll(
		func(a, b fr.Element) bool {
			var ab fr.Element
			ab.Mul(&a, &b)
			var ba, bab big.Int
			a.BigInt(&ba)
			ab.BigInt(&bab)

			var bb big.Int
			b.BigInt(&bb)
			var p, l G1Jac
			p.ScalarMultiplicationBase(&bb)
			p.ScalarMultiplication(&p, &ba)
			l.ScalarMultiplicationBase(&bab)
			return l.Equal(&p)
		},
		genFr(), genFr(),
	))

	properties.Property("[-a]g == -[a]g", prop.ForAll(
		func(a fr.Element) bool {
			var ba big.Int
			a.BigInt(&ba)
			var neg big.Int
			neg.Neg(&ba)

			var p, q G1Jac
			p.ScalarMultiplicationBase(&neg)
			q.ScalarMultiplicationBase(&ba)
			q.Neg(&q)
			return p.Equal(&q)
		},
		genFr(),
	))

	properties.Property("p - p == O and p + O == p", prop.ForAll(
		func(a fr.Element) bool {
			var ba big.Int
			a.BigInt(&ba)
			var p, q G1Jac
			p.ScalarMultiplicationBase(&ba)
			q.Set(&p).SubAssign(&p)
			if !q.Z.IsZero() {
				return false
			}
			q.Set(&p).AddAssign(&g1Infinity)
			return q.Equal(&p)
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1ScalarMulFixedWindow(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("the constant-time and branching window ladders agree", prop.ForAll(
		func(a fr.Element) bool {
			var ba, neg big.Int
			a.BigInt(&ba)
			neg.Neg(&ba)

			var p, q G1Jac
			p.mulFixedWindow(&g1Gen, &ba)
			q.mulWindowed(&g1Gen, &ba)
			if !p.Equal(&q) {
				return false
			}
			p.mulFixedWindow(&g1Gen, &neg)
			q.mulWindowed(&g1Gen, &neg)
			return p.Equal(&q)
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	assert := require.New(t)

	var p, q G1Jac

	// zero scalar gives infinity
	p.mulFixedWindow(&g1Gen, new(big.Int))
	assert.True(p.Z.IsZero())

	// small scalars, including single-nibble ones
	for _, s := range []int64{1, 2, 15, 16, 255, 103} {
		p.mulFixedWindow(&g1Gen, big.NewInt(s))
		q.mulWindowed(&g1Gen, big.NewInt(s))
		assert.True(p.Equal(&q))
	}

	// scalars wider than the padded length are consumed in full
	wide := new(big.Int).Lsh(fr.Modulus(), 17)
	p.mulFixedWindow(&g1Gen, wide)
	q.mulWindowed(&g1Gen, wide)
	assert.True(p.Equal(&q))
}

func TestG1Order(t *testing.T) {
	assert := require.New(t)

	// [r]g == O
	var p G1Jac
	p.ScalarMultiplicationBase(fr.Modulus())
	assert.True(p.Z.IsZero(), "the generator should have order r")

	// [r-1]g == -g
	rMinusOne := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))
	var q, negG G1Jac
	q.ScalarMultiplicationBase(rMinusOne)
	negG.Neg(&g1Gen)
	assert.True(q.Equal(&negG))
}

func TestG1AffineOps(t *testing.T) {
	assert := require.New(t)

	var a, b, c, d G1Affine
	s1 := big.NewInt(71)
	s2 := big.NewInt(32)
	a.ScalarMultiplicationBase(s1)
	b.ScalarMultiplicationBase(s2)

	// 71g + 32g == 103g
	c.Add(&a, &b)
	d.ScalarMultiplicationBase(big.NewInt(103))
	assert.True(c.Equal(&d))

	// 71g - 32g == 39g
	c.Sub(&a, &b)
	d.ScalarMultiplicationBase(big.NewInt(39))
	assert.True(c.Equal(&d))

	// 2*(71g) == 142g
	c.Double(&a)
	d.ScalarMultiplicationBase(big.NewInt(142))
	assert.True(c.Equal(&d))

	// scalar mult on an arbitrary base point
	c.ScalarMultiplication(&a, s2)
	d.ScalarMultiplicationBase(new(big.Int).Mul(s1, s2))
	assert.True(c.Equal(&d))

	// adding the infinity point is a no-op
	var inf G1Affine
	inf.SetInfinity()
	c.Add(&a, &inf)
	assert.True(c.Equal(&a))

	// ClearCofactor is the identity on G1
	c.ClearCofactor(&a)
	assert.True(c.Equal(&a))
}
