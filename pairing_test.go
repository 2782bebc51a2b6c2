package bn254

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/bn254/fr"
)

func TestPairingNonDegeneracy(t *testing.T) {
	assert := require.New(t)

	var one GT
	one.SetOne()

	// e(g1, g2) != 1 and lies in the r-torsion of 𝔽p¹²
	res, err := Pair([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
	assert.NoError(err)
	assert.False(res.Equal(&one), "the pairing of the generators must not be trivial")
	assert.True(res.IsInSubGroup())

	// e(O, g2) == 1 and e(g1, O) == 1
	var infG1 G1Affine
	infG1.SetInfinity()
	res, err = Pair([]G1Affine{infG1}, []G2Affine{g2GenAff})
	assert.NoError(err)
	assert.True(res.Equal(&one))

	var infG2 G2Affine
	infG2.SetInfinity()
	res, err = Pair([]G1Affine{g1GenAff}, []G2Affine{infG2})
	assert.NoError(err)
	assert.True(res.Equal(&one))
}

func TestPairingBilinearity(t *testing.T) {
	properties := gopter.NewProperties(pairingParams(t))

	properties.Property("e([a]g1, [b]g2) == e(g1, g2)^(ab) == e([ab]g1, g2)", prop.ForAll(
		func(a, b fr.Element) bool {
			var ba, bb big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)

			var ab fr.Element
			ab.Mul(&a, &b)
			var bab big.Int
			ab.BigInt(&bab)

			var p G1Affine
			var q G2Affine
			p.ScalarMultiplicationBase(&ba)
			q.ScalarMultiplicationBase(&bb)

			lhs, err := Pair([]G1Affine{p}, []G2Affine{q})
			if err != nil {
				return false
			}

			base, err := Pair([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
			if err != nil {
				return false
			}
			var rhs GT
			rhs.Exp(base, &bab)
			if !lhs.Equal(&rhs) {
				return false
			}

			var pab G1Affine
			pab.ScalarMultiplicationBase(&bab)
			rhs2, err := Pair([]G1Affine{pab}, []G2Affine{g2GenAff})
			if err != nil {
				return false
			}
			return lhs.Equal(&rhs2)
		},
		genFr(), genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPairingBatch(t *testing.T) {
	assert := require.New(t)

	// the batched pairing is the product of the individual pairings
	var p1, p2 G1Affine
	var q1, q2 G2Affine
	p1.ScalarMultiplicationBase(big.NewInt(13))
	p2.ScalarMultiplicationBase(big.NewInt(28))
	q1.ScalarMultiplicationBase(big.NewInt(45))
	q2.ScalarMultiplicationBase(big.NewInt(97))

	batched, err := Pair([]G1Affine{p1, p2}, []G2Affine{q1, q2})
	assert.NoError(err)

	e1, err := Pair([]G1Affine{p1}, []G2Affine{q1})
	assert.NoError(err)
	e2, err := Pair([]G1Affine{p2}, []G2Affine{q2})
	assert.NoError(err)

	var product GT
	product.Mul(&e1, &e2)
	assert.True(batched.Equal(&product))
}

func TestPairingCheck(t *testing.T) {
	assert := require.New(t)

	var negG1 G1Affine
	negG1.Neg(&g1GenAff)

	// e(g1, g2) * e(-g1, g2) == 1
	ok, err := PairingCheck(
		[]G1Affine{g1GenAff, negG1},
		[]G2Affine{g2GenAff, g2GenAff},
	)
	assert.NoError(err)
	assert.True(ok)

	// e(g1, g2) != 1
	ok, err = PairingCheck([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
	assert.NoError(err)
	assert.False(ok)

	// e([a]g1, [b]g2) * e([-ab]g1, g2) == 1
	a, b := big.NewInt(212), big.NewInt(913)
	var pa, pab G1Affine
	var qb G2Affine
	pa.ScalarMultiplicationBase(a)
	qb.ScalarMultiplicationBase(b)
	pab.ScalarMultiplicationBase(new(big.Int).Neg(new(big.Int).Mul(a, b)))

	ok, err = PairingCheck(
		[]G1Affine{pa, pab},
		[]G2Affine{qb, g2GenAff},
	)
	assert.NoError(err)
	assert.True(ok)
}

func TestMillerLoopErrors(t *testing.T) {
	assert := require.New(t)

	_, err := MillerLoop(nil, nil)
	assert.ErrorIs(err, ErrInvalidWitness)

	_, err = MillerLoop([]G1Affine{g1GenAff}, []G2Affine{g2GenAff, g2GenAff})
	assert.ErrorIs(err, ErrInvalidWitness)

	_, err = Pair([]G1Affine{}, []G2Affine{})
	assert.ErrorIs(err, ErrInvalidWitness)
}

func TestFinalExponentiationMulti(t *testing.T) {
	assert := require.New(t)

	// FinalExponentiation(a, b) == FinalExponentiation(a*b)
	f1, err := MillerLoop([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
	assert.NoError(err)
	var p2 G1Affine
	p2.ScalarMultiplicationBase(big.NewInt(42))
	f2, err := MillerLoop([]G1Affine{p2}, []G2Affine{g2GenAff})
	assert.NoError(err)

	var prod GT
	prod.Mul(&f1, &f2)
	single := FinalExponentiation(&prod)
	multi := FinalExponentiation(&f1, &f2)
	assert.True(single.Equal(&multi))
}

func BenchmarkPairing(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Pair([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
	}
}

func BenchmarkMillerLoop(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MillerLoop([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
	}
}
