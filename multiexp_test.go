package bn254

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/bn254/fr"
)

// naiveExpG1 computes the multi exponentiation one scalar multiplication at
// a time
func naiveExpG1(points []G1Affine, scalars []fr.Element) G1Jac {
	var res G1Jac
	res.Set(&g1Infinity)
	for i := range points {
		var b big.Int
		scalars[i].BigInt(&b)
		var pj, term G1Jac
		pj.FromAffine(&points[i])
		term.ScalarMultiplication(&pj, &b)
		res.AddAssign(&term)
	}
	return res
}

func naiveExpG2(points []G2Affine, scalars []fr.Element) G2Jac {
	var res G2Jac
	res.Set(&g2Infinity)
	for i := range points {
		var b big.Int
		scalars[i].BigInt(&b)
		var pj, term G2Jac
		pj.FromAffine(&points[i])
		term.ScalarMultiplication(&pj, &b)
		res.AddAssign(&term)
	}
	return res
}

func TestMultiExpG1(t *testing.T) {
	assert := require.New(t)

	const n = 73
	points := make([]G1Affine, n)
	scalars := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		points[i].ScalarMultiplicationBase(big.NewInt(int64(i + 1)))
		if _, err := scalars[i].SetRandom(); err != nil {
			t.Fatal(err)
		}
	}
	// trivial inputs must be ignored
	scalars[5].SetZero()
	points[11].SetInfinity()

	expected := naiveExpG1(points, scalars)

	var got G1Jac
	_, err := got.MultiExp(points, scalars, MultiExpConfig{})
	assert.NoError(err)
	assert.True(got.Equal(&expected))

	// same result regardless of the task count
	var gotSerial G1Jac
	_, err = gotSerial.MultiExp(points, scalars, MultiExpConfig{NbTasks: 1})
	assert.NoError(err)
	assert.True(gotSerial.Equal(&expected))

	// affine variant
	var gotAff, expectedAff G1Affine
	_, err = gotAff.MultiExp(points, scalars, MultiExpConfig{NbTasks: 3})
	assert.NoError(err)
	expectedAff.FromJacobian(&expected)
	assert.True(gotAff.Equal(&expectedAff))
}

func TestMultiExpG2(t *testing.T) {
	assert := require.New(t)

	const n = 29
	points := make([]G2Affine, n)
	scalars := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		points[i].ScalarMultiplicationBase(big.NewInt(int64(2*i + 1)))
		if _, err := scalars[i].SetRandom(); err != nil {
			t.Fatal(err)
		}
	}
	scalars[0].SetZero()
	points[7].SetInfinity()

	expected := naiveExpG2(points, scalars)

	var got G2Jac
	_, err := got.MultiExp(points, scalars, MultiExpConfig{})
	assert.NoError(err)
	assert.True(got.Equal(&expected))

	var gotAff, expectedAff G2Affine
	_, err = gotAff.MultiExp(points, scalars, MultiExpConfig{NbTasks: 2})
	assert.NoError(err)
	expectedAff.FromJacobian(&expected)
	assert.True(gotAff.Equal(&expectedAff))
}

func TestMultiExpEdgeCases(t *testing.T) {
	assert := require.New(t)

	// mismatched lengths
	var p G1Jac
	_, err := p.MultiExp(make([]G1Affine, 2), make([]fr.Element, 3), MultiExpConfig{})
	assert.ErrorIs(err, ErrInvalidLengths)

	// empty input is the identity
	_, err = p.MultiExp(nil, nil, MultiExpConfig{})
	assert.NoError(err)
	assert.True(p.Z.IsZero())

	// single pair reduces to a scalar multiplication
	var s fr.Element
	s.SetUint64(987654321)
	var b big.Int
	s.BigInt(&b)

	_, err = p.MultiExp([]G1Affine{g1GenAff}, []fr.Element{s}, MultiExpConfig{})
	assert.NoError(err)
	var expected G1Jac
	expected.ScalarMultiplicationBase(&b)
	assert.True(p.Equal(&expected))
}

func BenchmarkMultiExpG1(b *testing.B) {
	const n = 1 << 10
	points := make([]G1Affine, n)
	scalars := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		points[i].ScalarMultiplicationBase(big.NewInt(int64(i + 1)))
		scalars[i].SetUint64(uint64(i)*0x9e3779b97f4a7c15 + 1)
	}
	var p G1Jac
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.MultiExp(points, scalars, MultiExpConfig{})
	}
}
