package bn254

import (
	"encoding/binary"
	"testing"

	"github.com/leanovate/gopter"

	"github.com/consensys/bn254/fp"
	"github.com/consensys/bn254/fr"
)

func testParams(t *testing.T) *gopter.TestParameters {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	if testing.Short() {
		parameters.MinSuccessfulTests = 10
	} else {
		parameters.MinSuccessfulTests = 50
	}
	return parameters
}

// pairingParams caps properties that run full pairings
func pairingParams(t *testing.T) *gopter.TestParameters {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 5
	return parameters
}

func genFp() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var b [fp.Bytes]byte
		for i := 0; i < fp.Bytes; i += 8 {
			binary.BigEndian.PutUint64(b[i:i+8], genParams.NextUint64())
		}
		var e fp.Element
		e.SetBytes(b[:])
		return gopter.NewGenResult(e, gopter.NoShrinker)
	}
}

func genFr() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var b [fr.Bytes]byte
		for i := 0; i < fr.Bytes; i += 8 {
			binary.BigEndian.PutUint64(b[i:i+8], genParams.NextUint64())
		}
		var e fr.Element
		e.SetBytes(b[:])
		return gopter.NewGenResult(e, gopter.NoShrinker)
	}
}

// fuzzG1Jac rescales the Jacobian representation of p by f, leaving the
// underlying affine point unchanged
func fuzzG1Jac(p *G1Jac, f *fp.Element) G1Jac {
	var res G1Jac
	var fSq, fCube fp.Element
	fSq.Square(f)
	fCube.Mul(&fSq, f)
	res.X.Mul(&p.X, &fSq)
	res.Y.Mul(&p.Y, &fCube)
	res.Z.Mul(&p.Z, f)
	return res
}

// fuzzG2Jac rescales the Jacobian representation of p by f
func fuzzG2Jac(p *G2Jac, f *E2) G2Jac {
	var res G2Jac
	var fSq, fCube E2
	fSq.Square(f)
	fCube.Mul(&fSq, f)
	res.X.Mul(&p.X, &fSq)
	res.Y.Mul(&p.Y, &fCube)
	res.Z.Mul(&p.Z, f)
	return res
}
