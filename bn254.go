package bn254

import (
	"math/big"

	"github.com/consensys/bn254/fp"
	"github.com/consensys/bn254/internal/fptower"
)

// E2 is the quadratic extension 𝔽p², the coordinate field of G2
type E2 = fptower.E2

// bCurveCoeff: Weierstrass b coefficient of the curve
var bCurveCoeff fp.Element

// twist of the curve, ξ = 9+u
var twist E2

// bTwistCurveCoeff: Weierstrass b coefficient of the twist, 3/ξ
var bTwistCurveCoeff E2

// generators of the r-torsion groups
var g1Gen G1Jac
var g2Gen G2Jac

var g1GenAff G1Affine
var g2GenAff G2Affine

// point at infinity in Jacobian coordinates, (1 : 1 : 0)
var g1Infinity G1Jac
var g2Infinity G2Jac

// xGen is the curve seed x₀
var xGen big.Int

// loopCounter is 6x₀+2 in non-adjacent form, the optimal-Ate loop length
var loopCounter [66]int8

// sixXSquared = 6x₀², the eigenvalue of the ψ endomorphism on the r-torsion
// of the twist
var sixXSquared big.Int

// g2Cofactor = #E'(𝔽p²)/r = p + (6x₀²+1) - 1
var g2Cofactor big.Int

func init() {
	bCurveCoeff.SetUint64(3)
	twist.A0.SetUint64(9)
	twist.A1.SetUint64(1)
	bTwistCurveCoeff.Inverse(&twist).MulByElement(&bTwistCurveCoeff, &bCurveCoeff)

	g1Gen.X.SetOne()
	g1Gen.Y.SetUint64(2)
	g1Gen.Z.SetOne()

	g2Gen.X.SetString(
		"10857046999023057135944570762232829481370756359578518086990519993285655852781",
		"11559732032986387107991004021392285783925812861821192530917403151452391805634")
	g2Gen.Y.SetString(
		"8495653923123431417604973247489272438418190587263600148770280649306958101930",
		"4082367875863433681332203403145435568316851327593401208105741076214120093531")
	g2Gen.Z.SetString("1", "0")

	g1GenAff.FromJacobian(&g1Gen)
	g2GenAff.FromJacobian(&g2Gen)

	g1Infinity.X.SetOne()
	g1Infinity.Y.SetOne()
	g2Infinity.X.SetOne()
	g2Infinity.Y.SetOne()

	xGen.SetUint64(4965661367192848881)
	sixXSquared.SetString("147946756881789318990833708069417712966", 10)
	g2Cofactor.SetString("21888242871839275222246405745257275088844257914179612981679871602714643921549", 10)

	var sixXPlus2 big.Int
	sixXPlus2.Mul(&xGen, big.NewInt(6)).Add(&sixXPlus2, big.NewInt(2))
	nafDecomposition(&sixXPlus2, loopCounter[:])
}

// Generators returns the generators of the r-torsion groups on the curve and
// on the twist, in Jacobian and affine coordinates
func Generators() (g1Jac G1Jac, g2Jac G2Jac, g1Aff G1Affine, g2Aff G2Affine) {
	g1Jac = g1Gen
	g2Jac = g2Gen
	g1Aff = g1GenAff
	g2Aff = g2GenAff
	return
}
