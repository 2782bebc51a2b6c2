package fptower

import (
	"github.com/consensys/bn254/fp"
)

// Frobenius constants, in Montgomery form. With ξ = 9+u the non-residue of
// the 𝔽p⁶/𝔽p² extension, these are ξ^((pᵏ-1)/d) for the exponents the tower
// endomorphisms need. The (p²-1) powers land in 𝔽p.
var (
	// ξ^((p-1)/6)
	xiToPMinus1Over6 = E2{
		A0: fp.Element{0xaf9ba69633144907, 0xca6b1d7387afb78a, 0x11bded5ef08a2087, 0x02f34d751a1f3a7c},
		A1: fp.Element{0xa222ae234c492d72, 0xd00f02a4565de15b, 0xdc2ff3a253dfc926, 0x10a75716b3899551},
	}

	// ξ^((p-1)/3)
	xiToPMinus1Over3 = E2{
		A0: fp.Element{0xb5773b104563ab30, 0x347f91c8a9aa6454, 0x7a007127242e0991, 0x1956bcd8118214ec},
		A1: fp.Element{0x6e849f1ea0aa4757, 0xaa1c7b6d89f89141, 0xb6e713cdfae0ca3a, 0x26694fbb4e82ebc3},
	}

	// ξ^((p-1)/2)
	xiToPMinus1Over2 = E2{
		A0: fp.Element{0xe4bbdd0c2936b629, 0xbb30f162e133bacb, 0x31a9d1b6f9645366, 0x253570bea500f8dd},
		A1: fp.Element{0xa1d77ce45ffe77c7, 0x07affd117826d1db, 0x6d16bd27bb7edc6b, 0x2c87200285defecc},
	}

	// ξ^((2p-2)/3)
	xiTo2PMinus2Over3 = E2{
		A0: fp.Element{0x7361d77f843abe92, 0xa5bb2bd3273411fb, 0x9c941f314b3e2399, 0x15df9cddbb9fd3ec},
		A1: fp.Element{0x5dddfd154bd8c949, 0x62cb29a5a4445b60, 0x37bc870a0c7dd2b9, 0x24830a9d3171f0fd},
	}

	// ξ^((p³-1)/6)
	xiToPCubedMinus1Over6 = E2{
		A0: fp.Element{0x365316184e46d97d, 0x0af7129ed4c96d9f, 0x659da72fca1009b5, 0x08116d8983a20d23},
		A1: fp.Element{0xb1df4af7c39c1939, 0x3d9f02878a73bf7f, 0x9b2220928caf0ae0, 0x26684515eff054a6},
	}

	// ξ^((p³-1)/3)
	xiToPCubedMinus1Over3 = E2{
		A0: fp.Element{0xc9af22f716ad6bad, 0xb311782a4aa662b2, 0x19eeaf64e248c7f4, 0x20273e77e3439f82},
		A1: fp.Element{0xacc02860f7ce93ac, 0x3933d5817ba76b4c, 0x69e6188b446c8467, 0x0a46036d4417cc55},
	}

	// ξ^((2p³-2)/3)
	xiTo2PCubedMinus2Over3 = E2{
		A0: fp.Element{0x448a93a57b6762df, 0xbfd62df528fdeadf, 0xd858f5d00e9bd47a, 0x06b03d4d3476ec58},
		A1: fp.Element{0x2b19daf4bcc936d1, 0xa1a54e7a56f4299f, 0xb533eee05adeaef1, 0x170c812b84dda0b2},
	}

	// ξ^((p²-1)/6), an element of 𝔽p
	xiToPSquaredMinus1Over6 = fp.Element{0xca8d800500fa1bf2, 0xf0c5d61468b39769, 0x0e201271ad0d4418, 0x04290f65bad856e6}

	// ξ^((p²-1)/3), an element of 𝔽p (a primitive cube root of unity)
	xiToPSquaredMinus1Over3 = fp.Element{0x3350c88e13e80b9c, 0x7dce557cdb5e56b9, 0x6001b4b8b615564a, 0x2682e617020217e0}

	// ξ^((2p²-2)/3), an element of 𝔽p (the other primitive cube root of unity)
	xiTo2PSquaredMinus2Over3 = fp.Element{0x71930c11d782e155, 0xa6bb947cffbe3323, 0xaa303344d4741444, 0x2c3b3f0d26594943}
)

// MulByNonResidue1Power2 multiplies x by ξ^(2(p-1)/6) = ξ^((p-1)/3)
func (z *E2) MulByNonResidue1Power2(x *E2) *E2 {
	return z.Mul(x, &xiToPMinus1Over3)
}

// MulByNonResidue1Power3 multiplies x by ξ^(3(p-1)/6) = ξ^((p-1)/2)
func (z *E2) MulByNonResidue1Power3(x *E2) *E2 {
	return z.Mul(x, &xiToPMinus1Over2)
}

// MulByNonResidue2Power2 multiplies x by ξ^(2(p²-1)/6) = ξ^((p²-1)/3)
func (z *E2) MulByNonResidue2Power2(x *E2) *E2 {
	return z.MulByElement(x, &xiToPSquaredMinus1Over3)
}

// Frobenius sets z in E6 to x^p, returns z
func (z *E6) Frobenius(x *E6) *E6 {
	// vᵖ = v·ξ^((p-1)/3), (v²)ᵖ = v²·ξ^((2p-2)/3); the coefficients conjugate
	z.B0.Conjugate(&x.B0)
	z.B1.Conjugate(&x.B1).Mul(&z.B1, &xiToPMinus1Over3)
	z.B2.Conjugate(&x.B2).Mul(&z.B2, &xiTo2PMinus2Over3)
	return z
}

// FrobeniusSquare sets z in E6 to x^(p²), returns z
func (z *E6) FrobeniusSquare(x *E6) *E6 {
	z.B0 = x.B0
	z.B1.MulByElement(&x.B1, &xiToPSquaredMinus1Over3)
	z.B2.MulByElement(&x.B2, &xiTo2PSquaredMinus2Over3)
	return z
}

// Frobenius sets z in E12 to x^p, returns z
func (z *E12) Frobenius(x *E12) *E12 {
	// (c0 + c1 w)ᵖ = c0ᵖ + c1ᵖ·w·ξ^((p-1)/6)
	z.C0.Frobenius(&x.C0)
	z.C1.Frobenius(&x.C1).MulByE2(&z.C1, &xiToPMinus1Over6)
	return z
}

// FrobeniusSquare sets z in E12 to x^(p²), returns z
func (z *E12) FrobeniusSquare(x *E12) *E12 {
	z.C0.FrobeniusSquare(&x.C0)
	z.C1.FrobeniusSquare(&x.C1).MulByElement(&z.C1, &xiToPSquaredMinus1Over6)
	return z
}

// FrobeniusCube sets z in E6 to x^(p³), returns z
func (z *E6) FrobeniusCube(x *E6) *E6 {
	z.B0.Conjugate(&x.B0)
	z.B1.Conjugate(&x.B1).Mul(&z.B1, &xiToPCubedMinus1Over3)
	z.B2.Conjugate(&x.B2).Mul(&z.B2, &xiTo2PCubedMinus2Over3)
	return z
}

// FrobeniusCube sets z in E12 to x^(p³), returns z
func (z *E12) FrobeniusCube(x *E12) *E12 {
	z.C0.FrobeniusCube(&x.C0)
	z.C1.FrobeniusCube(&x.C1).MulByE2(&z.C1, &xiToPCubedMinus1Over6)
	return z
}
