// Package template holds the text templates for the mechanical parts of the
// fp and fr packages: the files that differ between the two fields only in
// the package name and the modulus limbs.
package template

// Arith multiply-and-add helpers shared by the Montgomery routines
const Arith = `
import (
	"math/bits"
)

// madd0 hi = a*b + c (discards lo bits)
func madd0(a, b, c uint64) (hi uint64) {
	var carry, lo uint64
	hi, lo = bits.Mul64(a, b)
	_, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return
}

// madd1 hi, lo = a*b + c
func madd1(a, b, c uint64) (hi uint64, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return
}

// madd2 hi, lo = a*b + c + d
func madd2(a, b, c, d uint64) (hi uint64, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return
}

// madd3 hi, lo = a*b + c + d + (e << 64)
func madd3(a, b, c, d, e uint64) (hi uint64, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, e, carry)
	return
}
`

// OpsAmd64 declaration of the assembly mul backend
const OpsAmd64 = `//go:build amd64 && !purego

// Code generated by bn254/internal/generator DO NOT EDIT

package {{.PackageName}}

// mul implements Montgomery multiplication in assembly.
// It must agree bit-for-bit with _mulGeneric on every input pair; the
// equivalence is asserted by TestElementMulAssemblyMatchesGeneric.
//
//go:noescape
func mul(res, x, y *Element)
`

// OpsPurego pure Go fallback for the mul backend
const OpsPurego = `//go:build !amd64 || purego

// Code generated by bn254/internal/generator DO NOT EDIT

package {{.PackageName}}

func mul(z, x, y *Element) {
	_mulGeneric(z, x, y)
}
`

// MulAmd64 the CIOS Montgomery multiplication routine
const MulAmd64 = `//go:build amd64 && !purego

// Code generated by bn254/internal/generator DO NOT EDIT

#include "textflag.h"

// CIOS Montgomery multiplication, 4 limbs.
// Each round accumulates x[i]*y into t[0..4] (t[4] in DI), computes
// m = t[0]*qInvNeg, folds m*q and shifts t down one word. The final
// conditional subtract uses CMOV, so the routine has no data-dependent
// branches.
//
// Register map:
//   SI       x pointer
//   R8-R11   y[0..3]
//   R12-R15  t[0..3]
//   DI       t[4]
//   BX       x[i], then m
//   CX       running carry
//   AX, DX   MULQ operands

#define MULROUND(off) \
	MOVQ off(SI), BX             \
	MOVQ R8, AX                  \
	MULQ BX                      \
	ADDQ AX, R12                 \
	ADCQ $0, DX                  \
	MOVQ DX, CX                  \
	MOVQ R9, AX                  \
	MULQ BX                      \
	ADDQ CX, AX                  \
	ADCQ $0, DX                  \
	ADDQ AX, R13                 \
	ADCQ $0, DX                  \
	MOVQ DX, CX                  \
	MOVQ R10, AX                 \
	MULQ BX                      \
	ADDQ CX, AX                  \
	ADCQ $0, DX                  \
	ADDQ AX, R14                 \
	ADCQ $0, DX                  \
	MOVQ DX, CX                  \
	MOVQ R11, AX                 \
	MULQ BX                      \
	ADDQ CX, AX                  \
	ADCQ $0, DX                  \
	ADDQ AX, R15                 \
	ADCQ $0, DX                  \
	MOVQ DX, DI                  \
	MOVQ R12, BX                 \
	MOVQ ${{.QInvNeg}}, AX \
	IMULQ AX, BX                 \
	MOVQ ${{index .Q 0}}, AX \
	MULQ BX                      \
	ADDQ R12, AX                 \
	ADCQ $0, DX                  \
	MOVQ DX, CX                  \
	MOVQ ${{index .Q 1}}, AX \
	MULQ BX                      \
	ADDQ CX, AX                  \
	ADCQ $0, DX                  \
	ADDQ R13, AX                 \
	ADCQ $0, DX                  \
	MOVQ AX, R12                 \
	MOVQ DX, CX                  \
	MOVQ ${{index .Q 2}}, AX \
	MULQ BX                      \
	ADDQ CX, AX                  \
	ADCQ $0, DX                  \
	ADDQ R14, AX                 \
	ADCQ $0, DX                  \
	MOVQ AX, R13                 \
	MOVQ DX, CX                  \
	MOVQ ${{index .Q 3}}, AX \
	MULQ BX                      \
	ADDQ CX, AX                  \
	ADCQ $0, DX                  \
	ADDQ R15, AX                 \
	ADCQ $0, DX                  \
	MOVQ AX, R14                 \
	MOVQ DX, CX                  \
	MOVQ DI, R15                 \
	ADDQ CX, R15

// func mul(res, x, y *Element)
TEXT ·mul(SB), NOSPLIT, $0-24
	MOVQ x+8(FP), SI
	MOVQ y+16(FP), AX

	MOVQ 0(AX), R8
	MOVQ 8(AX), R9
	MOVQ 16(AX), R10
	MOVQ 24(AX), R11

	XORQ R12, R12
	XORQ R13, R13
	XORQ R14, R14
	XORQ R15, R15

	MULROUND(0)
	MULROUND(8)
	MULROUND(16)
	MULROUND(24)

	// t = t - q if t ≥ q
	MOVQ R12, R8
	MOVQ R13, R9
	MOVQ R14, R10
	MOVQ R15, R11
	MOVQ ${{index .Q 0}}, AX
	SUBQ AX, R8
	MOVQ ${{index .Q 1}}, AX
	SBBQ AX, R9
	MOVQ ${{index .Q 2}}, AX
	SBBQ AX, R10
	MOVQ ${{index .Q 3}}, AX
	SBBQ AX, R11
	CMOVQCC R8, R12
	CMOVQCC R9, R13
	CMOVQCC R10, R14
	CMOVQCC R11, R15

	MOVQ res+0(FP), AX
	MOVQ R12, 0(AX)
	MOVQ R13, 8(AX)
	MOVQ R14, 16(AX)
	MOVQ R15, 24(AX)
	RET
`
