// Package bn254 implements the BN254 pairing-friendly elliptic curve
// (a.k.a. alt_bn128): a Barreto-Naehrig curve with embedding degree 12,
// seed x₀ = 4965661367192848881.
//
//	G1: y² = x³ + 3 over 𝔽p
//	G2: y² = x³ + 3/(9+u) over 𝔽p² (D-type sextic twist)
//	GT: the r-th roots of unity in 𝔽p¹²
//
// with p = 21888242871839275222246405745257275088696311157297823662689037894645226208583
// and r = 21888242871839275222246405745257275088548364400416034343698204186575808495617.
//
// The scalar multiplication entry points follow a fixed window schedule with
// constant-time table lookups; the batch APIs (MultiExp, the batched Miller
// loop) are variable time and must only be fed public data.
package bn254
