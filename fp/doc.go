// Package fp contains field arithmetic operations for modulus
//
//	21888242871839275222246405745257275088696311157297823662689037894645226208583
//
// the base field of the BN254 curve.
//
// The modulus is 254 bits long; elements are represented on 4 words of 64 bits
// and are always in Montgomery form. The API is mutable-receiver, chainable,
// and allocation free: methods modify the receiver and return it.
package fp
