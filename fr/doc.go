// Package fr contains field arithmetic operations for modulus
//
//	21888242871839275222246405745257275088548364400416034343698204186575808495617
//
// the scalar field of the BN254 curve (the order of its prime-order
// subgroups).
//
// The modulus is 254 bits long; elements are represented on 4 words of 64 bits
// and are always in Montgomery form. The API is mutable-receiver, chainable,
// and allocation free: methods modify the receiver and return it.
package fr
