package bn254

import (
	"math/big"
)

// initialized at declaration: the curve init in bn254.go runs before any
// later file's init func and already needs them
var (
	bigZero  big.Int
	bigOne   = *big.NewInt(1)
	bigThree = *big.NewInt(3)
)

// nafDecomposition gets the naf decomposition of a big number
func nafDecomposition(a *big.Int, result []int8) int {

	length := 0

	// some buffers
	var buf, aCopy big.Int
	aCopy.Set(a)

	for aCopy.Cmp(&bigZero) != 0 {

		// if aCopy % 2 == 0
		buf.And(&aCopy, &bigOne)

		// aCopy even
		if buf.Cmp(&bigZero) == 0 {
			result[length] = 0
		} else { // aCopy odd
			buf.And(&aCopy, &bigThree)
			if buf.Cmp(&bigThree) == 0 {
				result[length] = -1
				aCopy.Add(&aCopy, &bigOne)
			} else {
				result[length] = 1
			}
		}
		aCopy.Rsh(&aCopy, 1)
		length++
	}
	return length
}
