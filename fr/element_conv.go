package fr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// ErrInvalidEncoding is returned when a byte string does not encode a
// canonical field element (value not strictly smaller than the modulus).
var ErrInvalidEncoding = errors.New("invalid fr.Element encoding: value is not smaller than the modulus")

// Bytes returns the value of z as a big-endian byte array of its canonical
// (non-Montgomery) representation.
func (z *Element) Bytes() (res [Bytes]byte) {
	BigEndian.PutElement(&res, *z)
	return
}

// Marshal returns the value of z as a big-endian byte slice
func (z *Element) Marshal() []byte {
	b := z.Bytes()
	return b[:]
}

// SetBytes interprets e as the bytes of a big-endian unsigned integer,
// sets z to that value, reduced modulo q, and returns z.
func (z *Element) SetBytes(e []byte) *Element {
	if len(e) == Bytes {
		// fast path
		v, err := BigEndian.Element((*[Bytes]byte)(e))
		if err == nil {
			*z = v
			return z
		}
	}

	// slow path.
	var vv big.Int
	vv.SetBytes(e)
	return z.SetBigInt(&vv)
}

// SetBytesCanonical interprets e as the bytes of a big-endian 32-byte integer.
// If e is not a 32-byte slice or encodes a value higher than q,
// SetBytesCanonical returns an error and leaves z unchanged.
func (z *Element) SetBytesCanonical(e []byte) error {
	if len(e) != Bytes {
		return errors.New("invalid fr.Element encoding")
	}
	v, err := BigEndian.Element((*[Bytes]byte)(e))
	if err != nil {
		return err
	}
	*z = v
	return nil
}

// Unmarshal is an alias for SetBytes, it sets z to the value of e.
func (z *Element) Unmarshal(e []byte) {
	z.SetBytes(e)
}

// SetBigInt sets z to v (regular form) and returns z in Montgomery form
func (z *Element) SetBigInt(v *big.Int) *Element {
	z.SetZero()

	var zero big.Int

	// fast path
	c := v.Cmp(&_modulus)
	if c == 0 {
		// v == 0
		return z
	} else if c != 1 && v.Cmp(&zero) != -1 {
		// 0 < v < q
		return z.setBigInt(v)
	}

	// copy input + modular reduction
	vv := new(big.Int).Mod(v, &_modulus)

	return z.setBigInt(vv)
}

// setBigInt assumes 0 ≤ v < q
func (z *Element) setBigInt(v *big.Int) *Element {
	vBits := v.Bits()

	if bits.UintSize == 64 {
		for i := 0; i < len(vBits); i++ {
			z[i] = uint64(vBits[i])
		}
	} else {
		for i := 0; i < len(vBits); i++ {
			if i%2 == 0 {
				z[i/2] = uint64(vBits[i])
			} else {
				z[i/2] |= uint64(vBits[i]) << 32
			}
		}
	}

	return z.toMont()
}

// SetString creates a big.Int with number and calls SetBigInt on z
//
// The number prefix determines the actual conversion base: a prefix of
// ”0b” or ”0B” selects base 2, ”0”, ”0o” or ”0O” selects base 8,
// and ”0x” or ”0X” selects base 16. Otherwise, the selected base is 10
// and no prefix is accepted.
//
// For base 16, lower and upper case letters are considered the same:
// The letters 'a' to 'f' and 'A' to 'F' represent digit values 10 to 15.
//
// An underscore character ”_” may appear between a base
// prefix and an adjacent digit, and between successive digits; such
// underscores do not change the value of the number.
// Incorrect placement of underscores is reported as a panic if there
// are no other errors.
//
// If the number is invalid this method leaves z unchanged and panics.
func (z *Element) SetString(number string) *Element {
	// get temporary big int from the pool
	vv := new(big.Int)

	if _, ok := vv.SetString(number, 0); !ok {
		panic("Element.SetString failed -> can't parse number into a big.Int " + number)
	}

	return z.SetBigInt(vv)
}

// BigInt sets and return z as a *big.Int
func (z *Element) BigInt(res *big.Int) *big.Int {
	_z := *z
	_z.fromMont()

	if bits.UintSize == 64 {
		bb := [4]big.Word{big.Word(_z[0]), big.Word(_z[1]), big.Word(_z[2]), big.Word(_z[3])}
		res.SetBits(bb[:])
	} else {
		var bb big.Int
		bb.SetBytes(_z.marshalBigEndian())
		res.Set(&bb)
	}
	return res
}

func (z Element) marshalBigEndian() []byte {
	var b [Bytes]byte
	binary.BigEndian.PutUint64(b[24:32], z[0])
	binary.BigEndian.PutUint64(b[16:24], z[1])
	binary.BigEndian.PutUint64(b[8:16], z[2])
	binary.BigEndian.PutUint64(b[0:8], z[3])
	return b[:]
}

// String returns the decimal representation of z as generated by
// z.Text(10).
func (z *Element) String() string {
	return z.Text(10)
}

// Text returns the string representation of z in the given base.
// Base must be between 2 and 36, inclusive. The result uses the
// lower-case letters 'a' to 'z' for digit values 10 to 35.
// No prefix (such as "0x") is added to the string.
func (z *Element) Text(base int) string {
	if base < 2 || base > 36 {
		panic("invalid base")
	}
	if z.IsZero() {
		return "0"
	}
	zz := z.Bits()
	zzB := [4]big.Word{big.Word(zz[0]), big.Word(zz[1]), big.Word(zz[2]), big.Word(zz[3])}
	zV := new(big.Int).SetBits(zzB[:])
	return zV.Text(base)
}

// GoString returns a Go-syntax representation of z (in Montgomery form)
func (z Element) GoString() string {
	var sb strings.Builder
	sb.WriteString("fr.Element{")
	sb.WriteString(fmt.Sprintf("%d, %d, %d, %d", z[0], z[1], z[2], z[3]))
	sb.WriteString("}")
	return sb.String()
}

// bigEndian is the big-endian canonical codec for Element.
type bigEndian struct{}

// BigEndian is the canonical fixed-length big-endian codec of Element.
// It rejects byte strings encoding a value not strictly smaller than
// the modulus.
var BigEndian bigEndian

// Element decodes b as a canonical big-endian element; it fails closed on
// any out-of-range value.
func (bigEndian) Element(b *[Bytes]byte) (Element, error) {
	var z Element

	z[0] = binary.BigEndian.Uint64((*b)[24:32])
	z[1] = binary.BigEndian.Uint64((*b)[16:24])
	z[2] = binary.BigEndian.Uint64((*b)[8:16])
	z[3] = binary.BigEndian.Uint64((*b)[0:8])

	if !z.smallerThanModulus() {
		return Element{}, ErrInvalidEncoding
	}

	z.toMont()
	return z, nil
}

func (bigEndian) PutElement(b *[Bytes]byte, e Element) {
	e.fromMont()

	binary.BigEndian.PutUint64((*b)[24:32], e[0])
	binary.BigEndian.PutUint64((*b)[16:24], e[1])
	binary.BigEndian.PutUint64((*b)[8:16], e[2])
	binary.BigEndian.PutUint64((*b)[0:8], e[3])
}
