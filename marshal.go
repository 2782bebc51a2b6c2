package bn254

import (
	"errors"
	"io"

	"github.com/consensys/bn254/fp"
)

// To encode G1Affine and G2Affine points, we mask the most significant bits
// with these bits to specify without ambiguity the encoding.
const (
	mMask               byte = 0b11 << 6
	mUncompressed       byte = 0b00 << 6
	mCompressedSmallest byte = 0b10 << 6
	mCompressedLargest  byte = 0b11 << 6
	mCompressedInfinity byte = 0b01 << 6
)

// SizeOfG1AffineCompressed represents the size in bytes that a G1Affine need in binary form, compressed
const SizeOfG1AffineCompressed = 32

// SizeOfG1AffineUncompressed represents the size in bytes that a G1Affine need in binary form, uncompressed
const SizeOfG1AffineUncompressed = SizeOfG1AffineCompressed * 2

// SizeOfG2AffineCompressed represents the size in bytes that a G2Affine need in binary form, compressed
const SizeOfG2AffineCompressed = 32 * 2

// SizeOfG2AffineUncompressed represents the size in bytes that a G2Affine need in binary form, uncompressed
const SizeOfG2AffineUncompressed = SizeOfG2AffineCompressed * 2

var (
	// ErrInvalidInfinityEncoding sets of an infinity flag with a non-zero body
	ErrInvalidInfinityEncoding = errors.New("invalid infinity point encoding")

	// ErrInvalidPoint point decodes onto a coordinate pair off the curve
	ErrInvalidPoint = errors.New("invalid point: not on curve")

	// ErrPointNotInSubgroup point is on the curve but outside the r-torsion
	ErrPointNotInSubgroup = errors.New("invalid point: subgroup check failed")

	// ErrInvalidEncoding no square root exists for the decompressed x
	ErrInvalidEncoding = errors.New("invalid point: no square root for y")
)

// Marshal converts p to a byte slice (without point compression)
func (p *G1Affine) Marshal() []byte {
	b := p.RawBytes()
	return b[:]
}

// Unmarshal is an alias to SetBytes()
func (p *G1Affine) Unmarshal(buf []byte) error {
	_, err := p.SetBytes(buf)
	return err
}

// Bytes returns binary representation of p, compressed to one x coordinate.
//
// The most significant two bits hold the encoding metadata:
//
//	10: compressed, y lexicographically smallest
//	11: compressed, y lexicographically largest
//	01: compressed, point at infinity (all other bytes zero)
func (p *G1Affine) Bytes() (res [SizeOfG1AffineCompressed]byte) {
	if p.IsInfinity() {
		res[0] = mCompressedInfinity
		return
	}

	msbMask := mCompressedSmallest
	if p.Y.LexicographicallyLargest() {
		msbMask = mCompressedLargest
	}

	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[0:32]), p.X)
	res[0] |= msbMask
	return
}

// RawBytes returns binary representation of p (stores x and y coordinates).
// The point at infinity is the all-zero buffer.
func (p *G1Affine) RawBytes() (res [SizeOfG1AffineUncompressed]byte) {
	if p.IsInfinity() {
		res[0] = mUncompressed
		return
	}

	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[0:32]), p.X)
	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[32:64]), p.Y)
	res[0] |= mUncompressed
	return
}

// SetBytes sets p from binary representation in buf and returns the number of
// consumed bytes.
//
// The decoding fails closed: a point off the curve, outside the subgroup, a
// non-canonical coordinate or a malformed infinity encoding all return an
// error and leave no partially-decoded state usable.
func (p *G1Affine) SetBytes(buf []byte) (int, error) {
	if len(buf) < SizeOfG1AffineCompressed {
		return 0, io.ErrShortBuffer
	}
	mData := buf[0] & mMask

	if mData == mUncompressed {
		if len(buf) < SizeOfG1AffineUncompressed {
			return 0, io.ErrShortBuffer
		}
		if isZeroed(buf[0], buf[1:SizeOfG1AffineUncompressed]) {
			p.SetInfinity()
			return SizeOfG1AffineUncompressed, nil
		}

		var err error
		if p.X, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[:32])); err != nil {
			return 0, err
		}
		if p.Y, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[32:64])); err != nil {
			return 0, err
		}
		if !p.IsOnCurve() {
			return 0, ErrInvalidPoint
		}
		return SizeOfG1AffineUncompressed, nil
	}

	if mData == mCompressedInfinity {
		if !isZeroed(buf[0] & ^mMask, buf[1:SizeOfG1AffineCompressed]) {
			return 0, ErrInvalidInfinityEncoding
		}
		p.SetInfinity()
		return SizeOfG1AffineCompressed, nil
	}

	// compressed: strip the metadata bits and decode x
	var bufX [fp.Bytes]byte
	copy(bufX[:], buf[:32])
	bufX[0] &= ^mMask

	var err error
	if p.X, err = fp.BigEndian.Element(&bufX); err != nil {
		return 0, err
	}

	// y² = x³ + b
	var YSquared, Y fp.Element
	YSquared.Square(&p.X).Mul(&YSquared, &p.X).Add(&YSquared, &bCurveCoeff)
	if Y.Sqrt(&YSquared) == nil {
		return 0, ErrInvalidEncoding
	}

	if Y.LexicographicallyLargest() {
		if mData == mCompressedSmallest {
			Y.Neg(&Y)
		}
	} else {
		if mData == mCompressedLargest {
			Y.Neg(&Y)
		}
	}
	p.Y = Y

	return SizeOfG1AffineCompressed, nil
}

// Marshal converts p to a byte slice (without point compression)
func (p *G2Affine) Marshal() []byte {
	b := p.RawBytes()
	return b[:]
}

// Unmarshal is an alias to SetBytes()
func (p *G2Affine) Unmarshal(buf []byte) error {
	_, err := p.SetBytes(buf)
	return err
}

// Bytes returns binary representation of p, compressed to the x coordinate;
// the metadata bits are as for G1Affine.Bytes. The x coordinate is stored
// x.A1 | x.A0.
func (p *G2Affine) Bytes() (res [SizeOfG2AffineCompressed]byte) {
	if p.IsInfinity() {
		res[0] = mCompressedInfinity
		return
	}

	msbMask := mCompressedSmallest
	if p.Y.LexicographicallyLargest() {
		msbMask = mCompressedLargest
	}

	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[0:32]), p.X.A1)
	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[32:64]), p.X.A0)
	res[0] |= msbMask
	return
}

// RawBytes returns binary representation of p (stores x and y coordinates),
// x.A1 | x.A0 | y.A1 | y.A0. The point at infinity is the all-zero buffer.
func (p *G2Affine) RawBytes() (res [SizeOfG2AffineUncompressed]byte) {
	if p.IsInfinity() {
		res[0] = mUncompressed
		return
	}

	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[0:32]), p.X.A1)
	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[32:64]), p.X.A0)
	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[64:96]), p.Y.A1)
	fp.BigEndian.PutElement((*[fp.Bytes]byte)(res[96:128]), p.Y.A0)
	res[0] |= mUncompressed
	return
}

// SetBytes sets p from binary representation in buf and returns the number of
// consumed bytes; same failure modes as G1Affine.SetBytes, plus the subgroup
// check (the twist has a nontrivial cofactor).
func (p *G2Affine) SetBytes(buf []byte) (int, error) {
	if len(buf) < SizeOfG2AffineCompressed {
		return 0, io.ErrShortBuffer
	}
	mData := buf[0] & mMask

	if mData == mUncompressed {
		if len(buf) < SizeOfG2AffineUncompressed {
			return 0, io.ErrShortBuffer
		}
		if isZeroed(buf[0], buf[1:SizeOfG2AffineUncompressed]) {
			p.SetInfinity()
			return SizeOfG2AffineUncompressed, nil
		}

		var err error
		if p.X.A1, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[:32])); err != nil {
			return 0, err
		}
		if p.X.A0, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[32:64])); err != nil {
			return 0, err
		}
		if p.Y.A1, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[64:96])); err != nil {
			return 0, err
		}
		if p.Y.A0, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[96:128])); err != nil {
			return 0, err
		}
		if !p.IsOnCurve() {
			return 0, ErrInvalidPoint
		}
		if !p.IsInSubGroup() {
			return 0, ErrPointNotInSubgroup
		}
		return SizeOfG2AffineUncompressed, nil
	}

	if mData == mCompressedInfinity {
		if !isZeroed(buf[0] & ^mMask, buf[1:SizeOfG2AffineCompressed]) {
			return 0, ErrInvalidInfinityEncoding
		}
		p.SetInfinity()
		return SizeOfG2AffineCompressed, nil
	}

	// compressed
	var bufX [fp.Bytes]byte
	copy(bufX[:], buf[:32])
	bufX[0] &= ^mMask

	var err error
	if p.X.A1, err = fp.BigEndian.Element(&bufX); err != nil {
		return 0, err
	}
	if p.X.A0, err = fp.BigEndian.Element((*[fp.Bytes]byte)(buf[32:64])); err != nil {
		return 0, err
	}

	// y² = x³ + b/ξ
	var YSquared, Y E2
	YSquared.Square(&p.X).Mul(&YSquared, &p.X).Add(&YSquared, &bTwistCurveCoeff)
	if Y.Sqrt(&YSquared) == nil {
		return 0, ErrInvalidEncoding
	}

	if Y.LexicographicallyLargest() {
		if mData == mCompressedSmallest {
			Y.Neg(&Y)
		}
	} else {
		if mData == mCompressedLargest {
			Y.Neg(&Y)
		}
	}
	p.Y = Y

	if !p.IsInSubGroup() {
		return 0, ErrPointNotInSubgroup
	}

	return SizeOfG2AffineCompressed, nil
}

// isZeroed checks that the metadata-stripped first byte and the tail are all
// zero, the only valid body for an infinity encoding
func isZeroed(firstByte byte, buf []byte) bool {
	if firstByte != 0 {
		return false
	}
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
