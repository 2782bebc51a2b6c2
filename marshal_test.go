package bn254

import (
	"io"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/bn254/fp"
	"github.com/consensys/bn254/fr"
)

func TestG1AffineSerialization(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("compressed round trip", prop.ForAll(
		func(s fr.Element) bool {
			var b big.Int
			s.BigInt(&b)
			var p, q G1Affine
			p.ScalarMultiplicationBase(&b)

			buf := p.Bytes()
			n, err := q.SetBytes(buf[:])
			return err == nil && n == SizeOfG1AffineCompressed && q.Equal(&p)
		},
		genFr(),
	))

	properties.Property("uncompressed round trip", prop.ForAll(
		func(s fr.Element) bool {
			var b big.Int
			s.BigInt(&b)
			var p, q G1Affine
			p.ScalarMultiplicationBase(&b)

			buf := p.RawBytes()
			n, err := q.SetBytes(buf[:])
			return err == nil && n == SizeOfG1AffineUncompressed && q.Equal(&p)
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG2AffineSerialization(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("compressed round trip", prop.ForAll(
		func(s fr.Element) bool {
			var b big.Int
			s.BigInt(&b)
			var p, q G2Affine
			p.ScalarMultiplicationBase(&b)

			buf := p.Bytes()
			n, err := q.SetBytes(buf[:])
			return err == nil && n == SizeOfG2AffineCompressed && q.Equal(&p)
		},
		genFr(),
	))

	properties.Property("uncompressed round trip", prop.ForAll(
		func(s fr.Element) bool {
			var b big.Int
			s.BigInt(&b)
			var p, q G2Affine
			p.ScalarMultiplicationBase(&b)

			buf := p.RawBytes()
			n, err := q.SetBytes(buf[:])
			return err == nil && n == SizeOfG2AffineUncompressed && q.Equal(&p)
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSerializationInfinity(t *testing.T) {
	assert := require.New(t)

	var inf, q G1Affine
	inf.SetInfinity()

	buf := inf.Bytes()
	assert.Equal(mCompressedInfinity, buf[0]&mMask)
	_, err := q.SetBytes(buf[:])
	assert.NoError(err)
	assert.True(q.IsInfinity())

	raw := inf.RawBytes()
	_, err = q.SetBytes(raw[:])
	assert.NoError(err)
	assert.True(q.IsInfinity())

	var infG2, q2 G2Affine
	infG2.SetInfinity()
	buf2 := infG2.Bytes()
	_, err = q2.SetBytes(buf2[:])
	assert.NoError(err)
	assert.True(q2.IsInfinity())

	raw2 := infG2.RawBytes()
	_, err = q2.SetBytes(raw2[:])
	assert.NoError(err)
	assert.True(q2.IsInfinity())
}

func TestSerializationRejections(t *testing.T) {
	assert := require.New(t)

	var p G1Affine

	// short buffers
	_, err := p.SetBytes(make([]byte, SizeOfG1AffineCompressed-1))
	assert.ErrorIs(err, io.ErrShortBuffer)
	_, err = p.SetBytes(make([]byte, SizeOfG1AffineUncompressed-1))
	assert.ErrorIs(err, io.ErrShortBuffer)

	// infinity flag with a non-zero body
	var dirty [SizeOfG1AffineCompressed]byte
	dirty[0] = mCompressedInfinity
	dirty[31] = 1
	_, err = p.SetBytes(dirty[:])
	assert.ErrorIs(err, ErrInvalidInfinityEncoding)

	// a non-canonical coordinate (the modulus itself) is rejected
	var modBuf [SizeOfG1AffineCompressed]byte
	fp.Modulus().FillBytes(modBuf[:])
	modBuf[0] |= mCompressedSmallest
	_, err = p.SetBytes(modBuf[:])
	assert.Error(err)

	// an uncompressed pair off the curve
	raw := g1GenAff.RawBytes()
	raw[SizeOfG1AffineUncompressed-1] ^= 1
	_, err = p.SetBytes(raw[:])
	assert.ErrorIs(err, ErrInvalidPoint)

	// a compressed x with no matching y
	var x, rhs fp.Element
	x.SetUint64(2)
	for {
		rhs.Square(&x).Mul(&rhs, &x).Add(&rhs, &bCurveCoeff)
		if rhs.Legendre() == -1 {
			break
		}
		var one fp.Element
		one.SetOne()
		x.Add(&x, &one)
	}
	var nonSquare [SizeOfG1AffineCompressed]byte
	fp.BigEndian.PutElement(&nonSquare, x)
	nonSquare[0] |= mCompressedSmallest
	_, err = p.SetBytes(nonSquare[:])
	assert.ErrorIs(err, ErrInvalidEncoding)
}

func TestG2SerializationSubgroupRejection(t *testing.T) {
	assert := require.New(t)

	// a twist point outside the r-torsion decodes off both paths
	aff := randomTwistPoint(t)
	if aff.IsInSubGroup() {
		t.Skip("sampled twist point landed in the subgroup")
	}

	var q G2Affine
	raw := aff.RawBytes()
	_, err := q.SetBytes(raw[:])
	assert.ErrorIs(err, ErrPointNotInSubgroup)

	buf := aff.Bytes()
	_, err = q.SetBytes(buf[:])
	assert.ErrorIs(err, ErrPointNotInSubgroup)
}

func TestMarshalUnmarshal(t *testing.T) {
	assert := require.New(t)

	var p G1Affine
	p.ScalarMultiplicationBase(big.NewInt(2718281828))
	var q G1Affine
	assert.NoError(q.Unmarshal(p.Marshal()))
	assert.True(q.Equal(&p))

	var p2 G2Affine
	p2.ScalarMultiplicationBase(big.NewInt(3141592653))
	var q2 G2Affine
	assert.NoError(q2.Unmarshal(p2.Marshal()))
	assert.True(q2.Equal(&p2))
}
