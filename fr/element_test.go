package fr

import (
	"crypto/rand"
	"math/big"
	"math/bits"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

const (
	nbFuzzShort = 200
	nbFuzz      = 1000
)

func testParams(t *testing.T) *gopter.TestParameters {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	if testing.Short() {
		parameters.MinSuccessfulTests = nbFuzzShort
	} else {
		parameters.MinSuccessfulTests = nbFuzz
	}
	return parameters
}

// genElement generates a uniform-ish element < q
func genElement() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var g Element
		g[0] = genParams.NextUint64()
		g[1] = genParams.NextUint64()
		g[2] = genParams.NextUint64()
		g[3] = genParams.NextUint64() % (q3 + 1)

		if !g.smallerThanModulus() {
			var b uint64
			g[0], b = bits.Sub64(g[0], q0, 0)
			g[1], b = bits.Sub64(g[1], q1, b)
			g[2], b = bits.Sub64(g[2], q2, b)
			g[3], _ = bits.Sub64(g[3], q3, b)
		}

		return gopter.NewGenResult(g, gopter.NoShrinker)
	}
}

func TestElementArithmetic(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("(a+b)+c == a+(b+c)", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r, t Element
			l.Add(&a, &b).Add(&l, &c)
			r.Add(&b, &c)
			t.Add(&a, &r)
			return l.Equal(&t)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("a+b == b+a && a*b == b*a", prop.ForAll(
		func(a, b Element) bool {
			var l, r Element
			l.Add(&a, &b)
			r.Add(&b, &a)
			if !l.Equal(&r) {
				return false
			}
			l.Mul(&a, &b)
			r.Mul(&b, &a)
			return l.Equal(&r)
		},
		genElement(), genElement(),
	))

	properties.Property("a*(b+c) == a*b + a*c", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r, u, v Element
			u.Add(&b, &c)
			l.Mul(&a, &u)
			u.Mul(&a, &b)
			v.Mul(&a, &c)
			r.Add(&u, &v)
			return l.Equal(&r)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("a*a == a²", prop.ForAll(
		func(a Element) bool {
			var l, r Element
			l.Mul(&a, &a)
			r.Square(&a)
			return l.Equal(&r)
		},
		genElement(),
	))

	properties.Property("a + (-a) == 0", prop.ForAll(
		func(a Element) bool {
			var n, s Element
			n.Neg(&a)
			s.Add(&a, &n)
			return s.IsZero()
		},
		genElement(),
	))

	properties.Property("a - b == a + (-b)", prop.ForAll(
		func(a, b Element) bool {
			var l, r, n Element
			l.Sub(&a, &b)
			n.Neg(&b)
			r.Add(&a, &n)
			return l.Equal(&r)
		},
		genElement(), genElement(),
	))

	properties.Property("double(a) == a+a and halve(double(a)) == a", prop.ForAll(
		func(a Element) bool {
			var d, s Element
			d.Double(&a)
			s.Add(&a, &a)
			if !d.Equal(&s) {
				return false
			}
			d.Halve()
			return d.Equal(&a)
		},
		genElement(),
	))

	properties.Property("a * a⁻¹ == 1 (a != 0)", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var i, l Element
			i.Inverse(&a)
			l.Mul(&a, &i)
			return l.IsOne()
		},
		genElement(),
	))

	properties.Property("mul by one is identity, mul by zero is zero", prop.ForAll(
		func(a Element) bool {
			var one, zero, l Element
			one.SetOne()
			l.Mul(&a, &one)
			if !l.Equal(&a) {
				return false
			}
			l.Mul(&a, &zero)
			return l.IsZero()
		},
		genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementMulAssemblyMatchesGeneric(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	// the dispatched mul (assembly on amd64) must agree bit-for-bit with the
	// portable CIOS path
	properties.Property("mul == _mulGeneric", prop.ForAll(
		func(a, b Element) bool {
			var viaDispatch, viaGeneric Element
			mul(&viaDispatch, &a, &b)
			_mulGeneric(&viaGeneric, &a, &b)
			return viaDispatch == viaGeneric
		},
		genElement(), genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	// boundary cases
	var zero, one, qMinusOne Element
	one.SetOne()
	qMinusOne = qElement
	qMinusOne[0]--

	boundaries := []Element{zero, one, qMinusOne}
	for _, a := range boundaries {
		for _, b := range boundaries {
			var viaDispatch, viaGeneric Element
			mul(&viaDispatch, &a, &b)
			_mulGeneric(&viaGeneric, &a, &b)
			if viaDispatch != viaGeneric {
				t.Fatalf("mul mismatch on boundary input %v * %v", a, b)
			}
		}
	}

	// randomized sweep beyond the property run
	for i := 0; i < 10000; i++ {
		var a, b Element
		if _, err := a.SetRandom(); err != nil {
			t.Fatal(err)
		}
		if _, err := b.SetRandom(); err != nil {
			t.Fatal(err)
		}
		var viaDispatch, viaGeneric Element
		mul(&viaDispatch, &a, &b)
		_mulGeneric(&viaGeneric, &a, &b)
		if viaDispatch != viaGeneric {
			t.Fatalf("mul mismatch on random input %v * %v", a, b)
		}
	}
}

func TestElementAgainstBigInt(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	modulus := Modulus()

	properties.Property("Mul matches big.Int", prop.ForAll(
		func(a, b Element) bool {
			var c Element
			c.Mul(&a, &b)

			var ba, bb, bc big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)
			bc.Mul(&ba, &bb).Mod(&bc, modulus)

			var expected Element
			expected.SetBigInt(&bc)
			return c.Equal(&expected)
		},
		genElement(), genElement(),
	))

	properties.Property("Exp matches big.Int", prop.ForAll(
		func(a Element, k uint64) bool {
			var c Element
			e := new(big.Int).SetUint64(k)
			c.Exp(a, e)

			var ba, bc big.Int
			a.BigInt(&ba)
			bc.Exp(&ba, e, modulus)

			var expected Element
			expected.SetBigInt(&bc)
			return c.Equal(&expected)
		},
		genElement(), gopterUint64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func gopterUint64() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		return gopter.NewGenResult(genParams.NextUint64(), gopter.NoShrinker)
	}
}

func TestElementSqrt(t *testing.T) {
	properties := gopter.NewProperties(testParams(t))

	properties.Property("sqrt(a²)² == a²", prop.ForAll(
		func(a Element) bool {
			var sq, s, check Element
			sq.Square(&a)
			if s.Sqrt(&sq) == nil {
				return false
			}
			check.Square(&s)
			return check.Equal(&sq)
		},
		genElement(),
	))

	properties.Property("legendre(a²) != -1", prop.ForAll(
		func(a Element) bool {
			var sq Element
			sq.Square(&a)
			return sq.Legendre() != -1
		},
		genElement(),
	))

	properties.Property("sqrt returns nil on non-residues", prop.ForAll(
		func(a Element) bool {
			if a.Legendre() != -1 {
				return true
			}
			var s Element
			return s.Sqrt(&a) == nil
		},
		genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementBytesRoundTrip(t *testing.T) {
	assert := require.New(t)

	for i := 0; i < 100; i++ {
		var a, b Element
		_, err := a.SetRandom()
		assert.NoError(err)

		buf := a.Bytes()
		assert.NoError(b.SetBytesCanonical(buf[:]))
		assert.True(a.Equal(&b))
	}
}

func TestElementSetBytesCanonicalRejectsModulus(t *testing.T) {
	assert := require.New(t)

	// encoding the modulus itself must fail, never wrap to zero
	mBytes := Modulus().Bytes()
	var padded [Bytes]byte
	copy(padded[Bytes-len(mBytes):], mBytes)

	var z Element
	err := z.SetBytesCanonical(padded[:])
	assert.ErrorIs(err, ErrInvalidEncoding)

	// one above the modulus must fail as well
	above := new(big.Int).Add(Modulus(), big.NewInt(1))
	aBytes := above.Bytes()
	copy(padded[:], make([]byte, Bytes))
	copy(padded[Bytes-len(aBytes):], aBytes)
	err = z.SetBytesCanonical(padded[:])
	assert.ErrorIs(err, ErrInvalidEncoding)

	// wrong length must fail
	err = z.SetBytesCanonical(padded[:Bytes-1])
	assert.Error(err)

	// q-1 is canonical
	qm1 := new(big.Int).Sub(Modulus(), big.NewInt(1))
	qBytes := qm1.Bytes()
	copy(padded[:], make([]byte, Bytes))
	copy(padded[Bytes-len(qBytes):], qBytes)
	assert.NoError(z.SetBytesCanonical(padded[:]))
}

func TestElementConversions(t *testing.T) {
	assert := require.New(t)

	var a Element
	a.SetUint64(42)
	assert.Equal("42", a.String())
	assert.True(a.IsUint64())
	assert.Equal(uint64(42), a.Uint64())

	a.SetString("21888242871839275222246405745257275088548364400416034343698204186575808495616")
	var b Element
	b.SetInt64(-1)
	assert.True(a.Equal(&b), "q-1 == -1 mod q")

	// to / from mont round trip on random values
	for i := 0; i < 50; i++ {
		bytes := make([]byte, 32)
		_, err := rand.Read(bytes)
		assert.NoError(err)
		var v big.Int
		v.SetBytes(bytes).Mod(&v, Modulus())

		var e Element
		e.SetBigInt(&v)

		var back big.Int
		e.BigInt(&back)
		assert.Equal(0, v.Cmp(&back))
	}
}

func TestElementSelect(t *testing.T) {
	assert := require.New(t)
	var a, b, c Element
	a.SetUint64(7)
	b.SetUint64(11)

	c.Select(0, &a, &b)
	assert.True(c.Equal(&a))
	c.Select(1, &a, &b)
	assert.True(c.Equal(&b))
	c.Select(42, &a, &b)
	assert.True(c.Equal(&b))
}

func TestElementBatchInvert(t *testing.T) {
	assert := require.New(t)

	a := make([]Element, 20)
	for i := range a {
		if i == 7 {
			// keep a zero in the batch
			continue
		}
		_, err := a[i].SetRandom()
		assert.NoError(err)
	}

	res := BatchInvert(a)
	for i := range a {
		var expected Element
		expected.Inverse(&a[i])
		assert.True(res[i].Equal(&expected))
	}
}

func BenchmarkElementMul(b *testing.B) {
	var x, y Element
	_, _ = x.SetRandom()
	_, _ = y.SetRandom()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(&x, &y)
	}
}

func BenchmarkElementInverse(b *testing.B) {
	var x Element
	_, _ = x.SetRandom()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var t Element
		t.Inverse(&x)
	}
}
