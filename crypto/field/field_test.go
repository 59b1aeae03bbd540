package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	in := make([]byte, 32)
	for i := range in {
		in[i] = byte(i * 7)
	}
	in[31] &= 0x7f // clear the bit SetBytes ignores

	var e Elem
	e.SetBytes(in)
	require.Equal(t, in, e.Bytes())
}

func TestAddSubInverse(t *testing.T) {
	var a, b, sum, back Elem
	a.SetBytes(bytesOf(11))
	b.SetBytes(bytesOf(222))

	sum.Add(&a, &b)
	back.Sub(&sum, &b)
	require.Equal(t, 1, back.Equal(&a))
}

func TestMulInvert(t *testing.T) {
	var a, inv, one Elem
	a.SetBytes(bytesOf(42))
	inv.Invert(&a)
	one.Mul(&a, &inv)

	var want Elem
	want.One()
	require.Equal(t, 1, one.Equal(&want))
}

func TestSquareMatchesMul(t *testing.T) {
	var a, sq, mul Elem
	a.SetBytes(bytesOf(99))
	sq.Sq(&a)
	mul.Mul(&a, &a)
	require.Equal(t, 1, sq.Equal(&mul))
}

func TestCondSwap(t *testing.T) {
	var a, b Elem
	a.SetBytes(bytesOf(1))
	b.SetBytes(bytesOf(2))
	origA, origB := a, b

	CondSwap(&a, &b, 0)
	require.Equal(t, 1, a.Equal(&origA))
	require.Equal(t, 1, b.Equal(&origB))

	CondSwap(&a, &b, 1)
	require.Equal(t, 1, a.Equal(&origB))
	require.Equal(t, 1, b.Equal(&origA))
}

func TestIsZero(t *testing.T) {
	var z, nz Elem
	z.Zero()
	nz.One()
	require.Equal(t, 1, z.IsZero())
	require.Equal(t, 0, nz.IsZero())
}

func bytesOf(seed byte) []byte {
	b := make([]byte, 32)
	x := seed
	for i := range b {
		x = x*31 + 1
		b[i] = x
	}
	b[31] &= 0x7f
	return b
}
