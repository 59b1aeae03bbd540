package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCanonical(t *testing.T) {
	var zero [32]byte
	require.True(t, IsCanonical(zero[:]))

	ellBytes := bigToLE(ell)
	require.False(t, IsCanonical(ellBytes[:]))

	var ellMinus1 [32]byte = ellBytes
	ellMinus1[0]--
	require.True(t, IsCanonical(ellMinus1[:]))

	var allOnes [32]byte
	for i := range allOnes {
		allOnes[i] = 0xff
	}
	require.False(t, IsCanonical(allOnes[:]))
}

func TestReduceWideMatchesFromCanonicalBytes(t *testing.T) {
	var b [32]byte
	b[0] = 7
	s1, ok := FromCanonicalBytes(b[:])
	require.True(t, ok)
	s2 := ReduceWide(b[:])
	require.Equal(t, s1, s2)
}

func TestAddMultiplyMultiplyAdd(t *testing.T) {
	var aBytes, bBytes [32]byte
	aBytes[0] = 3
	bBytes[0] = 5

	a, ok := FromCanonicalBytes(aBytes[:])
	require.True(t, ok)
	b, ok := FromCanonicalBytes(bBytes[:])
	require.True(t, ok)

	sum := Add(a, b)
	var wantSum [32]byte
	wantSum[0] = 8
	require.Equal(t, wantSum, sum.Bytes())

	prod := Multiply(a, b)
	var wantProd [32]byte
	wantProd[0] = 15
	require.Equal(t, wantProd, prod.Bytes())

	ma := MultiplyAdd(a, b, a) // a + b*a = 3 + 15 = 18
	var wantMA [32]byte
	wantMA[0] = 18
	require.Equal(t, wantMA, ma.Bytes())
}

func TestClampProducesExpectedBitPattern(t *testing.T) {
	b := [32]byte{}
	for i := range b {
		b[i] = 0xff
	}
	Clamp(&b)
	require.Equal(t, byte(0xf8), b[0])
	require.Equal(t, byte(0x7f), b[31])
}

func TestClampedDoesNotReduce(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	s := Clamped(b)
	clamped := b
	Clamp(&clamped)
	bytes := s.Bytes()
	require.Equal(t, clamped, bytes)
	require.False(t, IsCanonical(bytes[:]))
}

func TestIsZero(t *testing.T) {
	var zero [32]byte
	s, ok := FromCanonicalBytes(zero[:])
	require.True(t, ok)
	require.True(t, s.IsZero())

	var one [32]byte
	one[0] = 1
	s2, ok := FromCanonicalBytes(one[:])
	require.True(t, ok)
	require.False(t, s2.IsZero())
}
