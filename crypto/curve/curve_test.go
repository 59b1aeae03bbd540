package curve

import (
	"testing"

	"github.com/nacreous/curve25519compact/crypto/field"
	"github.com/stretchr/testify/require"
)

func TestBasepointCompressDecompressRoundTrip(t *testing.T) {
	enc := Compress(Basepoint)
	p, ok := Decompress(enc)
	require.True(t, ok)
	require.Equal(t, 1, Equal(p, Basepoint))
}

func TestIdentityIsAdditiveIdentity(t *testing.T) {
	id := Identity()
	sum := Add(Basepoint, id)
	require.Equal(t, 1, Equal(sum, Basepoint))
}

func TestDoubleMatchesAdd(t *testing.T) {
	doubled := Double(Basepoint)
	added := Add(Basepoint, Basepoint)
	require.Equal(t, 1, Equal(doubled, added))
}

func TestNegCancelsOut(t *testing.T) {
	neg := Neg(Basepoint)
	sum := Add(Basepoint, neg)
	require.Equal(t, 1, Equal(sum, Identity()))
}

func TestScalarMultOneIsIdentity(t *testing.T) {
	var one [32]byte
	one[0] = 1
	p := ScalarMult(&one, Basepoint)
	require.Equal(t, 1, Equal(p, Basepoint))
}

func TestScalarMultTwoMatchesDouble(t *testing.T) {
	var two [32]byte
	two[0] = 2
	p := ScalarMult(&two, Basepoint)
	require.Equal(t, 1, Equal(p, Double(Basepoint)))
}

func TestScalarMultBaseMatchesScalarMult(t *testing.T) {
	var s [32]byte
	for i := range s {
		s[i] = byte(i * 3)
	}
	s[31] &= 0x0f
	require.Equal(t, 1, Equal(ScalarMultBase(&s), ScalarMult(&s, Basepoint)))
}

func TestDoubleScalarMultVartimeAgreesWithSeparateMults(t *testing.T) {
	var a, b [32]byte
	for i := range a {
		a[i] = byte(i + 1)
		b[i] = byte(2*i + 1)
	}
	a[31] &= 0x0f
	b[31] &= 0x0f

	A := ScalarMult(&a, Basepoint)
	B := ScalarMult(&b, Double(Basepoint))

	got := DoubleScalarMultVartime(&a, Basepoint, &b, Double(Basepoint))
	want := Add(A, B)
	require.Equal(t, 1, Equal(got, want))
}

func TestDecompressRejectsNonCanonicalY(t *testing.T) {
	var enc [32]byte
	for i := range enc {
		enc[i] = 0xff
	}
	enc[31] &= 0x7f // clear sign bit, leave y = 2^255-1 > p
	_, ok := Decompress(enc)
	require.False(t, ok)
}

func TestMontgomeryLadderBaseMatchesEdwardsConversion(t *testing.T) {
	var s [32]byte
	for i := range s {
		s[i] = byte(i + 5)
	}
	s[0] &= 248
	s[31] &= 127
	s[31] |= 64

	viaMontgomery := MontgomeryLadder(MontgomeryBasePoint, &s, 255)

	edPoint := ScalarMult(&s, Basepoint)
	var invZ, y field.Elem
	invZ.Invert(&edPoint.Z)
	y.Mul(&edPoint.Y, &invZ)
	viaEdwards := MontgomeryFromEdwardsY(y)

	require.Equal(t, viaMontgomery.Bytes(), viaEdwards.Bytes())
}
