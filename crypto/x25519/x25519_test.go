package x25519

import (
	"encoding/hex"
	"testing"

	"github.com/nacreous/curve25519compact/crypto/sign"
	"github.com/stretchr/testify/require"
)

func hexBytes(t *testing.T, s string) [32]byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	var out [32]byte
	copy(out[:], b)
	return out
}

// UnclampedMul composed with itself should agree with two applications of
// the ladder in either order: (s1*s2)*G == s1*(s2*G) in the scalar ring, so
// chaining UnclampedMul calls is commutative the same way DH is.
func TestUnclampedMulCommutes(t *testing.T) {
	var s1, s2 [32]byte
	copy(s1[:], []byte("first-unclamped-scalar-for-test"))
	copy(s2[:], []byte("second-unclamped-scalar-for-tst"))

	base := BasePoint()
	left := base.UnclampedMul(s1).UnclampedMul(s2)
	right := base.UnclampedMul(s2).UnclampedMul(s1)
	require.Equal(t, left, right)
}

// Two parties deriving a shared secret from fixed, independently chosen
// secrets should agree regardless of which side computes it first, the
// same property the section 6.1 key-exchange example in RFC 7748
// demonstrates with a specific pair of secrets.
func TestDiffieHellmanAgreesBothDirections(t *testing.T) {
	aliceSecret := hexBytes(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobSecret := hexBytes(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")

	alicePublic := Base(aliceSecret)
	bobPublic := Base(bobSecret)

	aliceShared, err := bobPublic.DH(SecretKey(aliceSecret))
	require.NoError(t, err)
	bobShared, err := alicePublic.DH(SecretKey(bobSecret))
	require.NoError(t, err)

	require.Equal(t, aliceShared, bobShared)
}

func TestGeneratedKeyPairAgrees(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	sharedA, err := b.Public.DH(a.Secret)
	require.NoError(t, err)
	sharedB, err := a.Public.DH(b.Secret)
	require.NoError(t, err)
	require.Equal(t, sharedA, sharedB)
}

func TestDHRejectsLowOrderPoint(t *testing.T) {
	sk, err := GenerateSecretKey()
	require.NoError(t, err)

	var zero PublicKey
	_, err = zero.DH(sk)
	require.Error(t, err)
}

func TestEd25519ConversionsAgree(t *testing.T) {
	var seedA, seedB [32]byte
	copy(seedA[:], []byte("seed-one-for-ed25519-conversion!"))
	copy(seedB[:], []byte("seed-two-for-ed25519-conversion!"))

	kpA, err := KeyPairFromEd25519(seedA)
	require.NoError(t, err)
	kpB, err := KeyPairFromEd25519(seedB)
	require.NoError(t, err)

	sharedA, err := kpB.Public.DH(kpA.Secret)
	require.NoError(t, err)
	sharedB, err := kpA.Public.DH(kpB.Secret)
	require.NoError(t, err)
	require.Equal(t, sharedA, sharedB)
}

// KeyPairFromEd25519's public half must agree with independently converting
// the same identity's Ed25519 public key through FromEd25519PublicKey, not
// just with its own secret half. A public half that skipped cofactor
// clearing would pass TestEd25519ConversionsAgree (both sides of that test
// make the same mistake) but fail this one.
func TestKeyPairFromEd25519MatchesStandalonePublicKeyConversion(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("seed-for-cross-check-conversion"))

	edKP := sign.FromSeed(sign.Seed(seed))

	kp, err := KeyPairFromEd25519(seed)
	require.NoError(t, err)

	wantPublic, err := FromEd25519PublicKey([32]byte(edKP.Public))
	require.NoError(t, err)

	require.Equal(t, wantPublic, kp.Public)
}
