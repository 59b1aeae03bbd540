package x25519

import (
	"github.com/nacreous/curve25519compact/crypto/cerr"
	"github.com/nacreous/curve25519compact/crypto/curve"
	"github.com/nacreous/curve25519compact/crypto/hash512"
	"github.com/nacreous/curve25519compact/crypto/scalar"
)

// edPublicKey is the 32-byte interface this package needs from an Ed25519
// public key, kept narrow so x25519 does not have to import sign and the
// two packages stay independent except at this one conversion boundary.
type edPublicKey = [32]byte

// edSeed is the 32-byte seed an Ed25519 secret key expands from.
type edSeed = [32]byte

// FromEd25519PublicKey converts an Ed25519 public key A to an X25519 public
// key: map the Edwards y-coordinate to the Montgomery u-coordinate, then
// clear the cofactor by multiplying by 8 via the ladder, since an Edwards
// point may carry a small-order component the Montgomery map alone would not
// remove. The result is the Montgomery form of [8]A, not of A itself.
func FromEd25519PublicKey(edPub edPublicKey) (PublicKey, error) {
	p, ok := curve.Decompress(edPub)
	if !ok {
		return PublicKey{}, cerr.ErrInvalidPublicKey
	}
	u := curve.MontgomeryFromEdwardsY(p.Y)

	var eight [32]byte
	eight[0] = 8
	cleared := curve.MontgomeryLadder(u, &eight, 4)
	return encodeU(cleared), nil
}

// edExpand returns the clamped Ed25519 signing scalar a seed expands to,
// the first half of SHA-512(seed).
func edExpand(seed edSeed) [32]byte {
	h := hash512.Sum512(seed[:])
	var a [32]byte
	copy(a[:], h[:32])
	scalar.Clamp(&a)
	return a
}

// FromEd25519Seed converts an Ed25519 seed to the X25519 secret key that
// results from the same key-derivation scalar: SHA-512(seed), clamped. No
// separate cofactor-clearing step is needed here; clamping already forces
// the scalar to be a multiple of 8.
func FromEd25519Seed(seed edSeed) SecretKey {
	return SecretKey(edExpand(seed))
}

// KeyPairFromEd25519 derives a full X25519 key pair from an Ed25519 seed. The
// secret half is FromEd25519Seed's clamped scalar; the public half goes
// through FromEd25519PublicKey applied to the Ed25519 public key that same
// scalar produces on the Edwards curve, not the Montgomery base-point
// multiple of the scalar directly. The two differ by the cofactor, and only
// the former agrees with a peer who converted the same identity through
// FromEd25519PublicKey.
func KeyPairFromEd25519(seed edSeed) (KeyPair, error) {
	a := edExpand(seed)
	edPub := curve.Compress(curve.ScalarMultBase(&a))
	pub, err := FromEd25519PublicKey(edPub)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: pub, Secret: SecretKey(a)}, nil
}
