// Package x25519 implements Diffie-Hellman key exchange over the
// Montgomery form of Curve25519 (RFC 7748).
package x25519

import (
	"github.com/nacreous/curve25519compact/crypto/cerr"
	"github.com/nacreous/curve25519compact/crypto/curve"
	"github.com/nacreous/curve25519compact/crypto/field"
	"github.com/nacreous/curve25519compact/crypto/randsrc"
	"github.com/nacreous/curve25519compact/crypto/scalar"
)

// SecretKey is a 32-byte scalar, clamped on use rather than at rest: the
// stored bytes are exactly what the caller supplied or generated.
type SecretKey [32]byte

// PublicKey is a 32-byte Montgomery u-coordinate. A value with the high bit
// set is accepted per RFC 7748 and simply masked off before use.
type PublicKey [32]byte

// KeyPair bundles a public key with the secret scalar it was derived from.
type KeyPair struct {
	Public PublicKey
	Secret SecretKey
}

func decodeU(pub PublicKey) field.Elem {
	var b [32]byte
	copy(b[:], pub[:])
	b[31] &= 0x7f
	var u field.Elem
	u.SetBytes(b[:])
	return u
}

func encodeU(u field.Elem) PublicKey {
	var pub PublicKey
	copy(pub[:], u.Bytes())
	return pub
}

// GenerateSecretKey returns 32 fresh random bytes suitable as an X25519
// secret key.
func GenerateSecretKey() (SecretKey, error) {
	var sk SecretKey
	copy(sk[:], randsrc.Bytes(len(sk)))
	return sk, nil
}

// Generate returns a freshly generated key pair.
func Generate() (KeyPair, error) {
	sk, err := GenerateSecretKey()
	if err != nil {
		return KeyPair{}, cerr.ErrRandomnessFailure
	}
	return KeyPair{Public: sk.Public(), Secret: sk}, nil
}

// Base returns [clamp(s)]G, the public key corresponding to secret scalar
// s, where G is the Curve25519 base point (u=9).
func Base(s [32]byte) PublicKey {
	scalar.Clamp(&s)
	u := curve.MontgomeryLadder(curve.MontgomeryBasePoint, &s, 255)
	return encodeU(u)
}

// BasePoint returns the Curve25519 base point itself (u=9) as a PublicKey,
// for use with UnclampedMul when a caller needs the raw, unclamped
// scalar-multiplication primitive RFC 7748's test vectors are stated in
// terms of.
func BasePoint() PublicKey {
	return encodeU(curve.MontgomeryBasePoint)
}

// Public derives the public key matching sk, clamping sk first.
func (sk SecretKey) Public() PublicKey {
	return Base([32]byte(sk))
}

// UnclampedMul returns [s]pub without clamping s first. This is the raw
// Curve25519 scalar multiplication RFC 7748's test vectors exercise
// directly; ordinary Diffie-Hellman callers want DH or Base instead.
func (pub PublicKey) UnclampedMul(s [32]byte) PublicKey {
	u := decodeU(pub)
	out := curve.MontgomeryLadder(u, &s, 255)
	return encodeU(out)
}

// isWeak reports whether u encodes the all-zero output, the image of every
// low-order input point under the ladder.
func isWeak(pub PublicKey) bool {
	var zero byte
	for _, b := range pub {
		zero |= b
	}
	return zero == 0
}

// DH computes the shared secret between pub and sk: [clamp(sk)]pub. If the
// result is the all-zero contributory-behavior marker, both the zero bytes
// and cerr.ErrWeakPublicKey are returned, so a caller that only wants
// contributory behavior can check the error while one that wants the raw
// RFC 7748 output unconditionally still has it.
func (pub PublicKey) DH(sk SecretKey) (PublicKey, error) {
	s := [32]byte(sk)
	scalar.Clamp(&s)
	u := decodeU(pub)
	outU := curve.MontgomeryLadder(u, &s, 255)
	shared := encodeU(outU)
	if isWeak(shared) {
		return shared, cerr.ErrWeakPublicKey
	}
	return shared, nil
}
