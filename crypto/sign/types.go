// Package sign implements the Ed25519 signature engine: key derivation,
// one-shot and streaming sign/verify, and key blinding.
package sign

import (
	"github.com/nacreous/curve25519compact/crypto/cerr"
	"github.com/nacreous/curve25519compact/crypto/curve"
	"github.com/nacreous/curve25519compact/crypto/hash512"
	"github.com/nacreous/curve25519compact/crypto/randsrc"
	"github.com/nacreous/curve25519compact/crypto/scalar"
)

// Seed is the 32-byte input a key pair is deterministically derived from.
type Seed [32]byte

// PublicKey is a compressed Ed25519 point, 32 bytes little-endian.
type PublicKey [32]byte

// SecretKey is a seed followed by its derived public key: bytes 0:32 are
// the seed, bytes 32:64 are PublicKey. Nothing else is cached; the
// expanded scalar and nonce prefix are rederived from the seed on every
// Sign call, the same tradeoff the reference implementation this module
// grew from makes.
type SecretKey [64]byte

// Signature is R (32 bytes, a compressed point) followed by s (32 bytes, a
// canonically reduced scalar).
type Signature [64]byte

// Noise is optional domain-separating randomness mixed into nonce
// derivation, hedging the deterministic nonce against fault attacks.
type Noise [16]byte

// KeyPair bundles a public key with the secret key it was derived from.
type KeyPair struct {
	Public PublicKey
	Secret SecretKey
}

// SelfVerifyDefault, when true, makes Sign (and SigningState.Sign)
// immediately re-verify every signature they produce, returning
// cerr.ErrFaultDetected instead of the signature on mismatch. This is the
// Go rendering of the upstream self-verify build option (see SPEC_FULL.md).
var SelfVerifyDefault = false

// Seed returns the 32-byte seed half of sk.
func (sk SecretKey) Seed() Seed {
	var s Seed
	copy(s[:], sk[:32])
	return s
}

// PublicKeyPart returns the public key half of sk, without recomputing it.
func (sk SecretKey) PublicKeyPart() PublicKey {
	var p PublicKey
	copy(p[:], sk[32:64])
	return p
}

// Wipe overwrites sk with zeros. It cannot reach copies the runtime may
// have made (e.g. from an earlier assignment), but it scrubs this backing
// array.
func (sk *SecretKey) Wipe() {
	for i := range sk {
		sk[i] = 0
	}
}

// expand recomputes h = SHA-512(seed), returning the clamped secret scalar
// bytes and the nonce-derivation prefix.
func (sk SecretKey) expand() (aBytes [32]byte, prefix [32]byte) {
	seed := sk.Seed()
	h := hash512.Sum512(seed[:])
	copy(aBytes[:], h[:32])
	scalar.Clamp(&aBytes)
	copy(prefix[:], h[32:64])
	return
}

// FromSeed derives a key pair deterministically from seed: the same seed
// always yields the same key pair.
func FromSeed(seed Seed) KeyPair {
	h := hash512.Sum512(seed[:])
	var aBytes [32]byte
	copy(aBytes[:], h[:32])
	scalar.Clamp(&aBytes)

	pub := curve.Compress(curve.ScalarMultBase(&aBytes))

	var sk SecretKey
	copy(sk[:32], seed[:])
	copy(sk[32:], pub[:])

	var pk PublicKey
	copy(pk[:], pub[:])

	return KeyPair{Public: pk, Secret: sk}
}

// GenerateSeed returns a fresh random Seed.
func GenerateSeed() (Seed, error) {
	var s Seed
	copy(s[:], randsrc.Bytes(len(s)))
	return s, nil
}

// GenerateNoise returns fresh random Noise.
func GenerateNoise() (Noise, error) {
	var n Noise
	copy(n[:], randsrc.Bytes(len(n)))
	return n, nil
}

// Generate returns a freshly generated key pair, requiring randomness.
func Generate() (KeyPair, error) {
	seed, err := GenerateSeed()
	if err != nil {
		return KeyPair{}, cerr.ErrRandomnessFailure
	}
	return FromSeed(seed), nil
}
