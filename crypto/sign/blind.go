package sign

import (
	"github.com/nacreous/curve25519compact/crypto/cerr"
	"github.com/nacreous/curve25519compact/crypto/curve"
	"github.com/nacreous/curve25519compact/crypto/hash512"
	"github.com/nacreous/curve25519compact/crypto/scalar"
)

// BlindedSecretKey is the result of blinding a SecretKey: the blinding
// factor is folded directly into the signing scalar and nonce prefix, so
// unlike SecretKey it cannot be re-expanded from a seed. Bytes 0:32 hold
// a*b mod ell (already in its final, already-reduced form); bytes 32:64
// hold the rederived nonce prefix.
type BlindedSecretKey [64]byte

// BlindedKeyPair bundles a blinded public key with the blinded secret key
// it was derived alongside.
type BlindedKeyPair struct {
	Public PublicKey
	Secret BlindedSecretKey
}

// deriveBlindScalar turns a blinding seed into the scalar b = reduce(clamp(
// SHA-512(blindingSeed)[0:32])), the same seed-to-scalar pipeline used for
// ordinary secret keys except that b is reduced modulo ell immediately
// rather than kept as a raw clamped exponent. b is used both as an operand
// of mod-ell scalar multiplication (KeyPair.Blind) and as the scalar of the
// point multiplication [b]A (PublicKey.Blind).
func deriveBlindScalar(blindingSeed [32]byte) scalar.Scalar {
	h := hash512.Sum512(blindingSeed[:])
	var b [32]byte
	copy(b[:], h[:32])
	scalar.Clamp(&b)
	return scalar.ReduceWide(b[:])
}

// Blind returns the public key obtained by scaling pub by the blinding
// scalar derived from blindingSeed.
func (pub PublicKey) Blind(blindingSeed [32]byte) (PublicKey, error) {
	aPoint, ok := curve.Decompress([32]byte(pub))
	if !ok {
		return PublicKey{}, cerr.ErrInvalidPublicKey
	}
	bScalar := deriveBlindScalar(blindingSeed)
	bBytes := bScalar.Bytes()
	blinded := curve.ScalarMult(&bBytes, aPoint)
	return PublicKey(curve.Compress(blinded)), nil
}

// Blind derives a blinding scalar b from blindingSeed and returns the
// blinded key pair: public key [b]A and secret scalar a*b mod ell, with a
// matching nonce prefix rederived from the original prefix and b so that
// blinded signatures remain unlinkable to unblinded ones without access to
// blindingSeed.
func (kp KeyPair) Blind(blindingSeed [32]byte) (BlindedKeyPair, error) {
	blindedPub, err := kp.Public.Blind(blindingSeed)
	if err != nil {
		return BlindedKeyPair{}, err
	}

	aBytes, prefix := kp.Secret.expand()
	bScalar := deriveBlindScalar(blindingSeed)
	bBytes := bScalar.Bytes()

	blindedA := scalar.Multiply(bScalar, scalar.Raw(aBytes))

	hp := hash512.New()
	hp.Write(prefix[:])
	hp.Write(bBytes[:])
	newPrefixDigest := hp.Sum()

	var sk BlindedSecretKey
	blindedABytes := blindedA.Bytes()
	copy(sk[:32], blindedABytes[:])
	copy(sk[32:], newPrefixDigest[:32])

	return BlindedKeyPair{Public: blindedPub, Secret: sk}, nil
}

// scalarPart returns the signing scalar half of bsk, already reduced
// modulo ell.
func (bsk BlindedSecretKey) scalarPart() scalar.Scalar {
	var b [32]byte
	copy(b[:], bsk[:32])
	// a*b mod ell is always canonical by construction; Blind never
	// produces anything else, so this always succeeds.
	s, _ := scalar.FromCanonicalBytes(b[:])
	return s
}

// prefixPart returns the nonce-derivation prefix half of bsk.
func (bsk BlindedSecretKey) prefixPart() [32]byte {
	var p [32]byte
	copy(p[:], bsk[32:64])
	return p
}

// PublicKeyPart recomputes the public key matching bsk by evaluating
// [scalar]B, the blinded-key analogue of SecretKey.PublicKeyPart.
func (bsk BlindedSecretKey) PublicKeyPart() PublicKey {
	s := bsk.scalarPart()
	sBytes := s.Bytes()
	return PublicKey(curve.Compress(curve.ScalarMultBase(&sBytes)))
}

// Sign signs message with a blinded key pair. Unlike SecretKey.Sign there
// is no seed to rederive the scalar and prefix from: both live directly in
// bsk.
func (bsk BlindedSecretKey) Sign(message []byte, noise *Noise) (Signature, error) {
	aScalar := bsk.scalarPart()
	prefix := bsk.prefixPart()
	A := bsk.PublicKeyPart()

	hr := hash512.New()
	if noise != nil {
		hr.Write(noise[:])
	}
	hr.Write(prefix[:])
	hr.Write(message)
	rDigest := hr.Sum()
	rScalar := scalar.ReduceWide(rDigest[:])
	rBytes := rScalar.Bytes()
	R := curve.Compress(curve.ScalarMultBase(&rBytes))

	kScalar := challengeScalar(R, A, message)
	sScalar := scalar.MultiplyAdd(rScalar, kScalar, aScalar)
	sBytes := sScalar.Bytes()

	var sig Signature
	copy(sig[:32], R[:])
	copy(sig[32:], sBytes[:])
	return sig, nil
}
