package sign

import (
	"context"
	"errors"

	"github.com/nacreous/curve25519compact/crypto/cerr"
	"github.com/nacreous/curve25519compact/crypto/curve"
	"github.com/nacreous/curve25519compact/crypto/hash512"
	"github.com/nacreous/curve25519compact/crypto/scalar"
)

// ErrStateConsumed is returned by Absorb, Sign, or Verify when called on a
// streaming state that has already been finalized. Streaming states are
// single-use: once Sign or Verify has run, further calls are a programming
// error rather than a cryptographic one.
var ErrStateConsumed = errors.New("curve25519compact: streaming state already finalized")

// SigningState incrementally absorbs a message too large, or arriving in
// too many pieces, to hold in memory at once. It resolves the nonce-then-
// challenge two-pass structure of Ed25519 as a prehash construction: the
// message is hashed exactly once, into two running SHA-512 contexts seeded
// differently (one with the nonce-derivation prefix, one bare), instead of
// being buffered for two full passes.
type SigningState struct {
	aBytes [32]byte
	pub    PublicKey
	hr     *hash512.Hasher
	hm     *hash512.Hasher
	done   bool
}

// SignIncremental begins a streaming signature over a message that will be
// fed in via Absorb. noise behaves as in Sign.
func (sk SecretKey) SignIncremental(noise *Noise) *SigningState {
	aBytes, prefix := sk.expand()
	st := &SigningState{aBytes: aBytes, pub: sk.PublicKeyPart()}

	st.hr = hash512.New()
	if noise != nil {
		st.hr.Write(noise[:])
	}
	st.hr.Write(prefix[:])

	st.hm = hash512.New()
	return st
}

// Absorb feeds the next chunk of the message into st. ctx is checked once
// per call at the chunk boundary; it is not threaded into the underlying
// hash computation, which cannot be interrupted mid-block.
func (st *SigningState) Absorb(ctx context.Context, chunk []byte) error {
	if st.done {
		return ErrStateConsumed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	st.hr.Write(chunk)
	st.hm.Write(chunk)
	return nil
}

// Sign finalizes st and returns the signature over everything absorbed so
// far. st must not be used again afterward.
func (st *SigningState) Sign() (Signature, error) {
	if st.done {
		return Signature{}, ErrStateConsumed
	}
	st.done = true

	rDigest := st.hr.Sum()
	rScalar := scalar.ReduceWide(rDigest[:])
	rBytes := rScalar.Bytes()
	R := curve.Compress(curve.ScalarMultBase(&rBytes))

	mDigest := st.hm.Sum()
	kScalar := challengeScalarPrehashed(R, st.pub, mDigest)
	sScalar := scalar.MultiplyAdd(rScalar, kScalar, scalar.Raw(st.aBytes))
	sBytes := sScalar.Bytes()

	var sig Signature
	copy(sig[:32], R[:])
	copy(sig[32:], sBytes[:])

	if SelfVerifyDefault {
		vst := &VerifyingState{pub: st.pub, r: R, s: sBytes, hm: st.hm}
		if err := vst.Verify(); err != nil {
			return Signature{}, cerr.ErrFaultDetected
		}
	}
	return sig, nil
}

// VerifyingState incrementally absorbs the message a streaming signature
// was produced over, checking it against a signature fixed at creation.
type VerifyingState struct {
	pub  PublicKey
	r    [32]byte
	s    [32]byte
	hm   *hash512.Hasher
	done bool
}

// VerifyIncremental begins a streaming verification of sig under pub. The s
// component's canonicality is checked immediately rather than deferred to
// Verify, so malformed signatures are rejected before any message bytes are
// absorbed.
func (pub PublicKey) VerifyIncremental(sig Signature) (*VerifyingState, error) {
	var sArr [32]byte
	copy(sArr[:], sig[32:64])
	if !scalar.IsCanonical(sArr[:]) {
		return nil, cerr.ErrNonCanonicalScalar
	}
	st := &VerifyingState{pub: pub, s: sArr, hm: hash512.New()}
	copy(st.r[:], sig[:32])
	return st, nil
}

// Absorb feeds the next chunk of the message into st.
func (st *VerifyingState) Absorb(ctx context.Context, chunk []byte) error {
	if st.done {
		return ErrStateConsumed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	st.hm.Write(chunk)
	return nil
}

// Verify finalizes st and checks the signature against everything absorbed
// so far. st must not be used again afterward.
func (st *VerifyingState) Verify() error {
	if st.done {
		return ErrStateConsumed
	}
	st.done = true

	rPoint, ok := curve.Decompress(st.r)
	if !ok {
		return cerr.ErrInvalidEncoding
	}
	aPoint, ok := curve.Decompress([32]byte(st.pub))
	if !ok {
		return cerr.ErrInvalidPublicKey
	}

	mDigest := st.hm.Sum()
	kScalar := challengeScalarPrehashed(st.r, st.pub, mDigest)
	kBytes := kScalar.Bytes()

	negA := curve.Neg(aPoint)
	check := curve.DoubleScalarMultVartime(&st.s, curve.Basepoint, &kBytes, negA)
	if !cofactoredEqual(check, rPoint) {
		return cerr.ErrSignatureMismatch
	}
	return nil
}

// challengeScalarPrehashed computes k = SHA-512(R || A || H(M)) mod ell,
// the streaming analogue of challengeScalar once M has already been reduced
// to its own SHA-512 digest.
func challengeScalarPrehashed(r [32]byte, a PublicKey, mDigest [hash512.Size]byte) scalar.Scalar {
	hk := hash512.New()
	hk.Write(r[:])
	hk.Write(a[:])
	hk.Write(mDigest[:])
	digest := hk.Sum()
	return scalar.ReduceWide(digest[:])
}
