package sign

import (
	"github.com/nacreous/curve25519compact/crypto/cerr"
	"github.com/nacreous/curve25519compact/crypto/curve"
	"github.com/nacreous/curve25519compact/crypto/hash512"
	"github.com/nacreous/curve25519compact/crypto/scalar"
)

// Sign produces a detached signature over message. If noise is non-nil its
// 16 bytes are mixed into the nonce derivation ahead of the secret prefix,
// hedging the otherwise-deterministic nonce against differential fault
// attacks; pass nil for the plain RFC 8032 construction.
//
// When SelfVerifyDefault is true the freshly produced signature is
// immediately re-verified under the matching public key; a mismatch (which
// should never happen on correct hardware) is reported as
// cerr.ErrFaultDetected instead of returning the bad signature.
func (sk SecretKey) Sign(message []byte, noise *Noise) (Signature, error) {
	aBytes, prefix := sk.expand()
	A := sk.PublicKeyPart()

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
	sScalar := scalar.MultiplyAdd(rScalar, kScalar, scalar.Raw(aBytes))
	sBytes := sScalar.Bytes()

	var sig Signature
	copy(sig[:32], R[:])
	copy(sig[32:], sBytes[:])

	if SelfVerifyDefault {
		if err := A.Verify(message, sig); err != nil {
			return Signature{}, cerr.ErrFaultDetected
		}
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature over message under pub,
// returning a descriptive error from package cerr on failure rather than a
// bare boolean.
func (pub PublicKey) Verify(message []byte, sig Signature) error {
	var sArr [32]byte
	copy(sArr[:], sig[32:64])
	if !scalar.IsCanonical(sArr[:]) {
		return cerr.ErrNonCanonicalScalar
	}

	var rArr [32]byte
	copy(rArr[:], sig[:32])
	rPoint, ok := curve.Decompress(rArr)
	if !ok {
		return cerr.ErrInvalidEncoding
	}
	aPoint, ok := curve.Decompress([32]byte(pub))
	if !ok {
		return cerr.ErrInvalidPublicKey
	}

	kScalar := challengeScalar(rArr, pub, message)
	kBytes := kScalar.Bytes()

	negA := curve.Neg(aPoint)
	check := curve.DoubleScalarMultVartime(&sArr, curve.Basepoint, &kBytes, negA)

	if !cofactoredEqual(check, rPoint) {
		return cerr.ErrSignatureMismatch
	}
	return nil
}

// challengeScalar computes k = SHA-512(R || A || M) mod ell.
func challengeScalar(r [32]byte, a PublicKey, message []byte) scalar.Scalar {
	hk := hash512.New()
	hk.Write(r[:])
	hk.Write(a[:])
	hk.Write(message)
	digest := hk.Sum()
	return scalar.ReduceWide(digest[:])
}

// cofactoredEqual reports whether [8]p == [8]q, the cofactored verification
// equation, which accepts signatures over small-order public key components
// instead of rejecting them outright.
func cofactoredEqual(p, q curve.Point) bool {
	p8 := curve.Double(curve.Double(curve.Double(p)))
	q8 := curve.Double(curve.Double(curve.Double(q)))
	return curve.Equal(p8, q8) == 1
}
