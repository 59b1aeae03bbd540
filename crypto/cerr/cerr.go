// Package cerr defines the error taxonomy shared by the signing, key
// exchange, and PEM boundary packages.
package cerr

import "errors"

var (
	// ErrInvalidEncoding is returned when an input buffer has the wrong
	// length, or a reserved bit is set where the format forbids it.
	ErrInvalidEncoding = errors.New("curve25519compact: invalid encoding")
	// ErrInvalidPublicKey is returned when a public key's y-coordinate is
	// non-canonical, or decompression finds no point on the curve.
	ErrInvalidPublicKey = errors.New("curve25519compact: invalid public key")
	// ErrNonCanonicalScalar is returned when a signature's s component is
	// not fully reduced modulo the group order.
	ErrNonCanonicalScalar = errors.New("curve25519compact: non-canonical scalar")
	// ErrSignatureMismatch is returned when the verification equation does
	// not hold.
	ErrSignatureMismatch = errors.New("curve25519compact: signature does not verify")
	// ErrWeakPublicKey is returned when an X25519 operation would produce
	// (or accept) an all-zero shared secret.
	ErrWeakPublicKey = errors.New("curve25519compact: weak public key")
	// ErrRandomnessFailure is returned when the randomness provider fails
	// to produce bytes.
	ErrRandomnessFailure = errors.New("curve25519compact: randomness source failed")
	// ErrFaultDetected is returned when the optional self-verify check
	// after signing does not match.
	ErrFaultDetected = errors.New("curve25519compact: self-verify mismatch after signing")
	// ErrParseError is returned by the PEM/DER boundary layer on malformed
	// input.
	ErrParseError = errors.New("curve25519compact: malformed PEM/DER input")
)
