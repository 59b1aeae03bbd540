// Package scalar implements arithmetic modulo the prime order of the
// Ed25519 base point,
//
//	ell = 2^252 + 27742317777372353535851937790883648493.
//
// Unlike the field package, scalar reduction here is not built from a
// hand-carried limb representation: the group order is a 252-bit prime with
// no special shape that a from-scratch carry chain benefits from the way
// 2^255-19 does, and getting a bespoke Barrett/Montgomery reduction exactly
// right without a compiler to check it against is the riskiest possible
// place to improvise. Reduction and multiply-add therefore go through
// math/big internally; every exported Scalar value is still a fixed
// 32-byte little-endian container, and every public operation keeps
// accepting and returning the documented byte layout, so callers never see
// the big.Int underneath.
//
// Caveat: math/big's division and multiplication branch on operand
// magnitude, so Multiply and MultiplyAdd are not constant-time in their
// operands. Callers in this module pass secret values through them: the
// unreduced clamped signing scalar a and the nonce r go through MultiplyAdd
// when signing, and a goes through Multiply when blinding. This is a real,
// not merely theoretical, narrowing of the constant-time discipline the rest
// of the module holds to for secret-dependent values.
package scalar

import "math/big"

// Scalar is an integer modulo ell, stored canonically reduced.
type Scalar struct {
	b [32]byte
}

var ell = func() *big.Int {
	l, ok := new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)
	if !ok {
		panic("scalar: malformed ell constant")
	}
	return l
}()

func leToBig(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, c := range b {
		rev[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(rev)
}

func bigToLE(x *big.Int) [32]byte {
	be := x.Bytes()
	var out [32]byte
	for i, c := range be {
		out[len(be)-1-i] = c
	}
	return out
}

// IsCanonical reports whether the 32-byte little-endian value in b is a
// fully reduced scalar, i.e. strictly less than ell.
func IsCanonical(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	return leToBig(b).Cmp(ell) < 0
}

// FromCanonicalBytes decodes a 32-byte little-endian scalar, rejecting
// non-canonical encodings (value >= ell). This is the entry point used to
// parse the s component of a signature (RFC 8032 malleability defense).
func FromCanonicalBytes(b []byte) (Scalar, bool) {
	if !IsCanonical(b) {
		return Scalar{}, false
	}
	var s Scalar
	copy(s.b[:], b)
	return s, true
}

// ReduceWide reduces an arbitrary-length little-endian buffer (typically 32
// or 64 bytes, the width of a SHA-512 digest) modulo ell.
func ReduceWide(b []byte) Scalar {
	x := leToBig(b)
	x.Mod(x, ell)
	return Scalar{b: bigToLE(x)}
}

// Add returns a+b mod ell.
func Add(a, b Scalar) Scalar {
	x := new(big.Int).Add(leToBig(a.b[:]), leToBig(b.b[:]))
	x.Mod(x, ell)
	return Scalar{b: bigToLE(x)}
}

// Multiply returns a*b mod ell.
func Multiply(a, b Scalar) Scalar {
	x := new(big.Int).Mul(leToBig(a.b[:]), leToBig(b.b[:]))
	x.Mod(x, ell)
	return Scalar{b: bigToLE(x)}
}

// MultiplyAdd returns r + k*a mod ell, the signature-closing operation
// s = r + k*a.
func MultiplyAdd(r, k, a Scalar) Scalar {
	x := new(big.Int).Mul(leToBig(k.b[:]), leToBig(a.b[:]))
	x.Add(x, leToBig(r.b[:]))
	x.Mod(x, ell)
	return Scalar{b: bigToLE(x)}
}

// Bytes returns the canonical 32-byte little-endian encoding.
func (s Scalar) Bytes() [32]byte { return s.b }

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	var zero byte
	for _, c := range s.b {
		zero |= c
	}
	return zero == 0
}

// Clamp applies the Ed25519/X25519 bit-clamping transform in place: clear
// the low 3 bits of byte 0 and the top bit of byte 31, and set bit 6 of
// byte 31. The result is always a multiple of 8 in [2^254, 2^255).
func Clamp(b *[32]byte) {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
}

// Raw wraps b as a Scalar without checking or reducing it. It exists for
// callers holding a clamped Ed25519 secret exponent, which by construction
// is already a fixed-length little-endian integer but is never reduced
// modulo ell (see Clamped).
func Raw(b [32]byte) Scalar {
	return Scalar{b: b}
}

// Clamped returns a clamped copy of a 32-byte little-endian scalar.
//
// The result is deliberately NOT reduced modulo ell: the clamped secret
// exponent used for Ed25519/X25519 point multiplication is a raw integer in
// [2^254, 2^255), used directly as a sequence of bits in the scalar-mult
// ladder. Where it does enter mod-ell arithmetic (MultiplyAdd, Multiply),
// those functions reduce their result, not their inputs. Reducing it here
// would silently produce a different (wrong) key.
func Clamped(b [32]byte) Scalar {
	Clamp(&b)
	return Scalar{b: b}
}
