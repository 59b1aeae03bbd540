// Package field implements arithmetic in GF(2^255-19), the base field
// underlying both the Edwards and Montgomery forms of Curve25519.
package field

import (
	"encoding/binary"
	"math/bits"
)

// Elem is an element of GF(2^255-19), held as five 51-bit limbs:
//
//	v = D0 + D1*2^51 + D2*2^102 + D3*2^153 + D4*2^204
//
// Between calls every limb fits in 52 bits. The zero value is the field
// element 0.
type Elem struct {
	D0, D1, D2, D3, D4 uint64
}

const maskLow51 uint64 = (1 << 51) - 1

var elemZero = Elem{}
var elemOne = Elem{1, 0, 0, 0, 0}

// Zero sets v to 0 and returns it.
func (v *Elem) Zero() *Elem { *v = elemZero; return v }

// One sets v to 1 and returns it.
func (v *Elem) One() *Elem { *v = elemOne; return v }

// Set copies a into v and returns v.
func (v *Elem) Set(a *Elem) *Elem { *v = *a; return v }

// carryPropagate brings every limb back under 52 bits, folding the overflow
// out of D4 back into D0 via 2^255 = 19 (mod p).
func (v *Elem) carryPropagate() *Elem {
	c0 := v.D0 >> 51
	c1 := v.D1 >> 51
	c2 := v.D2 >> 51
	c3 := v.D3 >> 51
	c4 := v.D4 >> 51

	v.D0 = v.D0&maskLow51 + c4*19
	v.D1 = v.D1&maskLow51 + c0
	v.D2 = v.D2&maskLow51 + c1
	v.D3 = v.D3&maskLow51 + c2
	v.D4 = v.D4&maskLow51 + c3
	return v
}

// reduce brings v fully below p = 2^255-19, not merely below 2^255+eps.
func (v *Elem) reduce() *Elem {
	v.carryPropagate()

	// v < 2^255 + 19*2^13 here. Adding 19 overflows 2^255-1 iff v >= p.
	c := (v.D0 + 19) >> 51
	c = (v.D1 + c) >> 51
	c = (v.D2 + c) >> 51
	c = (v.D3 + c) >> 51
	c = (v.D4 + c) >> 51

	v.D0 += 19 * c
	v.D1 += v.D0 >> 51
	v.D0 &= maskLow51
	v.D2 += v.D1 >> 51
	v.D1 &= maskLow51
	v.D3 += v.D2 >> 51
	v.D2 &= maskLow51
	v.D4 += v.D3 >> 51
	v.D3 &= maskLow51
	v.D4 &= maskLow51
	return v
}

// Add sets v = a+b.
func (v *Elem) Add(a, b *Elem) *Elem {
	v.D0 = a.D0 + b.D0
	v.D1 = a.D1 + b.D1
	v.D2 = a.D2 + b.D2
	v.D3 = a.D3 + b.D3
	v.D4 = a.D4 + b.D4
	return v.carryPropagate()
}

// Sub sets v = a-b.
func (v *Elem) Sub(a, b *Elem) *Elem {
	// Adding 2p first keeps every limb-wise subtraction from underflowing.
	v.D0 = (a.D0 + 0xFFFFFFFFFFFDA) - b.D0
	v.D1 = (a.D1 + 0xFFFFFFFFFFFFE) - b.D1
	v.D2 = (a.D2 + 0xFFFFFFFFFFFFE) - b.D2
	v.D3 = (a.D3 + 0xFFFFFFFFFFFFE) - b.D3
	v.D4 = (a.D4 + 0xFFFFFFFFFFFFE) - b.D4
	return v.carryPropagate()
}

// Negate sets v = -a.
func (v *Elem) Negate(a *Elem) *Elem { return v.Sub(&elemZero, a) }

type wide struct{ lo, hi uint64 }

func wmul(a, b uint64) wide {
	hi, lo := bits.Mul64(a, b)
	return wide{lo, hi}
}

func wmuladd(acc wide, a, b uint64) wide {
	hi, lo := bits.Mul64(a, b)
	lo, c := bits.Add64(lo, acc.lo, 0)
	hi, _ = bits.Add64(hi, acc.hi, c)
	return wide{lo, hi}
}

func wshr51(a wide) uint64 { return (a.hi << 13) | (a.lo >> 51) }

// Mul sets v = a*b, folding the 2^255 = 19 reduction identity into the
// columnar multiplication as it goes.
func (v *Elem) Mul(a, b *Elem) *Elem {
	a0, a1, a2, a3, a4 := a.D0, a.D1, a.D2, a.D3, a.D4
	b0, b1, b2, b3, b4 := b.D0, b.D1, b.D2, b.D3, b.D4

	a1x19 := a1 * 19
	a2x19 := a2 * 19
	a3x19 := a3 * 19
	a4x19 := a4 * 19

	r0 := wmul(a0, b0)
	r0 = wmuladd(r0, a1x19, b4)
	r0 = wmuladd(r0, a2x19, b3)
	r0 = wmuladd(r0, a3x19, b2)
	r0 = wmuladd(r0, a4x19, b1)

	r1 := wmul(a0, b1)
	r1 = wmuladd(r1, a1, b0)
	r1 = wmuladd(r1, a2x19, b4)
	r1 = wmuladd(r1, a3x19, b3)
	r1 = wmuladd(r1, a4x19, b2)

	r2 := wmul(a0, b2)
	r2 = wmuladd(r2, a1, b1)
	r2 = wmuladd(r2, a2, b0)
	r2 = wmuladd(r2, a3x19, b4)
	r2 = wmuladd(r2, a4x19, b3)

	r3 := wmul(a0, b3)
	r3 = wmuladd(r3, a1, b2)
	r3 = wmuladd(r3, a2, b1)
	r3 = wmuladd(r3, a3, b0)
	r3 = wmuladd(r3, a4x19, b4)

	r4 := wmul(a0, b4)
	r4 = wmuladd(r4, a1, b3)
	r4 = wmuladd(r4, a2, b2)
	r4 = wmuladd(r4, a3, b1)
	r4 = wmuladd(r4, a4, b0)

	c0, c1, c2, c3, c4 := wshr51(r0), wshr51(r1), wshr51(r2), wshr51(r3), wshr51(r4)

	*v = Elem{
		r0.lo&maskLow51 + c4*19,
		r1.lo&maskLow51 + c0,
		r2.lo&maskLow51 + c1,
		r3.lo&maskLow51 + c2,
		r4.lo&maskLow51 + c3,
	}
	return v.carryPropagate()
}

// Sq sets v = a*a.
func (v *Elem) Sq(a *Elem) *Elem {
	l0, l1, l2, l3, l4 := a.D0, a.D1, a.D2, a.D3, a.D4

	l0x2 := l0 * 2
	l1x2 := l1 * 2
	l1x38 := l1 * 38
	l2x38 := l2 * 38
	l3x38 := l3 * 38
	l3x19 := l3 * 19
	l4x19 := l4 * 19

	r0 := wmul(l0, l0)
	r0 = wmuladd(r0, l1x38, l4)
	r0 = wmuladd(r0, l2x38, l3)

	r1 := wmul(l0x2, l1)
	r1 = wmuladd(r1, l2x38, l4)
	r1 = wmuladd(r1, l3x19, l3)

	r2 := wmul(l0x2, l2)
	r2 = wmuladd(r2, l1, l1)
	r2 = wmuladd(r2, l3x38, l4)

	r3 := wmul(l0x2, l3)
	r3 = wmuladd(r3, l1x2, l2)
	r3 = wmuladd(r3, l4x19, l4)

	r4 := wmul(l0x2, l4)
	r4 = wmuladd(r4, l1x2, l3)
	r4 = wmuladd(r4, l2, l2)

	c0, c1, c2, c3, c4 := wshr51(r0), wshr51(r1), wshr51(r2), wshr51(r3), wshr51(r4)

	*v = Elem{
		r0.lo&maskLow51 + c4*19,
		r1.lo&maskLow51 + c0,
		r2.lo&maskLow51 + c1,
		r3.lo&maskLow51 + c2,
		r4.lo&maskLow51 + c3,
	}
	return v.carryPropagate()
}

// mul51small returns lo + hi*2^51 = a*b for a small (<=32-bit) constant b.
func mul51small(a uint64, b uint32) (lo, hi uint64) {
	mh, ml := bits.Mul64(a, uint64(b))
	lo = ml & maskLow51
	hi = (mh << 13) | (ml >> 51)
	return
}

// MulSmall sets v = a*c for a 32-bit constant c, e.g. the Montgomery ladder's
// curve coefficient 121666.
func (v *Elem) MulSmall(a *Elem, c uint32) *Elem {
	l0, h0 := mul51small(a.D0, c)
	l1, h1 := mul51small(a.D1, c)
	l2, h2 := mul51small(a.D2, c)
	l3, h3 := mul51small(a.D3, c)
	l4, h4 := mul51small(a.D4, c)
	v.D0 = l0 + 19*h4
	v.D1 = l1 + h0
	v.D2 = l2 + h1
	v.D3 = l3 + h2
	v.D4 = l4 + h3
	return v
}

// Invert sets v = a^-1 via Fermat's little theorem (a^(p-2)), using the
// classic 254-squaring, 11-multiplication addition chain.
func (v *Elem) Invert(a *Elem) *Elem {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Elem

	z2.Sq(a)
	t.Sq(&z2)
	t.Sq(&t)
	z9.Mul(&t, a)
	z11.Mul(&z9, &z2)
	t.Sq(&z11)
	z2_5_0.Mul(&t, &z9)

	t.Sq(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Sq(&t)
	}
	z2_10_0.Mul(&t, &z2_5_0)

	t.Sq(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Sq(&t)
	}
	z2_20_0.Mul(&t, &z2_10_0)

	t.Sq(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Sq(&t)
	}
	t.Mul(&t, &z2_20_0)

	t.Sq(&t)
	for i := 0; i < 9; i++ {
		t.Sq(&t)
	}
	z2_50_0.Mul(&t, &z2_10_0)

	t.Sq(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Sq(&t)
	}
	z2_100_0.Mul(&t, &z2_50_0)

	t.Sq(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Sq(&t)
	}
	t.Mul(&t, &z2_100_0)

	t.Sq(&t)
	for i := 0; i < 49; i++ {
		t.Sq(&t)
	}
	t.Mul(&t, &z2_50_0)

	t.Sq(&t)
	t.Sq(&t)
	t.Sq(&t)
	t.Sq(&t)
	t.Sq(&t)

	return v.Mul(&t, &z11)
}

// PowP5d8 sets v = a^((p-5)/8), the exponent used when extracting a square
// root over this field (RFC 8032 5.1.3).
func (v *Elem) PowP5d8(a *Elem) *Elem {
	var t0, t1, t2 Elem

	t0.Sq(a)
	t1.Sq(&t0)
	t1.Sq(&t1)
	t1.Mul(a, &t1)
	t0.Mul(&t0, &t1)
	t0.Sq(&t0)
	t0.Mul(&t1, &t0)
	t1.Sq(&t0)
	for i := 1; i < 5; i++ {
		t1.Sq(&t1)
	}
	t0.Mul(&t1, &t0)
	t1.Sq(&t0)
	for i := 1; i < 10; i++ {
		t1.Sq(&t1)
	}
	t1.Mul(&t1, &t0)
	t2.Sq(&t1)
	for i := 1; i < 20; i++ {
		t2.Sq(&t2)
	}
	t1.Mul(&t2, &t1)
	t1.Sq(&t1)
	for i := 1; i < 10; i++ {
		t1.Sq(&t1)
	}
	t0.Mul(&t1, &t0)
	t1.Sq(&t0)
	for i := 1; i < 50; i++ {
		t1.Sq(&t1)
	}
	t1.Mul(&t1, &t0)
	t2.Sq(&t1)
	for i := 1; i < 100; i++ {
		t2.Sq(&t2)
	}
	t1.Mul(&t2, &t1)
	t1.Sq(&t1)
	for i := 1; i < 50; i++ {
		t1.Sq(&t1)
	}
	t0.Mul(&t1, &t0)
	t0.Sq(&t0)
	t0.Sq(&t0)
	return v.Mul(&t0, a)
}

// sqrtM1 is a fixed square root of -1 in the field.
var sqrtM1 = Elem{1718705420411056, 234908883556509, 2233514472574048, 2117202627021982, 765476049583133}

// SqrtRatio sets r to a nonnegative square root of u/v if one exists, and
// returns 1; otherwise r is set per RFC 8032 5.1.3's fallback branch and 0
// is returned.
func (r *Elem) SqrtRatio(u, v *Elem) int {
	var t0, v2, uv3, uv7, rr, uNeg, rPrime, check Elem

	v2.Sq(v)
	uv3.Mul(u, t0.Mul(&v2, v))
	uv7.Mul(&uv3, t0.Sq(&v2))
	rr.Mul(&uv3, t0.PowP5d8(&uv7))

	check.Mul(v, t0.Sq(&rr))

	uNeg.Negate(u)
	correct := check.Equal(u)
	flipped := check.Equal(&uNeg)
	flippedI := check.Equal(t0.Mul(&uNeg, &sqrtM1))

	rPrime.Mul(&rr, &sqrtM1)
	rr.CondSelect(&rPrime, &rr, flipped|flippedI)

	r.Abs(&rr)
	return correct | flipped
}

// SetBytes decodes x as a 32-byte little-endian integer, ignoring the top
// (255th) bit, and accepting non-canonical values >= p (RFC 7748 style).
func (v *Elem) SetBytes(x []byte) *Elem {
	v.D0 = binary.LittleEndian.Uint64(x[0:8]) & maskLow51
	v.D1 = (binary.LittleEndian.Uint64(x[6:14]) >> 3) & maskLow51
	v.D2 = (binary.LittleEndian.Uint64(x[12:20]) >> 6) & maskLow51
	v.D3 = (binary.LittleEndian.Uint64(x[19:27]) >> 1) & maskLow51
	v.D4 = (binary.LittleEndian.Uint64(x[24:32]) >> 12) & maskLow51
	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Elem) Bytes() []byte {
	var out [32]byte
	t := *v
	t.reduce()

	var buf [8]byte
	for i, l := range [5]uint64{t.D0, t.D1, t.D2, t.D3, t.D4} {
		off := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(off%8))
		for j, bb := range buf {
			k := off/8 + j
			if k >= len(out) {
				break
			}
			out[k] |= bb
		}
	}
	return out[:]
}

// Equal returns 1 if v == u, 0 otherwise, comparing canonical encodings.
func (v *Elem) Equal(u *Elem) int {
	a, b := v.Bytes(), u.Bytes()
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return int((uint32(diff) - 1) >> 31)
}

// IsZero returns 1 if v represents the field element 0.
func (v *Elem) IsZero() int {
	var z Elem
	return v.Equal(&z)
}

func mask64(cond int) uint64 { return ^(uint64(cond) - 1) }

// CondSelect sets v = a if cond == 1, v = b if cond == 0.
func (v *Elem) CondSelect(a, b *Elem, cond int) *Elem {
	m := mask64(cond)
	v.D0 = (m & a.D0) | (^m & b.D0)
	v.D1 = (m & a.D1) | (^m & b.D1)
	v.D2 = (m & a.D2) | (^m & b.D2)
	v.D3 = (m & a.D3) | (^m & b.D3)
	v.D4 = (m & a.D4) | (^m & b.D4)
	return v
}

// CondSwap exchanges v and u iff cond == 1.
func CondSwap(v, u *Elem, cond int) {
	m := mask64(cond)
	t := m & (v.D0 ^ u.D0)
	v.D0 ^= t
	u.D0 ^= t
	t = m & (v.D1 ^ u.D1)
	v.D1 ^= t
	u.D1 ^= t
	t = m & (v.D2 ^ u.D2)
	v.D2 ^= t
	u.D2 ^= t
	t = m & (v.D3 ^ u.D3)
	v.D3 ^= t
	u.D3 ^= t
	t = m & (v.D4 ^ u.D4)
	v.D4 ^= t
	u.D4 ^= t
}

// IsNegative returns the low bit of the canonical encoding of v, used as the
// sign bit convention for Edwards point compression.
func (v *Elem) IsNegative() int {
	return int(v.Bytes()[0] & 1)
}

// Abs sets v = |u|, per the sign convention above.
func (v *Elem) Abs(u *Elem) *Elem {
	var neg Elem
	neg.Negate(u)
	return v.CondSelect(&neg, u, u.IsNegative())
}
