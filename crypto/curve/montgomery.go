package curve

import "github.com/nacreous/curve25519compact/crypto/field"

// MontgomeryBasePoint is the u-coordinate of the Curve25519 generator, u=9.
var MontgomeryBasePoint = func() field.Elem {
	var u field.Elem
	u.SetBytes([]byte{9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	return u
}()

// MontgomeryLadder runs the constant-time Curve25519 Montgomery ladder of
// x1 by the low `bits` bits of s (little-endian), returning the resulting
// u-coordinate.
func MontgomeryLadder(x1 field.Elem, s *[32]byte, bits int) field.Elem {
	var x2, z2, x3, z3, tmp field.Elem
	x2.One()
	z2.Zero()
	x3 = x1
	z3.One()

	swap := 0
	for pos := bits - 1; pos >= 0; pos-- {
		b := (int(s[pos>>3]>>uint(pos&7))) & 1
		swap ^= b
		field.CondSwap(&x2, &x3, swap)
		field.CondSwap(&z2, &z3, swap)
		swap = b

		var a, bb, aa, bbsq, e, da, cb field.Elem
		a.Add(&x2, &z2)
		bb.Sub(&x2, &z2)
		aa.Sq(&a)
		bbsq.Sq(&bb)
		x2.Mul(&aa, &bbsq)
		e.Sub(&aa, &bbsq)

		da.Mul(tmp.Sub(&x3, &z3), &a)
		cb.Mul(tmp.Add(&x3, &z3), &bb)

		var daPlusCb, daMinusCb field.Elem
		daPlusCb.Add(&da, &cb)
		daMinusCb.Sub(&da, &cb)
		x3.Sq(&daPlusCb)
		z3.Sq(&daMinusCb)
		z3.Mul(&x1, &z3)

		var e121666 field.Elem
		e121666.MulSmall(&e, 121666)
		e121666.Add(&bbsq, &e121666)
		z2.Mul(&e, &e121666)
	}
	field.CondSwap(&x2, &x3, swap)
	field.CondSwap(&z2, &z3, swap)

	var zInv, out field.Elem
	zInv.Invert(&z2)
	out.Mul(&x2, &zInv)
	return out
}

// MontgomeryFromEdwardsY maps the y-coordinate of an Edwards point to the
// corresponding Montgomery u-coordinate via u = (1+y)/(1-y).
func MontgomeryFromEdwardsY(y field.Elem) field.Elem {
	var num, den, invDen, u field.Elem
	num.Add(&y, oneElem())
	den.Sub(oneElem(), &y)
	invDen.Invert(&den)
	u.Mul(&num, &invDen)
	return u
}
