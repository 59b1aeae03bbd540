// Package curve implements the group law on the twisted Edwards curve used
// by Ed25519 and the Montgomery ladder used by X25519, both over the field
// implemented in crypto/field.
package curve

import (
	"github.com/nacreous/curve25519compact/conv"
	"github.com/nacreous/curve25519compact/crypto/field"
)

// curveD is the curve equation constant d = -121665/121666 mod p.
var curveD = field.Elem{D0: 929955233495203, D1: 466365720129213, D2: 1662059464998953, D3: 2033849074728123, D4: 1442794654840575}

var curveD2 = func() field.Elem {
	var d2 field.Elem
	d2.Add(&curveD, &curveD)
	return d2
}()

// p1xp1 is the "completed" representation produced by one addition or
// doubling step before it is folded back into extended coordinates.
type p1xp1 struct{ X, Y, Z, T field.Elem }

// p2 is projective (X:Y:Z) affine-equivalent to (X/Z, Y/Z), used only as a
// stepping stone for doubling.
type p2 struct{ X, Y, Z field.Elem }

// Point is an Ed25519 group element in extended projective coordinates
// (X:Y:Z:T) with the invariant X*Y = Z*T, equivalent to affine (X/Z, Y/Z).
type Point struct{ X, Y, Z, T field.Elem }

// cached is a point pre-processed for repeated addition into an
// accumulator: Y+X, Y-X, Z, and T*2d.
type cached struct{ YplusX, YminusX, Z, T2d field.Elem }

// Identity returns the neutral element (0, 1).
func Identity() Point {
	var p Point
	p.X.Zero()
	p.Y.One()
	p.Z.One()
	p.T.Zero()
	return p
}

// Basepoint is the standard Ed25519 generator B.
var Basepoint = Point{
	X: field.Elem{D0: 1738742601995546, D1: 1146398526822698, D2: 2070867633025821, D3: 562264141797630, D4: 587772402128613},
	Y: field.Elem{D0: 1801439850948184, D1: 1351079888211148, D2: 450359962737049, D3: 900719925474099, D4: 1801439850948198},
	Z: field.Elem{D0: 1, D1: 0, D2: 0, D3: 0, D4: 0},
	T: field.Elem{D0: 1841354044333475, D1: 16398895984059, D2: 755974180946558, D3: 900171276175154, D4: 1821297809914039},
}

func fromP1xP1(q *p1xp1) Point {
	var v Point
	v.X.Mul(&q.X, &q.T)
	v.Y.Mul(&q.Y, &q.Z)
	v.Z.Mul(&q.Z, &q.T)
	v.T.Mul(&q.X, &q.Y)
	return v
}

func fromP2(q *p2) Point {
	var v Point
	v.X.Mul(&q.X, &q.Z)
	v.Y.Mul(&q.Y, &q.Z)
	v.Z.Sq(&q.Z)
	v.T.Mul(&q.X, &q.Y)
	return v
}

func toCached(p *Point) cached {
	var c cached
	c.YplusX.Add(&p.Y, &p.X)
	c.YminusX.Sub(&p.Y, &p.X)
	c.Z.Set(&p.Z)
	c.T2d.Mul(&p.T, &curveD2)
	return c
}

func addP1xP1(p *Point, q *cached) p1xp1 {
	var yPlusX, yMinusX, pp, mm, tt2d, zz2 field.Elem
	yPlusX.Add(&p.Y, &p.X)
	yMinusX.Sub(&p.Y, &p.X)
	pp.Mul(&yPlusX, &q.YplusX)
	mm.Mul(&yMinusX, &q.YminusX)
	tt2d.Mul(&p.T, &q.T2d)
	zz2.Mul(&p.Z, &q.Z)
	zz2.Add(&zz2, &zz2)

	var r p1xp1
	r.X.Sub(&pp, &mm)
	r.Y.Add(&pp, &mm)
	r.Z.Add(&zz2, &tt2d)
	r.T.Sub(&zz2, &tt2d)
	return r
}

func subP1xP1(p *Point, q *cached) p1xp1 {
	var yPlusX, yMinusX, pp, mm, tt2d, zz2 field.Elem
	yPlusX.Add(&p.Y, &p.X)
	yMinusX.Sub(&p.Y, &p.X)
	pp.Mul(&yPlusX, &q.YminusX) // sign flipped relative to Add
	mm.Mul(&yMinusX, &q.YplusX)
	tt2d.Mul(&p.T, &q.T2d)
	zz2.Mul(&p.Z, &q.Z)
	zz2.Add(&zz2, &zz2)

	var r p1xp1
	r.X.Sub(&pp, &mm)
	r.Y.Add(&pp, &mm)
	r.Z.Sub(&zz2, &tt2d)
	r.T.Add(&zz2, &tt2d)
	return r
}

func doubleP1xP1(p *Point) p1xp1 {
	var q p2
	q.X, q.Y, q.Z = p.X, p.Y, p.Z

	var xx, yy, zz2, xPlusYSq field.Elem
	xx.Sq(&q.X)
	yy.Sq(&q.Y)
	zz2.Sq(&q.Z)
	zz2.Add(&zz2, &zz2)
	xPlusYSq.Add(&q.X, &q.Y)
	xPlusYSq.Sq(&xPlusYSq)

	var r p1xp1
	r.Y.Add(&yy, &xx)
	r.Z.Sub(&yy, &xx)
	r.X.Sub(&xPlusYSq, &r.Y)
	r.T.Sub(&zz2, &r.Z)
	return r
}

// Add returns p+q.
func Add(p, q Point) Point {
	c := toCached(&q)
	r := addP1xP1(&p, &c)
	return fromP1xP1(&r)
}

// Sub returns p-q.
func Sub(p, q Point) Point {
	c := toCached(&q)
	r := subP1xP1(&p, &c)
	return fromP1xP1(&r)
}

// Double returns p+p.
func Double(p Point) Point {
	r := doubleP1xP1(&p)
	return fromP1xP1(&r)
}

// Neg returns -p.
func Neg(p Point) Point {
	var v Point
	v.X.Negate(&p.X)
	v.Y.Set(&p.Y)
	v.Z.Set(&p.Z)
	v.T.Negate(&p.T)
	return v
}

// Equal returns 1 if p and q represent the same group element, tolerating
// differing projective scalings.
func Equal(p, q Point) int {
	var t1, t2, t3, t4 field.Elem
	t1.Mul(&p.X, &q.Z)
	t2.Mul(&q.X, &p.Z)
	t3.Mul(&p.Y, &q.Z)
	t4.Mul(&q.Y, &p.Z)
	return t1.Equal(&t2) & t3.Equal(&t4)
}

// Select sets v to a if cond == 1, to b if cond == 0.
func Select(a, b Point, cond int) Point {
	var v Point
	v.X.CondSelect(&a.X, &b.X, cond)
	v.Y.CondSelect(&a.Y, &b.Y, cond)
	v.Z.CondSelect(&a.Z, &b.Z, cond)
	v.T.CondSelect(&a.T, &b.T, cond)
	return v
}

// ScalarMult returns [s]p, where s is a 32-byte little-endian scalar
// consumed bit by bit from the most to the least significant. It performs a
// fixed 256 doublings regardless of s, selecting whether to fold in the
// addend at each step via Select rather than branching, so the only
// secret-dependent values are inputs to arithmetic, never control flow or
// memory addresses.
func ScalarMult(s *[32]byte, p Point) Point {
	addend := toCached(&p)
	acc := Identity()
	for i := 255; i >= 0; i-- {
		acc = Double(acc)
		step := addP1xP1(&acc, &addend)
		added := fromP1xP1(&step)
		acc = Select(added, acc, conv.Bit(s, i))
	}
	return acc
}

// ScalarMultBase returns [s]B. It shares ScalarMult's code path rather than
// a dedicated precomputed comb table, trading some throughput for a much
// smaller constant table (this module's rendering of the upstream
// size-over-speed configuration option).
func ScalarMultBase(s *[32]byte) Point {
	return ScalarMult(s, Basepoint)
}

// DoubleScalarMultVartime returns [a]A + [b]B. Because it is only ever used
// to check a public verification equation, it runs in variable time: the
// inputs (a signature's s and the derived challenge scalar, the public key,
// and the basepoint) carry no secrets.
func DoubleScalarMultVartime(a *[32]byte, A Point, b *[32]byte, B Point) Point {
	ca := toCached(&A)
	cb := toCached(&B)
	acc := Identity()
	for i := 255; i >= 0; i-- {
		acc = Double(acc)
		if conv.Bit(a, i) == 1 {
			step := addP1xP1(&acc, &ca)
			acc = fromP1xP1(&step)
		}
		if conv.Bit(b, i) == 1 {
			step := addP1xP1(&acc, &cb)
			acc = fromP1xP1(&step)
		}
	}
	return acc
}

// Compress encodes p as the standard 32-byte little-endian y-coordinate with
// the sign of x folded into the top bit.
func Compress(p Point) [32]byte {
	var invZ, x, y field.Elem
	invZ.Invert(&p.Z)
	x.Mul(&p.X, &invZ)
	y.Mul(&p.Y, &invZ)

	enc := y.Bytes()
	var out [32]byte
	copy(out[:], enc)
	out[31] |= byte(x.IsNegative()) << 7
	return out
}

// isCanonicalFieldBytes reports whether the low 255 bits of b, interpreted
// little-endian, represent an integer strictly less than p.
func isCanonicalFieldBytes(b [32]byte) bool {
	b[31] &= 0x7f
	var e field.Elem
	e.SetBytes(b[:])
	canon := e.Bytes()
	for i := range canon {
		if canon[i] != b[i] {
			return false
		}
	}
	return true
}

// Decompress recovers the point encoded by Compress, rejecting encodings
// whose y-coordinate is not canonical (y >= p) and encodings with no square
// root, per the Ed25519 public-key import policy.
func Decompress(enc [32]byte) (Point, bool) {
	if !isCanonicalFieldBytes(enc) {
		return Point{}, false
	}
	signBit := int(enc[31] >> 7)
	enc[31] &= 0x7f

	var y, y2, u, v, x field.Elem
	y.SetBytes(enc[:])
	y2.Sq(&y)
	u.Sub(&y2, oneElem())

	// v = d*y^2 + 1
	v.Mul(&curveD, &y2)
	v.Add(&v, oneElem())

	wasSquare := x.SqrtRatio(&u, &v)
	if wasSquare == 0 {
		return Point{}, false
	}
	if x.IsZero() == 1 && signBit == 1 {
		return Point{}, false
	}
	if x.IsNegative() != signBit {
		x.Negate(&x)
	}

	var p Point
	p.X = x
	p.Y = y
	p.Z.One()
	p.T.Mul(&x, &y)
	return p, true
}

func oneElem() *field.Elem {
	var e field.Elem
	e.One()
	return &e
}
