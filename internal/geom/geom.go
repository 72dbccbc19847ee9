// Package geom provides 2D geometric primitives and affine transformations:
// - Vector and point arithmetic
// - Line segments and segment intersection
// - Bounding box operations
// - 2D affine transformations (translation, rotation, scaling)
//
// None of the primitives guard against degenerate input. Normalizing a zero
// vector, or asking for the angle against one, yields NaN rather than an
// error.
package geom

import (
	"fmt"
	"math"
)

// VectorTolerance is the per-axis slack used by Vector.Equal.
const VectorTolerance = 0.001

// angleDamping keeps the cosine passed to math.Acos inside [-1, 1] when
// rounding pushes it slightly out.
const angleDamping = 0.9999

// Vector represents a 2D displacement.
type Vector struct {
	X float64
	Y float64
}

// Point represents a 2D position in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakeVector(x, y float64) Vector             { return Vector{X: x, Y: y} }
func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (v Vector) Add(u Vector) Vector    { return Vector{v.X + u.X, v.Y + u.Y} }
func (v Vector) Sub(u Vector) Vector    { return Vector{v.X - u.X, v.Y - u.Y} }
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }
func (v Vector) Neg() Vector            { return Vector{-v.X, -v.Y} }

// Len returns the Euclidean length of v.
func (v Vector) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Norm returns the unit vector pointing along v. The zero vector yields NaN
// components.
func (v Vector) Norm() Vector {
	l := v.Len()
	return Vector{v.X / l, v.Y / l}
}

// Equal reports whether v and u agree within VectorTolerance on both axes.
func (v Vector) Equal(u Vector) bool {
	return math.Abs(v.X-u.X) < VectorTolerance && math.Abs(v.Y-u.Y) < VectorTolerance
}

func (v Vector) String() string { return fmt.Sprintf("<%g, %g>", v.X, v.Y) }

func Dot(v, u Vector) float64 { return v.X*u.X + v.Y*u.Y }

// Angle returns the unsigned angle between v and u in radians, in [0, π].
// The cosine is damped slightly before the inverse cosine, so parallel
// vectors report a small positive angle rather than exactly zero.
func Angle(v, u Vector) float64 {
	return math.Acos(Dot(v, u) / (v.Len() * u.Len()) * angleDamping)
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vector { return Vector{p.X - q.X, p.Y - q.Y} }

// Add returns p translated by v.
func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

func Dist(p, q Point) float64 { return p.Sub(q).Len() }

// Center returns the midpoint of the box.
func (b Box) Center() Point { return Point{b.X + 0.5*b.W, b.Y + 0.5*b.H} }

// BoxAround returns a box of the given size centered on c.
func BoxAround(c Point, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Bounds returns the smallest box containing all points. An empty slice
// returns the zero box.
func Bounds(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return MakeBox(minX, minY, maxX-minX, maxY-minY)
}

// Identity returns the identity transform.
func Identity() Affine { return MakeAffine(1, 0, 0, 0, 1, 0) }

// Translation returns a transform shifting by (tx, ty).
func Translation(tx, ty float64) Affine { return MakeAffine(1, 0, tx, 0, 1, ty) }

// Scaling returns a transform scaling each axis independently about the origin.
func Scaling(sx, sy float64) Affine { return MakeAffine(sx, 0, 0, 0, sy, 0) }

// Rotation returns a counter-clockwise rotation about the origin by theta
// radians.
func Rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return MakeAffine(cos, -sin, 0, sin, cos, 0)
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// MulVector applies the linear part of the transform, ignoring translation.
func (t Affine) MulVector(v Vector) Vector {
	return Vector{
		X: t.A*v.X + t.B*v.Y,
		Y: t.D*v.X + t.E*v.Y,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// FillBox returns a transform that maps box b1 into b2, preserving aspect
// ratio and centering the result.
func FillBox(b1, b2 Box) (Affine, error) {
	if b1.W <= 0 || b1.H <= 0 {
		return Affine{}, fmt.Errorf("source box must have positive width and height, got W=%v H=%v", b1.W, b1.H)
	}
	if b2.W <= 0 || b2.H <= 0 {
		return Affine{}, fmt.Errorf("destination box must have positive width and height, got W=%v H=%v", b2.W, b2.H)
	}

	sc := math.Min(b2.W/b1.W, b2.H/b1.H)
	dst, src := b2.Center(), b1.Center()
	return Translation(dst.X, dst.Y).Mul(Scaling(sc, sc)).Mul(Translation(-src.X, -src.Y)), nil
}
