// Package geom provides the geometry primitives shared by the rasterizer,
// stroker, and paint tree: points, affine matrices, and paths built from a
// parallel command/point sequence.
package geom

import "math"

// Point is a 2D point or vector using 32-bit float components, matching
// the design-space precision used throughout the rasterization pipeline.
type Point struct {
	X, Y float32
}

// Pt is a convenience constructor for Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar z-component).
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	return p.Sub(q).Length()
}

// Lerp linearly interpolates between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Abs returns the componentwise absolute value of the point.
func (p Point) Abs() Point {
	return Point{X: float32(math.Abs(float64(p.X))), Y: float32(math.Abs(float64(p.Y)))}
}

// Max returns the componentwise maximum of two points.
func Max(a, b Point) Point {
	return Point{X: maxF(a.X, b.X), Y: maxF(a.Y, b.Y)}
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Neg returns the negated vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Normalize returns the unit vector in the direction of p, or the zero
// vector if p has zero length.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return p.Mul(1 / l)
}

// Angle returns the direction of the vector in radians, as given by
// math.Atan2(p.Y, p.X).
func (p Point) Angle() float64 {
	return math.Atan2(float64(p.Y), float64(p.X))
}
