package geom

import "math"

// Matrix is a 2D affine transform stored as a 2x3 row-major matrix:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F.
//
// Composition follows spec §3.1: (A ∘ B).Apply(p) == A.Apply(B.Apply(p)).
// Multiply is defined so that m.Multiply(other) applies other first, then m.
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation matrix.
func Translate(x, y float32) Matrix {
	return Matrix{A: 1, B: 0, C: x, D: 0, E: 1, F: y}
}

// Scale returns a scaling matrix.
func Scale(x, y float32) Matrix {
	return Matrix{A: x, B: 0, C: 0, D: 0, E: y, F: 0}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: float32(c), B: float32(-s), C: 0, D: float32(s), E: float32(c), F: 0}
}

// Multiply returns the composition m ∘ other: applying the result to a
// point is equivalent to applying other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the linear part of the matrix only (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y, Y: m.D*p.X + m.E*p.Y}
}

// Invert returns the inverse matrix, or Identity if the matrix is singular.
func (m Matrix) Invert() Matrix {
	det := float64(m.A)*float64(m.E) - float64(m.B)*float64(m.D)
	if math.Abs(det) < 1e-12 {
		return Identity()
	}
	invDet := 1.0 / det
	return Matrix{
		A: float32(float64(m.E) * invDet),
		B: float32(-float64(m.B) * invDet),
		C: float32((float64(m.B)*float64(m.F) - float64(m.C)*float64(m.E)) * invDet),
		D: float32(-float64(m.D) * invDet),
		E: float32(float64(m.A) * invDet),
		F: float32((float64(m.C)*float64(m.D) - float64(m.A)*float64(m.F)) * invDet),
	}
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
