package recording

import "math"

// Matrix is a 2D affine transformation in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// applying as x' = A*x + B*y + C, y' = D*x + E*y + F.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Rotate returns a rotation matrix for angle radians.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Mul returns m * other, applying other before m.
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply maps a point through the transformation.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// IsIdentity reports whether m is (numerically) the identity.
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m.A-1) < eps && math.Abs(m.B) < eps && math.Abs(m.C) < eps &&
		math.Abs(m.D) < eps && math.Abs(m.E-1) < eps && math.Abs(m.F) < eps
}

// ScaleFactor returns the larger singular value of the 2x2 part.
// It is the factor by which stroke widths grow under the transform.
func (m Matrix) ScaleFactor() float64 {
	sx := math.Hypot(m.A, m.D)
	sy := math.Hypot(m.B, m.E)
	return math.Max(sx, sy)
}

// Rect is an axis-aligned rectangle with Min <= Max.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect creates a rectangle from origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Path converts the rectangle to a closed path.
func (r Rect) Path() *Path {
	p := NewPath()
	p.MoveTo(r.MinX, r.MinY)
	p.LineTo(r.MaxX, r.MinY)
	p.LineTo(r.MaxX, r.MaxY)
	p.LineTo(r.MinX, r.MaxY)
	p.ClosePath()
	return p
}
