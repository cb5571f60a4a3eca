package vis

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
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

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsAxisAligned returns true if the transformation maps axis-aligned
// rectangles to axis-aligned rectangles. Translations, scales
// (including negative scales), and quarter-turn rotations qualify;
// shears and other rotations do not.
func (m Matrix) IsAxisAligned() bool {
	if math.Abs(m.B) <= epsilon && math.Abs(m.D) <= epsilon {
		return true
	}
	// Quarter turns swap the axes.
	return math.Abs(m.A) <= epsilon && math.Abs(m.E) <= epsilon
}

// TransformRect returns the axis-aligned bounding box of the four
// transformed corners of r. The second result reports whether the
// mapping kept the rectangle axis-aligned, i.e. whether the returned
// box is exactly the image of r rather than a conservative bound.
func (m Matrix) TransformRect(r Rect) (Rect, bool) {
	p0 := m.TransformPoint(r.Min)
	p1 := m.TransformPoint(Point{X: r.Max.X, Y: r.Min.Y})
	p2 := m.TransformPoint(r.Max)
	p3 := m.TransformPoint(Point{X: r.Min.X, Y: r.Max.Y})

	out := Rect{
		Min: Point{
			X: math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X)),
			Y: math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y)),
		},
		Max: Point{
			X: math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X)),
			Y: math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y)),
		},
	}
	return out, m.IsAxisAligned()
}
