// Package scene defines the renderer-agnostic vector scene model: paths,
// paints, clip regions and the draw commands a content-stream interpreter
// emits for tessellation, rasterization or serialization.
package scene

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Matrix represents a 2D affine transformation matrix.
//
// Transform maps a point using the row-vector convention:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translation returns a matrix translating by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Multiply multiplies two matrices. The result applies m first, then n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

// Transform applies the matrix to a point (returns x, y coordinates).
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformPoint applies the matrix to a Point and returns a new Point.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{X: x, Y: y}
}

// TransformDelta applies the matrix to a vector, ignoring translation.
func (m Matrix) TransformDelta(dx, dy float64) (float64, float64) {
	return m.A*dx + m.C*dy, m.B*dx + m.D*dy
}

// IsIdentity reports whether the matrix is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Matrix{1, 0, 0, 1, 0, 0}
}
