package compositor

import "math"

// Epsilon constants for matrix classification and inversion.
// These are fixed by the pipeline's bake policy; callers must not
// substitute their own tolerances.
const (
	// ClassifyEpsilon is the per-component tolerance used by IsIdentity,
	// IsTranslationOnly and HasRotation.
	ClassifyEpsilon = 1e-6

	// DegenerateEpsilon is the determinant threshold below which a matrix
	// is treated as non-invertible.
	DegenerateEpsilon = 1e-10
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
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
// Use negative values to flip the image.
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

// Compose combines two transforms so that inner is applied first.
// Equivalent to the matrix product outer * inner.
func Compose(outer, inner Matrix) Matrix {
	return outer.Multiply(inner)
}

// Multiply multiplies two matrices (m * other). The other transform is
// applied first.
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

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse matrix.
//
// A matrix whose determinant is within DegenerateEpsilon of zero is
// degenerate: Invert returns the identity matrix and false. A momentarily
// zero scale during interactive editing is valid input, so degeneracy is
// recovered here rather than propagated as a failure.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < DegenerateEpsilon {
		Logger().Warn("degenerate transform, substituting identity",
			"det", det)
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// IsIdentity reports whether the matrix is the identity transform within
// ClassifyEpsilon per component.
func (m Matrix) IsIdentity() bool {
	return m.IsTranslationOnly() &&
		math.Abs(m.C) < ClassifyEpsilon &&
		math.Abs(m.F) < ClassifyEpsilon
}

// IsTranslationOnly reports whether the matrix moves pixels without
// resampling them: the linear part is the identity within ClassifyEpsilon.
func (m Matrix) IsTranslationOnly() bool {
	return math.Abs(m.A-1) < ClassifyEpsilon &&
		math.Abs(m.B) < ClassifyEpsilon &&
		math.Abs(m.D) < ClassifyEpsilon &&
		math.Abs(m.E-1) < ClassifyEpsilon
}

// HasRotation reports whether the matrix contains a rotation or shear
// component: either off-diagonal term exceeds ClassifyEpsilon.
func (m Matrix) HasRotation() bool {
	return math.Abs(m.B) > ClassifyEpsilon || math.Abs(m.D) > ClassifyEpsilon
}

// PivotTransform builds the canonical editable transform used by
// transform nodes: translate(-pivot), scale, rotate, translate(+pivot),
// then translate(tx, ty). The pivot is in source-image pixel units.
func PivotTransform(sx, sy, angle, pivotX, pivotY, tx, ty float64) Matrix {
	m := Translate(-pivotX, -pivotY)
	m = Compose(Scale(sx, sy), m)
	m = Compose(Rotate(angle), m)
	m = Compose(Translate(pivotX, pivotY), m)
	return Compose(Translate(tx, ty), m)
}
