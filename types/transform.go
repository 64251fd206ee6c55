package types

import (
	"fmt"
	"math"
)

// Axis selects a coordinate axis for rotations.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Convert an angle from degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * math.Pi / 180.0
}

// Transformation is an affine map carrying both its matrix and the analytic
// inverse. Every factory synthesizes the inverse directly, so no numerical
// inversion ever happens: normals and shape queries read Inv constantly.
type Transformation struct {
	M   Mat4
	Inv Mat4
}

// Create the identity transformation.
func Identity() Transformation {
	return Transformation{M: Ident4(), Inv: Ident4()}
}

// Create a translation by the given vector.
func Translation(v Vec3) Transformation {
	m, inv := Ident4(), Ident4()
	m[3], m[7], m[11] = v[0], v[1], v[2]
	inv[3], inv[7], inv[11] = -v[0], -v[1], -v[2]
	return Transformation{M: m, Inv: inv}
}

// Create a scaling by the given factors. A zero factor has no inverse and is
// rejected.
func Scaling(v Vec3) (Transformation, error) {
	if v[0] == 0 || v[1] == 0 || v[2] == 0 {
		return Transformation{}, fmt.Errorf("types: scaling factors must be non-zero; got (%g, %g, %g)", v[0], v[1], v[2])
	}
	var m, inv Mat4
	m[0], m[5], m[10], m[15] = v[0], v[1], v[2], 1
	inv[0], inv[5], inv[10], inv[15] = 1/v[0], 1/v[1], 1/v[2], 1
	return Transformation{M: m, Inv: inv}, nil
}

// Create a right-handed rotation of angle degrees about a coordinate axis.
func Rotation(angle float32, axis Axis) Transformation {
	theta := DegToRad(angle)
	cos := float32(math.Cos(float64(theta)))
	sin := float32(math.Sin(float64(theta)))

	var m Mat4
	m[15] = 1

	switch axis {
	case AxisX:
		m[0] = 1
		m[5], m[6] = cos, -sin
		m[9], m[10] = sin, cos
	case AxisY:
		m[0], m[2] = cos, sin
		m[5] = 1
		m[8], m[10] = -sin, cos
	case AxisZ:
		m[0], m[1] = cos, -sin
		m[4], m[5] = sin, cos
		m[10] = 1
	}

	// a rotation is orthogonal: the inverse is the transpose
	return Transformation{M: m, Inv: m.Transpose()}
}

// Create a right-handed rotation of angle degrees about an arbitrary axis.
// The axis does not need to be normalized.
func RotationAxis(axis Vec3, angle float32) Transformation {
	q := QuatFromAxisAngle(axis.Normalize(), DegToRad(angle))
	m := q.Mat4()
	return Transformation{M: m, Inv: m.Transpose()}
}

// Returns the inverse transformation by swapping the matrix pair.
func (t Transformation) Inverse() Transformation {
	return Transformation{M: t.Inv, Inv: t.M}
}

// Compose two transformations: the result applies o first, then t.
func (t Transformation) Mul(o Transformation) Transformation {
	return Transformation{
		M:   t.M.Mult(o.M),
		Inv: o.Inv.Mult(t.Inv),
	}
}

// Apply the transformation to a vector: the translation column is ignored.
func (t Transformation) ApplyVec(v Vec3) Vec3 {
	m := &t.M
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// Apply the transformation to a point, including the translation column.
func (t Transformation) ApplyPoint(p Point3) Point3 {
	m := &t.M
	return Point3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}

// Apply the transformation to a normal using the transposed inverse matrix.
func (t Transformation) ApplyNormal(n Normal3) Normal3 {
	m := &t.Inv
	return Normal3{
		m[0]*n[0] + m[4]*n[1] + m[8]*n[2],
		m[1]*n[0] + m[5]*n[1] + m[9]*n[2],
		m[2]*n[0] + m[6]*n[1] + m[10]*n[2],
	}
}

// Check that M * Inv is the identity within tolerance.
func (t Transformation) IsConsistent() bool {
	return t.M.Mult(t.Inv).IsClose(Ident4(), 1e-4)
}

// Compare two transformations element-wise within epsilon.
func (t Transformation) IsClose(o Transformation, epsilon float32) bool {
	return t.M.IsClose(o.M, epsilon) && t.Inv.IsClose(o.Inv, epsilon)
}
