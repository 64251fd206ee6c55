package types

import "golang.org/x/image/math/f32"

// Mat4 is a 4x4 matrix stored in row-major order: element (r, c) lives at
// index 4*r + c.
type Mat4 f32.Mat4

// Create the identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Multiply two matrices. The product is spelled out because matrices are only
// built while assembling transformations, never per ray.
func (m Mat4) Mult(o Mat4) Mat4 {
	return Mat4{
		m[0]*o[0] + m[1]*o[4] + m[2]*o[8] + m[3]*o[12],
		m[0]*o[1] + m[1]*o[5] + m[2]*o[9] + m[3]*o[13],
		m[0]*o[2] + m[1]*o[6] + m[2]*o[10] + m[3]*o[14],
		m[0]*o[3] + m[1]*o[7] + m[2]*o[11] + m[3]*o[15],
		m[4]*o[0] + m[5]*o[4] + m[6]*o[8] + m[7]*o[12],
		m[4]*o[1] + m[5]*o[5] + m[6]*o[9] + m[7]*o[13],
		m[4]*o[2] + m[5]*o[6] + m[6]*o[10] + m[7]*o[14],
		m[4]*o[3] + m[5]*o[7] + m[6]*o[11] + m[7]*o[15],
		m[8]*o[0] + m[9]*o[4] + m[10]*o[8] + m[11]*o[12],
		m[8]*o[1] + m[9]*o[5] + m[10]*o[9] + m[11]*o[13],
		m[8]*o[2] + m[9]*o[6] + m[10]*o[10] + m[11]*o[14],
		m[8]*o[3] + m[9]*o[7] + m[10]*o[11] + m[11]*o[15],
		m[12]*o[0] + m[13]*o[4] + m[14]*o[8] + m[15]*o[12],
		m[12]*o[1] + m[13]*o[5] + m[14]*o[9] + m[15]*o[13],
		m[12]*o[2] + m[13]*o[6] + m[14]*o[10] + m[15]*o[14],
		m[12]*o[3] + m[13]*o[7] + m[14]*o[11] + m[15]*o[15],
	}
}

// Transpose the matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Compare two matrices element-wise within epsilon.
func (m Mat4) IsClose(o Mat4, epsilon float32) bool {
	for i := range m {
		if !AreClose(m[i], o[i], epsilon) {
			return false
		}
	}
	return true
}
