package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

const floatCmpEpsilon = 1e-5

type Vec2 f32.Vec2
type Vec3 f32.Vec3

// Point3 is a location in space. It shares the storage layout of Vec3 but
// transforms differently: the translation column applies to points only.
type Point3 f32.Vec3

// Normal3 is a surface normal. Transformations apply the inverse-transpose
// matrix to normals so that they stay perpendicular under non-rigid maps.
type Normal3 f32.Vec3

// Define a 2 component vector.
func XY(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Define a point from its coordinates.
func Pt(x, y, z float32) Point3 {
	return Point3{x, y, z}
}

// Define a normal from its components.
func Nrm(x, y, z float32) Normal3 {
	return Normal3{x, y, z}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Negate the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Get 3 component vector length.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Get the squared vector length.
func (v Vec3) Len2() float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Normalize 3 component vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	s := 1.0 / l
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Calculate dot product of 2 vectors
func (v Vec3) Dot(v2 Vec3) float32 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Reinterpret the vector as a normal.
func (v Vec3) Normal() Normal3 {
	return Normal3(v)
}

// Subtract a vector.
func (v Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v[0] - v2[0], v[1] - v2[1]}
}

// Calculate dot product of 2 vectors
func (v Vec2) Dot(v2 Vec2) float32 {
	return v[0]*v2[0] + v[1]*v2[1]
}

// Translate the point by a vector.
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p[0] + v[0], p[1] + v[1], p[2] + v[2]}
}

// Get the displacement vector from p2 to p.
func (p Point3) Sub(p2 Point3) Vec3 {
	return Vec3{p[0] - p2[0], p[1] - p2[1], p[2] - p2[2]}
}

// Reinterpret the point as a vector from the origin.
func (p Point3) Vec() Vec3 {
	return Vec3(p)
}

// Negate the normal.
func (n Normal3) Neg() Normal3 {
	return Normal3{-n[0], -n[1], -n[2]}
}

// Normalize the normal to unit length.
func (n Normal3) Normalize() Normal3 {
	return Normal3(Vec3(n).Normalize())
}

// Reinterpret the normal as a vector.
func (n Normal3) Vec() Vec3 {
	return Vec3(n)
}

// Reflect d about the unit normal n.
func Reflect(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * n.Dot(d)))
}

// Refract the unit direction d through the unit normal n, where eta is the
// ratio of the refraction indices of the medium left and the medium entered.
// Total internal reflection falls back to the mirror direction.
func Refract(d, n Vec3, eta float32) Vec3 {
	cosIn := -d.Dot(n)
	if cosIn < 0 {
		cosIn, n = -cosIn, n.Neg()
	}
	sin2Out := eta * eta * (1 - cosIn*cosIn)
	if sin2Out > 1 {
		return Reflect(d, n)
	}
	cosOut := float32(math.Sqrt(float64(1 - sin2Out)))
	return d.Mul(eta).Add(n.Mul(eta*cosIn - cosOut))
}

// Compare two scalars within epsilon.
func AreClose(a, b, epsilon float32) bool {
	return float32(math.Abs(float64(a-b))) < epsilon
}
