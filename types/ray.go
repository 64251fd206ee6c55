package types

import "math"

// Inf is the open upper bound for ray parameters.
var Inf = float32(math.Inf(1))

// Ray is the parametric segment origin + t*direction for t in (TMin, TMax).
// The direction is not required to be unit length. Depth counts the number of
// scattering events that produced the ray.
type Ray struct {
	Origin Point3
	Dir    Vec3
	TMin   float32
	TMax   float32
	Depth  int
}

// Create a ray with the default parameter range (1e-5, +inf) and depth 0.
func NewRay(origin Point3, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir, TMin: 1e-5, TMax: Inf}
}

// Evaluate the ray at parameter t.
func (r Ray) At(t float32) Point3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform origin and direction, preserving the parameter range and depth.
func (r Ray) Transform(t Transformation) Ray {
	return Ray{
		Origin: t.ApplyPoint(r.Origin),
		Dir:    t.ApplyVec(r.Dir),
		TMin:   r.TMin,
		TMax:   r.TMax,
		Depth:  r.Depth,
	}
}

// Compare origin and direction of two rays within epsilon.
func (r Ray) IsClose(o Ray, epsilon float32) bool {
	return AreClose(r.Origin[0], o.Origin[0], epsilon) &&
		AreClose(r.Origin[1], o.Origin[1], epsilon) &&
		AreClose(r.Origin[2], o.Origin[2], epsilon) &&
		AreClose(r.Dir[0], o.Dir[0], epsilon) &&
		AreClose(r.Dir[1], o.Dir[1], epsilon) &&
		AreClose(r.Dir[2], o.Dir[2], epsilon)
}
