package scene

import (
	"math"

	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Shape is anything a ray can intersect. IsHit reports the closest
// intersection inside the ray's parameter range; AnyHit only answers whether
// one exists, which is all visibility queries need.
type Shape interface {
	IsHit(ray types.Ray) (HitRecord, bool)
	AnyHit(ray types.Ray) bool
}

// Normal of the unit sphere at a surface point, oriented against the ray.
func sphereNormal(point types.Point3, rayDir types.Vec3) (types.Normal3, bool) {
	n := types.Normal3(point)
	inside := point.Vec().Dot(rayDir) >= 0
	if inside {
		n = n.Neg()
	}
	return n, inside
}

// Surface coordinates on the unit sphere: u from the longitude in [0, 1), v
// from the colatitude in [0, 1], reaching 1 at the south pole.
func sphereUV(point types.Point3) types.Vec2 {
	u := float32(math.Atan2(float64(point[1]), float64(point[0]))) / (2 * math.Pi)
	if u < 0 {
		u++
	}
	z := float64(point[2])
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	v := float32(math.Acos(z)) / math.Pi
	return types.Vec2{u, v}
}

// Sphere is the unit sphere at the origin moved by a transformation.
type Sphere struct {
	Material  Material
	Transform types.Transformation
}

func NewSphere(material Material, transform types.Transformation) *Sphere {
	return &Sphere{Material: material, Transform: transform}
}

// Solve the sphere quadratic in the local frame, returning the two candidate
// parameters and whether the ray intersects the support at all.
func sphereIntersections(invRay types.Ray) (t1, t2 float32, ok bool) {
	origin := invRay.Origin.Vec()
	a := invRay.Dir.Len2()
	b := origin.Dot(invRay.Dir) // half the usual b
	c := origin.Len2() - 1

	delta := b*b - a*c // a quarter of the usual discriminant
	if delta <= 0 {
		return 0, 0, false
	}

	sqrtDelta := float32(math.Sqrt(float64(delta)))
	return (-b - sqrtDelta) / a, (-b + sqrtDelta) / a, true
}

func (s *Sphere) IsHit(ray types.Ray) (HitRecord, bool) {
	invRay := ray.Transform(s.Transform.Inverse())

	t1, t2, ok := sphereIntersections(invRay)
	if !ok {
		return HitRecord{}, false
	}

	var t float32
	switch {
	case t1 > invRay.TMin && t1 < invRay.TMax:
		t = t1
	case t2 > invRay.TMin && t2 < invRay.TMax:
		t = t2
	default:
		return HitRecord{}, false
	}

	localHit := invRay.At(t)
	normal, inside := sphereNormal(localHit, invRay.Dir)

	return HitRecord{
		WorldPoint: s.Transform.ApplyPoint(localHit),
		Normal:     s.Transform.ApplyNormal(normal),
		SurfaceUV:  sphereUV(localHit),
		T:          t,
		Ray:        ray,
		Material:   s.Material,
		IsInside:   inside,
	}, true
}

func (s *Sphere) AnyHit(ray types.Ray) bool {
	invRay := ray.Transform(s.Transform.Inverse())

	t1, t2, ok := sphereIntersections(invRay)
	if !ok {
		return false
	}
	return (t1 > invRay.TMin && t1 < invRay.TMax) || (t2 > invRay.TMin && t2 < invRay.TMax)
}

// Plane is the z = 0 plane in its local frame moved by a transformation.
type Plane struct {
	Material  Material
	Transform types.Transformation
}

func NewPlane(material Material, transform types.Transformation) *Plane {
	return &Plane{Material: material, Transform: transform}
}

func (p *Plane) IsHit(ray types.Ray) (HitRecord, bool) {
	invRay := ray.Transform(p.Transform.Inverse())

	if float32(math.Abs(float64(invRay.Dir[2]))) < 1e-5 {
		return HitRecord{}, false // parallel to the plane
	}

	t := -invRay.Origin[2] / invRay.Dir[2]
	if t <= invRay.TMin || t >= invRay.TMax {
		return HitRecord{}, false
	}

	localHit := invRay.At(t)

	normalZ := float32(1)
	if invRay.Dir[2] > 0 {
		normalZ = -1
	}

	return HitRecord{
		WorldPoint: p.Transform.ApplyPoint(localHit),
		Normal:     p.Transform.ApplyNormal(types.Normal3{0, 0, normalZ}),
		SurfaceUV: types.Vec2{
			localHit[0] - float32(math.Floor(float64(localHit[0]))),
			localHit[1] - float32(math.Floor(float64(localHit[1]))),
		},
		T:        t,
		Ray:      ray,
		Material: p.Material,
	}, true
}

func (p *Plane) AnyHit(ray types.Ray) bool {
	invRay := ray.Transform(p.Transform.Inverse())

	if float32(math.Abs(float64(invRay.Dir[2]))) < 1e-5 {
		return false
	}

	t := -invRay.Origin[2] / invRay.Dir[2]
	return t > invRay.TMin && t < invRay.TMax
}
