package scene

import "github.com/Enrico-Carissimi/RayTracer/types"

// PointLight is a point source for the direct-lighting renderer. A positive
// LinearRadius enables (radius/distance)^2 attenuation.
type PointLight struct {
	Position     types.Point3
	Color        types.Color
	LinearRadius float32
}

// World is the scene content: shapes, point lights and the color returned
// when a ray escapes.
type World struct {
	BackgroundColor types.Color
	PointLights     []PointLight

	shapes []Shape
}

// Add a shape to the world.
func (w *World) AddShape(shape Shape) {
	w.shapes = append(w.shapes, shape)
}

// Add a point light to the world.
func (w *World) AddLight(light PointLight) {
	w.PointLights = append(w.PointLights, light)
}

// ClosestHit finds the intersection with the smallest parameter over all
// shapes. The returned record carries a normalized normal.
func (w *World) ClosestHit(ray types.Ray) (HitRecord, bool) {
	var closest HitRecord
	hit := false

	for _, shape := range w.shapes {
		rec, ok := shape.IsHit(ray)
		if ok && (!hit || rec.T < closest.T) {
			hit = true
			closest = rec
		}
	}

	if hit {
		closest.Normal = closest.Normal.Normalize()
	}
	return closest, hit
}

// IsPointVisible tells whether the segment from the observer to the point is
// free of geometry. The lower bound scales with the distance so the shadow
// ray does not re-hit the surface it leaves from.
func (w *World) IsPointVisible(point, observer types.Point3) bool {
	direction := point.Sub(observer)
	ray := types.Ray{
		Origin: observer,
		Dir:    direction,
		TMin:   1e-2 / direction.Len(),
		TMax:   1.0,
	}

	for _, shape := range w.shapes {
		if shape.AnyHit(ray) {
			return false
		}
	}
	return true
}
