package scene

import (
	"math"

	"github.com/Enrico-Carissimi/RayTracer/sampler"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

// HitRecord describes a ray-surface intersection in world space. It carries a
// shared reference to the material at the hit: many shapes (and many records)
// may point to the same material, which outlives all of them.
type HitRecord struct {
	WorldPoint types.Point3
	Normal     types.Normal3
	SurfaceUV  types.Vec2
	T          float32
	Ray        types.Ray
	Material   Material
	IsInside   bool
}

// Material couples an albedo texture and an emitted-radiance texture with a
// scattering rule. Color returns the raw albedo, Eval the BRDF value for a
// pair of incidence angles, Scatter the next ray of a path.
type Material interface {
	Color(uv types.Vec2) types.Color
	Emitted(uv types.Vec2) types.Color
	Eval(uv types.Vec2, thetaIn, thetaOut float32) types.Color
	Scatter(pcg *sampler.PCG, rec HitRecord, depth int) types.Ray
}

// DiffuseMaterial is a Lambertian surface: the BRDF is the albedo scaled by
// reflectance/pi and scattered rays are cosine-weighted around the normal.
type DiffuseMaterial struct {
	albedo      Texture
	emitted     Texture
	reflectance float32 // already divided by pi
}

// Create a diffuse material; reflectance is usually 1.
func NewDiffuseMaterial(albedo, emitted Texture, reflectance float32) *DiffuseMaterial {
	return &DiffuseMaterial{
		albedo:      albedo,
		emitted:     emitted,
		reflectance: reflectance / math.Pi,
	}
}

func (m *DiffuseMaterial) Color(uv types.Vec2) types.Color {
	return m.albedo.Color(uv)
}

func (m *DiffuseMaterial) Emitted(uv types.Vec2) types.Color {
	return m.emitted.Color(uv)
}

func (m *DiffuseMaterial) Eval(uv types.Vec2, thetaIn, thetaOut float32) types.Color {
	return m.albedo.Color(uv).Mul(m.reflectance)
}

func (m *DiffuseMaterial) Scatter(pcg *sampler.PCG, rec HitRecord, depth int) types.Ray {
	return types.Ray{
		Origin: rec.WorldPoint,
		Dir:    pcg.SampleHemisphere(rec.Normal.Vec()),
		TMin:   1e-5,
		TMax:   types.Inf,
		Depth:  depth,
	}
}

// DefaultThresholdAngle is the angular tolerance (0.1 degrees) within which a
// specular BRDF reflects.
const DefaultThresholdAngle = math.Pi / 1800.0

// SpecularMaterial is a mirror. Blur in [0, 1) perturbs the reflected
// direction to fake a rough surface.
type SpecularMaterial struct {
	albedo         Texture
	emitted        Texture
	blur           float32
	thresholdAngle float32
}

func NewSpecularMaterial(albedo, emitted Texture, blur, thresholdAngle float32) *SpecularMaterial {
	return &SpecularMaterial{
		albedo:         albedo,
		emitted:        emitted,
		blur:           blur,
		thresholdAngle: thresholdAngle,
	}
}

func (m *SpecularMaterial) Color(uv types.Vec2) types.Color {
	return m.albedo.Color(uv)
}

func (m *SpecularMaterial) Emitted(uv types.Vec2) types.Color {
	return m.emitted.Color(uv)
}

func (m *SpecularMaterial) Eval(uv types.Vec2, thetaIn, thetaOut float32) types.Color {
	if types.AreClose(thetaIn, thetaOut, m.thresholdAngle) {
		return m.albedo.Color(uv)
	}
	return types.Color{}
}

func (m *SpecularMaterial) Scatter(pcg *sampler.PCG, rec HitRecord, depth int) types.Ray {
	reflected := types.Reflect(rec.Ray.Dir.Normalize(), rec.Normal.Normalize().Vec())

	// the perturbation is drawn in the hemisphere around the reflected
	// direction, so it never points against it; near grazing angles the
	// blurred ray can still point below the surface
	if m.blur > 0 {
		reflected = reflected.Add(pcg.SampleHemisphere(reflected).Mul(m.blur))
	}

	return types.Ray{
		Origin: rec.WorldPoint,
		Dir:    reflected,
		TMin:   1e-5,
		TMax:   types.Inf,
		Depth:  depth,
	}
}

// TransparentMaterial refracts rays through the surface following Snell's
// law, using the hit's inside flag to pick the index ratio.
type TransparentMaterial struct {
	albedo          Texture
	emitted         Texture
	refractionIndex float32
}

func NewTransparentMaterial(albedo, emitted Texture, refractionIndex float32) *TransparentMaterial {
	return &TransparentMaterial{
		albedo:          albedo,
		emitted:         emitted,
		refractionIndex: refractionIndex,
	}
}

func (m *TransparentMaterial) Color(uv types.Vec2) types.Color {
	return m.albedo.Color(uv)
}

func (m *TransparentMaterial) Emitted(uv types.Vec2) types.Color {
	return m.emitted.Color(uv)
}

func (m *TransparentMaterial) Eval(uv types.Vec2, thetaIn, thetaOut float32) types.Color {
	return m.albedo.Color(uv).Mul(1 / math.Pi)
}

func (m *TransparentMaterial) Scatter(pcg *sampler.PCG, rec HitRecord, depth int) types.Ray {
	// leaving the object the ratio is n/1, entering it 1/n
	eta := 1 / m.refractionIndex
	if rec.IsInside {
		eta = m.refractionIndex
	}

	return types.Ray{
		Origin: rec.WorldPoint,
		Dir:    types.Refract(rec.Ray.Dir.Normalize(), rec.Normal.Normalize().Vec(), eta),
		TMin:   1e-5,
		TMax:   types.Inf,
		Depth:  depth,
	}
}
