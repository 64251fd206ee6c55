// Package tracer implements the ray-to-color strategies: on/off and flat
// debugging renderers, a direct point-light integrator and the Monte-Carlo
// path tracer.
package tracer

import (
	"math"

	"github.com/Enrico-Carissimi/RayTracer/sampler"
	"github.com/Enrico-Carissimi/RayTracer/scene"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Trace estimates the radiance arriving along a ray. Strategies are built as
// closures over the world (and, for the stochastic ones, a PCG stream), so
// the render loop only ever sees this signature.
type Trace func(ray types.Ray) types.Color

// OnOff returns white for any hit and black otherwise. Useful to debug
// geometry and camera placement.
func OnOff(world *scene.World) Trace {
	return func(ray types.Ray) types.Color {
		if _, ok := world.ClosestHit(ray); ok {
			return types.RGB(1, 1, 1)
		}
		return types.Color{}
	}
}

// Flat shades every hit with the material's BRDF value, ignoring lights and
// emission. Useful to debug textures and uv parametrizations.
func Flat(world *scene.World) Trace {
	return func(ray types.Ray) types.Color {
		rec, ok := world.ClosestHit(ray)
		if !ok {
			return world.BackgroundColor
		}
		return rec.Material.Eval(rec.SurfaceUV, 0, 0)
	}
}

// PointLights combines a constant ambient term, the surface emission and the
// direct contribution of every visible point light. No recursion.
func PointLights(world *scene.World, ambientColor types.Color) Trace {
	return func(ray types.Ray) types.Color {
		rec, ok := world.ClosestHit(ray)
		if !ok {
			return world.BackgroundColor
		}

		result := ambientColor.Add(rec.Material.Emitted(rec.SurfaceUV))
		normal := rec.Normal.Normalize().Vec()

		for _, light := range world.PointLights {
			if !world.IsPointVisible(light.Position, rec.WorldPoint) {
				continue
			}

			toHit := rec.WorldPoint.Sub(light.Position)
			distance := toHit.Len()

			cosTheta := normal.Dot(toHit.Mul(-1 / distance))
			if cosTheta < 0 {
				cosTheta = 0
			}

			distanceFactor := float32(1)
			if light.LinearRadius > 0 {
				distanceFactor = (light.LinearRadius / distance) * (light.LinearRadius / distance)
			}

			inDir := light.Position.Sub(rec.WorldPoint).Normalize()
			outDir := ray.Dir.Normalize().Neg()
			thetaIn := float32(math.Acos(float64(normal.Dot(inDir))))
			thetaOut := float32(math.Acos(float64(normal.Dot(outDir))))

			brdf := rec.Material.Eval(rec.SurfaceUV, thetaIn, thetaOut)
			result = result.Add(brdf.MulColor(light.Color).Mul(cosTheta * distanceFactor))
		}

		return result
	}
}

// PathTracer estimates radiance by recursive Monte-Carlo integration,
// shooting nRays scattered rays per bounce and terminating paths beyond
// rrLimit with Russian roulette.
func PathTracer(world *scene.World, pcg *sampler.PCG, nRays, maxDepth, rrLimit int) Trace {
	var trace Trace

	trace = func(ray types.Ray) types.Color {
		if ray.Depth > maxDepth {
			return types.Color{}
		}

		rec, ok := world.ClosestHit(ray)
		if !ok {
			return world.BackgroundColor
		}

		hitColor := rec.Material.Color(rec.SurfaceUV)
		emitted := rec.Material.Emitted(rec.SurfaceUV)

		luminosity := hitColor.R
		if hitColor.G > luminosity {
			luminosity = hitColor.G
		}
		if hitColor.B > luminosity {
			luminosity = hitColor.B
		}

		if ray.Depth >= rrLimit {
			q := 1 - luminosity
			if q < 0.05 {
				q = 0.05
			}
			if pcg.Random() > q {
				// survivors compensate for the terminated paths
				hitColor = hitColor.Mul(1 / (1 - q))
			} else {
				return emitted
			}
		}

		var total types.Color
		if luminosity > 0 { // recursion cannot add anything on black surfaces
			for i := 0; i < nRays; i++ {
				newRay := rec.Material.Scatter(pcg, rec, ray.Depth+1)
				total = total.Add(hitColor.MulColor(trace(newRay)))
			}
		}

		return emitted.Add(total.Mul(1 / float32(nRays)))
	}

	return trace
}
