package renderer

import (
	"math"
	"testing"

	"github.com/Enrico-Carissimi/RayTracer/sampler"
	"github.com/Enrico-Carissimi/RayTracer/scene"
	"github.com/Enrico-Carissimi/RayTracer/tracer"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

// A 3x3 orthogonal camera looking at a small sphere at (2, 0, 0): only the
// central pixel's ray intersects it.
func smallSphereScene(t *testing.T) (*scene.Camera, *scene.World) {
	t.Helper()

	scale, err := types.Scaling(types.Vec3{0.2, 0.2, 0.2})
	if err != nil {
		t.Fatalf("expected the scaling to build; got %v", err)
	}
	transform := types.Translation(types.Vec3{2, 0, 0}).Mul(scale)

	material := scene.NewDiffuseMaterial(
		scene.NewUniformTexture(types.RGB(1, 2, 3)),
		scene.NewUniformTexture(types.Color{}),
		1,
	)

	world := &scene.World{}
	world.AddShape(scene.NewSphere(material, transform))

	camera := scene.NewCamera(scene.Orthogonal, 1, 3, 1, types.Identity())
	return camera, world
}

func renderWith(t *testing.T, camera *scene.Camera, makeTrace TraceFactory, opts Options) {
	t.Helper()
	r, err := New(camera, opts)
	if err != nil {
		t.Fatalf("expected the renderer to build; got %v", err)
	}
	if _, err := r.Render(makeTrace); err != nil {
		t.Fatalf("expected the render to succeed; got %v", err)
	}
}

func TestOnOffRender(t *testing.T) {
	camera, world := smallSphereScene(t)

	opts := Options{AASamples: 1, NumRays: 1, MaxDepth: 1, Seed: 42, Sequence: 54, Workers: 1}
	renderWith(t, camera, func(pcg *sampler.PCG) tracer.Trace { return tracer.OnOff(world) }, opts)

	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			pixel, err := camera.Image.GetPixel(i, j)
			if err != nil {
				t.Fatalf("expected valid coordinates; got %v", err)
			}
			if i == 1 && j == 1 {
				if pixel != types.RGB(1, 1, 1) {
					t.Fatalf("expected the central pixel to be white; got %v", pixel)
				}
			} else if pixel != (types.Color{}) {
				t.Fatalf("expected pixel (%d, %d) to be black; got %v", i, j, pixel)
			}
		}
	}
}

func TestFlatRender(t *testing.T) {
	camera, world := smallSphereScene(t)

	opts := Options{AASamples: 1, NumRays: 1, MaxDepth: 1, Seed: 42, Sequence: 54, Workers: 1}
	renderWith(t, camera, func(pcg *sampler.PCG) tracer.Trace { return tracer.Flat(world) }, opts)

	want := types.RGB(1/math.Pi, 2/math.Pi, 3/math.Pi)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			pixel, _ := camera.Image.GetPixel(i, j)
			if i == 1 && j == 1 {
				if !pixel.IsClose(want, 1e-5) {
					t.Fatalf("expected the central pixel to be %v; got %v", want, pixel)
				}
			} else if pixel != (types.Color{}) {
				t.Fatalf("expected pixel (%d, %d) to be black; got %v", i, j, pixel)
			}
		}
	}
}

func TestAntialiasingAveragesSamples(t *testing.T) {
	// a deterministic trace independent of the sub-pixel position: any
	// sample count must average to the same value
	world := &scene.World{}
	world.BackgroundColor = types.RGB(0.25, 0.5, 0.75)
	camera := scene.NewCamera(scene.Orthogonal, 1, 2, 1, types.Identity())

	for _, samples := range []int{1, 4, 7, 9} {
		opts := Options{AASamples: samples, NumRays: 1, MaxDepth: 1, Seed: 42, Sequence: 54, Workers: 1}
		renderWith(t, camera, func(pcg *sampler.PCG) tracer.Trace { return tracer.Flat(world) }, opts)

		pixel, _ := camera.Image.GetPixel(0, 0)
		if !pixel.IsClose(world.BackgroundColor, 1e-5) {
			t.Fatalf("expected the averaged pixel to equal the background with %d samples; got %v", samples, pixel)
		}
	}
}

func TestAntialiasingCountsSamples(t *testing.T) {
	// a trace that counts invocations: 9 samples on a 1x1 frame means 9 rays
	camera := scene.NewCamera(scene.Orthogonal, 1, 1, 1, types.Identity())

	count := 0
	counting := func(pcg *sampler.PCG) tracer.Trace {
		return func(ray types.Ray) types.Color {
			count++
			return types.Color{}
		}
	}

	opts := Options{AASamples: 9, NumRays: 1, MaxDepth: 1, Seed: 42, Sequence: 54, Workers: 1}
	renderWith(t, camera, counting, opts)
	if count != 9 {
		t.Fatalf("expected 9 stratified samples; got %d", count)
	}

	count = 0
	opts.AASamples = 7
	renderWith(t, camera, counting, opts)
	if count != 7 {
		t.Fatalf("expected 7 uniform samples; got %d", count)
	}
}

func TestParallelRenderMatchesSequentialForDeterministicTraces(t *testing.T) {
	camera, world := smallSphereScene(t)
	opts := Options{AASamples: 1, NumRays: 1, MaxDepth: 1, Seed: 42, Sequence: 54, Workers: 1}
	renderWith(t, camera, func(pcg *sampler.PCG) tracer.Trace { return tracer.OnOff(world) }, opts)

	parallelCamera, _ := smallSphereScene(t)
	opts.Workers = 3
	renderWith(t, parallelCamera, func(pcg *sampler.PCG) tracer.Trace { return tracer.OnOff(world) }, opts)

	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			sequential, _ := camera.Image.GetPixel(i, j)
			parallel, _ := parallelCamera.Image.GetPixel(i, j)
			if sequential != parallel {
				t.Fatalf("expected pixel (%d, %d) to match between modes; got %v and %v", i, j, sequential, parallel)
			}
		}
	}
}

func TestParallelRenderStats(t *testing.T) {
	camera, world := smallSphereScene(t)
	opts := Options{AASamples: 1, NumRays: 1, MaxDepth: 1, Seed: 42, Sequence: 54, Workers: 2}

	r, err := New(camera, opts)
	if err != nil {
		t.Fatalf("expected the renderer to build; got %v", err)
	}
	stats, err := r.Render(func(pcg *sampler.PCG) tracer.Trace { return tracer.OnOff(world) })
	if err != nil {
		t.Fatalf("expected the render to succeed; got %v", err)
	}

	if len(stats.Blocks) != 2 {
		t.Fatalf("expected two blocks; got %d", len(stats.Blocks))
	}
	rows := 0
	for _, block := range stats.Blocks {
		rows += block.Height
	}
	if rows != camera.Height {
		t.Fatalf("expected the blocks to cover all %d rows; got %d", camera.Height, rows)
	}
}

func TestOptionsValidation(t *testing.T) {
	opts := Options{AASamples: -1, NumRays: 1, MaxDepth: 1}
	if err := opts.Validate(); err != ErrInvalidSampleCount {
		t.Fatalf("expected ErrInvalidSampleCount; got %v", err)
	}

	opts = Options{AASamples: 1, NumRays: 0, MaxDepth: 1}
	if err := opts.Validate(); err != ErrInvalidPathOptions {
		t.Fatalf("expected ErrInvalidPathOptions; got %v", err)
	}

	opts = DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("expected the defaults to validate; got %v", err)
	}

	if _, err := New(nil, DefaultOptions()); err != ErrMissingCamera {
		t.Fatalf("expected ErrMissingCamera; got %v", err)
	}
}

func TestRenderAppliesFrameOverrides(t *testing.T) {
	camera, world := smallSphereScene(t)

	opts := Options{Width: 6, AspectRatio: 2, AASamples: 1, NumRays: 1, MaxDepth: 1, Workers: 1}
	renderWith(t, camera, func(pcg *sampler.PCG) tracer.Trace { return tracer.OnOff(world) }, opts)

	if camera.Image.Width != 6 || camera.Image.Height != 3 {
		t.Fatalf("expected a 6 x 3 frame after the overrides; got %d x %d", camera.Image.Width, camera.Image.Height)
	}
}
