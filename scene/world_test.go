package scene

import (
	"testing"

	"github.com/Enrico-Carissimi/RayTracer/hdr"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

func newTestImage(t *testing.T, width, height int, rows [][]types.Color) *hdr.Image {
	t.Helper()
	img := hdr.NewImage(width, height)
	for j, row := range rows {
		for i, c := range row {
			if err := img.SetPixel(i, j, c); err != nil {
				t.Fatalf("expected valid coordinates (%d, %d); got %v", i, j, err)
			}
		}
	}
	return img
}

func TestClosestHitPicksSmallestT(t *testing.T) {
	world := World{}
	far := NewSphere(testMaterial(), types.Translation(types.Vec3{10, 0, 0}))
	near := NewSphere(testMaterial(), types.Translation(types.Vec3{5, 0, 0}))
	world.AddShape(far)
	world.AddShape(near)

	rec, ok := world.ClosestHit(types.NewRay(types.Pt(0, 0, 0), types.Vec3{1, 0, 0}))
	if !ok {
		t.Fatalf("expected a hit")
	}
	if !types.AreClose(rec.T, 4, 1e-5) {
		t.Fatalf("expected the near sphere at t = 4; got t = %g", rec.T)
	}
	if !types.AreClose(rec.Normal.Vec().Len(), 1, 1e-5) {
		t.Fatalf("expected a normalized hit normal; got length %g", rec.Normal.Vec().Len())
	}
}

func TestClosestHitMiss(t *testing.T) {
	world := World{}
	world.AddShape(NewSphere(testMaterial(), types.Translation(types.Vec3{10, 0, 0})))

	if _, ok := world.ClosestHit(types.NewRay(types.Pt(0, 0, 0), types.Vec3{-1, 0, 0})); ok {
		t.Fatalf("expected a miss looking away from the scene")
	}
}

func TestIsPointVisible(t *testing.T) {
	world := World{}
	world.AddShape(NewSphere(testMaterial(), types.Translation(types.Vec3{5, 0, 0})))

	observer := types.Pt(0, 0, 0)
	if world.IsPointVisible(types.Pt(10, 0, 0), observer) {
		t.Fatalf("expected the sphere to occlude the point behind it")
	}
	if !world.IsPointVisible(types.Pt(0, 10, 0), observer) {
		t.Fatalf("expected a clear segment to be visible")
	}
	if !world.IsPointVisible(types.Pt(2, 0, 0), observer) {
		t.Fatalf("expected a point before the sphere to be visible")
	}
}
