package sampler

import (
	"testing"

	"github.com/Enrico-Carissimi/RayTracer/types"
)

func TestPCGSequence(t *testing.T) {
	pcg := NewPCG(42, 54)

	if pcg.State != 1753877967969059832 {
		t.Fatalf("expected state 1753877967969059832 after init; got %d", pcg.State)
	}
	if pcg.Inc != 109 {
		t.Fatalf("expected inc 109; got %d", pcg.Inc)
	}

	expected := []uint32{2707161783, 2068313097, 3122475824, 2211639955, 3215226955, 3421331566}
	for i, want := range expected {
		if got := pcg.RandomUint32(); got != want {
			t.Fatalf("expected draw %d to be %d; got %d", i, want, got)
		}
	}
}

func TestRandomRange(t *testing.T) {
	pcg := NewPCG(42, 54)
	for i := 0; i < 1000; i++ {
		x := pcg.RandomRange(-2, 3)
		if x < -2 || x >= 3 {
			t.Fatalf("expected draw in [-2, 3); got %g", x)
		}
	}
}

func TestRandomVersorIsUnit(t *testing.T) {
	pcg := NewPCG(42, 54)
	for i := 0; i < 100; i++ {
		v := pcg.RandomVersor()
		if !types.AreClose(v.Len(), 1, 1e-5) {
			t.Fatalf("expected versor of length 1; got %g", v.Len())
		}
	}
}

func TestSampleHemisphereStaysAboveSurface(t *testing.T) {
	pcg := NewPCG(42, 54)
	normals := []types.Vec3{
		{0, 0, 1},
		{0, 1, 0},
		types.Vec3{1, 1, 1}.Normalize(),
		types.Vec3{-0.3, 0.2, -1}.Normalize(),
	}
	for _, n := range normals {
		for i := 0; i < 200; i++ {
			dir := pcg.SampleHemisphere(n)
			if !types.AreClose(dir.Len(), 1, 1e-4) {
				t.Fatalf("expected sampled direction of length 1; got %g", dir.Len())
			}
			if dir.Dot(n) < 0 {
				t.Fatalf("expected direction %v in the hemisphere around %v", dir, n)
			}
		}
	}
}

func TestCreateONBIsOrthonormal(t *testing.T) {
	pcg := NewPCG(42, 54)
	for i := 0; i < 1000; i++ {
		n := pcg.RandomVersor()
		e1, e2 := CreateONB(n)

		if !types.AreClose(e1.Len(), 1, 1e-3) || !types.AreClose(e2.Len(), 1, 1e-3) {
			t.Fatalf("expected unit basis vectors; got lengths %g, %g", e1.Len(), e2.Len())
		}
		if !types.AreClose(e1.Dot(e2), 0, 1e-3) ||
			!types.AreClose(e1.Dot(n), 0, 1e-3) ||
			!types.AreClose(e2.Dot(n), 0, 1e-3) {
			t.Fatalf("expected orthogonal basis for n = %v", n)
		}

		cross := e1.Cross(e2)
		if !types.AreClose(cross.Dot(n), 1, 1e-3) {
			t.Fatalf("expected right-handed basis for n = %v; e1 x e2 . n = %g", n, cross.Dot(n))
		}
	}
}
