package types

import (
	"math"
	"testing"
)

func TestFactoriesAreConsistent(t *testing.T) {
	scale, err := Scaling(Vec3{2, 5, 10})
	if err != nil {
		t.Fatalf("expected scaling to succeed; got %v", err)
	}

	transforms := map[string]Transformation{
		"identity":      Identity(),
		"translation":   Translation(Vec3{1, -2, 3}),
		"rotationX":     Rotation(30, AxisX),
		"rotationY":     Rotation(45, AxisY),
		"rotationZ":     Rotation(130.5, AxisZ),
		"rotation axis": RotationAxis(Vec3{1, 2, 3}, 72),
		"scaling":       scale,
		"composition":   Translation(Vec3{1, 2, 3}).Mul(Rotation(60, AxisY)).Mul(scale),
	}

	for name, tr := range transforms {
		if !tr.IsConsistent() {
			t.Fatalf("expected %s to be consistent with its inverse", name)
		}
		if !tr.Inverse().IsConsistent() {
			t.Fatalf("expected the inverse of %s to be consistent", name)
		}
	}
}

func TestScalingRejectsZeroFactor(t *testing.T) {
	for _, v := range []Vec3{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {0, 0, 0}} {
		if _, err := Scaling(v); err == nil {
			t.Fatalf("expected an error scaling by %v; got none", v)
		}
	}
}

func TestTranslationMovesPointsNotVectors(t *testing.T) {
	tr := Translation(Vec3{1, 2, 3})

	p := tr.ApplyPoint(Point3{0, 0, 0})
	if p != (Point3{1, 2, 3}) {
		t.Fatalf("expected translated point (1, 2, 3); got %v", p)
	}

	v := tr.ApplyVec(Vec3{4, 5, 6})
	if v != (Vec3{4, 5, 6}) {
		t.Fatalf("expected the vector to be unaffected; got %v", v)
	}
}

func TestRotationConvention(t *testing.T) {
	// right-handed: rotating +x about z by 90 degrees gives +y
	got := Rotation(90, AxisZ).ApplyVec(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	for i := range got {
		if !AreClose(got[i], want[i], 1e-6) {
			t.Fatalf("expected rotationZ(90) * x = %v; got %v", want, got)
		}
	}

	got = Rotation(90, AxisX).ApplyVec(Vec3{0, 1, 0})
	want = Vec3{0, 0, 1}
	for i := range got {
		if !AreClose(got[i], want[i], 1e-6) {
			t.Fatalf("expected rotationX(90) * y = %v; got %v", want, got)
		}
	}
}

func TestRotationAxisMatchesFixedAxis(t *testing.T) {
	pairs := []struct {
		axis  Vec3
		fixed Axis
	}{
		{Vec3{1, 0, 0}, AxisX},
		{Vec3{0, 1, 0}, AxisY},
		{Vec3{0, 0, 1}, AxisZ},
	}
	for _, pair := range pairs {
		got := RotationAxis(pair.axis, 35)
		want := Rotation(35, pair.fixed)
		if !got.IsClose(want, 1e-5) {
			t.Fatalf("expected rotation about %v to match the fixed-axis factory", pair.axis)
		}
	}
}

func TestNormalTransformPreservesDotForRigidMaps(t *testing.T) {
	tr := Rotation(40, AxisY).Mul(Translation(Vec3{1, 2, 3}))
	v := Vec3{1, 2, 3}
	n := Normal3{-2, 0.5, 1}

	before := v.Dot(n.Vec())
	after := tr.ApplyVec(v).Dot(tr.ApplyNormal(n).Vec())
	if !AreClose(before, after, 1e-4) {
		t.Fatalf("expected dot product %g to be preserved; got %g", before, after)
	}
}

func TestScalingTransformsNormalByInverseTranspose(t *testing.T) {
	scale, _ := Scaling(Vec3{2, 1, 1})

	// the normal of a plane tilted 45 degrees in xy stays perpendicular to
	// the stretched surface only through the inverse-transpose
	n := scale.ApplyNormal(Normal3{1, 1, 0})
	surface := scale.ApplyVec(Vec3{-1, 1, 0})
	if !AreClose(n.Vec().Dot(surface), 0, 1e-5) {
		t.Fatalf("expected transformed normal to stay perpendicular; dot is %g", n.Vec().Dot(surface))
	}
}

func TestRayTransformRoundTrip(t *testing.T) {
	scale, _ := Scaling(Vec3{1, 2, 4})
	tr := Translation(Vec3{-3, 1, 0}).Mul(Rotation(25, AxisZ)).Mul(scale)

	ray := Ray{Origin: Point3{1, 2, 3}, Dir: Vec3{6, 5, 4}, TMin: 1e-5, TMax: Inf, Depth: 2}
	back := ray.Transform(tr).Transform(tr.Inverse())

	if !ray.IsClose(back, 1e-4) {
		t.Fatalf("expected round-tripped ray to equal the original; got %+v", back)
	}
	if back.TMin != ray.TMin || back.TMax != ray.TMax || back.Depth != ray.Depth {
		t.Fatalf("expected the parameter range and depth to be preserved; got %+v", back)
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRay(Point3{1, 2, 4}, Vec3{4, 2, 1})
	p := ray.At(2)
	if p != (Point3{9, 6, 6}) {
		t.Fatalf("expected ray.At(2) = (9, 6, 6); got %v", p)
	}
}

func TestReflectKeepsUnitLength(t *testing.T) {
	d := Vec3{1, -2, 0.5}.Normalize()
	n := Vec3{0, 1, 0}
	r := Reflect(d, n)
	if !AreClose(r.Len(), 1, 1e-5) {
		t.Fatalf("expected reflected versor length 1; got %g", r.Len())
	}
	if !AreClose(r[1], -d[1], 1e-6) {
		t.Fatalf("expected the normal component to flip; got %g", r[1])
	}
}

func TestRefractKeepsUnitLength(t *testing.T) {
	d := Vec3{1, -1, 0}.Normalize()
	n := Vec3{0, 1, 0}
	for _, eta := range []float32{0.5, 1.0 / 1.33, 1.33} {
		r := Refract(d, n, eta)
		if !AreClose(r.Len(), 1, 1e-5) {
			t.Fatalf("expected refracted versor length 1 for eta %g; got %g", eta, r.Len())
		}
	}
}

func TestDegToRad(t *testing.T) {
	if !AreClose(DegToRad(180), math.Pi, 1e-6) {
		t.Fatalf("expected degToRad(180) = pi; got %g", DegToRad(180))
	}
}
