package sampler

import (
	"math"

	"github.com/Enrico-Carissimi/RayTracer/types"
)

// CreateONB completes the unit vector n into an orthonormal basis (e1, e2, n)
// using the branchless construction from Pixar's "Building an Orthonormal
// Basis, Revisited" (graphics.pixar.com/library/OrthonormalB/paper.pdf).
// n must be normalized.
func CreateONB(n types.Vec3) (e1, e2 types.Vec3) {
	sign := float32(math.Copysign(1, float64(n[2])))
	a := -1 / (sign + n[2])
	b := n[0] * n[1] * a

	e1 = types.Vec3{1 + sign*n[0]*n[0]*a, sign * b, -sign * n[0]}
	e2 = types.Vec3{b, sign + n[1]*n[1]*a, -n[1]}
	return e1, e2
}
