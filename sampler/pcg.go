// Package sampler provides the deterministic pseudo-random stream feeding the
// Monte-Carlo estimators, plus the direction-sampling helpers built on it.
package sampler

import (
	"math"

	"github.com/Enrico-Carissimi/RayTracer/types"
)

const pcgMultiplier = 6364136223846793005

// PCG is a 32-bit permuted congruential generator (www.pcg-random.org).
// The same (state, sequence) pair always reproduces the same stream, which is
// what makes renders comparable across runs.
type PCG struct {
	State uint64
	Inc   uint64
}

// Create a generator from an initial state and a stream selector.
func NewPCG(initState, initSeq uint64) *PCG {
	pcg := &PCG{State: 0, Inc: (initSeq << 1) | 1}
	pcg.RandomUint32()
	pcg.State += initState
	pcg.RandomUint32()
	return pcg
}

// Advance the stream and produce the next 32 output bits.
func (pcg *PCG) RandomUint32() uint32 {
	oldState := pcg.State
	pcg.State = oldState*pcgMultiplier + pcg.Inc
	xorshifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Draw a uniform float in [0, 1).
func (pcg *PCG) Random() float32 {
	return float32(float64(pcg.RandomUint32()) / (1 << 32))
}

// Draw a uniform float in [a, b).
func (pcg *PCG) RandomRange(a, b float32) float32 {
	return a + pcg.Random()*(b-a)
}

// Draw a uniformly distributed unit vector by rejection sampling in the cube
// [-1, 1]^3, keeping draws with norm in (0, 1].
func (pcg *PCG) RandomVersor() types.Vec3 {
	for {
		v := types.Vec3{
			pcg.RandomRange(-1, 1),
			pcg.RandomRange(-1, 1),
			pcg.RandomRange(-1, 1),
		}
		if n2 := v.Len2(); n2 > 0 && n2 <= 1 {
			return v.Mul(1 / float32(math.Sqrt(float64(n2))))
		}
	}
}

// Draw a cosine-weighted direction in the hemisphere around the unit normal n.
// The density matches the Lambertian integrand, so diffuse scattering needs no
// extra weighting.
func (pcg *PCG) SampleHemisphere(n types.Vec3) types.Vec3 {
	e1, e2 := CreateONB(n)

	cosThetaSq := pcg.Random()
	cosTheta := float32(math.Sqrt(float64(cosThetaSq)))
	sinTheta := float32(math.Sqrt(float64(1 - cosThetaSq)))
	phi := pcg.RandomRange(0, 2*math.Pi)

	cosPhi := float32(math.Cos(float64(phi)))
	sinPhi := float32(math.Sin(float64(phi)))

	return e1.Mul(cosPhi * cosTheta).Add(e2.Mul(sinPhi * cosTheta)).Add(n.Mul(sinTheta))
}
