package tracer

import (
	"math/rand"

	"github.com/aji27/comgr-hs18/types"
	"github.com/chewxy/math32"
)

const (
	uniformHemispherePdf = 1 / (2 * math32.Pi)
)

// A hemisphere sample in world space.
type hemisphereSample struct {
	dir      types.Vec3
	cosTheta float32
	pdf      float32
}

// Sample a direction in the hemisphere around the unit normal n. The polar
// cosine is drawn directly from one random variable and the azimuth is
// uniform in [0, 2π).
func sampleHemisphere(rng *rand.Rand, n types.Vec3, strategy Sampling) hemisphereSample {
	u1, u2 := rng.Float32(), rng.Float32()
	phi := 2 * math32.Pi * u2

	var cosTheta, sinTheta, pdf float32
	switch strategy {
	case CosineSampling:
		sinTheta = math32.Sqrt(u1)
		cosTheta = math32.Sqrt(1 - u1)
		pdf = cosTheta / math32.Pi
	default:
		cosTheta = u1
		sinTheta = math32.Sqrt(1 - cosTheta*cosTheta)
		pdf = uniformHemispherePdf
	}

	tangent, bitangent := types.OrthonormalBasis(n)
	x := sinTheta * math32.Cos(phi)
	z := sinTheta * math32.Sin(phi)

	return hemisphereSample{
		dir:      bitangent.Mul(x).Add(n.Mul(cosTheta)).Add(tangent.Mul(z)),
		cosTheta: cosTheta,
		pdf:      pdf,
	}
}

// Sample a point on the unit disc. The radius is the square root of a
// uniform variable so samples are spread evenly over the disc area.
func sampleDisc(rng *rand.Rand) (x, y float32) {
	r := math32.Sqrt(rng.Float32())
	phi := 2 * math32.Pi * rng.Float32()
	return r * math32.Sin(phi), r * math32.Cos(phi)
}

// Draw a normally distributed value.
func Gaussian(rng *rand.Rand, mean, stdDev float32) float32 {
	return mean + float32(rng.NormFloat64())*stdDev
}
