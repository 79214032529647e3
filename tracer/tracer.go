package tracer

import (
	"math/rand"

	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/types"
	"github.com/chewxy/math32"
)

const (
	// Shading points are moved back along the incoming ray by this amount.
	nudgeDistance float32 = 0.001

	// Light factor applied to lights hidden behind an occluder.
	hardShadowFactor float32 = 0.01

	// Weight of the mirror reflection contribution.
	reflectionWeight float32 = 0.25

	// Probability that a bounced path continues.
	survivalProbability float32 = 0.8
)

// A Tracer shades rays against a scene. The scene and BVH are shared and
// never modified; each Tracer owns its random source and counters so it
// must only be used by a single goroutine.
type Tracer struct {
	scene *scene.Scene
	bvh   *scene.BVHNode
	opts  Options

	rng   *rand.Rand
	stats Stats
}

// Create a new tracer. If bvh is nil, rays are tested against every
// sphere in the scene.
func New(sc *scene.Scene, bvh *scene.BVHNode, opts Options) *Tracer {
	return &Tracer{
		scene: sc,
		bvh:   bvh,
		opts:  opts,
		rng:   rand.New(rand.NewSource(0)),
	}
}

// Reset the random source. Seeding with the same value before tracing the
// same rays reproduces the same colors.
func (t *Tracer) Seed(seed int64) {
	t.rng.Seed(seed)
}

// Get the tracer's random source.
func (t *Tracer) Rand() *rand.Rand {
	return t.rng
}

// Get the ray counters collected so far.
func (t *Tracer) Stats() Stats {
	return t.stats
}

// Shade a camera ray with the full bounce budgets.
func (t *Tracer) Trace(ray scene.Ray) types.Vec3 {
	t.stats.CameraRays++
	return t.Shade(ray, t.opts.PathTracingMaxBounces, t.opts.ReflectionBounces)
}

// Compute the linear radiance arriving along a ray. pathDepth is the
// number of remaining indirect bounces and reflectionDepth the number of
// remaining mirror bounces.
func (t *Tracer) Shade(ray scene.Ray, pathDepth, reflectionDepth int) types.Vec3 {
	hit, ok := t.closestHit(ray)
	if !ok {
		return types.Black
	}

	sphere := hit.Sphere
	dir := hit.Ray.Direction
	point := hit.Position().Sub(dir.Mul(nudgeDistance))
	normal := sphere.NormalAt(point)
	material := sphere.ColorAt(point)

	rgb := types.Black
	if sphere.Brightness > 0 {
		rgb = rgb.Add(material.Mul(sphere.Brightness))
	}

	if t.opts.Reflection && !sphere.IsWall && reflectionDepth > 0 {
		rgb = accumulate(rgb, t.reflect(point, dir, normal, reflectionDepth))
	}

	for _, light := range t.scene.Lights {
		rgb = accumulate(rgb, t.direct(light, point, dir, normal, material, sphere.IsWall))
	}

	if t.opts.PathTracing && pathDepth > 0 {
		rgb = accumulate(rgb, t.indirect(point, normal, pathDepth).MulVec(material).Mul(sphere.Reflectiveness))
	}

	return rgb
}

// Trace a mirror reflection. The reflected direction is bent towards the
// (1, 1, 1) diagonal by a Schlick-like (1 - n·r)^5 edge term.
func (t *Tracer) reflect(point, dir, normal types.Vec3, reflectionDepth int) types.Vec3 {
	r := dir.Sub(normal.Mul(2 * normal.Dot(dir))).Normalize()
	edge := math32.Pow(1-normal.Dot(r), 5)
	r = r.Add(types.White.Sub(r).Mul(edge))

	t.stats.ReflectionRays++
	reflected := t.Shade(scene.NewRay(point, r), 0, reflectionDepth-1)
	return reflected.MulVec(types.White).Mul(reflectionWeight)
}

// Compute the Lambert and Phong contribution of a point light.
func (t *Tracer) direct(light *scene.LightSource, point, dir, normal, material types.Vec3, isWall bool) types.Vec3 {
	toLight := light.Center.Sub(point)
	l := toLight.Normalize()
	cos := normal.Dot(l)
	if cos < 0 {
		return types.Black
	}

	visibility := t.visibility(light, point, toLight)
	rgb := types.Black

	if t.opts.Lambert {
		rgb = rgb.Add(light.Color.MulVec(material).Mul(cos * visibility))
	}

	if t.opts.Phong && !isWall {
		// Mirror l about the normal and compare with the view direction.
		r := normal.Mul(2 * cos).Sub(l)
		if rv := r.Dot(dir.Neg()); rv > 0 {
			rgb = rgb.Add(light.Color.Mul(math32.Pow(rv, t.opts.PhongExponent) * visibility))
		}
	}

	return rgb
}

// Get the fraction of light that reaches point.
func (t *Tracer) visibility(light *scene.LightSource, point, toLight types.Vec3) float32 {
	switch t.opts.Shadows {
	case HardShadows:
		if t.occluded(point, light.Center) {
			return hardShadowFactor
		}
	case SoftShadows:
		// Spread feelers over a disc facing the point.
		tangent, bitangent := types.OrthonormalBasis(toLight.Normalize())
		radius := light.Radius()
		var blocked int
		for i := 0; i < t.opts.SoftShadowFeelers; i++ {
			x, y := sampleDisc(t.rng)
			target := light.Center.Add(tangent.Mul(x * radius)).Add(bitangent.Mul(y * radius))
			if t.occluded(point, target) {
				blocked++
			}
		}
		return float32(t.opts.SoftShadowFeelers-blocked) / float32(t.opts.SoftShadowFeelers)
	}
	return 1
}

// Estimate indirect light arriving at point via hemisphere sampling.
func (t *Tracer) indirect(point, normal types.Vec3, pathDepth int) types.Vec3 {
	var numRays int
	if pathDepth >= t.opts.PathTracingMaxBounces {
		numRays = t.opts.PathTracingRays
	} else if t.rng.Float32() < survivalProbability {
		numRays = 1
	}
	if numRays == 0 {
		return types.Black
	}

	sum := types.Black
	for i := 0; i < numRays; i++ {
		sample := sampleHemisphere(t.rng, normal, t.opts.Sampling)
		if sample.pdf <= 0 {
			continue
		}

		t.stats.IndirectRays++
		radiance := t.Shade(scene.NewRay(point, sample.dir), pathDepth-1, 0)
		sum = accumulate(sum, radiance.Mul(sample.cosTheta/sample.pdf))
	}

	return sum.Mul(1 / float32(numRays))
}

func (t *Tracer) closestHit(ray scene.Ray) (scene.HitPoint, bool) {
	if t.bvh != nil {
		return t.bvh.ClosestHit(ray)
	}
	return scene.ClosestHit(ray, t.scene.Spheres)
}

// Check whether any sphere blocks the segment from point to target.
func (t *Tracer) occluded(point, target types.Vec3) bool {
	t.stats.ShadowRays++
	toTarget := target.Sub(point)
	ray := scene.NewRay(point, toTarget)
	dist := toTarget.Len()
	if t.bvh != nil {
		return t.bvh.AnyHit(ray, dist)
	}
	return scene.AnyHit(ray, t.scene.Spheres, dist)
}

// Add c to acc unless it contains NaN or Inf components.
func accumulate(acc, c types.Vec3) types.Vec3 {
	if c.IsInvalid() {
		return acc
	}
	return acc.Add(c)
}
