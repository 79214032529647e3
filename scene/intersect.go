package scene

import (
	"math"

	"github.com/aji27/comgr-hs18/types"
)

// Intersect a ray with a sphere. The ray direction is normalized and the
// smallest strictly positive root of |o + λd - c|² = r² is returned.
func Intersect(ray Ray, s *Sphere) (HitPoint, bool) {
	d := ray.Direction.Normalize()
	oc := ray.Origin.Sub(s.Center)

	// Reduced quadratic in float64; huge wall spheres lose too much
	// precision in |oc|² otherwise.
	b := dot64(oc, d)
	c := dot64(oc, oc) - float64(s.Radius)*float64(s.Radius)
	disc := b*b - c
	if disc < 0 {
		return HitPoint{}, false
	}

	sq := math.Sqrt(disc)
	lambda := -b - sq
	if lambda <= 0 {
		lambda = -b + sq
		if lambda <= 0 {
			return HitPoint{}, false
		}
	}

	return HitPoint{
		Ray:    Ray{Origin: ray.Origin, Lambda: float32(lambda), Direction: d},
		Sphere: s,
	}, true
}

func dot64(a, b types.Vec3) float64 {
	return float64(a[0])*float64(b[0]) + float64(a[1])*float64(b[1]) + float64(a[2])*float64(b[2])
}

// Test a ray against every sphere in the list and return all hits.
func IntersectAll(ray Ray, spheres []*Sphere) []HitPoint {
	var hits []HitPoint
	for _, s := range spheres {
		if hit, ok := Intersect(ray, s); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// Select the hit with the smallest distance.
func Closest(hits []HitPoint) (HitPoint, bool) {
	if len(hits) == 0 {
		return HitPoint{}, false
	}

	best := hits[0]
	for _, h := range hits[1:] {
		if h.Ray.Lambda < best.Ray.Lambda {
			best = h
		}
	}
	return best, true
}

// Find the closest hit by testing against every sphere without allocating.
func ClosestHit(ray Ray, spheres []*Sphere) (HitPoint, bool) {
	var (
		best  HitPoint
		found bool
	)
	for _, s := range spheres {
		hit, ok := Intersect(ray, s)
		if ok && (!found || hit.Ray.Lambda < best.Ray.Lambda) {
			best, found = hit, true
		}
	}
	return best, found
}

// Check whether a ray hits any sphere closer than maxDist.
func AnyHit(ray Ray, spheres []*Sphere, maxDist float32) bool {
	for _, s := range spheres {
		if hit, ok := Intersect(ray, s); ok && hit.Ray.Lambda < maxDist {
			return true
		}
	}
	return false
}
