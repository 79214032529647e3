package scene

import "github.com/aji27/comgr-hs18/types"

// A ray with an origin and a direction. Lambda holds the distance to the
// hit point once the ray has been intersected.
type Ray struct {
	Origin    types.Vec3
	Lambda    float32
	Direction types.Vec3
}

// Create a new ray.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir}
}

// Get the point at distance lambda along the (normalized) ray direction.
func (r Ray) At(lambda float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Normalize().Mul(lambda))
}

// A ray/sphere intersection. Ray.Lambda is the hit distance and
// Ray.Direction is normalized.
type HitPoint struct {
	Ray    Ray
	Sphere *Sphere
}

// Get the world-space hit position.
func (h HitPoint) Position() types.Vec3 {
	return h.Ray.Origin.Add(h.Ray.Direction.Mul(h.Ray.Lambda))
}
