package scene

import (
	"fmt"

	"github.com/aji27/comgr-hs18/types"
	"github.com/chewxy/math32"
)

// A sphere primitive. Spheres are never mutated once a scene has been
// constructed and are shared between all render goroutines.
type Sphere struct {
	Name   string
	Center types.Vec3
	Radius float32

	// Base material color in linear space. Ignored if a texture is set.
	Color   types.Vec3
	Texture Texture

	// Walls are excluded from mirror reflections and phong highlights.
	IsWall bool

	// Emitted light scale.
	Brightness float32

	// Scales the indirect light gathered by the path tracer.
	Reflectiveness float32
}

// Create a new sphere with the given color. The returned sphere has no
// emission and full reflectiveness.
func NewSphere(name string, center types.Vec3, radius float32, color types.Vec3) *Sphere {
	return &Sphere{
		Name:           name,
		Center:         center,
		Radius:         radius,
		Color:          color,
		Reflectiveness: 1,
	}
}

// Get the material color at a world-space point on the sphere surface.
func (s *Sphere) ColorAt(p types.Vec3) types.Vec3 {
	if s.Texture == nil {
		return s.Color
	}
	return s.Texture.Sample(p.Sub(s.Center).Mul(1 / s.Radius))
}

// Get the outward unit normal at a point on the sphere surface.
func (s *Sphere) NormalAt(p types.Vec3) types.Vec3 {
	return p.Sub(s.Center).Normalize()
}

// Check that the sphere parameters are usable for rendering.
func (s *Sphere) Validate() error {
	switch {
	case !(s.Radius > 0) || math32.IsInf(s.Radius, 0):
		return fmt.Errorf("%w %q: radius must be positive; got %f", ErrInvalidSphere, s.Name, s.Radius)
	case s.Center.IsInvalid():
		return fmt.Errorf("%w %q: center contains invalid components", ErrInvalidSphere, s.Name)
	case s.Brightness < 0:
		return fmt.Errorf("%w %q: brightness must not be negative; got %f", ErrInvalidSphere, s.Name, s.Brightness)
	case s.Reflectiveness < 0 || s.Reflectiveness > 1:
		return fmt.Errorf("%w %q: reflectiveness must be in [0, 1]; got %f", ErrInvalidSphere, s.Name, s.Reflectiveness)
	}
	return nil
}

func (s *Sphere) String() string {
	return formatSphere(s)
}
