package scene

import (
	"fmt"

	"github.com/aji27/comgr-hs18/types"
)

// The up vector used when a scene does not define one.
var DefaultUp = types.XYZ(0, 1, 0)

// A scene of spheres lit by point lights and emissive spheres.
type Scene struct {
	Name string

	Eye    types.Vec3
	LookAt types.Vec3
	Up     types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	Spheres []*Sphere
	Lights  []*LightSource
}

// Validate the scene geometry.
func (sc *Scene) Validate() error {
	if len(sc.Spheres) == 0 {
		return ErrNoSpheres
	}
	for _, s := range sc.Spheres {
		if s == nil {
			return fmt.Errorf("%w: nil sphere in scene %q", ErrInvalidSphere, sc.Name)
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, l := range sc.Lights {
		if l == nil {
			return fmt.Errorf("%w: nil light in scene %q", ErrInvalidLight, sc.Name)
		}
		if err := l.Validate(); err != nil {
			return err
		}
	}

	_, err := sc.Camera()
	return err
}

// Build the scene camera.
func (sc *Scene) Camera() (*Camera, error) {
	up := sc.Up
	if up.LenSq() == 0 {
		up = DefaultUp
	}
	return NewCamera(sc.Eye, sc.LookAt, up, sc.FOV)
}

// Find a sphere by name.
func (sc *Scene) Sphere(name string) *Sphere {
	for _, s := range sc.Spheres {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Returns true if any sphere emits light.
func (sc *Scene) HasEmitters() bool {
	for _, s := range sc.Spheres {
		if s.Brightness > 0 {
			return true
		}
	}
	return false
}
