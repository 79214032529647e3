package scene

import (
	"fmt"

	"github.com/aji27/comgr-hs18/types"
	"github.com/chewxy/math32"
)

// A pinhole camera. Primary ray directions are built from an orthonormal
// basis derived from the eye, look-at and up vectors.
type Camera struct {
	Eye     types.Vec3
	Forward types.Vec3
	Right   types.Vec3
	Up      types.Vec3

	// tan(fov / 2)
	TanHalfFOV float32
}

// Create a camera. The fov argument is the vertical field of view in degrees.
func NewCamera(eye, lookAt, up types.Vec3, fov float32) (*Camera, error) {
	if !(fov > 0 && fov < 180) {
		return nil, fmt.Errorf("%w: field of view must be in (0, 180) degrees; got %f", ErrInvalidCamera, fov)
	}

	forward := lookAt.Sub(eye).Normalize()
	if forward.LenSq() == 0 {
		return nil, fmt.Errorf("%w: eye and look-at positions coincide", ErrInvalidCamera)
	}

	right := forward.Cross(up).Normalize()
	if right.LenSq() == 0 {
		return nil, fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}

	return &Camera{
		Eye:        eye,
		Forward:    forward,
		Right:      right,
		Up:         right.Cross(forward).Normalize(),
		TanHalfFOV: math32.Tan(fov * math32.Pi / 360),
	}, nil
}

// Generate a primary ray for a point on the image plane. Both coordinates
// are in [-1, 1] before aspect correction; +y points up in the image.
func (c *Camera) Ray(x, y float32) Ray {
	dir := c.Forward.
		Add(c.Right.Mul(x * c.TanHalfFOV)).
		Add(c.Up.Mul(y * c.TanHalfFOV))
	return NewRay(c.Eye, dir)
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera:\nEye     : (%3.3f, %3.3f, %3.3f)\nForward : (%3.3f, %3.3f, %3.3f)\nRight   : (%3.3f, %3.3f, %3.3f)\nUp      : (%3.3f, %3.3f, %3.3f)",
		c.Eye[0], c.Eye[1], c.Eye[2],
		c.Forward[0], c.Forward[1], c.Forward[2],
		c.Right[0], c.Right[1], c.Right[2],
		c.Up[0], c.Up[1], c.Up[2],
	)
}
