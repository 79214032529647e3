package scene

import "errors"

var (
	ErrNoSpheres        = errors.New("scene: no spheres defined")
	ErrInvalidSphere    = errors.New("scene: invalid sphere")
	ErrInvalidLight     = errors.New("scene: invalid light source")
	ErrInvalidCamera    = errors.New("scene: invalid camera setup")
	ErrInvalidPartition = errors.New("scene: minimum partition size must be at least 1")
)
