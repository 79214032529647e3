package scene

import (
	"fmt"

	"github.com/aji27/comgr-hs18/types"
)

// The radius of the disc that soft shadow feelers are distributed over.
const LightRadius float32 = 0.2

// A point light. For soft shadows the light is treated as a small disc
// facing the shaded point.
type LightSource struct {
	Name   string
	Center types.Vec3
	Color  types.Vec3
}

// Create a new light source.
func NewLightSource(name string, center, color types.Vec3) *LightSource {
	return &LightSource{Name: name, Center: center, Color: color}
}

// Light radius used for area sampling.
func (l *LightSource) Radius() float32 {
	return LightRadius
}

func (l *LightSource) Validate() error {
	if l.Center.IsInvalid() || l.Color.IsInvalid() {
		return fmt.Errorf("%w %q: position and color must be finite", ErrInvalidLight, l.Name)
	}
	return nil
}
