package tracer

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOptions = errors.New("tracer: invalid options")

// ShadowMode selects how light visibility is resolved.
type ShadowMode uint8

const (
	NoShadows ShadowMode = iota
	// Occluded lights contribute 1% of their light.
	HardShadows
	// Light contribution scales with the unoccluded fraction of the light disc.
	SoftShadows
)

func (m ShadowMode) String() string {
	switch m {
	case NoShadows:
		return "off"
	case HardShadows:
		return "hard"
	case SoftShadows:
		return "soft"
	}
	return fmt.Sprintf("shadows(%d)", uint8(m))
}

// Parse a shadow mode name.
func ParseShadowMode(name string) (ShadowMode, error) {
	switch strings.ToLower(name) {
	case "off", "none", "":
		return NoShadows, nil
	case "hard":
		return HardShadows, nil
	case "soft":
		return SoftShadows, nil
	}
	return NoShadows, fmt.Errorf("%w: unknown shadow mode %q", ErrInvalidOptions, name)
}

// Implements echo.BindUnmarshaler.
func (m *ShadowMode) UnmarshalParam(param string) error {
	mode, err := ParseShadowMode(param)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Sampling selects the hemisphere sampling strategy for indirect rays.
type Sampling uint8

const (
	// Uniform hemisphere sampling with pdf 1/2π.
	UniformSampling Sampling = iota
	// Cosine weighted sampling with pdf cosθ/π.
	CosineSampling
)

func (s Sampling) String() string {
	switch s {
	case UniformSampling:
		return "uniform"
	case CosineSampling:
		return "cosine"
	}
	return fmt.Sprintf("sampling(%d)", uint8(s))
}

// Parse a sampling strategy name.
func ParseSampling(name string) (Sampling, error) {
	switch strings.ToLower(name) {
	case "uniform", "":
		return UniformSampling, nil
	case "cosine":
		return CosineSampling, nil
	}
	return UniformSampling, fmt.Errorf("%w: unknown sampling strategy %q", ErrInvalidOptions, name)
}

// Implements echo.BindUnmarshaler.
func (s *Sampling) UnmarshalParam(param string) error {
	sampling, err := ParseSampling(param)
	if err != nil {
		return err
	}
	*s = sampling
	return nil
}

// Shading options.
type Options struct {
	// Lambert diffuse term.
	Lambert bool

	// Phong specular term and its exponent.
	Phong         bool
	PhongExponent float32

	// Mirror reflections for non-wall spheres.
	Reflection        bool
	ReflectionBounces int

	Shadows           ShadowMode
	SoftShadowFeelers int

	// Monte-Carlo indirect lighting. PathTracingRays are cast at the
	// primary hit; deeper bounces continue with a single ray subject to
	// russian roulette.
	PathTracing           bool
	PathTracingRays       int
	PathTracingMaxBounces int
	Sampling              Sampling
}

// Get the default shading options.
func DefaultOptions() Options {
	return Options{
		PhongExponent:         1000,
		ReflectionBounces:     1,
		SoftShadowFeelers:     8,
		PathTracing:           true,
		PathTracingRays:       1024,
		PathTracingMaxBounces: 30,
	}
}

// Validate options.
func (o Options) Validate() error {
	switch {
	case o.PhongExponent < 0:
		return fmt.Errorf("%w: phong exponent must not be negative", ErrInvalidOptions)
	case o.ReflectionBounces < 0:
		return fmt.Errorf("%w: reflection bounces must not be negative", ErrInvalidOptions)
	case o.Shadows > SoftShadows:
		return fmt.Errorf("%w: unknown shadow mode %d", ErrInvalidOptions, o.Shadows)
	case o.Shadows == SoftShadows && o.SoftShadowFeelers < 1:
		return fmt.Errorf("%w: soft shadows require at least one feeler", ErrInvalidOptions)
	case o.PathTracing && o.PathTracingRays < 1:
		return fmt.Errorf("%w: path tracing requires at least one ray", ErrInvalidOptions)
	case o.PathTracingMaxBounces < 0:
		return fmt.Errorf("%w: path tracing bounces must not be negative", ErrInvalidOptions)
	case o.Sampling > CosineSampling:
		return fmt.Errorf("%w: unknown sampling strategy %d", ErrInvalidOptions, o.Sampling)
	}
	return nil
}
