package renderer

import (
	"fmt"

	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Average several gaussian jittered samples per pixel.
	AntiAliasing        bool
	AntiAliasingSamples int
	AntiAliasingStdDev  float32

	// Encode output colors with the sRGB transfer function.
	GammaCorrect bool

	// Use a bounding sphere hierarchy for intersection tests.
	UseBVH           bool
	MinPartitionSize int

	// Render rows on a pool of Workers goroutines. If Workers is 0 the
	// number of logical cpus is used.
	Parallel bool
	Workers  int

	// Base seed for the per-row random sources.
	Seed int64

	// Shading options.
	tracer.Options

	// An optional sink for progress messages. It may be invoked
	// concurrently from multiple workers.
	Progress func(msg string)
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:              512,
		FrameH:              512,
		AntiAliasingSamples: 16,
		AntiAliasingStdDev:  0.5,
		MinPartitionSize:    scene.DefaultMinPartitionSize,
		Parallel:            true,
		Options:             tracer.DefaultOptions(),
	}
}

// Validate options.
func (o Options) Validate() error {
	switch {
	case o.FrameW == 0 || o.FrameH == 0:
		return fmt.Errorf("%w: frame dimensions must be positive; got %dx%d", ErrInvalidOptions, o.FrameW, o.FrameH)
	case o.AntiAliasing && o.AntiAliasingSamples < 1:
		return fmt.Errorf("%w: anti-aliasing requires at least one sample", ErrInvalidOptions)
	case o.AntiAliasingStdDev < 0:
		return fmt.Errorf("%w: anti-aliasing std deviation must not be negative", ErrInvalidOptions)
	case o.UseBVH && o.MinPartitionSize < 1:
		return fmt.Errorf("%w: minimum partition size must be at least 1", ErrInvalidOptions)
	case o.Workers < 0:
		return fmt.Errorf("%w: worker count must not be negative", ErrInvalidOptions)
	}

	if err := o.Options.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}
