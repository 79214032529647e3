package cmd

import (
	"github.com/aji27/comgr-hs18/renderer"
	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
	"github.com/urfave/cli"
)

// Build the scene selected by the "scene" flag, applying any texture or
// light overrides.
func sceneFromContext(ctx *cli.Context) (*scene.Scene, error) {
	preset, err := scene.LookupPreset(ctx.String("scene"))
	if err != nil {
		return nil, err
	}

	if tex := ctx.String("texture"); tex != "" {
		preset.Options.BitmapPath = tex
		preset.Options.BitmapBilinear = ctx.Bool("bilinear")
		if preset.Options.BitmapProjection, err = scene.ParseProjection(ctx.String("projection")); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet("brightness") {
		preset.Options.LightBrightness = float32(ctx.Float64("brightness"))
	}

	return preset.Build()
}

// Map command line flags to render options.
func renderOptionsFromContext(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()

	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.AntiAliasing = ctx.Bool("aa")
	opts.AntiAliasingSamples = ctx.Int("aa-samples")
	opts.AntiAliasingStdDev = float32(ctx.Float64("aa-stddev"))
	opts.GammaCorrect = ctx.Bool("gamma")
	opts.UseBVH = ctx.Bool("bvh")
	opts.MinPartitionSize = ctx.Int("min-partition")
	opts.Parallel = !ctx.Bool("sequential")
	opts.Workers = ctx.Int("workers")
	opts.Seed = ctx.Int64("seed")

	opts.Lambert = ctx.Bool("lambert")
	opts.Phong = ctx.Bool("phong")
	opts.PhongExponent = float32(ctx.Float64("phong-exponent"))
	opts.Reflection = ctx.Bool("reflection")
	opts.ReflectionBounces = ctx.Int("reflection-bounces")
	opts.SoftShadowFeelers = ctx.Int("feelers")
	opts.PathTracing = ctx.BoolT("path-tracing")
	opts.PathTracingRays = ctx.Int("rays")
	opts.PathTracingMaxBounces = ctx.Int("max-bounces")

	var err error
	if opts.Shadows, err = tracer.ParseShadowMode(ctx.String("shadows")); err != nil {
		return opts, err
	}
	if opts.Sampling, err = tracer.ParseSampling(ctx.String("sampling")); err != nil {
		return opts, err
	}

	return opts, opts.Validate()
}
