package cmd

import (
	"github.com/aji27/comgr-hs18/renderer"
	"github.com/aji27/comgr-hs18/scene"
	"github.com/urfave/cli"
)

var (
	defaultOpts = renderer.DefaultOptions()

	// Flags for selecting and customizing a scene preset.
	SceneFlags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "cornell-path",
			Usage: "scene preset; run the scenes command for a list",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "image file or http(s) URL to use as a texture for the large sphere",
		},
		cli.StringFlag{
			Name:  "projection",
			Value: scene.PlanarProjection.String(),
			Usage: "texture projection (planar or spherical)",
		},
		cli.BoolFlag{
			Name:  "bilinear",
			Usage: "use bilinear texture filtering",
		},
		cli.Float64Flag{
			Name:  "brightness",
			Value: 1.0,
			Usage: "total brightness of the emissive ceiling light(s)",
		},
	}

	// Flags for building the BVH.
	BVHFlags = []cli.Flag{
		cli.IntFlag{
			Name:  "min-partition",
			Value: scene.DefaultMinPartitionSize,
			Usage: "BVH nodes with at most this many spheres are not split",
		},
	}

	// Flags that map to render options.
	RenderFlags = []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: int(defaultOpts.FrameW),
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: int(defaultOpts.FrameH),
			Usage: "frame height",
		},
		cli.BoolFlag{
			Name:  "aa",
			Usage: "enable anti-aliasing",
		},
		cli.IntFlag{
			Name:  "aa-samples",
			Value: defaultOpts.AntiAliasingSamples,
			Usage: "anti-aliasing samples per pixel",
		},
		cli.Float64Flag{
			Name:  "aa-stddev",
			Value: float64(defaultOpts.AntiAliasingStdDev),
			Usage: "std deviation of the anti-aliasing sample jitter in pixels",
		},
		cli.BoolFlag{
			Name:  "gamma",
			Usage: "sRGB encode output colors",
		},
		cli.BoolFlag{
			Name:  "bvh",
			Usage: "use a bounding sphere hierarchy for intersection tests",
		},
		cli.BoolFlag{
			Name:  "sequential",
			Usage: "render rows on a single goroutine",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of render workers; 0 uses all logical cpus",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "base seed for the random number generators",
		},
		cli.BoolFlag{
			Name:  "lambert",
			Usage: "enable the lambert diffuse term",
		},
		cli.BoolFlag{
			Name:  "phong",
			Usage: "enable the phong specular term",
		},
		cli.Float64Flag{
			Name:  "phong-exponent",
			Value: float64(defaultOpts.PhongExponent),
			Usage: "phong specular exponent",
		},
		cli.BoolFlag{
			Name:  "reflection",
			Usage: "enable mirror reflections",
		},
		cli.IntFlag{
			Name:  "reflection-bounces",
			Value: defaultOpts.ReflectionBounces,
			Usage: "max number of reflection bounces",
		},
		cli.StringFlag{
			Name:  "shadows",
			Value: defaultOpts.Shadows.String(),
			Usage: "shadow mode (off, hard or soft)",
		},
		cli.IntFlag{
			Name:  "feelers",
			Value: defaultOpts.SoftShadowFeelers,
			Usage: "shadow feelers per light for soft shadows",
		},
		cli.BoolTFlag{
			Name:  "path-tracing",
			Usage: "enable path traced indirect lighting",
		},
		cli.IntFlag{
			Name:  "rays",
			Value: defaultOpts.PathTracingRays,
			Usage: "indirect rays cast at primary hits",
		},
		cli.IntFlag{
			Name:  "max-bounces",
			Value: defaultOpts.PathTracingMaxBounces,
			Usage: "max number of path tracing bounces",
		},
		cli.StringFlag{
			Name:  "sampling",
			Value: defaultOpts.Sampling.String(),
			Usage: "hemisphere sampling strategy (uniform or cosine)",
		},
	}
)
