package cmd

import (
	"fmt"
	"strings"

	"github.com/aji27/comgr-hs18/renderer"
)

// Describe the settings used to render a frame.
func settingsSummary(sceneName string, opts renderer.Options) string {
	var sb strings.Builder
	line := func(key string, value interface{}) {
		fmt.Fprintf(&sb, "%-22s %v\n", key+":", value)
	}

	line("Scene", sceneName)
	line("Resolution", fmt.Sprintf("%dx%d", opts.FrameW, opts.FrameH))
	line("Seed", opts.Seed)
	if opts.Parallel {
		line("Workers", opts.Workers)
	} else {
		line("Workers", "sequential")
	}
	line("BVH", opts.UseBVH)
	if opts.AntiAliasing {
		line("Anti-aliasing", fmt.Sprintf("%d samples, std dev %.2f", opts.AntiAliasingSamples, opts.AntiAliasingStdDev))
	} else {
		line("Anti-aliasing", false)
	}
	line("Gamma correction", opts.GammaCorrect)
	line("Lambert", opts.Lambert)
	if opts.Phong {
		line("Phong", fmt.Sprintf("exponent %g", opts.PhongExponent))
	} else {
		line("Phong", false)
	}
	if opts.Reflection {
		line("Reflection", fmt.Sprintf("%d bounce(s)", opts.ReflectionBounces))
	} else {
		line("Reflection", false)
	}
	line("Shadows", opts.Shadows)
	if opts.PathTracing {
		line("Path tracing", fmt.Sprintf("%d rays, %d bounces, %s sampling", opts.PathTracingRays, opts.PathTracingMaxBounces, opts.Sampling))
	} else {
		line("Path tracing", false)
	}

	return sb.String()
}
