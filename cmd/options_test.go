package cmd

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/aji27/comgr-hs18/renderer"
	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
	"github.com/urfave/cli"
)

func parseFlags(t *testing.T, args ...string) *cli.Context {
	var captured *cli.Context
	app := cli.NewApp()
	app.Flags = concat(SceneFlags, BVHFlags, RenderFlags)
	app.Action = func(ctx *cli.Context) error {
		captured = ctx
		return nil
	}
	if err := app.Run(append([]string{"comgr"}, args...)); err != nil {
		t.Fatalf("unexpected error parsing flags %v: %v", args, err)
	}
	return captured
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}

func TestDefaultRenderOptions(t *testing.T) {
	opts, err := renderOptionsFromContext(parseFlags(t))
	if err != nil {
		t.Fatal(err)
	}

	exp := renderer.DefaultOptions()
	if opts.FrameW != exp.FrameW || opts.FrameH != exp.FrameH {
		t.Fatalf("expected frame size %dx%d; got %dx%d", exp.FrameW, exp.FrameH, opts.FrameW, opts.FrameH)
	}
	if !opts.Parallel || !opts.PathTracing || opts.AntiAliasing || opts.UseBVH {
		t.Fatalf("unexpected default toggles: %+v", opts)
	}
	if opts.Options != exp.Options {
		t.Fatalf("expected shading options %+v; got %+v", exp.Options, opts.Options)
	}
	if opts.MinPartitionSize != scene.DefaultMinPartitionSize {
		t.Fatalf("expected min partition size %d; got %d", scene.DefaultMinPartitionSize, opts.MinPartitionSize)
	}
}

func TestRenderOptionOverrides(t *testing.T) {
	ctx := parseFlags(t,
		"--width", "64", "--height", "32",
		"--sequential", "--bvh", "--aa", "--aa-samples", "4",
		"--path-tracing=false", "--lambert", "--phong", "--reflection",
		"--shadows", "soft", "--feelers", "3", "--sampling", "cosine",
		"--seed", "42",
	)
	opts, err := renderOptionsFromContext(ctx)
	if err != nil {
		t.Fatal(err)
	}

	specs := []struct {
		descr string
		ok    bool
	}{
		{"frame size", opts.FrameW == 64 && opts.FrameH == 32},
		{"sequential", !opts.Parallel},
		{"bvh", opts.UseBVH},
		{"anti-aliasing", opts.AntiAliasing && opts.AntiAliasingSamples == 4},
		{"path tracing disabled", !opts.PathTracing},
		{"whitted terms", opts.Lambert && opts.Phong && opts.Reflection},
		{"soft shadows", opts.Shadows == tracer.SoftShadows && opts.SoftShadowFeelers == 3},
		{"cosine sampling", opts.Sampling == tracer.CosineSampling},
		{"seed", opts.Seed == 42},
	}
	for specIndex, spec := range specs {
		if !spec.ok {
			t.Fatalf("[spec %d] expected %s flag to be applied; got %+v", specIndex, spec.descr, opts)
		}
	}
}

func TestInvalidRenderOptions(t *testing.T) {
	specs := []struct {
		args   []string
		expErr error
	}{
		{[]string{"--shadows", "fuzzy"}, tracer.ErrInvalidOptions},
		{[]string{"--sampling", "stratified"}, tracer.ErrInvalidOptions},
		{[]string{"--width", "0"}, renderer.ErrInvalidOptions},
		{[]string{"--rays", "0"}, renderer.ErrInvalidOptions},
	}

	for specIndex, spec := range specs {
		_, err := renderOptionsFromContext(parseFlags(t, spec.args...))
		if !errors.Is(err, spec.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", specIndex, spec.expErr, err)
		}
	}
}

func TestSceneFromContext(t *testing.T) {
	sc, err := sceneFromContext(parseFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "cornell-path" {
		t.Fatalf("expected default scene to be cornell-path; got %q", sc.Name)
	}

	sc, err = sceneFromContext(parseFlags(t, "--scene", "cornell-path", "--brightness", "3"))
	if err != nil {
		t.Fatal(err)
	}
	if light := sc.Sphere("w"); light == nil || light.Brightness != 3 {
		t.Fatalf("expected ceiling light brightness to be 3; got %v", light)
	}

	if _, err = sceneFromContext(parseFlags(t, "--scene", "no-such-scene")); err == nil {
		t.Fatal("expected an error for an unknown scene")
	}
}

func TestSceneTextureOverride(t *testing.T) {
	dir := t.TempDir()
	texFile := filepath.Join(dir, "tex.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(texFile)
	if err != nil {
		t.Fatal(err)
	}
	if err = png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	sc, err := sceneFromContext(parseFlags(t, "--scene", "cornell", "--texture", texFile, "--projection", "spherical", "--bilinear"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sc.Sphere("g").Texture.(*scene.BitmapTexture); !ok {
		t.Fatalf("expected sphere g to use a bitmap texture; got %T", sc.Sphere("g").Texture)
	}

	if _, err = sceneFromContext(parseFlags(t, "--texture", texFile, "--projection", "cubic")); err == nil {
		t.Fatal("expected an error for an unknown projection")
	}
	if _, err = sceneFromContext(parseFlags(t, "--texture", filepath.Join(dir, "missing.png"))); err == nil {
		t.Fatal("expected an error for a missing texture")
	}
}
