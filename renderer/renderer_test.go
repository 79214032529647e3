package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
	"github.com/aji27/comgr-hs18/types"
)

func pathTracedScene(t *testing.T) *scene.Scene {
	sc, err := scene.CornellBox(scene.DefaultCornellOptions())
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func smallPathOptions() Options {
	opts := DefaultOptions()
	opts.FrameW = 16
	opts.FrameH = 12
	opts.PathTracingRays = 4
	opts.PathTracingMaxBounces = 3
	opts.Seed = 1234
	return opts
}

func TestCenterPixelLambert(t *testing.T) {
	material := types.XYZ(0.5, 0.25, 1)
	sc := &scene.Scene{
		Eye:     types.XYZ(0, 4, 0),
		LookAt:  types.XYZ(0, 0, 0),
		Up:      types.XYZ(0, 0, 1),
		FOV:     36,
		Spheres: []*scene.Sphere{scene.NewSphere("ball", types.XYZ(0, 0, 0), 1, material)},
		Lights:  []*scene.LightSource{scene.NewLightSource("light", types.XYZ(0, 3, 0), types.White)},
	}

	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 1, 1
	opts.PathTracing = false
	opts.Lambert = true

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	img, err := r.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	exp := color.RGBA{128, 64, 255, 255}
	if got := img.RGBAAt(0, 0); got != exp {
		t.Fatalf("expected center pixel to be %v; got %v", exp, got)
	}

	// Looking away from the sphere yields the black background.
	sc.LookAt = types.XYZ(0, 8, 0)
	r, err = NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	img, err = r.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected background pixel to be black; got %v", got)
	}
}

func TestDeterministicRender(t *testing.T) {
	sc := pathTracedScene(t)

	render := func(opts Options) []byte {
		r, err := NewDefault(sc, opts)
		if err != nil {
			t.Fatal(err)
		}
		img, err := r.Render(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return img.Pix
	}

	opts := smallPathOptions()
	opts.Parallel = false
	first := render(opts)
	second := render(opts)
	if !bytes.Equal(first, second) {
		t.Fatal("expected sequential renders with the same seed to be identical")
	}

	opts.Parallel = true
	opts.Workers = 4
	if parallel := render(opts); !bytes.Equal(first, parallel) {
		t.Fatal("expected parallel render to match the sequential render")
	}

	opts.AntiAliasing = true
	opts.AntiAliasingSamples = 2
	if !bytes.Equal(render(opts), render(opts)) {
		t.Fatal("expected anti-aliased renders with the same seed to be identical")
	}
}

func TestBVHRenderMatchesBruteForce(t *testing.T) {
	sc, err := scene.CornellBox(scene.CornellOptions{LotsOfSpheres: true})
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 24, 24
	opts.PathTracing = false
	opts.Lambert = true
	opts.Shadows = tracer.HardShadows

	var images [][]byte
	for _, useBVH := range []bool{false, true} {
		opts.UseBVH = useBVH
		r, err := NewDefault(sc, opts)
		if err != nil {
			t.Fatal(err)
		}
		img, err := r.Render(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		images = append(images, img.Pix)

		stats := r.Stats()
		if useBVH && stats.BVH.Spheres != len(sc.Spheres) {
			t.Fatalf("expected BVH stats to cover %d spheres; got %d", len(sc.Spheres), stats.BVH.Spheres)
		}
	}

	if !bytes.Equal(images[0], images[1]) {
		t.Fatal("expected BVH accelerated render to match the brute force render")
	}
}

func TestCancelledRender(t *testing.T) {
	sc := pathTracedScene(t)
	opts := smallPathOptions()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	img, err := r.Render(ctx)
	if err != ErrInterrupted || img != nil {
		t.Fatalf("expected ErrInterrupted and no image; got %v, %v", img, err)
	}
}

func TestCancelDuringRender(t *testing.T) {
	sc := pathTracedScene(t)
	opts := smallPathOptions()
	opts.FrameW, opts.FrameH = 10, 10

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts.Progress = func(string) { cancel() }

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.Render(ctx); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected render to be interrupted; got %v", err)
	}
}

func TestProgressReports(t *testing.T) {
	sc := pathTracedScene(t)
	opts := smallPathOptions()
	opts.FrameW, opts.FrameH = 20, 10
	opts.PathTracing = false

	var (
		mu       sync.Mutex
		messages []string
	)
	opts.Progress = func(msg string) {
		mu.Lock()
		messages = append(messages, msg)
		mu.Unlock()
	}

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(messages) != 100 {
		t.Fatalf("expected 100 progress messages; got %d", len(messages))
	}
	var sawFinal bool
	for _, msg := range messages {
		if !strings.Contains(msg, "% progress. Running ") || !strings.Contains(msg, "Remaining ") {
			t.Fatalf("unexpected progress message format: %q", msg)
		}
		if strings.HasPrefix(msg, "100.000% progress") {
			sawFinal = true
		}
	}
	if !sawFinal {
		t.Fatal("expected a final 100% progress message")
	}
}

func TestFrameStats(t *testing.T) {
	sc := pathTracedScene(t)
	opts := smallPathOptions()
	opts.PathTracing = false
	opts.Workers = 3
	opts.AntiAliasing = true
	opts.AntiAliasingSamples = 2

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	stats := r.Stats()
	if len(stats.Workers) != 3 {
		t.Fatalf("expected stats for 3 workers; got %d", len(stats.Workers))
	}

	var rows uint32
	var percent float32
	for _, w := range stats.Workers {
		rows += w.Rows
		percent += w.FramePercent
	}
	if rows != opts.FrameH {
		t.Fatalf("expected workers to render %d rows; got %d", opts.FrameH, rows)
	}
	if percent < 99.9 || percent > 100.1 {
		t.Fatalf("expected worker frame percentages to add up to 100; got %f", percent)
	}

	expCamera := uint64(opts.FrameW*opts.FrameH) * 2
	if stats.Rays.CameraRays != expCamera {
		t.Fatalf("expected %d camera rays; got %d", expCamera, stats.Rays.CameraRays)
	}
	if stats.RenderTime <= 0 {
		t.Fatal("expected a positive render time")
	}
}

func TestInvalidSetup(t *testing.T) {
	sc := pathTracedScene(t)

	opts := DefaultOptions()
	opts.FrameW = 0
	if _, err := NewDefault(sc, opts); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions; got %v", err)
	}

	opts = DefaultOptions()
	opts.PathTracingRays = 0
	if _, err := NewDefault(sc, opts); !errors.Is(err, ErrInvalidOptions) || !errors.Is(err, tracer.ErrInvalidOptions) {
		t.Fatalf("expected wrapped tracer option error; got %v", err)
	}

	if _, err := NewDefault(&scene.Scene{FOV: 36}, DefaultOptions()); !errors.Is(err, scene.ErrNoSpheres) {
		t.Fatalf("expected ErrNoSpheres; got %v", err)
	}
}

func TestConcurrentRenders(t *testing.T) {
	sc := pathTracedScene(t)
	opts := smallPathOptions()
	opts.UseBVH = true
	opts.Workers = 2

	r, err := NewDefault(sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if r.Stats().BVH.Spheres != len(sc.Spheres) {
		t.Fatalf("expected BVH stats to be available before rendering; got %+v", r.Stats().BVH)
	}

	const numRenders = 3
	var (
		wg     sync.WaitGroup
		images [numRenders][]byte
		errs   [numRenders]error
	)
	for i := 0; i < numRenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := r.Render(context.Background())
			if err != nil {
				errs[i] = err
				return
			}
			images[i] = img.Pix
		}(i)
	}
	wg.Wait()

	for i := 0; i < numRenders; i++ {
		if errs[i] != nil {
			t.Fatalf("[render %d] unexpected error: %v", i, errs[i])
		}
		if !bytes.Equal(images[0], images[i]) {
			t.Fatalf("[render %d] expected concurrent renders to produce identical frames", i)
		}
	}

	stats := r.Stats()
	if stats.BVH.Spheres != len(sc.Spheres) || len(stats.Workers) != 2 {
		t.Fatalf("expected BVH stats to survive concurrent renders; got %+v", stats)
	}
}
