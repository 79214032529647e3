package renderer

import (
	"context"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/aji27/comgr-hs18/log"
	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
	"github.com/aji27/comgr-hs18/types"
)

type Renderer interface {
	// Render frame. If ctx is cancelled before the frame completes, Render
	// returns ErrInterrupted and no image.
	Render(ctx context.Context) (*image.RGBA, error)

	// Get statistics for the last rendered frame.
	Stats() FrameStats
}

// A CPU renderer that distributes frame rows to a pool of workers.
type defaultRenderer struct {
	logger log.Logger

	scene  *scene.Scene
	camera *scene.Camera
	bvh    *scene.BVHNode
	opts   Options

	// Set once by NewDefault.
	bvhBuildTime time.Duration
	bvhStats     scene.BVHStats

	statsMu sync.Mutex
	stats   FrameStats
}

// Create a new renderer for the given scene. The BVH is built here if
// enabled so that it can be reused across frames.
func NewDefault(sc *scene.Scene, opts Options) (Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	camera, err := sc.Camera()
	if err != nil {
		return nil, err
	}

	if opts.Workers == 0 {
		opts.Workers = DefaultWorkers()
	}
	if !opts.Parallel {
		opts.Workers = 1
	}

	r := &defaultRenderer{
		logger: log.New("renderer"),
		scene:  sc,
		camera: camera,
		opts:   opts,
	}

	if opts.UseBVH {
		start := time.Now()
		r.bvh, err = scene.BuildBVH(sc.Spheres, opts.MinPartitionSize)
		if err != nil {
			return nil, err
		}
		r.bvhBuildTime = time.Since(start)
		r.bvhStats = r.bvh.Stats()
		r.stats.BVHBuildTime = r.bvhBuildTime
		r.stats.BVH = r.bvhStats

		if log.GetLevel() == log.Debug {
			var dump strings.Builder
			if err = r.bvh.Dump(&dump); err != nil {
				return nil, err
			}
			r.logger.Debugf("BVH tree:\n%s", dump.String())
		}
	}

	return r, nil
}

// Get statistics for the last rendered frame.
func (r *defaultRenderer) Stats() FrameStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

// Render frame.
func (r *defaultRenderer) Render(ctx context.Context) (*image.RGBA, error) {
	frameW, frameH := int(r.opts.FrameW), int(r.opts.FrameH)
	img := image.NewRGBA(image.Rect(0, 0, frameW, frameH))

	r.logger.Infof("rendering %dx%d frame of scene %q using %d worker(s)", frameW, frameH, r.scene.Name, r.opts.Workers)
	start := time.Now()

	// Queue all rows up front; workers pull rows until the queue drains.
	rowCh := make(chan int, frameH)
	for y := 0; y < frameH; y++ {
		rowCh <- y
	}
	close(rowCh)

	progress := newProgressTracker(uint64(frameW*frameH), r.reportProgress)
	workerStats := make([]WorkerStat, r.opts.Workers)
	rayStats := make([]tracer.Stats, r.opts.Workers)

	var wg sync.WaitGroup
	for id := 0; id < r.opts.Workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tr := tracer.New(r.scene, r.bvh, r.opts.Options)
			stat := &workerStats[id]
			stat.Id = id

			for y := range rowCh {
				if ctx.Err() != nil {
					return
				}

				rowStart := time.Now()
				tr.Seed(r.opts.Seed + int64(y))
				if !r.renderRow(ctx, tr, img, y, progress) {
					return
				}
				stat.Rows++
				stat.RenderTime += time.Since(rowStart)
			}
			rayStats[id] = tr.Stats()
		}(id)
	}
	wg.Wait()

	if ctx.Err() != nil {
		r.logger.Notice("Operation canceled by user.")
		return nil, ErrInterrupted
	}

	stats := FrameStats{
		Workers:      workerStats,
		BVHBuildTime: r.bvhBuildTime,
		BVH:          r.bvhStats,
		RenderTime:   time.Since(start),
	}
	for id := range workerStats {
		workerStats[id].FramePercent = 100 * float32(workerStats[id].Rows) / float32(frameH)
		stats.Rays.Add(rayStats[id])
	}

	r.statsMu.Lock()
	r.stats = stats
	r.statsMu.Unlock()

	r.logger.Infof("rendered frame in %s", stats.RenderTime)
	return img, nil
}

// Render a single row. Returns false if the context was cancelled.
func (r *defaultRenderer) renderRow(ctx context.Context, tr *tracer.Tracer, img *image.RGBA, y int, progress *progressTracker) bool {
	frameW, frameH := float32(r.opts.FrameW), float32(r.opts.FrameH)
	aspect := frameW / frameH

	for x := 0; x < int(r.opts.FrameW); x++ {
		if ctx.Err() != nil {
			return false
		}

		var rgb types.Vec3
		if r.opts.AntiAliasing {
			rng := tr.Rand()
			for s := 0; s < r.opts.AntiAliasingSamples; s++ {
				px := tracer.Gaussian(rng, float32(x)+0.5, r.opts.AntiAliasingStdDev)
				py := tracer.Gaussian(rng, float32(y)+0.5, r.opts.AntiAliasingStdDev)
				rgb = rgb.Add(tr.Trace(r.primaryRay(px, py, frameW, frameH, aspect)))
			}
			rgb = rgb.Mul(1 / float32(r.opts.AntiAliasingSamples))
		} else {
			rgb = tr.Trace(r.primaryRay(float32(x)+0.5, float32(y)+0.5, frameW, frameH, aspect))
		}

		img.SetRGBA(x, y, types.ToRGBA(rgb, r.opts.GammaCorrect))
		progress.pixelDone()
	}

	return true
}

// Map a position in pixel space to a camera ray. Row 0 is the top of the
// image and x is scaled by the aspect ratio so pixels stay square.
func (r *defaultRenderer) primaryRay(px, py, frameW, frameH, aspect float32) scene.Ray {
	x := (2*px/frameW - 1) * aspect
	y := 1 - 2*py/frameH
	return r.camera.Ray(x, y)
}

func (r *defaultRenderer) reportProgress(msg string) {
	r.logger.Info(msg)
	if r.opts.Progress != nil {
		r.opts.Progress(msg)
	}
}
