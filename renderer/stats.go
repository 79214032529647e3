package renderer

import (
	"time"

	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
)

type WorkerStat struct {
	// The worker id.
	Id int

	// Number of rendered rows and the percentage of the frame they represent.
	Rows         uint32
	FramePercent float32

	// Time spent rendering the assigned rows.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// BVH construction time and tree shape; zero if the BVH is disabled.
	BVHBuildTime time.Duration
	BVH          scene.BVHStats

	// Rays cast for the entire frame.
	Rays tracer.Stats

	// Total render time for entire frame.
	RenderTime time.Duration
}
