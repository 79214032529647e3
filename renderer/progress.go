package renderer

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Reports progress every ~1% of completed pixels.
type progressTracker struct {
	start time.Time
	total uint64
	step  uint64
	done  atomic.Uint64
	sink  func(string)
}

func newProgressTracker(total uint64, sink func(string)) *progressTracker {
	step := total / 100
	if step == 0 {
		step = 1
	}
	return &progressTracker{
		start: time.Now(),
		total: total,
		step:  step,
		sink:  sink,
	}
}

// Mark a pixel as done.
func (p *progressTracker) pixelDone() {
	n := p.done.Add(1)
	if n%p.step != 0 {
		return
	}

	elapsed := time.Since(p.start)
	remaining := time.Duration(float64(elapsed) * float64(p.total-n) / float64(n))
	p.sink(fmt.Sprintf(
		"%.3f%% progress. Running %s. Remaining %s.",
		100*float64(n)/float64(p.total),
		elapsed.Round(time.Millisecond),
		remaining.Round(time.Millisecond),
	))
}
