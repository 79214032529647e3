package cmd

import (
	"strings"
	"testing"

	"github.com/aji27/comgr-hs18/renderer"
)

func TestSummaryFile(t *testing.T) {
	specs := []struct {
		in  string
		exp string
	}{
		{"frame.png", "frame.txt"},
		{"out/frame.png", "out/frame.txt"},
		{"frame", "frame.txt"},
		{"out.d/frame", "out.d/frame.txt"},
		{"a.b.png", "a.b.txt"},
	}

	for specIndex, spec := range specs {
		if got := summaryFile(spec.in); got != spec.exp {
			t.Fatalf("[spec %d] expected summary file for %q to be %q; got %q", specIndex, spec.in, spec.exp, got)
		}
	}
}

func TestSettingsSummary(t *testing.T) {
	opts := renderer.DefaultOptions()
	opts.FrameW, opts.FrameH = 64, 32
	opts.Parallel = false
	opts.PathTracing = false

	summary := settingsSummary("cornell", opts)
	for _, exp := range []string{"Scene:", "cornell", "64x32", "sequential", "Path tracing:", "Shadows:"} {
		if !strings.Contains(summary, exp) {
			t.Fatalf("expected summary to contain %q; got:\n%s", exp, summary)
		}
	}

	opts.PathTracing = true
	summary = settingsSummary("cornell-path", opts)
	if !strings.Contains(summary, "1024 rays, 30 bounces, uniform sampling") {
		t.Fatalf("expected summary to describe path tracing settings; got:\n%s", summary)
	}
}
