package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/aji27/comgr-hs18/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := sceneFromContext(ctx)
	if err != nil {
		return err
	}

	opts, err := renderOptionsFromContext(ctx)
	if err != nil {
		return err
	}
	if !ctx.Bool("quiet") {
		opts.Progress = func(msg string) { logger.Notice(msg) }
	}

	r, err := renderer.NewDefault(sc, opts)
	if err != nil {
		return err
	}

	// Abort the frame on ^C.
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	img, err := r.Render(renderCtx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	imgFile := ctx.String("out")
	if err = writePNG(imgFile, img); err != nil {
		return err
	}

	summary := settingsSummary(sc.Name, opts) + fmt.Sprintf("Image generated in %s and saved as '%s'.\n", elapsed, imgFile)
	if err = os.WriteFile(summaryFile(imgFile), []byte(summary), 0644); err != nil {
		return err
	}
	logger.Notice(summary)

	displayFrameStats(r.Stats())
	return nil
}

func writePNG(imgFile string, img image.Image) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("error encoding png file: %w", err)
	}
	return f.Close()
}

// Get the settings summary filename for an image file.
func summaryFile(imgFile string) string {
	if idx := strings.LastIndexByte(imgFile, '.'); idx > strings.LastIndexAny(imgFile, `/\`) {
		imgFile = imgFile[:idx]
	}
	return imgFile + ".txt"
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Id),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", stats.RenderTime.String()})
	table.Render()

	buf.WriteString("\n")
	rays := tablewriter.NewWriter(&buf)
	rays.SetAutoFormatHeaders(false)
	rays.SetHeader([]string{"Camera rays", "Reflection rays", "Indirect rays", "Shadow rays", "Total"})
	rays.Append([]string{
		fmt.Sprintf("%d", stats.Rays.CameraRays),
		fmt.Sprintf("%d", stats.Rays.ReflectionRays),
		fmt.Sprintf("%d", stats.Rays.IndirectRays),
		fmt.Sprintf("%d", stats.Rays.ShadowRays),
		fmt.Sprintf("%d", stats.Rays.Total()),
	})
	rays.Render()

	if stats.BVH.Nodes > 0 {
		buf.WriteString(fmt.Sprintf("\nBVH with %d nodes built in %s\n", stats.BVH.Nodes, stats.BVHBuildTime))
	}

	logger.Noticef("frame statistics\n%s", buf.String())
}
