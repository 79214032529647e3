package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aji27/comgr-hs18/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build the BVH for a scene and display its shape.
func InspectBVH(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := sceneFromContext(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	root, err := scene.BuildBVH(sc.Spheres, ctx.Int("min-partition"))
	if err != nil {
		return err
	}
	buildTime := time.Since(start)

	if ctx.Bool("dump") {
		var dump bytes.Buffer
		if err = root.Dump(&dump); err != nil {
			return err
		}
		logger.Noticef("BVH tree for scene %q\n%s", sc.Name, dump.String())
	}

	displayBVHStats(sc.Name, root.Stats(), buildTime)
	return nil
}

func displayBVHStats(sceneName string, stats scene.BVHStats, buildTime time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Spheres", "Nodes", "Leaves", "Max depth", "Max leaf size", "Iterations", "Build time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Spheres),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.MaxLeafSize),
		fmt.Sprintf("%d", stats.Iterations),
		buildTime.String(),
	})
	table.Render()

	logger.Noticef("BVH statistics for scene %q\n%s", sceneName, buf.String())
}
