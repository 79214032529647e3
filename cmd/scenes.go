package cmd

import (
	"bytes"
	"fmt"

	"github.com/aji27/comgr-hs18/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the available scene presets.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Spheres", "Lights", "Description"})
	for _, preset := range scene.Presets() {
		sc, err := preset.Build()
		if err != nil {
			return err
		}
		table.Append([]string{
			preset.Name,
			fmt.Sprintf("%d", len(sc.Spheres)),
			fmt.Sprintf("%d", len(sc.Lights)),
			preset.Description,
		})
	}
	table.Render()

	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
