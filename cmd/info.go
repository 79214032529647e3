package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/aji27/comgr-hs18/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// Display the host cpu and memory available for rendering.
func SystemInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	cpuInfo, err := cpu.Info()
	if err != nil {
		return err
	}
	if len(cpuInfo) == 0 {
		return fmt.Errorf("no CPU information available")
	}

	physical, err := cpu.Counts(false)
	if err != nil {
		return err
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"CPU", cpuInfo[0].ModelName},
		{"Clock speed", fmt.Sprintf("%.2f GHz", cpuInfo[0].Mhz/1000)},
		{"Physical cores", fmt.Sprintf("%d", physical)},
		{"Render workers", fmt.Sprintf("%d", renderer.DefaultWorkers())},
		{"Total memory", fmt.Sprintf("%.1f GiB", float64(memInfo.Total)/(1<<30))},
		{"Available memory", fmt.Sprintf("%.1f GiB", float64(memInfo.Available)/(1<<30))},
		{"Go runtime", fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)},
	})
	table.Render()

	logger.Noticef("system information\n%s", buf.String())
	return nil
}
