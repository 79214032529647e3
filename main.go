package main

import (
	"fmt"
	"os"

	"github.com/aji27/comgr-hs18/cmd"
	"github.com/urfave/cli"
)

func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "comgr"
	app.Usage = "render sphere scenes using ray tracing and path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a scene preset to a PNG image. A summary of the render settings is
written next to the image using the same name and a .txt extension.

Press ^C to abort the render.`,
			Flags: concatFlags(cmd.SceneFlags, cmd.BVHFlags, cmd.RenderFlags, []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "quiet, q",
					Usage: "do not display render progress",
				},
			}),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "bvh",
			Usage: "build the BVH for a scene and display its statistics",
			Flags: concatFlags(cmd.SceneFlags, cmd.BVHFlags, []cli.Flag{
				cli.BoolFlag{
					Name:  "dump",
					Usage: "print the BVH tree",
				},
			}),
			Action: cmd.InspectBVH,
		},
		{
			Name:   "scenes",
			Usage:  "list available scene presets",
			Action: cmd.ListScenes,
		},
		{
			Name:   "info",
			Usage:  "display host cpu and memory information",
			Action: cmd.SystemInfo,
		},
		{
			Name:  "serve",
			Usage: "serve rendered frames over http",
			Description: `
Start an http server exposing the following endpoints:

  GET /scenes  list the scene presets as JSON
  GET /render  render a scene and reply with a PNG image; render options
               are passed as query parameters`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "listen, l",
					Value: ":5053",
					Usage: "address to listen on",
				},
			},
			Action: cmd.Serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
