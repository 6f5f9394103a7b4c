package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

// GLFW must run on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	configFlag := cli.StringFlag{
		Name:  "config, c",
		Usage: "load settings from a .toml or .yaml file",
	}

	app := cli.NewApp()
	app.Name = "oxysg"
	app.Usage = "render a scene graph through the GPU resource caches"
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
			Name:  "run",
			Usage: "render the spinning grid demo",
			Description: `
Build a grid of boxes and spheres, spin it every frame and render it. The memory
backend renders headless for the configured number of frames; the wgpu backend
opens a window and runs until it is closed or the frame count is reached.

A statistics table is printed when rendering stops.`,
			Flags: []cli.Flag{
				configFlag,
				cli.IntFlag{
					Name:  "frames, n",
					Usage: "number of frames to render, 0 to run until the window closes",
				},
				cli.StringFlag{
					Name:  "backend, b",
					Usage: "render backend: memory or wgpu",
				},
				cli.IntFlag{
					Name:  "grid",
					Usage: "objects per side of the grid",
				},
				cli.BoolFlag{
					Name:  "profile",
					Usage: "log a profiler report every interval",
				},
			},
			Action: RunDemo,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration as TOML",
			Flags:  []cli.Flag{configFlag},
			Action: PrintConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
