package main

import (
	"os"

	"github.com/Carmen-Shannon/oxy-sg/engine/config"
	"github.com/urfave/cli"
)

// loadConfig reads --config, or the defaults without one, and applies command line overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if ctx.IsSet("frames") {
		cfg.Renderer.Frames = ctx.Int("frames")
	}
	if ctx.IsSet("backend") {
		cfg.Renderer.Backend = ctx.String("backend")
	}
	if ctx.IsSet("grid") {
		cfg.Scene.Grid = ctx.Int("grid")
	}
	if ctx.Bool("profile") {
		cfg.Profiler.Enabled = true
	}
	return cfg, cfg.Validate()
}

// PrintConfig writes the effective configuration to stdout.
func PrintConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return cfg.WriteTOML(os.Stdout)
}
