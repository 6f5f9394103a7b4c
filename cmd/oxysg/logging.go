package main

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/config"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/urfave/cli"
)

var logger = log.New("oxysg")

// setupLogging applies the configured level unless a verbosity flag overrides it.
func setupLogging(ctx *cli.Context, cfg config.Config) {
	log.SetLevel(cfg.Level())

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
