package cmd

import (
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/log"
	"github.com/urfave/cli"
)

var logger = log.New("pipeline")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
