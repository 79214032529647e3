package cmd

import (
	"github.com/aji27/comgr-hs18/log"
	"github.com/urfave/cli"
)

var logger = log.New("comgr")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
