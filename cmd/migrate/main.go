package main

import (
	"os"

	"leonine/config"
	"leonine/helper"
	"leonine/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	minArgs = 2
	usage   = "usage: migrate up|down|step-up|drop|version"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < minArgs {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)
	logger.SetComponent(cfg, "migrate")

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg(usage)
	}
}
