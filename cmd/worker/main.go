package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"leonine/config"
	"leonine/di"
	"leonine/shared/logger"
	"leonine/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.SetComponent(cfg, "worker")

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Msg("Falling back to UTC")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Notification worker stopped")
	}

	log.Info().Msg("Notification worker shut down.")
}
