package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"brewmetrics/internal/config"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := server.New(cfg)
	if err := s.Run(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server exited")
	}
}
