package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"brewmetrics/internal/config"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/notification"
	"brewmetrics/internal/queue"
	"brewmetrics/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)
	logg := logger.WithComponent("notifier")

	if !cfg.Kafka.Enabled() {
		logg.Fatal().Msg("KAFKA_BROKERS must be set for the notifier service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis-backed cooldown is optional; without it every alert goes out.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logg.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logg.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		logg.Info().Msg("redis not configured, alert cooldown disabled")
	}
	gate := state.NewCooldownGate(redisClient, cfg.Dispatch.CooldownTTL)

	orchestrator := notification.NewOrchestrator(
		notification.NewEmailNotifier(cfg.SMTP),
		notification.NewSlackNotifier(cfg.Slack),
	)
	logg.Info().Strs("channels", orchestrator.Channels()).Msg("notification channels configured")

	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic, cfg.Kafka.GroupID)
	defer consumer.Close()
	logg.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.AlertsTopic).
		Str("group", cfg.Kafka.GroupID).
		Msg("kafka consumer initialized")

	run(ctx, logg, consumer, gate, orchestrator)

	logg.Info().Msg("notifier stopped")
}

// run consumes alerts until the context is cancelled
func run(ctx context.Context, logg zerolog.Logger, consumer *queue.Consumer, gate *state.CooldownGate, orchestrator *notification.Orchestrator) {
	for {
		msg, err := consumer.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			logg.Error().Err(err).Msg("failed to fetch message")
			continue
		}

		alert, err := queue.DecodeAlert(msg)
		if err != nil {
			logg.Error().Err(err).Msg("failed to decode alert, skipping")
			consumer.Commit(ctx, msg)
			continue
		}

		allowed, err := gate.Allow(ctx, alert)
		if err != nil {
			logg.Warn().Err(err).Msg("cooldown check failed")
		}
		if !allowed {
			logg.Debug().
				Str("alert_id", alert.ID).
				Str("category", string(alert.Category)).
				Msg("alert suppressed by cooldown")
			consumer.Commit(ctx, msg)
			continue
		}

		if err := orchestrator.Notify(ctx, alert); err != nil {
			logg.Error().Err(err).Str("alert_id", alert.ID).Msg("notification failed")
			// No commit, so the alert is redelivered after a restart.
			continue
		}

		if err := consumer.Commit(ctx, msg); err != nil {
			logg.Error().Err(err).Msg("failed to commit offset")
		}
	}
}
