package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/config"
	"github.com/turingair/flightassist/internal/kafka"
	"github.com/turingair/flightassist/internal/logger"
	"github.com/turingair/flightassist/internal/notify"
)

// The worker consumes booking events and delivers customer notifications.
func main() {
	logger.Init(logger.Config{Debug: os.Getenv("DEBUG") != "", Pretty: os.Getenv("PRETTY_LOG") != ""})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal().Msg("kafka brokers are required for the notification worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier()
	err = consumer.Consume(ctx, notifier.Notify)
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("consumer stopped")
	}
	log.Info().Msg("shutting down")
}
