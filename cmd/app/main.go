package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/api"
	"github.com/turingair/flightassist/config"
	"github.com/turingair/flightassist/internal/agent"
	"github.com/turingair/flightassist/internal/bootstrap"
	"github.com/turingair/flightassist/internal/kafka"
	"github.com/turingair/flightassist/internal/logger"
	"github.com/turingair/flightassist/internal/memory"
	"github.com/turingair/flightassist/internal/service/booking"
	"github.com/turingair/flightassist/internal/store"
	"github.com/turingair/flightassist/internal/tools"
)

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
	llmCfg, err := config.LoadLLM()
	if err != nil {
		log.Fatal().Err(err).Msg("load llm config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bookingStore := store.Seed(store.SeedConfig{
		Count:      cfg.Seed.Count,
		Names:      cfg.Seed.Names,
		Airports:   cfg.Seed.Airports,
		DaySpacing: cfg.Seed.DaySpacing,
		RandSeed:   cfg.Seed.RandSeed,
	})

	var opts []booking.BookingServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic))
	}
	bookingService := booking.NewBookingService(bookingStore, opts...)
	bookingTools := tools.NewBookingTools(bookingService)

	var history memory.History
	if cfg.Redis.Addr != "" {
		history = memory.NewRedisHistory(cfg.Redis,
			time.Duration(cfg.Chat.HistoryTTLMinutes)*time.Minute, cfg.Chat.HistoryWindow)
	} else {
		history = memory.NewInProcessHistory(cfg.Chat.HistoryWindow)
	}
	assistant := agent.New(llmCfg, bookingTools, history)

	// periodic sweep: CONFIRMED bookings whose flight date has passed
	// become COMPLETED
	sweepMinutes := cfg.Worker.CompletionSweepMinutes
	if sweepMinutes <= 0 {
		sweepMinutes = 60
	}
	go func() {
		ticker := time.NewTicker(time.Duration(sweepMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				completed, err := bookingService.CompleteDepartedBookings(ctx)
				if err != nil {
					log.Warn().Err(err).Msg("completion sweep error")
					continue
				}
				if len(completed) > 0 {
					log.Info().Int("count", len(completed)).Msg("completed departed bookings")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	err = bootstrap.Run(ctx, cfg,
		api.NewBookingHandler(bookingService),
		api.NewToolHandler(bookingTools),
		api.NewChatHandler(assistant),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
