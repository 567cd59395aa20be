package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"venuebook/config"
	"venuebook/infras/kafka"
	"venuebook/infras/metrics"
	"venuebook/infras/otel"
	"venuebook/internal/events/booking"
	"venuebook/shared/logger"
	"venuebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Msg("Falling back to UTC")
	}

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ot := otel.New(cfg)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := ot.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	m := metrics.New(cfg)

	client := kafka.New(cfg, ot)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	if cfg.Metrics.Enable {
		server := &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           m.Handler(),
			ReadHeaderTimeout: shutdownTimeout,
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shut down metrics server")
			}
		}()
	}

	consumer := booking.NewConsumer(ot, m)

	log.Info().Str("topic", cfg.Kafka.Topic.BookingEvents).Msg("Consuming booking events")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic.BookingEvents, consumer.Handle)
}
