package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/metroplexdata/caseboard/internal/adapter/http"
	kafkaadapter "github.com/metroplexdata/caseboard/internal/adapter/kafka"
	"github.com/metroplexdata/caseboard/internal/adapter/source"
	"github.com/metroplexdata/caseboard/internal/config"
	"github.com/metroplexdata/caseboard/internal/dataset"
	"github.com/metroplexdata/caseboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Refresh notifications are feature-flagged via KAFKA_BROKERS /
	// KAFKA_NOTIFY_ENABLED.
	var notifier dataset.Notifier
	var kafkaNotifier *kafkaadapter.Notifier
	if cfg.NotifierEnabled {
		kafkaNotifier = kafkaadapter.NewNotifier(cfg, logger)
		notifier = kafkaNotifier
		metrics.NotifierEnabled.Set(1)
		logger.Info("kafka refresh notifications enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka refresh notifications disabled")
	}

	store := dataset.NewStore()
	fetchers := dataset.Fetchers{
		Cases:      source.New(cfg.CasesSource, cfg.LoadTimeout),
		Metrics:    source.New(cfg.MetricsSource, cfg.LoadTimeout),
		Headline:   source.New(cfg.HeadlineSource, cfg.LoadTimeout),
		Boundaries: source.New(cfg.BoundariesSource, cfg.LoadTimeout),
	}
	loader := dataset.NewLoader(store, fetchers, notifier, logger, metrics, cfg.LoadTimeout, cfg.RefreshInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.CORSAllowedOrigins, store, loader, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start dataset loader.
	go func() {
		if err := loader.Run(ctx); err != nil {
			logger.Error("dataset loader error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(); err != nil {
			logger.Error("kafka notifier close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
