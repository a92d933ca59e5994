package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cardio/cardio/internal/config"
	"github.com/cardio/cardio/internal/domain/heartrate"
	"github.com/cardio/cardio/internal/domain/patient"
	"github.com/cardio/cardio/internal/platform/metrics"
	"github.com/cardio/cardio/internal/seed"
)

const version = "0.1.0"

// seedTimeout bounds loading the dataset at startup.
const seedTimeout = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:          "cardio-server",
		Short:        "Patient and heart-rate query API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(datasetCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Seed the stores and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(env, level string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		logger = logger.Level(lvl)
	}
	return logger
}

func runServer() error {
	// Logger
	logger := newLogger(os.Getenv("ENV"), "")

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger = newLogger(cfg.Env, cfg.LogLevel)

	// Stores
	patients := patient.NewStore()
	readings := heartrate.NewStore()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// A failed seed is logged and the server starts with empty stores.
	seedStores(cfg, logger, patients, readings, m)

	e := newServer(serverDeps{
		cfg:      cfg,
		logger:   logger,
		patients: patients,
		readings: readings,
		metrics:  m,
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("version", version).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func seedStores(cfg *config.Config, logger zerolog.Logger, patients *patient.Store, readings *heartrate.Store, m *metrics.Metrics) {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	src, err := seed.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Str("dataset_url", cfg.DatasetURL).Msg("failed to open dataset")
		return
	}
	defer src.Close()

	var gauge seed.Gauge
	if m != nil {
		gauge = m
	}
	_, _ = seed.NewSeeder(patients, readings, gauge, logger).Seed(ctx, src)
}
