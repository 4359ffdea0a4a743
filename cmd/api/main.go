package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mihman/internal/api"
	"mihman/internal/config"
	"mihman/internal/database"
	"mihman/internal/domain"
	"mihman/internal/events"
	"mihman/internal/export"
	"mihman/internal/logging"
	"mihman/internal/metrics"
	"mihman/internal/repository"
	"mihman/internal/service"
	"mihman/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := initCache(ctx, cfg, &logger)
	bus := initEventBus(&logger)

	hotels := service.NewHotelService(db, &logger)
	if err := hotels.SeedHotels(ctx, cfg.Hotels); err != nil {
		logger.Error().Err(err).Msg("seed hotel catalog")
		return err
	}

	fetchRetry := worker.LinearPolicy(cfg.Booking.FetchRetries, time.Duration(cfg.Booking.FetchDelaySeconds)*time.Second)
	bookings := service.NewBookingService(db, cache, bus, fetchRetry, &logger)
	transactions := service.NewTransactionService(db)
	exporter := export.NewExporter(db, cfg.Exports.Path, &logger)

	httpServer := api.NewHTTPServer(cfg.API, bookings, hotels, transactions, exporter, &logger)

	startMetrics(ctx, cfg, &logger)
	go database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger).Start(ctx)

	return serve(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// initCache wires the guest reservation cache: Redis when reachable, with an
// in-memory fallback behind the failover wrapper, plain in-memory otherwise.
func initCache(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.ReservationCache {
	memory := repository.NewMemoryReservationCache(cfg.CacheTTL())

	if cfg.Redis.Address == "" {
		logger.Info().Msg("redis not configured, using in-memory reservation cache")
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory reservation cache")
		_ = repository.Close(client)
		return memory
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	primary := repository.NewRedisReservationCache(client, cfg.CacheTTL())
	return repository.NewFailoverReservationCache(primary, memory, logger)
}

// initEventBus attaches a logging consumer so every domain event leaves a trace.
func initEventBus(logger *zerolog.Logger) *events.EventBus {
	bus := events.NewEventBus()
	eventLogger := logger.With().Str("component", "events").Logger()

	logHandler := func(event *events.Event) error {
		eventLogger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}

	for _, eventType := range []string{
		events.EventReservationCreated,
		events.EventReservationConfirmed,
		events.EventReservationCancelled,
		events.EventReservationDeleted,
		events.EventRefundRequested,
		events.EventRefundProcessed,
		events.EventStatusChanged,
	} {
		bus.Subscribe(eventType, logHandler)
	}

	return bus
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serve(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
