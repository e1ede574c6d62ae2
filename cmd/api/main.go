package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/roster/internal/api"
	"example.com/roster/internal/catalog"
	"example.com/roster/internal/config"
	"example.com/roster/internal/domain"
	"example.com/roster/internal/logging"
	"example.com/roster/internal/observability"
	"example.com/roster/internal/outbox"
	"example.com/roster/internal/persistence/memory"
	httptransport "example.com/roster/internal/transport/http"
	"example.com/roster/web"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("roster-service: %v", err)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed, err := catalog.Load(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	repo, err := memory.NewRepository(seed)
	if err != nil {
		return fmt.Errorf("build roster: %w", err)
	}
	observability.RecordRosterSizes(seed)
	logger.Infof("loaded %d activities", len(seed))

	opts := []domain.Option{domain.WithRecorder(observability.RosterRecorder{})}

	var dispatcher *outbox.Dispatcher
	if cfg.EventsEnabled() {
		producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()

		dispatcher = outbox.NewDispatcher(producer, outbox.Config{
			Topic:         cfg.RosterEventsTopic,
			BufferSize:    cfg.OutboxBufferSize,
			BatchSize:     cfg.OutboxBatchSize,
			FlushInterval: cfg.OutboxFlushEvery,
		}, logger.Named("outbox"))
		go dispatcher.Start(ctx)

		opts = append(opts, domain.WithPublisher(dispatcher))
		logger.Infof("publishing roster events to %s via %v", cfg.RosterEventsTopic, cfg.KafkaBrokers)
	}

	service := domain.NewService(repo, opts...)

	handler := api.NewHandler(service, web.Static())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.Chain(mux,
		httptransport.RequestLogger(logger.Named("http")),
		httptransport.CORS(cfg.CORSAllowedOrigin),
	))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("roster-service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-shutdownCh:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("graceful shutdown failed: %v", err)
	}

	cancel()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
