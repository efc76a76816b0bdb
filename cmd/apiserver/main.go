// API server entry point: serves the session, document, and analysis REST
// API and dispatches analysis runs to the worker fleet over Kafka.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/documents"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/postgres"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/postgres/repositories"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/messaging/kafka"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/prometheus"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/storage/minio"
	httpserver "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/interfaces/http"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/interfaces/http/handlers"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config (HBI_* env vars only when empty)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	logger = logger.Named("apiserver")
	logger.Info("starting", logging.String("version", version))

	if err := postgres.Migrate(cfg.Database, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	storage, err := minio.NewStorage(cfg.MinIO, logger)
	if err != nil {
		return err
	}

	producer, err := kafka.NewProducer(cfg.Kafka, "apiserver", logger)
	if err != nil {
		return err
	}
	defer producer.Close()

	sessionRepo := repositories.NewSessionRepository(db.Pool, logger)
	documentRepo := repositories.NewDocumentRepository(db.Pool, logger)
	analysisRepo := repositories.NewAnalysisRepository(db.Pool, logger)

	metrics := prometheus.NewMetrics()

	server := httpserver.NewServer(cfg.Server, httpserver.RouterDeps{
		Sessions:        session.NewService(sessionRepo, documentRepo, analysisRepo, storage, logger),
		Documents:       documents.NewService(sessionRepo, documentRepo, storage, cfg.Server.MaxBodySize, logger),
		Analyses:        analysis.NewTrigger(sessionRepo, analysisRepo, producer, logger),
		SessionMetrics:  metrics,
		DocumentMetrics: metrics,
		RequestMetrics:  metrics,
		MetricsHandler:  metrics.Handler(),
		HealthCheckers: []handlers.HealthChecker{
			pingChecker{name: "postgres", ping: db.Ping},
		},
		Version: version,
		Logger:  logger,
	})

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Stop(shutdownCtx)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
