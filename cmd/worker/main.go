// Worker entry point: consumes analysis.requested events and runs the
// pipeline — extraction, AI analysis, risk scoring, market enrichment, and
// bidding advice.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	appanalysis "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/market"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/postgres"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/postgres/repositories"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/redis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/external"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/messaging/kafka"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/prometheus"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/pdf"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/storage/minio"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "worker:", err)
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
	logger = logger.Named("worker")
	logger.Info("starting",
		logging.String("version", version),
		logging.Int("concurrency", cfg.Worker.Concurrency))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	cache := redis.NewRedisCache(redisClient, logger)

	storage, err := minio.NewStorage(cfg.MinIO, logger)
	if err != nil {
		return err
	}

	gateway, err := intelligence.NewGateway(ctx, cfg.Intelligence, logger)
	if err != nil {
		return err
	}

	producer, err := kafka.NewProducer(cfg.Kafka, "worker", logger)
	if err != nil {
		return err
	}
	defer producer.Close()

	enricher := market.NewIntelligence(
		external.NewBAGClient(cfg.External, cache, logger),
		external.NewEPOnlineClient(cfg.External, cache, logger),
		external.NewCBSClient(cfg.External, cache, logger),
		logger,
	)

	metrics := prometheus.NewMetrics()
	orchestrator := appanalysis.NewOrchestrator(
		gateway,
		repositories.NewAnalysisRepository(db.Pool, logger),
		repositories.NewDocumentRepository(db.Pool, logger),
		storage,
		pdf.NewExtractor(),
		enricher,
		logger,
		appanalysis.WithEventPublisher(producer),
		appanalysis.WithMetrics(metrics),
	)

	handler := func(ctx context.Context, env *kafka.EventEnvelope) error {
		var payload kafka.AnalysisRequestedPayload
		if err := env.DecodePayload(&payload); err != nil {
			return err
		}
		_, err := orchestrator.Run(ctx, payload.SessionID)
		return err
	}

	// One consumer per slot; they share a group, so partitions spread across
	// the slots and across worker processes.
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.TopicAnalysisRequested, handler, logger)
		if err != nil {
			return err
		}
		group.Go(func() error {
			defer consumer.Close()
			return consumer.Run(groupCtx)
		})
	}

	logger.Info("consuming", logging.String("topic", kafka.TopicAnalysisRequested))
	return group.Wait()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
