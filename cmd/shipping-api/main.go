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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/api"
	"github.com/cargoline/shipping-core/internal/api/handler"
	"github.com/cargoline/shipping-core/internal/core/ports"
	"github.com/cargoline/shipping-core/internal/core/service"
	"github.com/cargoline/shipping-core/internal/infrastructure/config"
	"github.com/cargoline/shipping-core/internal/infrastructure/db/memory"
	mongodb "github.com/cargoline/shipping-core/internal/infrastructure/db/mongo"
	"github.com/cargoline/shipping-core/internal/infrastructure/db/postgres"
	redisdb "github.com/cargoline/shipping-core/internal/infrastructure/db/redis"
	"github.com/cargoline/shipping-core/internal/infrastructure/messaging/kafka"
	"github.com/cargoline/shipping-core/internal/infrastructure/queue"
	"github.com/cargoline/shipping-core/internal/jobs"
	"github.com/cargoline/shipping-core/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg("shipping-api exited with error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shipping-api",
	})

	// --- Registry storage ---
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	if cfg.SeedDemo {
		n, err := memory.Seed(ctx, store.repo, memory.DemoShipments())
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		log.Info().Int("created", n).Msg("demo shipments seeded")
	}

	checks := []handler.DependencyCheck{{Name: cfg.Storage, Pinger: store.pinger}}

	// --- Event de-duplication ---
	var dedup ports.DedupChecker = redisdb.NopDedup{}
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		checker := redisdb.NewDedupChecker(rdb, cfg.Redis.DedupTTL)
		dedup = checker
		checks = append(checks, handler.DependencyCheck{Name: "redis", Pinger: checker})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis dedup enabled")
	}

	// --- Stage notifications ---
	var publisher ports.EventPublisher = kafka.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		publisher = p
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka publisher enabled")
	}

	// --- Core services ---
	quotes := service.NewQuoteService(cfg.Rates)
	tracking := service.NewTrackingService(store.repo, logger.For("tracking"))
	registry := service.NewRegistryService(store.repo, quotes, logger.For("registry"))
	events := service.NewEventService(store.repo, dedup, publisher, logger.For("events"))

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher := queue.NewDispatcher(cfg.Dispatcher.Workers, events, logger.For("dispatcher"))
	dispatcher.Start(workerCtx)

	statsJob := jobs.NewRegistryStatsJob(registry, cfg.Jobs.StatsSchedule, log)
	if err := statsJob.Start(); err != nil {
		return err
	}
	defer statsJob.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Tracking:   tracking,
		Registry:   registry,
		Quotes:     quotes,
		Dispatcher: dispatcher,
		Checks:     checks,
		Logger:     logger.For("http"),
		Registerer: prometheus.DefaultRegisterer,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}

	// Queued events are applied before the stores close.
	dispatcher.Stop()
	log.Info().Msg("shutdown complete")
	return nil
}

type storage struct {
	repo   ports.ShipmentRepository
	pinger handler.Pinger
	close  func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage {
	case config.StorageMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repo := mongodb.NewShipmentRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo registry ready")
		return &storage{
			repo:   repo,
			pinger: repo,
			close:  func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.StoragePostgres:
		db, err := postgres.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewShipmentRepository(db)
		log.Info().Msg("postgres registry ready")
		return &storage{
			repo:   repo,
			pinger: repo,
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	default:
		repo := memory.NewShipmentRepository()
		log.Info().Msg("in-memory registry ready")
		return &storage{repo: repo, pinger: repo, close: func() {}}, nil
	}
}
