package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"medidispatch/internal/api"
	"medidispatch/internal/config"
	"medidispatch/internal/notify"
	"medidispatch/internal/redis"
	"medidispatch/internal/service"
	"medidispatch/internal/storage/postgres"
	"medidispatch/internal/workers"
	"medidispatch/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	NotifyQ    *redis.NotifyQueue
	Workers    *workers.NotifyWorkerPool
	amqp       *notify.AMQPPublisher
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	candidateCache := redis.NewCandidateCache(redisClient)
	notifyQueue := redis.NewNotifyQueue(redisClient.Client, "dispatch:notify:queue")

	var senders []notify.Sender
	if !cfg.Webhook.Disabled {
		senders = append(senders, notify.NewWebhookSender(logger, cfg.Webhook))
	}

	var amqpPub *notify.AMQPPublisher
	if cfg.AMQP.Enabled {
		amqpPub, err = notify.NewAMQPPublisher(logger, cfg.AMQP)
		if err != nil {
			return nil, fmt.Errorf("failed to init amqp publisher: %w", err)
		}
		senders = append(senders, amqpPub)
	}

	pool := workers.NewNotifyWorkerPool(logger, notifyQueue, senders, cfg.Dispatch.WorkerPoolSize)

	candidateSvc := service.NewCandidateService(storage.Candidates(), candidateCache, logger)
	dispatchSvc := service.NewDispatchService(
		storage.Candidates(),
		storage.Dispatches(),
		candidateCache,
		notifyQueue,
		logger,
		cfg.Dispatch.DefaultRadiusKm,
		cfg.Dispatch.NotifyLimit,
		cfg.Dispatch.CacheTTL,
	)
	statsSvc := service.NewStatsService(storage.Dispatches())

	srv := service.NewService(candidateSvc, dispatchSvc, statsSvc)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		NotifyQ:    notifyQueue,
		Workers:    pool,
		amqp:       amqpPub,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}
	if c.amqp != nil {
		if err := c.amqp.Close(); err != nil {
			c.logger.Error("AMQP close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components shut down",
		slog.Duration("latency", time.Since(start)))
}
