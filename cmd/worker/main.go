// cmd/worker/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/roadie-bag/internal/adapters/db"
	redis_a "github.com/ammerola/roadie-bag/internal/adapters/redis_adapter"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/internal/pkg/bootstrap"
	"github.com/ammerola/roadie-bag/internal/pkg/logger"
	"github.com/ammerola/roadie-bag/internal/workers"
)

// Fewer connections than the API; exports page through items sequentially
const workerMaxConnections = 10

func main() {
	slogger := logger.SetupLogger("info", "json").Logger

	ctx := context.Background()

	cfg, err := bootstrap.LoadConfig(ctx, slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	database, err := bootstrap.OpenDatabase(ctx, cfg, workerMaxConnections, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	exportStorage, err := bootstrap.OpenExportStorage(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize export storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	clock := services.SystemClock()
	itemRepo := db.NewItemRepository(database, slogger)
	drawRepo := db.NewDrawRepository(database, slogger)

	redisOpt := bootstrap.AsynqRedisOpt(cfg)
	asynqLogger := workers.NewAsynqLogger(slogger)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck,
		Logger:          asynqLogger,
	})

	mux := asynq.NewServeMux()

	exportProcessor := workers.NewExportProcessor(itemRepo, drawRepo, cache, exportStorage, clock,
		workers.ExportConfig{
			Prefix:     cfg.Bag.ExportPrefix,
			PresignTTL: cfg.Bag.PresignTTL,
			StatusTTL:  cfg.Bag.ExportRetention,
		}, slogger)
	mux.HandleFunc(workers.TypeExportBag, exportProcessor.ProcessExport)

	cleanupProcessor := workers.NewCleanupProcessor(exportStorage, clock,
		cfg.Bag.ExportPrefix, cfg.Bag.ExportRetention, slogger)
	mux.HandleFunc(workers.TypeCleanupExports, cleanupProcessor.CleanupExports)

	notificationProcessor := workers.NewDrawNotificationProcessor(cache, slogger)
	mux.HandleFunc(workers.TypeDrawRecorded, notificationProcessor.ProcessDrawRecorded)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   asynqLogger,
	})
	if cfg.Asynq.CleanupCron != "" {
		entryID, err := scheduler.Register(cfg.Asynq.CleanupCron, workers.NewCleanupExportsTask())
		if err != nil {
			slogger.Error("failed to schedule export cleanup", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("export cleanup scheduled",
			slog.String("cron", cfg.Asynq.CleanupCron),
			slog.String("entry_id", entryID))
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.Int("retried", retried),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	if n > 10 {
		return maxDelay
	}
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}
