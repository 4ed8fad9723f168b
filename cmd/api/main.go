// cmd/api/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/roadie-bag/internal/adapters/db"
	redis_a "github.com/ammerola/roadie-bag/internal/adapters/redis_adapter"
	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/internal/handlers"
	"github.com/ammerola/roadie-bag/internal/pkg/bootstrap"
	"github.com/ammerola/roadie-bag/internal/pkg/config"
	"github.com/ammerola/roadie-bag/internal/pkg/logger"
	"github.com/ammerola/roadie-bag/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	ctx := context.Background()

	cfg, err := bootstrap.LoadConfig(ctx, slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrateCommand(ctx, cfg, os.Args[2:], slogger.Logger); err != nil {
			slogger.Error("migration command failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	slogger.Info("starting roadie bag api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
		slog.String("environment", cfg.App.Environment),
	)

	if cfg.Database.AutoMigrate {
		if err := bootstrap.RunMigrations(ctx, cfg, slogger.Logger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        deps.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds everything main has to close on the way out
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	router         http.Handler
}

func (d *dependencies) cleanup() {
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, log *logger.Logger) (*dependencies, error) {
	slogger := log.Logger
	deps := &dependencies{}

	database, err := bootstrap.OpenDatabase(ctx, cfg, 0, slogger)
	if err != nil {
		return nil, err
	}
	deps.database = database

	redisClient, err := bootstrap.OpenRedis(ctx, cfg, slogger)
	if err != nil {
		deps.cleanup()
		return nil, err
	}
	deps.redisClient = redisClient
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	asynqOpt := bootstrap.AsynqRedisOpt(cfg)
	deps.asynqClient = asynq.NewClient(asynqOpt)
	deps.asynqInspector = asynq.NewInspector(asynqOpt)
	taskClient := workers.NewTaskClient(deps.asynqClient, slogger)

	clock := services.SystemClock()

	// Repositories
	itemRepo := db.NewItemRepository(database, slogger)
	drawRepo := db.NewDrawRepository(database, slogger)
	userRepo := db.NewUserRepository(database, slogger)

	// Services
	itemService := services.NewCachingItemService(
		services.NewItemService(itemRepo, clock, slogger),
		cache, cfg.Bag.CacheTTL, slogger)

	drawService := services.NewDrawService(drawRepo, services.SystemRandom(), clock, slogger,
		services.WithTaskQueue(taskClient),
		services.WithItemInvalidator(itemService),
		services.WithMaxRetries(cfg.Bag.DrawRetries))

	tokens := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.JWTExpiration, time.Now)
	authService := services.NewAuthService(userRepo, tokens, cache, clock, cfg.Security.BcryptCost, slogger)

	exportService := services.NewExportService(taskClient, cache, clock, cfg.Bag.ExportRetention, slogger)

	deps.router = handlers.NewRouter(handlers.RouterConfig{
		Items:   handlers.NewItemHandler(itemService, drawService, cfg.Bag.DefaultPageSize, slogger),
		Draws:   handlers.NewDrawHandler(drawService, slogger),
		Auth:    handlers.NewAuthHandler(authService, slogger),
		Exports: handlers.NewExportHandler(exportService, slogger),
		Health: handlers.NewHealthHandler(database, cache, deps.asynqInspector,
			Version, cfg.App.Environment, slogger),

		AuthService: authService,

		RequestIDHeader:   cfg.Security.RequestIDHeader,
		AllowedOrigins:    cfg.Security.AllowedOrigins,
		SecureHeaders:     cfg.Security.SecureHeaders,
		RateLimitRequests: cfg.Security.RateLimitRequests,
		RateLimitDuration: cfg.Security.RateLimitDuration,
		Logger:            log,
	})

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

// runMigrateCommand handles `api migrate up|down|status`
func runMigrateCommand(ctx context.Context, cfg *config.Config, args []string, logger *slog.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: api migrate up|down|status")
	}

	migrator, err := bootstrap.NewMigrator(cfg, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch args[0] {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		status, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
}
