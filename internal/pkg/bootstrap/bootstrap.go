// internal/pkg/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/roadie-bag/internal/adapters/db"
	"github.com/ammerola/roadie-bag/internal/adapters/storage"
	"github.com/ammerola/roadie-bag/internal/core/ports"
	"github.com/ammerola/roadie-bag/internal/pkg/config"
	"github.com/ammerola/roadie-bag/migrations"
)

const migrationRetries = 3

// LoadConfig reads the environment and then overlays secrets from the
// configured secrets manager.
func LoadConfig(ctx context.Context, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(logger)
	if err != nil {
		return nil, err
	}

	sm, err := config.NewSecretsManager(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets manager: %w", err)
	}
	if err := config.ResolveSecrets(ctx, cfg, sm); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseConfig maps application settings onto the pool config.
// maxConns overrides the configured pool size when positive.
func DatabaseConfig(cfg *config.Config, maxConns int32) *db.Config {
	c := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}
	if maxConns > 0 {
		c.MaxConnections = maxConns
		if c.MinConnections > maxConns {
			c.MinConnections = maxConns
		}
	}
	return c
}

// OpenDatabase connects the pgx pool
func OpenDatabase(ctx context.Context, cfg *config.Config, maxConns int32, logger *slog.Logger) (*db.Database, error) {
	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name))

	database, err := db.NewDatabase(ctx, DatabaseConfig(cfg, maxConns), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

// OpenRedis connects the cache client and pings it
func OpenRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	logger.Info("connecting to Redis", slog.String("addr", cfg.GetRedisAddress()))

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// AsynqRedisOpt is the connection the task client, inspector and server share
func AsynqRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
}

// MigrationConfig uses the embedded migrations unless a path is configured
func MigrationConfig(cfg *config.Config) *db.MigrationConfig {
	mc := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}
	if cfg.Database.MigrationPath != "" {
		mc.SourcePath = cfg.Database.MigrationPath
	} else {
		mc.Source = migrations.FS
	}
	return mc
}

// RunMigrations applies every pending migration, retrying while the
// database comes up
func RunMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")
	return db.RunMigrationsWithRetry(ctx, MigrationConfig(cfg), logger, migrationRetries)
}

// NewMigrator opens a migrator for the up/down/status subcommands
func NewMigrator(cfg *config.Config, logger *slog.Logger) (*db.Migrator, error) {
	return db.NewMigrator(MigrationConfig(cfg), logger)
}

// OpenExportStorage picks the object store exports are written to
func OpenExportStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ObjectStorage, error) {
	switch cfg.Bag.ExportStorage {
	case "s3":
		s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s3, nil
	case "local", "":
		local, err := storage.NewLocalStorage(cfg.Bag.ExportLocalDir, logger)
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unknown export storage %q", cfg.Bag.ExportStorage)
	}
}
