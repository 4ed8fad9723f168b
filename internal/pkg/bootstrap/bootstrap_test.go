// internal/pkg/bootstrap/bootstrap_test.go
package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/roadie-bag/internal/adapters/storage"
	"github.com/ammerola/roadie-bag/internal/pkg/config"
	"github.com/ammerola/roadie-bag/migrations"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Host:           "db",
			Port:           "5432",
			User:           "roadie",
			Password:       "secret",
			Name:           "roadie_bag",
			SSLMode:        "disable",
			MaxConnections: 25,
			MinConnections: 5,
		},
		Asynq: config.AsynqConfig{RedisAddr: "redis:6379", RedisPassword: "pw", RedisDB: 1},
	}
}

func TestDatabaseConfig(t *testing.T) {
	tests := []struct {
		name            string
		maxConns        int32
		expectedMax     int32
		expectedMinimum int32
	}{
		{name: "configured_pool", maxConns: 0, expectedMax: 25, expectedMinimum: 5},
		{name: "override_keeps_minimum", maxConns: 10, expectedMax: 10, expectedMinimum: 5},
		{name: "override_clamps_minimum", maxConns: 2, expectedMax: 2, expectedMinimum: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DatabaseConfig(testConfig(), tt.maxConns)
			assert.Equal(t, "roadie_bag", c.Database)
			assert.Equal(t, tt.expectedMax, c.MaxConnections)
			assert.Equal(t, tt.expectedMinimum, c.MinConnections)
		})
	}
}

func TestMigrationConfig(t *testing.T) {
	t.Run("embedded_by_default", func(t *testing.T) {
		mc := MigrationConfig(testConfig())
		assert.Equal(t, migrations.FS, mc.Source)
		assert.Empty(t, mc.SourcePath)
		assert.Equal(t, "postgresql://roadie:secret@db:5432/roadie_bag?sslmode=disable", mc.DatabaseURL)
	})

	t.Run("path_overrides_embedded", func(t *testing.T) {
		cfg := testConfig()
		cfg.Database.MigrationPath = "/srv/migrations"
		mc := MigrationConfig(cfg)
		assert.Nil(t, mc.Source)
		assert.Equal(t, "/srv/migrations", mc.SourcePath)
	})
}

func TestAsynqRedisOpt(t *testing.T) {
	opt := AsynqRedisOpt(testConfig())
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 1, opt.DB)
}

func TestOpenExportStorage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("local", func(t *testing.T) {
		cfg := testConfig()
		cfg.Bag.ExportStorage = "local"
		cfg.Bag.ExportLocalDir = t.TempDir()

		store, err := OpenExportStorage(context.Background(), cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &storage.LocalStorage{}, store)
	})

	t.Run("unknown_backend", func(t *testing.T) {
		cfg := testConfig()
		cfg.Bag.ExportStorage = "ftp"

		_, err := OpenExportStorage(context.Background(), cfg, logger)
		assert.EqualError(t, err, `unknown export storage "ftp"`)
	})
}
