package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.NoError(t, err)

	assert.Equal(t, ":50051", cfg.Server.GrpcAddr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  grpc_addr: ":6000"
  metrics_addr: ":9100"
store:
  driver: mysql
mysql:
  host: db
  user: ledger
  db_name: ledger
  conn_max_lifetime: 10m
`)
	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.Server.GrpcAddr)
	assert.Equal(t, ":9100", cfg.Server.MetricsAddr)
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
	assert.Equal(t, "db", cfg.MySQL.Host)
	assert.Equal(t, 10*time.Minute, cfg.MySQL.ConnMaxLifetime)
	assert.Equal(t, 100, cfg.MySQL.MaxOpenConns)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
store:
  driver: mysql
  wal_path: from-yaml.log
mysql:
  host: db
`)
	t.Setenv("LEDGER_STORE_DRIVER", "postgres")
	t.Setenv("LEDGER_POSTGRES_HOST", "pg")
	t.Setenv("LEDGER_POSTGRES_MAX_CONNS", "5")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "from-yaml.log", cfg.Store.WALPath)
	assert.Equal(t, "db", cfg.MySQL.Host)
	assert.Equal(t, "pg", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
}

func TestLoadDotenv(t *testing.T) {
	dotenv := writeFile(t, ".env", "LEDGER_LOG_LEVEL=debug\nLEDGER_SERVER_GRPC_ADDR=:7000\n")
	t.Setenv("LEDGER_SERVER_GRPC_ADDR", ":8000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), dotenv)
	t.Cleanup(func() { os.Unsetenv("LEDGER_LOG_LEVEL") })
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	// 已存在的環境變數優先
	assert.Equal(t, ":8000", cfg.Server.GrpcAddr)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("LEDGER_STORE_DRIVER", "redis")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "server: [")
	_, err := Load(path, "")
	assert.Error(t, err)
}
