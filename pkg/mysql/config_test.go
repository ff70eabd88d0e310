package mysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaultsAndDSN(t *testing.T) {
	cfg := Config{Host: "db", User: "ledger", Password: "secret", DBName: "bank"}
	cfg.SetDefaults()

	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, "ledger:secret@tcp(db:3306)/bank?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())

	custom := Config{Port: 3307, MaxOpenConns: 5}
	custom.SetDefaults()
	assert.Equal(t, 3307, custom.Port)
	assert.Equal(t, 5, custom.MaxOpenConns)
}

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"info", "warn", "error", "silent", ""} {
		assert.NotNil(t, newLogger(level), level)
	}
}
