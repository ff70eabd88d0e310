// Package config 載入服務設定
//
// 優先順序 (後者覆蓋前者): 程式預設值 < config.yaml < .env / 環境變數 (LEDGER_ 前綴)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
	"github.com/JoeShih716/go-bank-ledger/pkg/postgres"
)

// EnvPrefix 環境變數前綴，例如 LEDGER_STORE_DRIVER
const EnvPrefix = "LEDGER_"

const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Log      LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Store    StoreConfig     `yaml:"store" envPrefix:"STORE_"`
	MySQL    mysql.Config    `yaml:"mysql" envPrefix:"MYSQL_"`
	Postgres postgres.Config `yaml:"postgres" envPrefix:"POSTGRES_"`
}

type ServerConfig struct {
	GrpcAddr    string `yaml:"grpc_addr" env:"GRPC_ADDR"`       // gRPC 監聽地址
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"` // /metrics 監聽地址，空字串代表關閉
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

type StoreConfig struct {
	Driver  string `yaml:"driver" env:"DRIVER"`     // memory | mysql | postgres
	WALPath string `yaml:"wal_path" env:"WAL_PATH"` // 只有 memory 使用，空字串代表不落地
}

// Load 讀取設定檔並套用環境變數
//
// 參數:
//
//	path: yaml 設定檔路徑，檔案不存在時只使用預設值與環境變數
//	dotenv: .env 檔路徑，檔案不存在時略過
func Load(path, dotenv string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// godotenv 不覆蓋已存在的環境變數
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaults 補全沒有設定的欄位
func (c *Config) SetDefaults() {
	if c.Server.GrpcAddr == "" {
		c.Server.GrpcAddr = ":50051"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	c.MySQL.SetDefaults()
	c.Postgres.SetDefaults()
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverMySQL, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
}
