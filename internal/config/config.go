// Package config loads server settings. Sources in increasing priority:
// defaults, an optional config.yaml, then UPMPOLY_ environment variables
// (a .env file is loaded into the environment first).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	redisstorage "github.com/mcoot/upmpoly/internal/storage/redis"
	"github.com/mcoot/upmpoly/internal/storage/sqlite"
)

// EnvPrefix is prepended to every environment variable, with dots in the
// key replaced by underscores (server.port -> UPMPOLY_SERVER_PORT)
const EnvPrefix = "UPMPOLY"

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selects and configures the record store
type StorageConfig struct {
	Type   string       `mapstructure:"type" validate:"oneof=memory redis sqlite"`
	Redis  RedisConfig  `mapstructure:"redis"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig mirrors the redis store settings
type RedisConfig struct {
	URL          string `mapstructure:"url" validate:"required_if=Enabled true"`
	PoolSize     int    `mapstructure:"pool_size" validate:"min=1"`
	MinIdleConns int    `mapstructure:"min_idle_conns" validate:"min=0"`
	KeyPrefix    string `mapstructure:"key_prefix" validate:"required"`
	MaxTxRetries int    `mapstructure:"max_tx_retries" validate:"min=0"`

	// Enabled is derived from Storage.Type after loading
	Enabled bool `mapstructure:"-"`
}

// StoreConfig converts to the redis store's own config
func (c RedisConfig) StoreConfig() redisstorage.Config {
	return redisstorage.Config{
		URL:          c.URL,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		KeyPrefix:    c.KeyPrefix,
		MaxTxRetries: c.MaxTxRetries,
	}
}

// SQLiteConfig mirrors the sqlite store settings
type SQLiteConfig struct {
	Path        string        `mapstructure:"path" validate:"required_if=Enabled true"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout" validate:"min=0"`

	// Enabled is derived from Storage.Type after loading
	Enabled bool `mapstructure:"-"`
}

// StoreConfig converts to the sqlite store's own config
func (c SQLiteConfig) StoreConfig() sqlite.Config {
	return sqlite.Config{
		Path:              c.Path,
		BusyTimeoutMillis: int(c.BusyTimeout / time.Millisecond),
	}
}

// LoggingConfig controls the slog handler
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel maps the configured level name to a slog.Level
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AdminConfig guards the destructive routes
type AdminConfig struct {
	// TokenHash is a bcrypt hash of the admin token. Empty leaves the
	// admin routes open.
	TokenHash string `mapstructure:"token_hash" validate:"omitempty,startswith=$2"`
}

// SeedConfig controls the initial roster
type SeedConfig struct {
	OnStart bool `mapstructure:"on_start"`
}

// Load reads configuration. configPath may be empty, in which case an
// optional config.yaml is searched for in the usual places.
func Load(configPath string) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/upmpoly")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage.Redis.Enabled = cfg.Storage.Type == "redis"
	cfg.Storage.SQLite.Enabled = cfg.Storage.Type == "sqlite"

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
