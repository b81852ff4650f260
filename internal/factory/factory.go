package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/upmpoly/internal/services/economy"
	"github.com/mcoot/upmpoly/internal/services/query"
	"github.com/mcoot/upmpoly/internal/storage"
	"github.com/mcoot/upmpoly/internal/storage/memory"
	redisstorage "github.com/mcoot/upmpoly/internal/storage/redis"
	"github.com/mcoot/upmpoly/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Services
	EconomyController *economy.Controller
	QueryService      *query.Service
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds the database settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlite.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("type", storageType(cfg)))

	return newWithDependencies(store, logger), nil
}

func storageType(cfg Config) string {
	if cfg.StorageType == "" {
		return StorageTypeMemory
	}
	return cfg.StorageType
}

// newStorage creates the backend selected by cfg.StorageType
func newStorage(cfg Config) (storage.Storage, error) {
	switch storageType(cfg) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return redisStore, nil
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		return sqlite.New(*cfg.SQLiteConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", cfg.StorageType)
	}
}

// newWithDependencies creates an App around an existing store (useful for testing)
func newWithDependencies(store storage.Storage, logger *slog.Logger) *App {
	return &App{
		Storage:           store,
		EconomyController: economy.NewController(store, logger),
		QueryService:      query.New(store, logger),
	}
}
