package config

import (
	"time"

	"github.com/spf13/viper"

	redisstorage "github.com/mcoot/upmpoly/internal/storage/redis"
	"github.com/mcoot/upmpoly/internal/storage/sqlite"
)

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	redisDefaults := redisstorage.DefaultConfig()
	sqliteDefaults := sqlite.DefaultConfig()

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.redis.url", redisDefaults.URL)
	v.SetDefault("storage.redis.pool_size", redisDefaults.PoolSize)
	v.SetDefault("storage.redis.min_idle_conns", redisDefaults.MinIdleConns)
	v.SetDefault("storage.redis.key_prefix", redisDefaults.KeyPrefix)
	v.SetDefault("storage.redis.max_tx_retries", redisDefaults.MaxTxRetries)
	v.SetDefault("storage.sqlite.path", sqliteDefaults.Path)
	v.SetDefault("storage.sqlite.busy_timeout", time.Duration(sqliteDefaults.BusyTimeoutMillis)*time.Millisecond)

	v.SetDefault("logging.level", "info")
	v.SetDefault("admin.token_hash", "")
	v.SetDefault("seed.on_start", false)
}
