package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

// SetupTest runs each test from an empty directory so no stray
// config.yaml or .env is picked up
func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.T().Chdir(s.dir)
}

func (s *ConfigSuite) writeFile(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(":8080", cfg.Server.Addr())
	s.Equal(15*time.Second, cfg.Server.ReadTimeout)
	s.Equal(30*time.Second, cfg.Server.ShutdownTimeout)
	s.Equal("memory", cfg.Storage.Type)
	s.Equal("upmpoly", cfg.Storage.Redis.KeyPrefix)
	s.Equal(16, cfg.Storage.Redis.MaxTxRetries)
	s.Equal("upmpoly.db", cfg.Storage.SQLite.Path)
	s.Equal(slog.LevelInfo, cfg.Logging.SlogLevel())
	s.Empty(cfg.Admin.TokenHash)
	s.False(cfg.Seed.OnStart)
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("UPMPOLY_SERVER_PORT", "9090")
	s.T().Setenv("UPMPOLY_SERVER_READ_TIMEOUT", "2s")
	s.T().Setenv("UPMPOLY_STORAGE_TYPE", "sqlite")
	s.T().Setenv("UPMPOLY_STORAGE_SQLITE_PATH", "/tmp/ledger.db")
	s.T().Setenv("UPMPOLY_LOGGING_LEVEL", "debug")
	s.T().Setenv("UPMPOLY_SEED_ON_START", "true")

	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(9090, cfg.Server.Port)
	s.Equal(2*time.Second, cfg.Server.ReadTimeout)
	s.Equal("sqlite", cfg.Storage.Type)
	s.True(cfg.Storage.SQLite.Enabled)
	s.False(cfg.Storage.Redis.Enabled)
	s.Equal("/tmp/ledger.db", cfg.Storage.SQLite.StoreConfig().Path)
	s.Equal(slog.LevelDebug, cfg.Logging.SlogLevel())
	s.True(cfg.Seed.OnStart)
}

func (s *ConfigSuite) TestConfigFile() {
	path := s.writeFile("custom.yaml", `
server:
  port: 7000
storage:
  type: redis
  redis:
    url: redis://cache:6379/2
    key_prefix: test
    max_tx_retries: 3
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(7000, cfg.Server.Port)
	s.True(cfg.Storage.Redis.Enabled)

	redisCfg := cfg.Storage.Redis.StoreConfig()
	s.Equal("redis://cache:6379/2", redisCfg.URL)
	s.Equal("test", redisCfg.KeyPrefix)
	s.Equal(3, redisCfg.MaxTxRetries)
	s.Equal(10, redisCfg.PoolSize)
}

func (s *ConfigSuite) TestEnvironmentBeatsConfigFile() {
	path := s.writeFile("custom.yaml", "server:\n  port: 7000\n")
	s.T().Setenv("UPMPOLY_SERVER_PORT", "7001")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(7001, cfg.Server.Port)
}

func (s *ConfigSuite) TestDotEnvFile() {
	s.Require().Empty(os.Getenv("UPMPOLY_LOGGING_LEVEL"))
	s.writeFile(".env", "UPMPOLY_LOGGING_LEVEL=warn\n")
	s.T().Cleanup(func() { _ = os.Unsetenv("UPMPOLY_LOGGING_LEVEL") })

	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(slog.LevelWarn, cfg.Logging.SlogLevel())
}

func (s *ConfigSuite) TestMissingExplicitFile() {
	_, err := Load(filepath.Join(s.dir, "missing.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestInvalidStorageType() {
	s.T().Setenv("UPMPOLY_STORAGE_TYPE", "postgres")

	_, err := Load("")
	s.Require().Error(err)
	s.Contains(err.Error(), "Storage.Type")
}

func (s *ConfigSuite) TestInvalidPort() {
	s.T().Setenv("UPMPOLY_SERVER_PORT", "70000")

	_, err := Load("")
	s.Require().Error(err)
	s.Contains(err.Error(), "Server.Port")
}

func (s *ConfigSuite) TestRedisRequiresURL() {
	path := s.writeFile("custom.yaml", "storage:\n  type: redis\n  redis:\n    url: \"\"\n")

	_, err := Load(path)
	s.Require().Error(err)
	s.Contains(err.Error(), "Redis.URL")
}

func (s *ConfigSuite) TestAdminTokenHash() {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.T().Setenv("UPMPOLY_ADMIN_TOKEN_HASH", string(hash))

	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(string(hash), cfg.Admin.TokenHash)

	s.T().Setenv("UPMPOLY_ADMIN_TOKEN_HASH", "plaintext")
	_, err = Load("")
	s.Require().Error(err)
	s.Contains(err.Error(), "Admin.TokenHash")
}

func (s *ConfigSuite) TestSQLiteBusyTimeoutInMillis() {
	s.T().Setenv("UPMPOLY_STORAGE_SQLITE_BUSY_TIMEOUT", "250ms")

	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(250, cfg.Storage.SQLite.StoreConfig().BusyTimeoutMillis)
}
