package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	AdminToken string
	Output     string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("UPMPOLY_SERVER", "http://localhost:8080"),
		AdminToken: os.Getenv("UPMPOLY_ADMIN_TOKEN"),
		Output:     "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
