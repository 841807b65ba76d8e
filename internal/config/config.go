package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const minIngestKeyLength = 16

// Config holds the process configuration, loaded from environment variables.
type Config struct {
	AppEnv       string
	Port         string
	DatabaseURL  string
	RedisURL     string
	IngestAPIKey string
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present (development convenience).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		IngestAPIKey: getEnv("INGEST_API_KEY", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.IngestAPIKey == "" {
		return nil, fmt.Errorf("INGEST_API_KEY is required")
	}
	if len(cfg.IngestAPIKey) < minIngestKeyLength {
		return nil, fmt.Errorf("INGEST_API_KEY must be at least %d characters", minIngestKeyLength)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
