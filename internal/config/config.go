package config

import (
	"os"
	"strconv"
	"time"

	"kpiboard/internal/errors"
)

// Config is the complete application configuration, loaded once at
// startup from environment variables.
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Session SessionConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port             string
	MaxUploadBytes   int64
	ParseConcurrency int64
}

// DataConfig holds ingestion and analysis settings.
type DataConfig struct {
	MaxRows       int
	PreviewRows   int
	HistogramBins int
	MaxPieSlices  int
}

// SessionConfig holds the lifetime settings of in-memory tables.
type SessionConfig struct {
	TTL   time.Duration
	Sweep time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnvOrDefault("PORT", "8080"),
			MaxUploadBytes:   int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
			ParseConcurrency: int64(getEnvIntOrDefault("PARSE_CONCURRENCY", 4)),
		},
		Data: DataConfig{
			MaxRows:       getEnvIntOrDefault("MAX_ROWS", 10000),
			PreviewRows:   getEnvIntOrDefault("PREVIEW_ROWS", 10),
			HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 20),
			MaxPieSlices:  getEnvIntOrDefault("MAX_PIE_SLICES", 10),
		},
		Session: SessionConfig{
			TTL:   getEnvDurationOrDefault("SESSION_TTL", 30*time.Minute),
			Sweep: getEnvDurationOrDefault("SESSION_SWEEP", time.Minute),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if cfg.Server.ParseConcurrency <= 0 {
		return errors.ConfigInvalid("PARSE_CONCURRENCY must be positive")
	}
	if cfg.Data.MaxRows <= 0 {
		return errors.ConfigInvalid("MAX_ROWS must be positive")
	}
	if cfg.Data.PreviewRows <= 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be positive")
	}
	if cfg.Data.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if cfg.Data.MaxPieSlices <= 0 {
		return errors.ConfigInvalid("MAX_PIE_SLICES must be positive")
	}
	if cfg.Session.TTL <= 0 || cfg.Session.Sweep <= 0 {
		return errors.ConfigInvalid("SESSION_TTL and SESSION_SWEEP must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
