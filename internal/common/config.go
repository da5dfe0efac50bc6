package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	Batch      BatchConfig
	Logging    LoggingConfig
}

// ExtractionConfig holds engine-related configuration
type ExtractionConfig struct {
	DefaultCurrency string
	MinConfidence   float64
}

// BatchConfig holds worker-queue configuration for batch runs
type BatchConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level slog.Level
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", "MAD"),
			MinConfidence:   getEnvAsFloat64("MIN_CONFIDENCE", 0.50),
		},
		Batch: BatchConfig{
			Workers:        getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize:      getEnvAsInt("BATCH_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("BATCH_PROCESS_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level: ParseLogLevel(getEnv("LOG_LEVEL", "info")),
		},
	}
}

// ParseLogLevel maps a level name to its slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("DEFAULT_CURRENCY", c.Extraction.DefaultCurrency, Required, CurrencyCode)
	if err := ValidateAndReturnError(v); err != nil {
		return err
	}
	if c.Extraction.MinConfidence < 0 || c.Extraction.MinConfidence > 1 {
		return NewAppError("CONFIG_ERROR", "MIN_CONFIDENCE must be in [0,1]", ErrInvalidInput)
	}
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
