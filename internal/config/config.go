package config

import (
	"os"
	"strconv"

	"datalens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	Storage  StorageConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalysisConfig holds tuning knobs for the EDA engine and its callers
type AnalysisConfig struct {
	// HistogramBins is the default bin count for distribution charts.
	HistogramBins int
	// MissingChunks is the default segment count for missing-pattern charts.
	MissingChunks int
	// NumericThreshold is the fraction of non-missing values that must parse
	// as finite numbers for a column to be inferred numerical.
	NumericThreshold float64
	// TopValuesCap bounds the categorical frequency table.
	TopValuesCap int
}

// StorageConfig holds upload handling settings
type StorageConfig struct {
	UploadDir   string
	MaxFileSize int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Analysis: DefaultAnalysisConfig(),
		Storage: StorageConfig{
			UploadDir:   getEnvOrDefault("UPLOAD_DIR", "uploads/datasets"),
			MaxFileSize: int64(getEnvIntOrDefault("MAX_FILE_SIZE_MB", 50)) * 1024 * 1024,
		},
	}

	config.Analysis.HistogramBins = getEnvIntOrDefault("EDA_HISTOGRAM_BINS", config.Analysis.HistogramBins)
	config.Analysis.MissingChunks = getEnvIntOrDefault("EDA_MISSING_CHUNKS", config.Analysis.MissingChunks)
	config.Analysis.TopValuesCap = getEnvIntOrDefault("EDA_TOP_VALUES_CAP", config.Analysis.TopValuesCap)
	if v := os.Getenv("EDA_NUMERIC_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			config.Analysis.NumericThreshold = f
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// DefaultAnalysisConfig returns sensible defaults for the engine knobs
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		HistogramBins:    12,
		MissingChunks:    10,
		NumericThreshold: 0.95,
		TopValuesCap:     10,
	}
}

func validateConfig(config *Config) error {
	if config.Analysis.HistogramBins < 1 {
		return errors.ConfigInvalid("EDA_HISTOGRAM_BINS must be at least 1")
	}
	if config.Analysis.MissingChunks < 1 {
		return errors.ConfigInvalid("EDA_MISSING_CHUNKS must be at least 1")
	}
	if config.Analysis.TopValuesCap < 1 {
		return errors.ConfigInvalid("EDA_TOP_VALUES_CAP must be at least 1")
	}
	return nil
}

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
