package config

import (
	"os"
	"strconv"
	"strings"

	"dataprof/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Output   OutputConfig
	Coercion CoercionConfig
	History  HistoryConfig
	Server   ServerConfig
}

// OutputConfig holds export settings
type OutputConfig struct {
	Dir            string
	TopNCategories int // cap on bar-chart categories
	HistogramBins  int
	Charts         bool
}

// CoercionConfig holds value-coercion rules shared by the reader and the
// column resolver
type CoercionConfig struct {
	MissingTokens []string // raw cell values treated as missing (case-insensitive)
	DateFormats   []string // tried in order when parsing the date column
}

// HistoryConfig holds run-history persistence settings
type HistoryConfig struct {
	Enabled bool
	DBPath  string // defaults to profile_history.db under the output dir
}

// ServerConfig holds report-viewer settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Output: OutputConfig{
			Dir:            getEnvOrDefault("DATAPROF_OUTPUT_DIR", "."),
			TopNCategories: getEnvIntOrDefault("DATAPROF_TOP_N", 12),
			HistogramBins:  getEnvIntOrDefault("DATAPROF_HIST_BINS", 20),
			Charts:         getEnvBoolOrDefault("DATAPROF_CHARTS", true),
		},
		Coercion: CoercionConfig{
			MissingTokens: getEnvListOrDefault("DATAPROF_MISSING_TOKENS", []string{"", "na", "n/a", "nan", "null"}),
			DateFormats:   defaultDateFormats(),
		},
		History: HistoryConfig{
			Enabled: getEnvBoolOrDefault("DATAPROF_HISTORY", true),
			DBPath:  getEnvOrDefault("DATAPROF_HISTORY_DB", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("DATAPROF_PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func defaultDateFormats() []string {
	return []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"01/02/2006",
		"2006/01/02",
		"02-Jan-2006",
	}
}

func validateConfig(config *Config) error {
	if config.Output.TopNCategories < 1 {
		return errors.ConfigInvalid("DATAPROF_TOP_N must be at least 1")
	}
	if config.Output.HistogramBins < 1 {
		return errors.ConfigInvalid("DATAPROF_HIST_BINS must be at least 1")
	}
	if len(config.Coercion.DateFormats) == 0 {
		return errors.ConfigInvalid("at least one date format is required")
	}
	return nil
}

// Helper functions for environment variable parsing
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	}
	return defaultValue
}
