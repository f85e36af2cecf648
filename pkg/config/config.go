// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Source spreadsheet
	Source SourceConfig

	// Output
	OutputPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// SourceConfig describes where the source spreadsheet lives and where its
// data begins.
type SourceConfig struct {
	Path      string // path to the .xlsx workbook
	Sheet     string // sheet name; empty means the workbook's first sheet
	HeaderRow int    // zero-based row index of the header; rows above are skipped
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Source: SourceConfig{
			Path:      getEnv("INPUT_PATH", ""),
			Sheet:     getEnv("SHEET_NAME", ""),
			HeaderRow: getEnvAsInt("HEADER_ROW", 2),
		},
		OutputPath: getEnv("OUTPUT_PATH", "air_quality_clean.csv"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return errors.New("input path is required (INPUT_PATH)")
	}

	if c.Source.HeaderRow < 0 {
		return errors.New("header row cannot be negative")
	}

	if c.OutputPath == "" {
		return errors.New("output path is required (OUTPUT_PATH)")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
