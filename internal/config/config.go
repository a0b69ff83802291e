package config

import (
	"os"
	"strconv"
	"time"

	"stailab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Output  OutputConfig
	Charts  ChartConfig
	Runtime RuntimeConfig
}

// DataConfig locates the participant table.
type DataConfig struct {
	File string // .csv or .xlsx
}

// OutputConfig controls which artifacts are written and where.
type OutputConfig struct {
	Dir          string
	Markdown     bool
	HTML         bool
	SummaryExcel bool
}

// ChartConfig holds box plot settings.
type ChartConfig struct {
	Enabled    bool
	WidthCM    float64
	HeightCM   float64
	JitterSD   float64
	JitterSeed int64
}

// RuntimeConfig bounds the analysis run.
type RuntimeConfig struct {
	Workers int
	Timeout time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    *loadDataConfig(),
		Output:  *loadOutputConfig(),
		Charts:  *loadChartConfig(),
		Runtime: *loadRuntimeConfig(),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File: getEnvOrDefault("DATA_FILE", ""),
	}
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir:          getEnvOrDefault("OUTPUT_DIR", "element_analysis"),
		Markdown:     getEnvBoolOrDefault("REPORT_MARKDOWN", false),
		HTML:         getEnvBoolOrDefault("REPORT_HTML", false),
		SummaryExcel: getEnvBoolOrDefault("SUMMARY_XLSX", false),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Enabled:    getEnvBoolOrDefault("CHARTS_ENABLED", true),
		WidthCM:    getEnvFloatOrDefault("CHART_WIDTH_CM", 25),
		HeightCM:   getEnvFloatOrDefault("CHART_HEIGHT_CM", 15),
		JitterSD:   getEnvFloatOrDefault("JITTER_SD", 0.04),
		JitterSeed: int64(getEnvIntOrDefault("JITTER_SEED", 42)),
	}
}

func loadRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Workers: getEnvIntOrDefault("WORKERS", 3),
		Timeout: getEnvDurationOrDefault("ANALYSIS_TIMEOUT", 2*time.Minute),
	}
}

// Validate checks values that flags or the environment may have set badly.
// DATA_FILE is checked by the command that needs it.
func Validate(config *Config) error {
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Runtime.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1")
	}
	if config.Runtime.Timeout <= 0 {
		return errors.ConfigInvalid("ANALYSIS_TIMEOUT must be positive")
	}
	if config.Charts.Enabled {
		if config.Charts.WidthCM <= 0 || config.Charts.HeightCM <= 0 {
			return errors.ConfigInvalid("chart dimensions must be positive")
		}
		if config.Charts.JitterSD < 0 {
			return errors.ConfigInvalid("JITTER_SD must not be negative")
		}
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
