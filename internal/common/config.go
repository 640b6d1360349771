// Package common provides shared utilities for Ratiolens
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Ratiolens
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Provider    ProviderConfig `toml:"provider"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Report      ReportConfig   `toml:"report"`
	Schedule    ScheduleConfig `toml:"schedule"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the raw-data cache location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ProviderConfig holds market-data provider (EODHD) configuration
type ProviderConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the HTTP timeout duration
func (c *ProviderConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AnalysisConfig holds analysis pipeline defaults.
type AnalysisConfig struct {
	PeriodYears  int    `toml:"period_years"`  // statement lookback window, default 5
	FetchTimeout string `toml:"fetch_timeout"` // per-entity fetch timeout
	BetaWindow   int    `toml:"beta_window"`   // rolling beta window in trading days, default 252
}

// GetFetchTimeout parses and returns the per-entity fetch timeout.
func (c *AnalysisConfig) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	OutputDir   string `toml:"output_dir"`
	ChartWidth  int    `toml:"chart_width"`
	ChartHeight int    `toml:"chart_height"`
}

// ScheduleConfig holds the optional cache-refresh schedule for server mode.
type ScheduleConfig struct {
	RefreshCron string   `toml:"refresh_cron"` // cron expression, empty disables
	Tickers     []string `toml:"tickers"`      // tickers to keep warm
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Provider: ProviderConfig{
			BaseURL:   "https://eodhd.com/api",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Analysis: AnalysisConfig{
			PeriodYears:  5,
			FetchTimeout: "60s",
			BetaWindow:   252,
		},
		Report: ReportConfig{
			OutputDir:   "output",
			ChartWidth:  900,
			ChartHeight: 400,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RATIOLENS_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RATIOLENS_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RATIOLENS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RATIOLENS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("RATIOLENS_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if dir := os.Getenv("RATIOLENS_OUTPUT_DIR"); dir != "" {
		config.Report.OutputDir = dir
	}

	// API key: EODHD_API_KEY takes priority, then the RATIOLENS_ prefix
	for _, name := range []string{"EODHD_API_KEY", "RATIOLENS_EODHD_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Provider.APIKey = v
			break
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
