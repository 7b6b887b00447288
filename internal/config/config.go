package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported data providers.
const (
	ProviderYahoo   = "yahoo"
	ProviderPolygon = "polygon"
	ProviderMock    = "mock"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"server"`
	DataSource struct {
		Provider   string `yaml:"provider"`
		APIKey     string `yaml:"api_key"`
		TimeoutSec int    `yaml:"timeout_sec"`
		ChartURL   string `yaml:"chart_url"`
		SummaryURL string `yaml:"summary_url"`
	} `yaml:"data_source"`
	Probe struct {
		Cron   string `yaml:"cron"`
		Ticker string `yaml:"ticker"`
	} `yaml:"probe"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PROBE_CRON"); v != "" {
		cfg.Probe.Cron = v
	}
	if v := os.Getenv("PROBE_TICKER"); v != "" {
		cfg.Probe.Ticker = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.TimeoutSec = n
		}
	}

	// Defaults
	if cfg.Server.Name == "" {
		cfg.Server.Name = "stock_server"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.DataSource.TimeoutSec == 0 {
		cfg.DataSource.TimeoutSec = 30
	}
	if cfg.Probe.Ticker == "" {
		cfg.Probe.Ticker = "SPY"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMock:
	case ProviderPolygon:
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for provider polygon")
		}
	default:
		return fmt.Errorf("data_source.provider must be one of yahoo, polygon, mock; got %q", c.DataSource.Provider)
	}
	if c.DataSource.TimeoutSec <= 0 {
		return fmt.Errorf("data_source.timeout_sec must be positive")
	}
	return nil
}

// Timeout returns the upstream request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSec) * time.Second
}
