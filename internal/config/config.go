// Package config loads the YAML configuration file and applies
// environment overrides. Validation fails fast: a misconfigured
// process should die before it takes traffic.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nameworth/nameworth/internal/valuation"
)

// Config is the full process configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	Inference InferenceConfig `yaml:"inference"`
	Valuation ValuationConfig `yaml:"valuation"`
	Batch     BatchConfig     `yaml:"batch"`
	Probe     ProbeConfig     `yaml:"probe"`
}

type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout_secs"`
	WriteTimeout int    `yaml:"write_timeout_secs"`
}

type CacheConfig struct {
	RedisAddr     string `yaml:"redis_addr"` // empty selects the in-process store
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTLHours      int    `yaml:"ttl_hours"`
}

type InferenceConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"` // NAMEWORTH_API_KEY overrides
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type ValuationConfig struct {
	MaxRetries   int    `yaml:"max_retries"`
	BackoffMS    int    `yaml:"backoff_ms"`
	FallbackMode string `yaml:"fallback_mode"` // silent | error
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
	MaxDomains  int `yaml:"max_domains"`
}

type ProbeConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Extensions []string `yaml:"extensions"`
	DelayMS    int      `yaml:"delay_ms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080, ReadTimeout: 10, WriteTimeout: 30},
		Cache:  CacheConfig{TTLHours: 168},
		Inference: InferenceConfig{
			Enabled:     true,
			BaseURL:     "https://estimator.nameworth.dev",
			TimeoutSecs: 6,
		},
		Valuation: ValuationConfig{MaxRetries: 2, BackoffMS: 1000, FallbackMode: "silent"},
		Batch:     BatchConfig{Concurrency: 3, MaxDomains: 200},
		Probe: ProbeConfig{
			BaseURL:    "https://rdap.org",
			Extensions: []string{"com", "net", "org", "io", "ai", "co", "app", "dev"},
			DelayMS:    1000,
		},
	}
}

// Load reads the config file at path (optional) on top of defaults,
// then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if key := os.Getenv("NAMEWORTH_API_KEY"); key != "" {
		cfg.Inference.APIKey = key
	}
	if addr := os.Getenv("NAMEWORTH_REDIS_ADDR"); addr != "" {
		cfg.Cache.RedisAddr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the invariants a running process depends on.
func (c *Config) Validate() error {
	if c.Inference.Enabled && c.Inference.APIKey == "" {
		return &valuation.ConfigurationError{Field: "inference API key (set NAMEWORTH_API_KEY)"}
	}
	if c.Inference.Enabled && c.Inference.BaseURL == "" {
		return &valuation.ConfigurationError{Field: "inference base URL"}
	}
	switch c.Valuation.FallbackMode {
	case "silent", "error":
	default:
		return &valuation.ConfigurationError{Field: "valuation fallback mode (silent|error)"}
	}
	if c.Valuation.MaxRetries < 0 {
		return &valuation.ConfigurationError{Field: "valuation max retries (must be >= 0)"}
	}
	if c.Batch.MaxDomains <= 0 || c.Batch.Concurrency <= 0 {
		return &valuation.ConfigurationError{Field: "batch limits"}
	}
	return nil
}

// CacheTTL is the valuation cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// ValuationConfig assembled for the orchestrator.
func (c *Config) OrchestratorConfig() valuation.Config {
	return valuation.Config{
		AttemptTimeout: time.Duration(c.Inference.TimeoutSecs) * time.Second,
		MaxRetries:     c.Valuation.MaxRetries,
		BackoffUnit:    time.Duration(c.Valuation.BackoffMS) * time.Millisecond,
		CacheTTL:       c.CacheTTL(),
		FallbackMode:   valuation.FallbackMode(c.Valuation.FallbackMode),
	}
}
