// Package config loads the service configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Source   SourceConfig   `yaml:"source"`
	Indexing IndexingConfig `yaml:"indexing"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxRequestBytes int64         `yaml:"maxRequestBytes"`
	// CreateRatePerSecond limits index creation requests; 0 disables the limit.
	CreateRatePerSecond float64 `yaml:"createRatePerSecond"`
	CreateBurst         int     `yaml:"createBurst"`
}

// SourceConfig controls how document sources are fetched and which
// locations may be fetched at all.
type SourceConfig struct {
	HTTPTimeout  time.Duration `yaml:"httpTimeout"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
	// AllowedRoots restricts local paths to these directories; empty allows any path.
	AllowedRoots []string `yaml:"allowedRoots"`
	AllowRemote  bool     `yaml:"allowRemote"`
	// AllowedHosts restricts URL locations to these hosts; empty allows any host.
	AllowedHosts []string `yaml:"allowedHosts"`
}

// IndexingConfig controls index building.
type IndexingConfig struct {
	MaxConcurrentBuilds int `yaml:"maxConcurrentBuilds"`
}

// SearchConfig controls query execution.
type SearchConfig struct {
	// CacheSize is the number of search results kept in memory; 0 disables caching.
	CacheSize int `yaml:"cacheSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- config path is supplied by the operator
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config with defaults suitable for local use.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                8080,
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        30 * time.Second,
			ShutdownTimeout:     15 * time.Second,
			MaxRequestBytes:     1 << 20,
			CreateRatePerSecond: 5,
			CreateBurst:         10,
		},
		Source: SourceConfig{
			HTTPTimeout:  10 * time.Second,
			MaxBodyBytes: 32 << 20,
			AllowRemote:  true,
		},
		Indexing: IndexingConfig{
			MaxConcurrentBuilds: 4,
		},
		Search: SearchConfig{
			CacheSize: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.CreateRatePerSecond < 0 {
		return fmt.Errorf("server.createRatePerSecond cannot be negative")
	}
	if c.Server.CreateRatePerSecond > 0 && c.Server.CreateBurst < 1 {
		return fmt.Errorf("server.createBurst must be at least 1 when rate limiting is enabled")
	}
	if c.Indexing.MaxConcurrentBuilds < 1 {
		return fmt.Errorf("indexing.maxConcurrentBuilds must be at least 1")
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cacheSize cannot be negative")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INVIDX_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("INVIDX_SOURCE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Source.HTTPTimeout = d
		}
	}
	if v := os.Getenv("INVIDX_SOURCE_ALLOWED_ROOTS"); v != "" {
		cfg.Source.AllowedRoots = splitList(v)
	}
	if v := os.Getenv("INVIDX_SOURCE_ALLOW_REMOTE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Source.AllowRemote = b
		}
	}
	if v := os.Getenv("INVIDX_SOURCE_ALLOWED_HOSTS"); v != "" {
		cfg.Source.AllowedHosts = splitList(v)
	}
	if v := os.Getenv("INVIDX_INDEXING_MAX_CONCURRENT_BUILDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indexing.MaxConcurrentBuilds = n
		}
	}
	if v := os.Getenv("INVIDX_SEARCH_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.CacheSize = n
		}
	}
	if v := os.Getenv("INVIDX_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("INVIDX_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("INVIDX_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
