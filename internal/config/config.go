package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported MCP transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// FileEnv names the environment variable pointing at an optional config file
const FileEnv = "MCP_CONFIG_FILE"

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel        string
	Transport       string // stdio (default) or http
	Host            string // default 0.0.0.0, http only
	Port            string // default 8080, http only
	ShutdownTimeout time.Duration
	LemonSqueezy    LemonSqueezyConfig

	// raw shutdown timeout from file or env, parsed in normalize
	shutdownRaw string
}

// fileConfig is the on-disk layout; empty fields leave the current value alone
type fileConfig struct {
	LogLevel        string             `toml:"log_level" yaml:"log_level"`
	Transport       string             `toml:"transport" yaml:"transport"`
	Host            string             `toml:"host" yaml:"host"`
	Port            string             `toml:"port" yaml:"port"`
	ShutdownTimeout string             `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	LemonSqueezy    LemonSqueezyConfig `toml:"lemonsqueezy" yaml:"lemonsqueezy"`
}

// LemonSqueezyConfig holds upstream API settings
type LemonSqueezyConfig struct {
	APIKey  string `toml:"api_key" yaml:"api_key"`
	BaseURL string `toml:"base_url" yaml:"base_url"` // empty means the production API
}

func defaults() Config {
	return Config{
		LogLevel:        "info",
		Transport:       TransportStdio,
		Host:            "0.0.0.0",
		Port:            "8080",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load populates config from .env, an optional file and environment variables.
// Later sources win. A missing API key is not an error.
func Load() (Config, error) {
	cfg := defaults()

	// .env is optional, but a broken one is reported
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if path := os.Getenv(FileEnv); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		cfg.Transport = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		cfg.shutdownRaw = v
	}

	if v := os.Getenv("LEMONSQUEEZY_API_KEY"); v != "" {
		cfg.LemonSqueezy.APIKey = v
	}

	if v := os.Getenv("LEMONSQUEEZY_API_BASE"); v != "" {
		cfg.LemonSqueezy.BaseURL = v
	}
}

// loadFile decodes a TOML or YAML file, expanding ${VAR} references first
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, &fc); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}

	fc.applyTo(cfg)
	return nil
}

func (f fileConfig) applyTo(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.LogLevel, f.LogLevel)
	set(&cfg.Transport, f.Transport)
	set(&cfg.Host, f.Host)
	set(&cfg.Port, f.Port)
	set(&cfg.shutdownRaw, f.ShutdownTimeout)
	set(&cfg.LemonSqueezy.APIKey, f.LemonSqueezy.APIKey)
	set(&cfg.LemonSqueezy.BaseURL, f.LemonSqueezy.BaseURL)
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with environment variable values; unset becomes empty
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envRef.FindStringSubmatch(match)[1])
	})
}

func (c *Config) normalize() error {
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid MCP_TRANSPORT %q: must be %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}

	if c.shutdownRaw != "" {
		d, err := time.ParseDuration(c.shutdownRaw)
		if err != nil {
			return fmt.Errorf("parsing shutdown_timeout %q: %w", c.shutdownRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("shutdown_timeout must be positive, got %s", d)
		}
		c.ShutdownTimeout = d
	}

	return nil
}
