// Package config resolves the client configuration from defaults, a YAML
// file, a .env file and PULSE_* environment variables.
//
// Later sources override earlier ones. Command-line flags are applied by the
// cli package on top of the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvAPIURL    = "PULSE_API_URL"
	EnvSessionDB = "PULSE_SESSION_DB"
	EnvTimeout   = "PULSE_TIMEOUT"
	EnvRateLimit = "PULSE_RATE_LIMIT"
	EnvRateBurst = "PULSE_RATE_BURST"
	EnvFormat    = "PULSE_FORMAT"
)

// Defaults.
const (
	DefaultAPIURL  = "http://localhost:8000/api/v1"
	DefaultTimeout = 30 * time.Second
	DefaultFormat  = "text"
)

// Config is the effective client configuration.
type Config struct {
	APIURL    string        `yaml:"api_url" json:"api_url"`
	SessionDB string        `yaml:"session_db" json:"session_db"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	// RateLimit is requests per second; zero disables client-side limiting.
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" json:"rate_burst"`
	Format    string  `yaml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		SessionDB: defaultSessionDB(),
		Timeout:   DefaultTimeout,
		RateBurst: 1,
		Format:    DefaultFormat,
	}
}

// Options controls where Load looks for its sources.
type Options struct {
	// File is an explicit config path. When empty the default path is
	// tried and a missing file is not an error.
	File string
	// DotEnv is the .env path; empty means ".env" in the working directory.
	DotEnv string
	// Getenv reads environment variables; nil means os.Getenv.
	Getenv func(string) string
	// Override applies command-line flags. It runs after the environment
	// is merged and before validation.
	Override func(*Config)
}

// Load resolves the configuration and validates it.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path, explicit := opts.File, opts.File != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		// The default path is optional; an explicit one is not.
		if err := mergeFile(&cfg, path); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return Config{}, err
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		dotenv := opts.DotEnv
		if dotenv == "" {
			dotenv = ".env"
		}
		// .env never overrides variables already set in the environment.
		_ = godotenv.Load(dotenv)
		getenv = os.Getenv
	}

	if err := mergeEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if opts.Override != nil {
		opts.Override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/pulse/config.yaml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pulse", "config.yaml")
}

func defaultSessionDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pulse-session.db"
	}
	return filepath.Join(dir, "pulse", "session.db")
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func mergeEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := getenv(EnvSessionDB); v != "" {
		cfg.SessionDB = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		cfg.RateLimit = f
	}
	if v := getenv(EnvRateBurst); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateBurst, err)
		}
		cfg.RateBurst = n
	}
	if v := getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("api_url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url: unsupported scheme %q (expected http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url: missing host in %q", c.APIURL)
	}
	if c.SessionDB == "" {
		return errors.New("session_db is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %g", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1 when rate_limit is set, got %d", c.RateBurst)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q (expected text or json)", c.Format)
	}
	return nil
}
