package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file read when no --config flag is given.
// A missing default file is not an error; environment variables still apply.
const DefaultPath = "config.yaml"

// Config holds all configuration for mycotrack.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values.
type Config struct {
	Env      string `yaml:"env" env:"MYCOTRACK_ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"MYCOTRACK_LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Tracking service the dashboard talks to
	API APIConfig `yaml:"api"`

	// Chart image output
	Charts ChartsConfig `yaml:"charts"`
}

// APIConfig holds the remote service settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"MYCOTRACK_API_URL" env-default:"http://localhost:3000/api"`

	// Username is the caller identity sent with every request.
	// The service trusts it as given; there is no login flow.
	Username string `yaml:"username" env:"MYCOTRACK_USERNAME" env-default:""`

	TimeoutSeconds int `yaml:"timeout_seconds" env:"MYCOTRACK_API_TIMEOUT_SECONDS" env-default:"30"`
}

// Timeout returns the per-request timeout.
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ChartsConfig holds chart rendering settings.
type ChartsConfig struct {
	OutputDir string `yaml:"output_dir" env:"MYCOTRACK_CHART_DIR" env-default:"charts"`
	Format    string `yaml:"format" env:"MYCOTRACK_CHART_FORMAT" env-default:"png"`
	Width     int    `yaml:"width" env:"MYCOTRACK_CHART_WIDTH" env-default:"1024"`
	Height    int    `yaml:"height" env:"MYCOTRACK_CHART_HEIGHT" env-default:"300"`
}

// Load reads configuration from path with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// An empty path means DefaultPath.
func Load(version, path string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.API.BaseURL = ResolveURLForDocker(cfg.API.BaseURL)

	return cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url has no host: %q", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}

	switch strings.ToLower(c.Charts.Format) {
	case "png", "svg":
		c.Charts.Format = strings.ToLower(c.Charts.Format)
	default:
		return fmt.Errorf("charts.format must be png or svg, got %q", c.Charts.Format)
	}

	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return fmt.Errorf("charts.width and charts.height must be positive")
	}

	return nil
}
