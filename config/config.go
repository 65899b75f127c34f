// Package config assembles the presentation layer's runtime settings. The
// embedding server loads a Config once at startup and hands the derived
// per-package configs to the formatter and slideshow controller; hidden
// process-wide state is avoided by construction.
//
// Precedence: built-in defaults, then an optional YAML file, then
// INSIDIOUS_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/izum00/insidious/format"
	"github.com/izum00/insidious/slideshow"
)

// Config holds the tunable presentation settings.
type Config struct {
	// Locale selects number and date formatting, a BCP 47 code from the
	// supported table.
	Locale string `env:"INSIDIOUS_LOCALE" yaml:"locale"`

	// Placeholder replaces values that fail to parse.
	Placeholder string `env:"INSIDIOUS_PLACEHOLDER" yaml:"placeholder"`

	// SlideshowInterval is the delay between thumbnail advances.
	SlideshowInterval time.Duration `env:"INSIDIOUS_SLIDESHOW_INTERVAL" yaml:"slideshow_interval"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Locale:            "en",
		Placeholder:       "?",
		SlideshowInterval: time.Second,
	}
}

// Load reads settings from an optional YAML file and the environment.
// An empty path skips the file. Unknown locales fall back to the default
// with a warning rather than failing startup.
func Load(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	cfg.normalize(logger)
	return cfg, nil
}

// FromEnv loads settings from the environment only.
func FromEnv(logger *slog.Logger) (Config, error) {
	return Load("", logger)
}

func (c *Config) normalize(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if !Supported(c.Locale) {
		logger.Warn("unsupported locale, falling back", "locale", c.Locale, "fallback", "en")
		c.Locale = "en"
	}
	if c.Placeholder == "" {
		c.Placeholder = "?"
	}
	if c.SlideshowInterval <= 0 {
		c.SlideshowInterval = time.Second
	}
}

// Formatter derives the formatter configuration.
func (c Config) Formatter() format.Config {
	return format.Config{
		Locale:      c.Locale,
		Placeholder: c.Placeholder,
	}
}

// Slideshow derives the slideshow controller configuration.
func (c Config) Slideshow(logger *slog.Logger) slideshow.Config {
	return slideshow.Config{
		Interval: c.SlideshowInterval,
		Logger:   logger,
	}
}
