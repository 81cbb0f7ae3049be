// Package config loads chromakey defaults from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/chromakey-mcp/internal/colorkey"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// Environment variables that override file values.
const (
	EnvLogLevel  = "CHROMAKEY_LOG_LEVEL"
	EnvTolerance = "CHROMAKEY_TOLERANCE"
	EnvColor     = "CHROMAKEY_COLOR"
)

// Config holds user defaults.
type Config struct {
	// DefaultColor is a palette name or hex color used when a caller gives none.
	DefaultColor string `yaml:"default_color"`

	// DefaultTolerance is used when a caller gives none (0-100).
	DefaultTolerance int `yaml:"default_tolerance"`

	// OutputSuffix is appended to the source stem for default output paths.
	OutputSuffix string `yaml:"output_suffix"`

	// Workers bounds batch concurrency.
	Workers int `yaml:"workers"`

	// CacheTTL is how long the server keeps decoded images, e.g. "30m".
	CacheTTL string `yaml:"cache_ttl"`

	// LogLevel is one of trace, debug, info, warn, error, off.
	LogLevel string `yaml:"log_level"`

	// Colors adds or overrides named key colors: name -> hex.
	Colors map[string]string `yaml:"colors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultColor:     "white",
		DefaultTolerance: colorkey.DefaultTolerance,
		OutputSuffix:     colorkey.DefaultOutputSuffix,
		Workers:          runtime.NumCPU(),
		CacheTTL:         imaging.DefaultCacheTTL.String(),
		LogLevel:         "info",
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "chromakey", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides.
// An empty path means DefaultPath(); a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 - user config path
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvColor); v != "" {
		c.DefaultColor = v
	}
	if v := os.Getenv(EnvTolerance); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTolerance, err)
		}
		c.DefaultTolerance = t
	}
	return nil
}

// Validate checks ranges and that every color resolves.
func (c *Config) Validate() error {
	if err := ValidateTolerance(c.DefaultTolerance); err != nil {
		return fmt.Errorf("default_tolerance: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if strings.ContainsAny(c.OutputSuffix, `/\`) {
		return fmt.Errorf("output_suffix must not contain path separators: %q", c.OutputSuffix)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	palette, err := c.Palette()
	if err != nil {
		return err
	}
	if _, err := imaging.ParseColor(c.DefaultColor, palette); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	return nil
}

// ValidateTolerance rejects values outside 0-100.
func ValidateTolerance(t int) error {
	if t < 0 || t > colorkey.MaxTolerance {
		return fmt.Errorf("tolerance must be between 0 and %d, got %d", colorkey.MaxTolerance, t)
	}
	return nil
}

// TTL parses CacheTTL.
func (c *Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return imaging.DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("cache_ttl: %w", err)
	}
	return d, nil
}

// Palette returns the built-in key colors extended with Colors.
func (c *Config) Palette() (imaging.Palette, error) {
	extra := make(map[string]imaging.RGBColor, len(c.Colors))
	for name, hex := range c.Colors {
		rgb, err := imaging.ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("colors.%s: %w", name, err)
		}
		extra[name] = rgb
	}
	return imaging.DefaultPalette().With(extra), nil
}
