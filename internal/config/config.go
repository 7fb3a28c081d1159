// Package config loads image-fill settings from a TOML file, environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

const (
	// EnvConfigPath names the config file when no -config flag is given.
	EnvConfigPath = "IMAGE_FILL_CONFIG"
	// EnvLogLevel overrides [log].level.
	EnvLogLevel = "IMAGE_FILL_LOG_LEVEL"
)

// Fill holds the interpolation settings.
type Fill struct {
	Exponent     float64 `toml:"exponent"`
	Epsilon      float64 `toml:"epsilon"`
	Connectivity int     `toml:"connectivity"`
	Workers      int     `toml:"workers"`
}

// Image holds the adapter settings.
type Image struct {
	GrayMode      string  `toml:"gray_mode"`
	MaskThreshold float64 `toml:"mask_threshold"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Config is the structure of the TOML file.
type Config struct {
	Fill  Fill  `toml:"fill"`
	Image Image `toml:"image"`
	Log   Log   `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the TOML file at path. A missing file or empty path yields the
// defaults. Zero or negative numeric settings fall back to their defaults,
// and EnvLogLevel overrides the log level.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to decode config file: %w", err)
			}
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	cfg.applyDefaults()

	if _, err := imaging.ParseGrayMode(cfg.Image.GrayMode); err != nil {
		return Config{}, fmt.Errorf("invalid [image] gray_mode: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Fill.Exponent <= 0 {
		c.Fill.Exponent = fill.DefaultExponent
	}
	if c.Fill.Epsilon <= 0 {
		c.Fill.Epsilon = fill.DefaultEpsilon
	}
	c.Fill.Connectivity = int(fill.ParseConnectivity(c.Fill.Connectivity))
	if c.Fill.Workers <= 0 {
		c.Fill.Workers = runtime.NumCPU()
	}
	if c.Image.GrayMode == "" {
		c.Image.GrayMode = string(imaging.DefaultGrayMode)
	}
	if c.Image.MaskThreshold <= 0 {
		c.Image.MaskThreshold = imaging.DefaultMaskThreshold
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.Log.Level == "debug"
}

// Weigher returns the inverse-distance weight configured in [fill].
func (c Config) Weigher() fill.InverseDistance {
	return fill.InverseDistance{Exponent: c.Fill.Exponent, Epsilon: c.Fill.Epsilon}
}

// Encode renders c as TOML, suitable for writing a starter config file.
func (c Config) Encode() (string, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(b), nil
}
