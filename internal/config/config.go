// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultTransitionDuration = "150ms"
	DefaultTransitionOffset   = 20
	DefaultTailHeight         = 12
	DefaultTailGap            = 24
	DefaultBorderRadius       = 6
	DefaultBorderWidth        = 1
)

// Config represents the bubbletip engine configuration.
type Config struct {
	Motion MotionConfig `toml:"motion"`
	Tail   TailConfig   `toml:"tail"`
	Style  StyleConfig  `toml:"style"`
}

// MotionConfig holds transition animation settings.
type MotionConfig struct {
	Duration   string `toml:"duration"`   // Transition duration (Go duration string)
	Offset     int    `toml:"offset"`     // Max displacement in px during transitions
	Animations bool   `toml:"animations"` // Master animation switch
}

// TailConfig holds the tail (arrow) dimensions.
type TailConfig struct {
	Height int `toml:"height"` // Protrusion from the bubble edge
	Gap    int `toml:"gap"`    // Width of the gap the tail opens in the border
}

// StyleConfig holds the style metrics geometry clamps against.
type StyleConfig struct {
	BorderRadius int `toml:"border_radius"`
	BorderWidth  int `toml:"border_width"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Motion: MotionConfig{
			Duration:   DefaultTransitionDuration,
			Offset:     DefaultTransitionOffset,
			Animations: true,
		},
		Tail: TailConfig{
			Height: DefaultTailHeight,
			Gap:    DefaultTailGap,
		},
		Style: StyleConfig{
			BorderRadius: DefaultBorderRadius,
			BorderWidth:  DefaultBorderWidth,
		},
	}
}

// TransitionDuration parses the configured duration, falling back to the
// default on malformed values.
func (c *Config) TransitionDuration() time.Duration {
	d, err := time.ParseDuration(c.Motion.Duration)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(DefaultTransitionDuration)
	}
	return d
}

// Validate rejects configurations the engine cannot honor.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Motion.Duration); c.Motion.Duration != "" && err != nil {
		return fmt.Errorf("invalid motion.duration: %w", err)
	}
	if c.Motion.Offset < 0 {
		return errors.New("motion.offset must not be negative")
	}
	if c.Tail.Height < 0 || c.Tail.Gap < 0 {
		return errors.New("tail dimensions must not be negative")
	}
	if c.Style.BorderRadius < 0 || c.Style.BorderWidth < 0 {
		return errors.New("style metrics must not be negative")
	}
	return nil
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bubbletip", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
