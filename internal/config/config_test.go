package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 150*time.Millisecond, cfg.TransitionDuration())
	assert.Equal(t, DefaultTransitionOffset, cfg.Motion.Offset)
	assert.True(t, cfg.Motion.Animations)
	assert.Equal(t, DefaultTailHeight, cfg.Tail.Height)
	assert.Equal(t, DefaultTailGap, cfg.Tail.Gap)
	require.NoError(t, cfg.Validate())
}

func TestTransitionDurationFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Motion.Duration = "soon"
	assert.Equal(t, 150*time.Millisecond, cfg.TransitionDuration())

	cfg.Motion.Duration = "-2s"
	assert.Equal(t, 150*time.Millisecond, cfg.TransitionDuration())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad duration", func(c *Config) { c.Motion.Duration = "fast" }},
		{"negative offset", func(c *Config) { c.Motion.Offset = -1 }},
		{"negative tail height", func(c *Config) { c.Tail.Height = -1 }},
		{"negative tail gap", func(c *Config) { c.Tail.Gap = -1 }},
		{"negative radius", func(c *Config) { c.Style.BorderRadius = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[motion]\nduration = \"300ms\"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, cfg.TransitionDuration())
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultTailHeight, cfg.Tail.Height)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[motion]\noffset = -5\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Motion.Duration = "250ms"
	cfg.Tail.Gap = 30
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPathRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	assert.Equal(t, "/tmp/xdg-test/bubbletip/config.toml", ConfigPath())
}
