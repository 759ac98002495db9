package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def, cfg)
	assert.Equal(t, uint32(800), cfg.Window.Width)
	assert.Equal(t, 2, cfg.Renderer.FramesInFlight)
	assert.True(t, cfg.Renderer.Validation)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marcher.toml")
	content := `
log_level = "info"

[window]
title = "Custom"
width = 1920
height = 1080

[renderer]
validation = false
frames_in_flight = 3

[hot_reload]
enabled = true
dir = "my-shaders"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Custom", cfg.Window.Title)
	assert.Equal(t, uint32(1920), cfg.Window.Width)
	assert.Equal(t, uint32(1080), cfg.Window.Height)
	assert.False(t, cfg.Renderer.Validation)
	assert.Equal(t, 3, cfg.Renderer.FramesInFlight)
	assert.True(t, cfg.HotReload.Enabled)
	assert.Equal(t, "my-shaders", cfg.HotReload.Dir)

	// Unset fields keep their defaults.
	assert.Equal(t, uint64(2000), cfg.Renderer.AcquireTimeoutMS)
	assert.Equal(t, uint64(250), cfg.HotReload.DebounceMS)
}

func TestLoadClampsFramesInFlight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marcher.toml")
	content := `
[renderer]
frames_in_flight = 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Renderer.FramesInFlight)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marcher.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\ntitle ="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
