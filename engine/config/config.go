package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hollowgrove/marcher/engine/core"
)

// Config drives the application. Every field has a compiled-in default so a
// missing file is not an error.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Renderer  RendererConfig  `toml:"renderer"`
	Shaders   ShaderConfig    `toml:"shaders"`
	LogLevel  string          `toml:"log_level"`
	HotReload HotReloadConfig `toml:"hot_reload"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type RendererConfig struct {
	// Validation enables the Vulkan diagnostics layer. Unavailability is
	// logged and ignored, never fatal.
	Validation     bool `toml:"validation"`
	FramesInFlight int  `toml:"frames_in_flight"`
	// AcquireTimeoutMS bounds how long a frame waits for a swapchain image
	// before the frame is dropped.
	AcquireTimeoutMS uint64 `toml:"acquire_timeout_ms"`
}

type ShaderConfig struct {
	// DebugInfo and Optimize default from the build kind: debug builds keep
	// debug info and skip optimization.
	DebugInfo bool `toml:"debug_info"`
	Optimize  bool `toml:"optimize"`
}

type HotReloadConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir is the shader directory to watch. Relative to the working dir.
	Dir        string `toml:"dir"`
	DebounceMS uint64 `toml:"debounce_ms"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Marcher",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			Validation:       true,
			FramesInFlight:   2,
			AcquireTimeoutMS: 2000,
		},
		Shaders: ShaderConfig{
			DebugInfo: true,
			Optimize:  false,
		},
		LogLevel: "debug",
		HotReload: HotReloadConfig{
			Enabled:    false,
			Dir:        "shaders",
			DebounceMS: 250,
		},
	}
}

// Load reads a TOML file over the defaults. A missing file returns the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogDebug("no config file at %s, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Renderer.FramesInFlight < 1 {
		cfg.Renderer.FramesInFlight = 1
	}
	return cfg, nil
}
