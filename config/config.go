// Package config loads and saves the editor settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"scene-editor/scene"
)

// DefaultPath is the settings file used when no path is given.
const DefaultPath = "~/.config/sceneedit/config.toml"

type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Editor EditorConfig `toml:"editor"`
	Tracer TracerConfig `toml:"tracer"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	// vertical field of view in degrees
	FOV    float64 `toml:"fov"`
	Near   float64 `toml:"near"`
	Far    float64 `toml:"far"`
	Radius float64 `toml:"radius"`
}

type EditorConfig struct {
	VertexPickRadius float64 `toml:"vertex_pick_radius"`
	ShowGizmo        bool    `toml:"show_gizmo"`
	ShowGrid         bool    `toml:"show_grid"`
	HistoryDepth     int     `toml:"history_depth"`
	ScreenshotDir    string  `toml:"screenshot_dir"`
}

type TracerConfig struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Samples int    `toml:"samples"`
	Seed    uint64 `toml:"seed"`
	Output  string `toml:"output"`
	// PNG is an optional second output path.
	PNG string `toml:"png"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 1000, Height: 1000, Title: "Scene Editor"},
		Camera: CameraConfig{FOV: 60, Near: 0.1, Far: 1000, Radius: 5},
		Editor: EditorConfig{
			VertexPickRadius: 5,
			ShowGizmo:        true,
			ShowGrid:         true,
			HistoryDepth:     100,
			ScreenshotDir:    ".",
		},
		Tracer: TracerConfig{Width: 200, Height: 200, Samples: 1, Seed: 1, Output: "render.ppm"},
		Log:    LogConfig{Level: "info"},
	}
}

// Expand resolves a leading ~ in path, falling back to DefaultPath when
// path is empty.
func Expand(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return p, nil
}

// Load reads the settings file at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	p, err := Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", p)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", p, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", p, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func (c *Config) Save(path string) error {
	p, err := Expand(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip planes near=%g far=%g are invalid", c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV < scene.MinFOV || c.Camera.FOV > scene.MaxFOV:
		return fmt.Errorf("camera fov %g outside [%g, %g]", c.Camera.FOV, scene.MinFOV, scene.MaxFOV)
	case c.Camera.Radius < scene.MinRadius:
		return fmt.Errorf("camera radius %g below %g", c.Camera.Radius, scene.MinRadius)
	case c.Tracer.Width <= 0 || c.Tracer.Height <= 0 || c.Tracer.Samples <= 0:
		return fmt.Errorf("tracer size and samples must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name such as "debug" or "warn" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
