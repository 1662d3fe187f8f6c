// Package config loads lotplan settings from a TOML file, a .env file and the
// environment, in increasing order of precedence.
//
// A complete file looks like this; every key is optional:
//
//	[canvas]
//	width = 800
//	height = 600
//
//	[spot]
//	width_m = 2.5
//	length_m = 5.0
//	pixels_per_meter = 20
//	gap = 10
//
//	[scan]
//	grid_size = 20
//
//	[editor]
//	strict_resize = false
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	url = "file://./published"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

const appName = "lotplan"

// Environment variables that override the file.
const (
	EnvStoreURL     = "LOTPLAN_STORE_URL"
	EnvAddr         = "LOTPLAN_ADDR"
	EnvStrictResize = "LOTPLAN_STRICT_RESIZE"
)

// Config holds every tunable setting.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Spot   SpotConfig   `toml:"spot"`
	Scan   ScanConfig   `toml:"scan"`
	Editor EditorConfig `toml:"editor"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type SpotConfig struct {
	WidthMeters    float64 `toml:"width_m"`
	LengthMeters   float64 `toml:"length_m"`
	PixelsPerMeter float64 `toml:"pixels_per_meter"`
	Gap            float64 `toml:"gap"`
}

type ScanConfig struct {
	GridSize int `toml:"grid_size"`
}

type EditorConfig struct {
	StrictResize bool `toml:"strict_resize"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type StoreConfig struct {
	URL string `toml:"url"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: layout.DefaultCanvasWidth, Height: layout.DefaultCanvasHeight},
		Spot: SpotConfig{
			WidthMeters:    layout.SpotWidthMeters,
			LengthMeters:   layout.SpotLengthMeters,
			PixelsPerMeter: layout.DefaultPixelsPerMeter,
			Gap:            layout.DefaultGap,
		},
		Scan:   ScanConfig{GridSize: layout.DefaultGridSize},
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{URL: "file://./published"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/lotplan/config.toml, falling back to
// ~/.config/lotplan/config.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of the defaults, then applies a
// .env file from the working directory and the LOTPLAN_* environment
// variables. An empty path means [DefaultPath]. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStoreURL); v != "" {
		c.Store.URL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvStrictResize); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be a boolean", EnvStrictResize)
		}
		c.Editor.StrictResize = strict
	}
	return nil
}

// Validate checks that the settings describe a usable layout.
func (c Config) Validate() error {
	if err := errors.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if c.Spot.WidthMeters <= 0 || c.Spot.LengthMeters <= 0 || c.Spot.PixelsPerMeter <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"spot dimensions and scale must be positive (got %gm x %gm at %g px/m)",
			c.Spot.WidthMeters, c.Spot.LengthMeters, c.Spot.PixelsPerMeter)
	}
	if c.Spot.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spot gap cannot be negative (got %g)", c.Spot.Gap)
	}
	if c.Scan.GridSize < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "scan grid_size must be at least 1 (got %d)", c.Scan.GridSize)
	}
	if c.Store.URL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store url is required")
	}
	return nil
}

// LayoutOptions converts the settings into options for [layout.New].
func (c Config) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithCanvas(c.Canvas.Width, c.Canvas.Height),
		layout.WithSpotSize(layout.SpotSize(c.Spot.WidthMeters, c.Spot.LengthMeters, c.Spot.PixelsPerMeter)),
		layout.WithGap(c.Spot.Gap),
		layout.WithGridSize(c.Scan.GridSize),
		layout.WithStrictResize(c.Editor.StrictResize),
	}
}
