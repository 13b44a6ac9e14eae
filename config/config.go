// Package config loads demo settings from TOML.
package config

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window    Window    `toml:"window"`
	Camera    Camera    `toml:"camera"`
	Floor     Floor     `toml:"floor"`
	Surface   Surface   `toml:"surface"`
	Materials Materials `toml:"materials"`
	Log       Log       `toml:"log"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Camera struct {
	FieldOfView float64 `toml:"field_of_view"`
	Distance    float64 `toml:"distance"`
	Theta       float64 `toml:"theta"`
	Phi         float64 `toml:"phi"`
	DragSpeed   float64 `toml:"drag_speed"`
	WheelFactor float64 `toml:"wheel_factor"`
}

type Floor struct {
	HalfExtent float64 `toml:"half_extent"`
	CellSize   float64 `toml:"cell_size"`
}

type Surface struct {
	XMin         float64 `toml:"x_min"`
	ZMin         float64 `toml:"z_min"`
	XMax         float64 `toml:"x_max"`
	ZMax         float64 `toml:"z_max"`
	NumX         int     `toml:"num_x"`
	NumZ         int     `toml:"num_z"`
	NormalizedUV bool    `toml:"normalized_uv"`
	Parallel     bool    `toml:"parallel"`
}

type Materials struct {
	Image    string `toml:"image"`
	ShowAxes bool   `toml:"show_axes"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the settings of the original demos.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "lightlab", VSync: true},
		Camera: Camera{
			FieldOfView: 60,
			Distance:    8,
			Theta:       stdmath.Pi / 3,
			Phi:         stdmath.Pi / 4,
			DragSpeed:   0.01,
			WheelFactor: 0.9,
		},
		Floor: Floor{HalfExtent: 5, CellSize: 0.1},
		Surface: Surface{
			XMin: -3, ZMin: -3, XMax: 3, ZMax: 3,
			NumX: 50, NumZ: 50,
		},
		Materials: Materials{Image: "Smiley.png"},
		Log:       Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the builders and window would otherwise reject
// later with less context.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("camera field_of_view %g must be in (0, 180)", c.Camera.FieldOfView))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera distance %g must be positive", c.Camera.Distance))
	}
	if c.Floor.HalfExtent <= 0 || c.Floor.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("floor half_extent and cell_size must be positive"))
	}
	if c.Surface.NumX < 1 || c.Surface.NumZ < 1 {
		errs = append(errs, fmt.Errorf("surface subdivisions %dx%d must be at least 1", c.Surface.NumX, c.Surface.NumZ))
	}
	if c.Surface.XMax <= c.Surface.XMin || c.Surface.ZMax <= c.Surface.ZMin {
		errs = append(errs, fmt.Errorf("surface domain is empty"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}
