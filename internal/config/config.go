// Package config loads the optional TOML settings file.
package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"

	"SoftBrush/internal/imageio"
	"SoftBrush/internal/paint"
	"SoftBrush/internal/state"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Window struct {
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Brush struct {
	Size int    `toml:"size"`
	Blur int    `toml:"blur"`
	Fill string `toml:"fill"`
}

type Loader struct {
	MaxBytes  int64 `toml:"max_bytes"`
	MaxPixels int   `toml:"max_pixels"`
}

type Config struct {
	Window Window `toml:"window"`
	Brush  Brush  `toml:"brush"`
	Loader Loader `toml:"loader"`
}

func Default() Config {
	return Config{
		Window: Window{Title: "Blur Brush", Width: 1024, Height: 768},
		Brush:  Brush{Size: state.DefaultBrushSize, Blur: state.DefaultBlur, Fill: paint.DefaultFill},
		Loader: Loader{MaxBytes: 256 << 20, MaxPixels: 100_000_000},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %s", ErrInvalid, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func (c Config) Validate() error {
	if c.Brush.Size < state.MinBrushSize || c.Brush.Size > state.MaxBrushSize {
		return fmt.Errorf("%w: brush.size %d outside %d..%d", ErrInvalid, c.Brush.Size, state.MinBrushSize, state.MaxBrushSize)
	}
	if c.Brush.Blur < state.MinBlur || c.Brush.Blur > state.MaxBlur {
		return fmt.Errorf("%w: brush.blur %d outside %d..%d", ErrInvalid, c.Brush.Blur, state.MinBlur, state.MaxBlur)
	}
	if !hexColor.MatchString(c.Brush.Fill) {
		return fmt.Errorf("%w: brush.fill %q is not a hex colour", ErrInvalid, c.Brush.Fill)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %vx%v", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Loader.MaxBytes < 0 || c.Loader.MaxPixels < 0 {
		return fmt.Errorf("%w: loader limits must not be negative", ErrInvalid)
	}
	return nil
}

func (c Config) BrushParams() state.BrushParams {
	return state.BrushParams{Size: c.Brush.Size, Blur: c.Brush.Blur}
}

func (c Config) Limits() imageio.Limits {
	return imageio.Limits{MaxBytes: c.Loader.MaxBytes, MaxPixels: c.Loader.MaxPixels}
}
