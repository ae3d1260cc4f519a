// Application configuration loaded from an optional TOML file
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"image-filter-studio/internal/algorithms"
	"image-filter-studio/internal/preview"
)

const minPreviewEdge = 16

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Preview PreviewConfig `toml:"preview"`
	Filters FilterConfig  `toml:"filters"`
	Log     LogConfig     `toml:"log"`
}

type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type PreviewConfig struct {
	MaxEdge int `toml:"max_edge"`
}

// FilterConfig holds the arguments bound to the parameterised toolbar actions.
type FilterConfig struct {
	BrightnessDelta int     `toml:"brightness_delta"`
	RotateAngle     float64 `toml:"rotate_angle"`
	ResizeScale     float64 `toml:"resize_scale"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Image Filter Studio",
			Width:  1200,
			Height: 800,
		},
		Preview: PreviewConfig{MaxEdge: preview.DefaultMaxEdge},
		Filters: FilterConfig{
			BrightnessDelta: 30,
			RotateAngle:     90,
			ResizeScale:     0.5,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive", ErrInvalidConfig)
	}
	if c.Preview.MaxEdge < minPreviewEdge || c.Preview.MaxEdge > preview.DefaultMaxEdge {
		return fmt.Errorf("%w: preview.max_edge must be in %d..%d",
			ErrInvalidConfig, minPreviewEdge, preview.DefaultMaxEdge)
	}
	if c.Filters.BrightnessDelta <= 0 || c.Filters.BrightnessDelta > 255 {
		return fmt.Errorf("%w: filters.brightness_delta must be in 1..255", ErrInvalidConfig)
	}
	if math.IsNaN(c.Filters.RotateAngle) || math.IsInf(c.Filters.RotateAngle, 0) {
		return fmt.Errorf("%w: filters.rotate_angle must be finite", ErrInvalidConfig)
	}
	if !(c.Filters.ResizeScale > 0 && c.Filters.ResizeScale <= algorithms.MaxScale) {
		return fmt.Errorf("%w: filters.resize_scale must be in (0, %g]", ErrInvalidConfig, algorithms.MaxScale)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
