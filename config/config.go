// @lixen: #focus{conf[render]}
// Package config holds the immutable settings of one conversion or playback run.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/lixenwraith/vidascii/framestore"
	"github.com/lixenwraith/vidascii/glyph"
	"github.com/lixenwraith/vidascii/render"
	"github.com/lixenwraith/vidascii/terminal"
	"github.com/lixenwraith/vidascii/video"
	"github.com/sirupsen/logrus"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "VIDASCII_"

var ErrNoInput = errors.New("no input file")

// Config is the render configuration; flags override env, env overrides defaults
type Config struct {
	Input  string `env:"INPUT"`
	Output string `env:"OUTPUT"`

	Width       int     `env:"WIDTH"        envDefault:"100"`
	FPS         float64 `env:"FPS"          envDefault:"0"`
	Color       bool    `env:"COLOR"        envDefault:"false"`
	Dense       bool    `env:"DENSE"        envDefault:"false"`
	FontSize    int     `env:"FONT_SIZE"    envDefault:"12"`
	CharSpacing float64 `env:"CHAR_SPACING" envDefault:"1.2"`
	Contrast    float64 `env:"CONTRAST"     envDefault:"1.5"`

	ColorMode  string   `env:"COLOR_MODE" envDefault:"truecolor"`
	Codec      string   `env:"CODEC"      envDefault:"mp4v"`
	Fonts      []string `env:"FONTS"      envSeparator:":"`
	Store      string   `env:"STORE"      envDefault:"disk"`
	TempDir    string   `env:"TEMP_DIR"`
	Foreground string   `env:"FG"         envDefault:"#000000"`
	Background string   `env:"BG"         envDefault:"#ffffff"`

	Screen bool `env:"SCREEN" envDefault:"false"`
	Audio  bool `env:"AUDIO"  envDefault:"false"`
	Volume int  `env:"VOLUME" envDefault:"100"`
	Strict bool `env:"STRICT" envDefault:"false"`

	Debug    bool   `env:"DEBUG"     envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Default returns the built-in defaults, ignoring the environment
func Default() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load returns the defaults with VIDASCII_* environment overrides applied
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom is Load with an explicit environment; nil reads the process environment
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no run can use
func (c Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, ErrNoInput)
	}
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if c.FPS < 0 {
		errs = append(errs, fmt.Errorf("fps must not be negative, got %v", c.FPS))
	}
	if c.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font size must be positive, got %d", c.FontSize))
	}
	if c.CharSpacing <= 0 {
		errs = append(errs, fmt.Errorf("char spacing must be positive, got %v", c.CharSpacing))
	}
	if c.Contrast < 0 {
		errs = append(errs, fmt.Errorf("contrast must not be negative, got %v", c.Contrast))
	}
	if c.Volume < 0 || c.Volume > 100 {
		errs = append(errs, fmt.Errorf("volume must be within 0..100, got %d", c.Volume))
	}
	if _, err := terminal.ParseColorMode(c.ColorMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := framestore.ParseKind(c.Store); err != nil {
		errs = append(errs, err)
	}
	if c.VideoMode() {
		if _, err := video.EncoderFor(c.Codec); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.RasterOptions(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// VideoMode reports whether the run renders to a file instead of the terminal
func (c Config) VideoMode() bool { return strings.TrimSpace(c.Output) != "" }

// Ramp returns the glyph ramp for terminal playback
// Video output always uses the dense ramp
func (c Config) Ramp() glyph.Ramp {
	if c.VideoMode() {
		return glyph.Dense
	}
	return glyph.Select(c.Dense)
}

// ResolveColorMode resolves "auto" against the current terminal
func (c Config) ResolveColorMode() (terminal.ColorMode, error) {
	return terminal.ParseColorMode(c.ColorMode)
}

// StoreKind returns the parsed temp store strategy
func (c Config) StoreKind() (framestore.Kind, error) {
	return framestore.ParseKind(c.Store)
}

// RasterOptions builds the rasterizer settings
func (c Config) RasterOptions() (render.RasterOptions, error) {
	fg, err := terminal.ParseHexColor(c.Foreground)
	if err != nil {
		return render.RasterOptions{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := terminal.ParseHexColor(c.Background)
	if err != nil {
		return render.RasterOptions{}, fmt.Errorf("background: %w", err)
	}
	return render.RasterOptions{
		FontSize:    c.FontSize,
		CharSpacing: c.CharSpacing,
		Foreground:  fg,
		Background:  bg,
	}, nil
}

// VolumeScale returns Volume as a linear 0..1 gain
func (c Config) VolumeScale() float64 { return float64(c.Volume) / 100 }

// Fields summarizes the run for structured logs
func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"input":    c.Input,
		"output":   c.Output,
		"width":    c.Width,
		"fps":      c.FPS,
		"color":    c.Color,
		"dense":    c.Dense,
		"contrast": c.Contrast,
		"store":    c.Store,
	}
}
