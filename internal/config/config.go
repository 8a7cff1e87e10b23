// Package config loads SlideBoard settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"SlideBoard/internal/export"
	"SlideBoard/internal/glyph"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
	"SlideBoard/internal/state"
)

type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Selection Selection `toml:"selection"`
	Hit       Hit       `toml:"hit"`
	Text      Text      `toml:"text"`
	Server    Server    `toml:"server"`
}

type Canvas struct {
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	Background raster.Color `toml:"background"`
}

type Selection struct {
	Highlight   raster.Color `toml:"highlight"`
	Group       raster.Color `toml:"group"`
	HandleFill  raster.Color `toml:"handle_fill"`
	HandleHalf  int          `toml:"handle_half"`
	HandleHit   float64      `toml:"handle_hit"`
	GroupMargin float64      `toml:"group_margin"`
}

// Hit holds the pointer tolerance of each shape kind, in pixels.
type Hit struct {
	Rectangle float64 `toml:"rectangle"`
	Ellipse   float64 `toml:"ellipse"`
	Line      float64 `toml:"line"`
	Text      float64 `toml:"text"`
	Image     float64 `toml:"image"`
}

type Text struct {
	// Font is a TrueType/OpenType file. Empty selects Go Regular.
	Font        string  `toml:"font"`
	DefaultSize float64 `toml:"default_size"`
}

type Server struct {
	Addr     string `toml:"addr"`
	MDNS     bool   `toml:"mdns"`
	Service  string `toml:"service"`
	Instance string `toml:"instance"`
}

// Default returns the built-in settings.
func Default() Config {
	opts := state.DefaultOptions()
	return Config{
		Canvas: Canvas{Width: 1280, Height: 720, Background: opts.Background},
		Selection: Selection{
			Highlight:   opts.Highlight,
			Group:       opts.Group,
			HandleFill:  opts.HandleFill,
			HandleHalf:  opts.HandleHalf,
			HandleHit:   opts.HandleHit,
			GroupMargin: opts.GroupMargin,
		},
		Hit: Hit(opts.Padding),
		Text: Text{
			DefaultSize: shape.DefaultFontSize,
		},
		Server: Server{
			Addr:     ":8080",
			MDNS:     true,
			Service:  "_slideboard._tcp",
			Instance: "SlideBoard",
		},
	}
}

// Parse decodes a TOML document over the defaults. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config: line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 || c.Canvas.Width > export.MaxSide || c.Canvas.Height > export.MaxSide {
		return fmt.Errorf("config: canvas size %dx%d must be within 1..%d", c.Canvas.Width, c.Canvas.Height, export.MaxSide)
	}
	if c.Selection.HandleHalf < 0 || c.Selection.HandleHit < 0 {
		return errors.New("config: handle sizes must not be negative")
	}
	if c.Text.DefaultSize <= 0 {
		return errors.New("config: text.default_size must be positive")
	}
	if c.Canvas.Background.A() != 255 {
		return fmt.Errorf("config: canvas.background %s must be opaque", c.Canvas.Background)
	}
	return nil
}

// Font loads the configured font file, or the bundled default.
func (c Config) Font() (*glyph.Font, error) {
	if c.Text.Font == "" {
		return glyph.Default(), nil
	}
	data, err := os.ReadFile(c.Text.Font)
	if err != nil {
		return nil, fmt.Errorf("config: read font: %w", err)
	}
	f, err := glyph.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", c.Text.Font, err)
	}
	return f, nil
}

// SceneOptions converts the settings into scene options using font f.
func (c Config) SceneOptions(f *glyph.Font) state.Options {
	return state.Options{
		Background:  c.Canvas.Background,
		Highlight:   c.Selection.Highlight,
		Group:       c.Selection.Group,
		HandleFill:  c.Selection.HandleFill,
		HandleHalf:  c.Selection.HandleHalf,
		HandleHit:   c.Selection.HandleHit,
		GroupMargin: c.Selection.GroupMargin,
		Padding:     state.HitPadding(c.Hit),
		Font:        f,
	}
}
