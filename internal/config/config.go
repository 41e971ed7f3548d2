// Package config handles renderer configuration loading and management.
package config

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
)

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Markers MarkersConfig `yaml:"markers"`
	Scene   SceneConfig   `yaml:"scene"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds viewer display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds ribbon extrusion settings.
type RenderConfig struct {
	Width        float32    `yaml:"width"`
	Resolution   int        `yaml:"resolution"`
	ClipMin      float32    `yaml:"clip_min"`
	ClipMax      float32    `yaml:"clip_max"`
	UVMode       string     `yaml:"uv_mode"` // tile, repeat_per_segment, stretch
	UVMultiplier [2]float32 `yaml:"uv_multiplier"`
	UVOffset     [2]float32 `yaml:"uv_offset"`
	Billboard    bool       `yaml:"billboard"`
	FlattenZ     bool       `yaml:"flatten_z"`
	Color        [4]float32 `yaml:"color"` // RGBA 0-1
	Parallel     bool       `yaml:"parallel"`
}

// MarkerConfig holds the settings of one endpoint marker.
type MarkerConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Size             float32 `yaml:"size"`
	OffsetMode       string  `yaml:"offset_mode"` // distance, normalized
	Offset           float32 `yaml:"offset"`
	NormalizedOffset float32 `yaml:"normalized_offset"`
}

// MarkersConfig holds start and end marker settings.
type MarkersConfig struct {
	Start MarkerConfig `yaml:"start"`
	End   MarkerConfig `yaml:"end"`
}

// SceneConfig holds the scene document location.
type SceneConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// ExportConfig holds headless image export settings.
type ExportConfig struct {
	Dir        string     `yaml:"dir"`
	Prefix     string     `yaml:"prefix"`
	Format     string     `yaml:"format"` // png, bmp
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background [4]float32 `yaml:"background"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	s := uispline.DefaultSettings()
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			Width:        s.Width,
			Resolution:   s.Resolution,
			ClipMin:      s.Clip.Min,
			ClipMax:      s.Clip.Max,
			UVMode:       s.UVMode.String(),
			UVMultiplier: [2]float32{s.UVMultiplier.X, s.UVMultiplier.Y},
			UVOffset:     [2]float32{s.UVOffset.X, s.UVOffset.Y},
			Billboard:    s.Billboard,
			FlattenZ:     s.FlattenZ,
			Color:        s.Color.Array(),
			Parallel:     s.Parallel,
		},
		Markers: MarkersConfig{
			Start: MarkerConfig{Size: s.Start.Size, OffsetMode: "distance"},
			End:   MarkerConfig{Size: s.End.Size, OffsetMode: "distance", NormalizedOffset: 1},
		},
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Export: ExportConfig{
			Dir:        "out",
			Prefix:     "spline",
			Format:     "png",
			Width:      1280,
			Height:     720,
			Background: [4]float32{0, 0, 0, 0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Settings converts the render and marker sections to renderer settings.
// Unknown UV or offset modes are configuration errors.
func (c *Config) Settings() (uispline.Settings, error) {
	uv, err := extrude.ParseUVMode(c.Render.UVMode)
	if err != nil {
		return uispline.Settings{}, fmt.Errorf("render.uv_mode: %w", err)
	}
	start, err := c.Markers.Start.settings()
	if err != nil {
		return uispline.Settings{}, fmt.Errorf("markers.start: %w", err)
	}
	end, err := c.Markers.End.settings()
	if err != nil {
		return uispline.Settings{}, fmt.Errorf("markers.end: %w", err)
	}

	r := c.Render
	if !finite(r.ClipMin, r.ClipMax) {
		return uispline.Settings{}, fmt.Errorf("render.clip: range [%v, %v] is not finite", r.ClipMin, r.ClipMax)
	}
	return uispline.Settings{
		Width:        r.Width,
		Resolution:   extrude.ClampResolution(r.Resolution),
		Clip:         extrude.ClipRange{Min: r.ClipMin, Max: r.ClipMax},
		UVMode:       uv,
		UVMultiplier: math.Vec2{X: r.UVMultiplier[0], Y: r.UVMultiplier[1]},
		UVOffset:     math.Vec2{X: r.UVOffset[0], Y: r.UVOffset[1]},
		Billboard:    r.Billboard,
		FlattenZ:     r.FlattenZ,
		Color:        profile.Color{R: r.Color[0], G: r.Color[1], B: r.Color[2], A: r.Color[3]},
		Start:        start,
		End:          end,
		Parallel:     r.Parallel,
	}, nil
}

func (m MarkerConfig) settings() (uispline.MarkerSettings, error) {
	mode, err := uispline.ParseOffsetMode(m.OffsetMode)
	if err != nil {
		return uispline.MarkerSettings{}, err
	}
	if !finite(m.Offset, m.NormalizedOffset) {
		return uispline.MarkerSettings{}, fmt.Errorf("offset %v / %v is not finite", m.Offset, m.NormalizedOffset)
	}
	return uispline.MarkerSettings{
		Enabled:          m.Enabled,
		Size:             m.Size,
		Mode:             mode,
		Offset:           m.Offset,
		NormalizedOffset: m.NormalizedOffset,
	}, nil
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate reports configuration errors that would otherwise surface only
// at rebuild or export time.
func (c *Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return err
	}
	switch c.Export.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("export.format: unsupported format %q", c.Export.Format)
	}
	return nil
}
