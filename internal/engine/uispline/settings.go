package uispline

import (
	"fmt"
	"strings"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
)

// OffsetMode selects how a marker offset is measured along its curve.
type OffsetMode int

const (
	// Distance offsets are in curve units, measured from the curve's own end.
	Distance OffsetMode = iota
	// Normalized offsets are curve parameters; values outside [0,1]
	// extrapolate beyond the ends.
	Normalized
)

func (m OffsetMode) String() string {
	switch m {
	case Distance:
		return "distance"
	case Normalized:
		return "normalized"
	default:
		return fmt.Sprintf("OffsetMode(%d)", int(m))
	}
}

// ParseOffsetMode parses "distance" or "normalized".
func ParseOffsetMode(s string) (OffsetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "distance":
		return Distance, nil
	case "normalized":
		return Normalized, nil
	default:
		return Distance, fmt.Errorf("unknown offset mode %q", s)
	}
}

// MarkerSettings configures the markers drawn at one end of every curve.
type MarkerSettings struct {
	Enabled          bool
	Size             float32
	Mode             OffsetMode
	Offset           float32 // Distance mode
	NormalizedOffset float32 // Normalized mode
}

// Settings are the renderer properties. Values are immutable; the With
// methods return an updated copy and whether the ribbon mesh must be
// rebuilt for it.
type Settings struct {
	Width        float32
	Resolution   int
	Clip         extrude.ClipRange
	UVMode       extrude.UVMode
	UVMultiplier math.Vec2
	UVOffset     math.Vec2
	Billboard    bool
	FlattenZ     bool
	Color        profile.Color

	Start MarkerSettings
	End   MarkerSettings

	// Parallel extrudes curves concurrently during a rebuild.
	Parallel bool
}

// DefaultSettings returns the renderer defaults.
func DefaultSettings() Settings {
	opts := extrude.DefaultOptions()
	return Settings{
		Width:        opts.Width,
		Resolution:   opts.Resolution,
		Clip:         opts.Clip,
		UVMode:       opts.UVMode,
		UVMultiplier: opts.UVMultiplier,
		UVOffset:     opts.UVOffset,
		Billboard:    opts.Billboard,
		Color:        opts.Color,
		Start:        MarkerSettings{Size: 20, NormalizedOffset: 0},
		End:          MarkerSettings{Size: 20, NormalizedOffset: 1},
		Parallel:     true,
	}
}

// NeedsRebuild reports whether going from prev to next changes the mesh.
// Marker and concurrency settings never do.
func NeedsRebuild(prev, next Settings) bool {
	return prev.Width != next.Width ||
		extrude.ClampResolution(prev.Resolution) != extrude.ClampResolution(next.Resolution) ||
		prev.Clip != next.Clip ||
		prev.UVMode != next.UVMode ||
		prev.UVMultiplier != next.UVMultiplier ||
		prev.UVOffset != next.UVOffset ||
		prev.Billboard != next.Billboard ||
		prev.FlattenZ != next.FlattenZ ||
		prev.Color != next.Color
}

func (s Settings) with(next Settings) (Settings, bool) {
	return next, NeedsRebuild(s, next)
}

// WithWidth sets the ribbon width.
func (s Settings) WithWidth(w float32) (Settings, bool) {
	n := s
	n.Width = w
	return s.with(n)
}

// WithResolution sets the sampling resolution, clamped to [1,10].
func (s Settings) WithResolution(r int) (Settings, bool) {
	n := s
	n.Resolution = extrude.ClampResolution(r)
	return s.with(n)
}

// WithClip sets the rendered parameter range.
func (s Settings) WithClip(c extrude.ClipRange) (Settings, bool) {
	n := s
	n.Clip = c
	return s.with(n)
}

// WithUVMode sets the texture coordinate policy.
func (s Settings) WithUVMode(m extrude.UVMode) (Settings, bool) {
	n := s
	n.UVMode = m
	return s.with(n)
}

// WithUVTransform sets the UV multiplier and offset.
func (s Settings) WithUVTransform(multiplier, offset math.Vec2) (Settings, bool) {
	n := s
	n.UVMultiplier = multiplier
	n.UVOffset = offset
	return s.with(n)
}

// WithBillboard toggles facing the view axis.
func (s Settings) WithBillboard(b bool) (Settings, bool) {
	n := s
	n.Billboard = b
	return s.with(n)
}

// WithFlattenZ toggles keeping geometry on the z=0 plane.
func (s Settings) WithFlattenZ(b bool) (Settings, bool) {
	n := s
	n.FlattenZ = b
	return s.with(n)
}

// WithColor sets the base color.
func (s Settings) WithColor(c profile.Color) (Settings, bool) {
	n := s
	n.Color = c
	return s.with(n)
}

// WithMarkers sets the start and end marker settings.
func (s Settings) WithMarkers(start, end MarkerSettings) (Settings, bool) {
	n := s
	n.Start = start
	n.End = end
	return s.with(n)
}

// options converts s for the extruder. A non-finite clip range renders the
// whole curve.
func (s Settings) options(width extrude.WidthProfile, color extrude.ColorProfile) extrude.Options {
	clip := s.Clip
	if !clip.IsFinite() {
		clip = extrude.FullRange
	}
	return extrude.Options{
		Width:        s.Width,
		Resolution:   extrude.ClampResolution(s.Resolution),
		Clip:         clip,
		UVMode:       s.UVMode,
		UVMultiplier: s.UVMultiplier,
		UVOffset:     s.UVOffset,
		Billboard:    s.Billboard,
		FlattenZ:     s.FlattenZ,
		Color:        s.Color,
		WidthCurve:   width,
		Gradient:     color,
	}
}
