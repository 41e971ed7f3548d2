package extrude

import (
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
)

// WidthProfile scales the ribbon width along the curve.
type WidthProfile interface {
	Evaluate(t float32) float32
}

// ColorProfile tints the ribbon along the curve.
type ColorProfile interface {
	Evaluate(t float32) profile.Color
}

// Options are the extrusion settings shared by every curve of a set.
type Options struct {
	Width        float32
	Resolution   int
	Clip         ClipRange
	UVMode       UVMode
	UVMultiplier math.Vec2
	UVOffset     math.Vec2
	Billboard    bool
	FlattenZ     bool
	Color        profile.Color

	// WidthCurve defaults to a constant 1 and Gradient to white when nil.
	WidthCurve WidthProfile
	Gradient   ColorProfile
}

// DefaultOptions returns the default extrusion settings.
func DefaultOptions() Options {
	return Options{
		Width:        10,
		Resolution:   DefaultResolution,
		Clip:         FullRange,
		UVMode:       Tile,
		UVMultiplier: math.Vec2{X: 1, Y: 1},
		Billboard:    true,
		Color:        profile.White,
	}
}

// WidthAt returns the ribbon width at t. Negative and NaN widths are 0.
func (o Options) WidthAt(t float32) float32 {
	w := o.Width
	if o.WidthCurve != nil {
		w *= o.WidthCurve.Evaluate(t)
	}
	if !(w > 0) {
		return 0
	}
	return w
}

// ColorAt returns the ribbon color at t, with t clamped to [0,1].
func (o Options) ColorAt(t float32) profile.Color {
	if o.Gradient == nil {
		return o.Color
	}
	return o.Color.Mul(o.Gradient.Evaluate(math.Clamp01(t)))
}
