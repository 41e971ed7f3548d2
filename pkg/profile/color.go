// Package profile provides the width and color profiles sampled along a
// curve: a keyframe width curve and a color/alpha gradient.
package profile

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/pkg/math"
)

// Color is a linear RGBA color with float components, nominally in [0,1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{}
)

// Mul returns the component-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Lerp interpolates between c and o.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: math.Lerp(c.R, o.R, t),
		G: math.Lerp(c.G, o.G, t),
		B: math.Lerp(c.B, o.B, t),
		A: math.Lerp(c.A, o.A, t),
	}
}

// Array returns the components as [r, g, b, a].
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// NRGBA converts to a non-premultiplied 8-bit color, clamping each component.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// FromRGBA converts an image color.
func FromRGBA(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255}
}

func to8(v float32) uint8 {
	return uint8(math32.Round(math.Clamp01(v) * 255))
}
