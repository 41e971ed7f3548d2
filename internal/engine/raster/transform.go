package raster

import (
	"github.com/Faultbox/uispline/internal/engine/picking"
	"github.com/Faultbox/uispline/pkg/math"
)

// Transform maps canvas-local XY coordinates (Y up) to image pixels (Y down).
type Transform struct {
	Scale   float32
	OffsetX float32
	OffsetY float32
	Height  float32
}

// Fit returns the transform that centers b inside a width x height image,
// keeping margin pixels free on every side and preserving aspect ratio.
// An empty or degenerate box maps its center to the image center at unit
// scale.
func Fit(b picking.AABB, width, height int, margin float32) Transform {
	w := float32(width) - 2*margin
	h := float32(height) - 2*margin
	size := b.Size()

	scale := float32(1)
	switch {
	case size.X > 0 && size.Y > 0:
		scale = min(w/size.X, h/size.Y)
	case size.X > 0:
		scale = w / size.X
	case size.Y > 0:
		scale = h / size.Y
	}
	if !(scale > 0) {
		scale = 1
	}

	c := b.Center()
	return Transform{
		Scale:   scale,
		OffsetX: float32(width)/2 - c.X*scale,
		OffsetY: float32(height)/2 - c.Y*scale,
		Height:  float32(height),
	}
}

// Apply returns the pixel coordinates of p.
func (t Transform) Apply(p math.Vec3) (x, y float32) {
	return p.X*t.Scale + t.OffsetX, t.Height - (p.Y*t.Scale + t.OffsetY)
}

// Inverse returns the canvas-local point under pixel (x, y), with z = 0.
func (t Transform) Inverse(x, y float32) math.Vec3 {
	if t.Scale == 0 {
		return math.Vec3{}
	}
	return math.Vec3{
		X: (x - t.OffsetX) / t.Scale,
		Y: (t.Height - y - t.OffsetY) / t.Scale,
	}
}
