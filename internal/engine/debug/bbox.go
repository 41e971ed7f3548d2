// Package debug provides debug visualization and capture utilities.
package debug

import (
	"github.com/Faultbox/uispline/internal/engine/picking"
	"github.com/Faultbox/uispline/pkg/math"
)

// OutlineVertexCount is the number of points BoundsOutline returns (12 edges x 2).
const OutlineVertexCount = 24

// DefaultOutlinePadding is the default padding around hit-test bounds.
const DefaultOutlinePadding = 1.0

// BoundsOutline returns line-list points for the wireframe of b grown by
// padding on every side.
func BoundsOutline(b picking.AABB, padding float32) []math.Vec3 {
	lo := b.Min.Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi := b.Max.Add(math.Vec3{X: padding, Y: padding, Z: padding})
	c := func(x, y, z bool) math.Vec3 {
		p := lo
		if x {
			p.X = hi.X
		}
		if y {
			p.Y = hi.Y
		}
		if z {
			p.Z = hi.Z
		}
		return p
	}
	return []math.Vec3{
		// z = min face
		c(false, false, false), c(true, false, false),
		c(true, false, false), c(true, true, false),
		c(true, true, false), c(false, true, false),
		c(false, true, false), c(false, false, false),
		// z = max face
		c(false, false, true), c(true, false, true),
		c(true, false, true), c(true, true, true),
		c(true, true, true), c(false, true, true),
		c(false, true, true), c(false, false, true),
		// connecting edges
		c(false, false, false), c(false, false, true),
		c(true, false, false), c(true, false, true),
		c(true, true, false), c(true, true, true),
		c(false, true, false), c(false, true, true),
	}
}

// RectOutline returns the four XY edges of b at z = 0 as line-list points.
// Flat canvases use it in place of BoundsOutline.
func RectOutline(b picking.AABB, padding float32) []math.Vec3 {
	x0, y0 := b.Min.X-padding, b.Min.Y-padding
	x1, y1 := b.Max.X+padding, b.Max.Y+padding
	return []math.Vec3{
		{X: x0, Y: y0}, {X: x1, Y: y0},
		{X: x1, Y: y0}, {X: x1, Y: y1},
		{X: x1, Y: y1}, {X: x0, Y: y1},
		{X: x0, Y: y1}, {X: x0, Y: y0},
	}
}

// Flatten packs points as [x, y, z, ...] for vertex buffer upload.
func Flatten(points []math.Vec3) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
