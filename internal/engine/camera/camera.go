// Package camera provides the orthographic camera the viewer looks at the
// canvas plane with.
package camera

import (
	"github.com/Faultbox/uispline/internal/engine/picking"
	"github.com/Faultbox/uispline/pkg/math"
)

// Depth is the half-extent of the view volume along Z. Curves leaving the
// canvas plane further than this are clipped.
const Depth = 1000

// CanvasCamera looks down the -Z axis at the canvas plane.
type CanvasCamera struct {
	// Center is the canvas point shown at the middle of the viewport.
	Center math.Vec2

	// Zoom is canvas units per pixel.
	Zoom    float32
	MinZoom float32
	MaxZoom float32

	// ZoomSensitivity is the relative zoom change per wheel step.
	ZoomSensitivity float32
}

// NewCanvasCamera creates a camera at the origin showing one unit per pixel.
func NewCanvasCamera() *CanvasCamera {
	return &CanvasCamera{
		Zoom:            1,
		MinZoom:         0.001,
		MaxZoom:         1000,
		ZoomSensitivity: 0.1,
	}
}

// ViewProj returns the view-projection matrix for a viewport of the given
// pixel size.
func (c *CanvasCamera) ViewProj(width, height int) math.Mat4 {
	hw := float32(width) * c.Zoom / 2
	hh := float32(height) * c.Zoom / 2
	return math.Ortho(c.Center.X-hw, c.Center.X+hw, c.Center.Y-hh, c.Center.Y+hh, -Depth, Depth)
}

// Unproject returns the canvas point (z = 0) under pixel (x, y).
func (c *CanvasCamera) Unproject(x, y float32, width, height int) (math.Vec3, bool) {
	inv := c.ViewProj(width, height).Inverse()
	ray := picking.ScreenToRay(x, y, float32(width), float32(height), inv)
	return ray.IntersectPlaneZ(0)
}

// HandleDrag pans by a mouse drag of (dx, dy) pixels, keeping the canvas
// under the cursor.
func (c *CanvasCamera) HandleDrag(dx, dy float32) {
	c.Center.X -= dx * c.Zoom
	c.Center.Y += dy * c.Zoom
}

// HandleZoom zooms in for positive wheel deltas and out for negative ones.
func (c *CanvasCamera) HandleZoom(delta float32) {
	c.Zoom = math.Clamp(c.Zoom-delta*c.Zoom*c.ZoomSensitivity, c.MinZoom, c.MaxZoom)
}

// FitToBounds centers b in the viewport, leaving margin pixels on each side.
func (c *CanvasCamera) FitToBounds(b picking.AABB, width, height int, margin float32) {
	center := b.Center()
	c.Center = math.Vec2{X: center.X, Y: center.Y}

	size := b.Size()
	w := float32(width) - 2*margin
	h := float32(height) - 2*margin
	if w <= 0 || h <= 0 {
		return
	}
	zoom := max(size.X/w, size.Y/h)
	if zoom > 0 {
		c.Zoom = math.Clamp(zoom, c.MinZoom, c.MaxZoom)
	}
}
