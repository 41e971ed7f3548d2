// Package raster draws ribbon meshes into images in software, for headless
// export and image-based tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
)

// Canvas is an RGBA image with an anti-aliasing rasterizer.
type Canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: &vector.Rasterizer{},
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the canvas with bg.
func (c *Canvas) Clear(bg profile.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)
}

// DrawMesh composites every triangle of m over the canvas and returns the
// number of triangles that touched it. Triangles are flat shaded with the
// mean of their vertex colors.
func (c *Canvas) DrawMesh(m *extrude.Mesh, xf Transform) int {
	drawn := 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, v := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) || int(v) >= len(m.Vertices) {
			continue
		}
		va, vb, vc := m.Vertices[a], m.Vertices[b], m.Vertices[v]
		col := meanColor(va.Color, vb.Color, vc.Color)
		if c.fillPolygon(col, xf, vec(va.Position), vec(vb.Position), vec(vc.Position)) {
			drawn++
		}
	}
	return drawn
}

// DrawMarker fills the unit square of the marker's transform, which puts a
// size x size square at the marker position facing along its rotation.
func (c *Canvas) DrawMarker(mk uispline.Marker, xf Transform) bool {
	m := mk.Transform()
	corners := [4]math.Vec3{
		m.TransformPoint(math.Vec3{X: -0.5, Y: -0.5}),
		m.TransformPoint(math.Vec3{X: 0.5, Y: -0.5}),
		m.TransformPoint(math.Vec3{X: 0.5, Y: 0.5}),
		m.TransformPoint(math.Vec3{X: -0.5, Y: 0.5}),
	}
	return c.fillPolygon(mk.Color, xf, corners[:]...)
}

// DrawLines strokes each consecutive pair of points as a segment of the
// given pixel thickness.
func (c *Canvas) DrawLines(points []math.Vec3, thickness float32, col profile.Color, xf Transform) {
	for i := 0; i+1 < len(points); i += 2 {
		ax, ay := xf.Apply(points[i])
		bx, by := xf.Apply(points[i+1])
		dx, dy := bx-ax, by-ay
		l := math.Vec2{X: dx, Y: dy}.Length()
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*thickness/2, dx/l*thickness/2
		c.fillPixels(col, [][2]float32{
			{ax + nx, ay + ny}, {bx + nx, by + ny},
			{bx - nx, by - ny}, {ax - nx, ay - ny},
		})
	}
}

func (c *Canvas) fillPolygon(col profile.Color, xf Transform, pts ...math.Vec3) bool {
	px := make([][2]float32, len(pts))
	for i, p := range pts {
		x, y := xf.Apply(p)
		px[i] = [2]float32{x, y}
	}
	return c.fillPixels(col, px)
}

// fillPixels rasterizes the polygon over its pixel bounding box only, so
// small triangles on a large canvas stay cheap.
func (c *Canvas) fillPixels(col profile.Color, pts [][2]float32) bool {
	if len(pts) < 3 {
		return false
	}
	minX, minY := pts[0][0], pts[0][1]
	maxX, maxY := minX, minY
	for _, p := range pts {
		if !finite(p[0]) || !finite(p[1]) {
			return false
		}
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	bounds := c.img.Bounds()
	r := image.Rect(int(math32.Floor(minX)), int(math32.Floor(minY)), int(math32.Floor(maxX))+1, int(math32.Floor(maxY))+1)
	r = r.Intersect(bounds)
	if r.Empty() {
		return false
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	c.ras.Reset(r.Dx(), r.Dy())
	c.ras.MoveTo(pts[0][0]-ox, pts[0][1]-oy)
	for _, p := range pts[1:] {
		c.ras.LineTo(p[0]-ox, p[1]-oy)
	}
	c.ras.ClosePath()
	c.ras.Draw(c.img, r, image.NewUniform(col.NRGBA()), image.Point{})
	return true
}

func meanColor(a, b, c [4]float32) profile.Color {
	return profile.Color{
		R: (a[0] + b[0] + c[0]) / 3,
		G: (a[1] + b[1] + c[1]) / 3,
		B: (a[2] + b[2] + c[2]) / 3,
		A: (a[3] + b[3] + c[3]) / 3,
	}
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// RGBAAt is a convenience for tests and picking overlays.
func (c *Canvas) RGBAAt(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}
