package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/internal/engine/picking"
	"github.com/Faultbox/uispline/pkg/math"
)

// MaxGridLines caps the lines per axis GridLines will emit.
const MaxGridLines = 512

// GridLines returns line-list points for a reference grid with the given
// spacing covering b in the XY plane at z = 0. Lines sit on multiples of
// step. Nothing is returned for a non-positive step, a non-finite box or a
// grid that would exceed MaxGridLines on either axis.
func GridLines(b picking.AABB, step float32) []math.Vec3 {
	if !(step > 0) || !b.IsFinite() {
		return nil
	}
	x0 := math32.Floor(b.Min.X/step) * step
	y0 := math32.Floor(b.Min.Y/step) * step
	x1 := math32.Ceil(b.Max.X/step) * step
	y1 := math32.Ceil(b.Max.Y/step) * step

	nx := int(math32.Round((x1-x0)/step)) + 1
	ny := int(math32.Round((y1-y0)/step)) + 1
	if nx > MaxGridLines || ny > MaxGridLines {
		return nil
	}

	points := make([]math.Vec3, 0, 2*(nx+ny))
	for i := 0; i < nx; i++ {
		x := x0 + float32(i)*step
		points = append(points, math.Vec3{X: x, Y: y0}, math.Vec3{X: x, Y: y1})
	}
	for i := 0; i < ny; i++ {
		y := y0 + float32(i)*step
		points = append(points, math.Vec3{X: x0, Y: y}, math.Vec3{X: x1, Y: y})
	}
	return points
}
