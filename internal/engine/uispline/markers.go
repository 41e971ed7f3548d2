package uispline

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
	"github.com/Faultbox/uispline/pkg/spline"
)

// Side selects the start or end markers.
type Side int

const (
	// Start places markers at t = 0 plus the offset.
	Start Side = iota
	// End places markers at t = 1 plus the offset.
	End
)

func (s Side) String() string {
	if s == End {
		return "end"
	}
	return "start"
}

// chordStep is the parameter distance used to recover a direction where
// the curve derivative vanishes.
const chordStep = 0.01

// Marker is the placement of one endpoint decoration.
type Marker struct {
	Curve    int
	Position math.Vec3
	// Rotation turns local +Y along the curve and local +Z toward the
	// viewer when billboarding.
	Rotation math.Quat
	Color    profile.Color
	Size     float32
	T        float32
	// Outward is set when the offset places the marker beyond the curve's
	// end, extrapolated along the end tangent.
	Outward bool
}

// Transform returns the model matrix for a unit quad drawn as the marker.
func (m Marker) Transform() math.Mat4 {
	return math.TRS(m.Position, m.Rotation, m.Size)
}

// Markers returns one marker per curve with at least two knots for the
// given side, or nil when that side is disabled.
func (r *Renderer) Markers(side Side) []Marker {
	ms := r.settings.Start
	if side == End {
		ms = r.settings.End
	}
	if !ms.Enabled {
		return nil
	}

	var out []Marker
	for i, c := range r.curves.Curves() {
		if c.Count() < 2 {
			continue
		}
		out = append(out, r.marker(i, c, side, ms))
	}
	return out
}

func (r *Renderer) marker(index int, c *spline.Curve, side Side, ms MarkerSettings) Marker {
	start := side == Start
	length := c.Length()

	var t float32
	switch {
	case ms.Mode == Normalized:
		t = ms.NormalizedOffset
	case length <= 0:
		if !start {
			t = 1
		}
	case start:
		t = ms.Offset / length
	default:
		t = 1 + ms.Offset/length
	}

	if math32.IsNaN(t) || math32.IsInf(t, 0) {
		t = 0
		if !start {
			t = 1
		}
	}

	m := Marker{Curve: index, Size: ms.Size, T: t}
	if t < 0 || t > 1 {
		m.Outward = true
		end := float32(0)
		if t > 1 {
			end = 1
		}
		pos, tan, up := c.Evaluate(end)
		if tan.Length() < math.Epsilon {
			if end == 0 {
				tan = c.EvaluatePosition(chordStep).Sub(pos)
			} else {
				tan = pos.Sub(c.EvaluatePosition(1 - chordStep))
			}
		}
		m.Rotation = r.markerRotation(tan, up)

		var off float32
		switch {
		case ms.Mode == Normalized && t > 1:
			off = length * (t - 1)
		case ms.Mode == Normalized:
			off = length * t
		case start && t > 1:
			off = ms.Offset - length
		case !start && t < 0:
			off = ms.Offset + length
		default:
			off = ms.Offset
		}
		m.Position = pos.Add(m.Rotation.Rotate(math.Vec3Up).Scale(off))
		m.Color = r.ColorAt(end)
	} else {
		pos, tan, up := c.Evaluate(t)
		if tan.Length() < math.Epsilon {
			tan = c.EvaluateAcceleration(t)
			if !start {
				tan = tan.Neg()
			}
		}
		if tan.Length() < math.Epsilon {
			if start {
				tan = c.EvaluatePosition(t + chordStep).Sub(pos)
			} else {
				tan = pos.Sub(c.EvaluatePosition(t - chordStep))
			}
		}
		m.Rotation = r.markerRotation(tan, up)
		m.Position = pos
		m.Color = r.ColorAt(t)
	}

	if r.settings.FlattenZ {
		m.Position.Z = 0
	}
	return m
}

func (r *Renderer) markerRotation(tangent, up math.Vec3) math.Quat {
	if r.settings.Billboard {
		return math.QuatLookRotation(math.Vec3Forward, tangent)
	}
	return math.QuatLookRotation(up, tangent)
}
