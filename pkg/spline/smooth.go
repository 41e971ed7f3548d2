package spline

import "github.com/Faultbox/uispline/pkg/math"

// DefaultTension is the handle scale used by SmoothTangents.
const DefaultTension float32 = 1.0 / 3.0

// AutoSmoothTangent returns the outgoing tangent at cur for a smooth curve
// through prev, cur and next.
//
// The direction is the derivative of the parabola through the three points
// in chord-length parameterisation; the handle length is tension times the
// mean distance to the neighbours.
func AutoSmoothTangent(prev, cur, next math.Vec3, tension float32) math.Vec3 {
	in := cur.Sub(prev)
	out := next.Sub(cur)
	d1 := in.Length()
	d2 := out.Length()

	switch {
	case d1 == 0 && d2 == 0:
		return math.Vec3Zero
	case d1 == 0:
		return out.Scale(0.1)
	case d2 == 0:
		return in.Scale(0.1)
	}

	dir := in.Scale(d2 / d1).Add(out.Scale(d1 / d2)).Scale(1 / (d1 + d2))
	return dir.Scale(tension * (d1 + d2) / 2)
}

// SmoothTangents assigns mirrored auto-smooth tangents to every knot.
// End knots of an open curve point their handle at the neighbouring knot.
func (c *Curve) SmoothTangents(tension float32) {
	n := len(c.knots)
	if n < 2 {
		return
	}
	for i := range c.knots {
		cur := c.knots[i].Position
		var tan math.Vec3
		switch {
		case c.closed:
			prev := c.knots[(i-1+n)%n].Position
			next := c.knots[(i+1)%n].Position
			tan = AutoSmoothTangent(prev, cur, next, tension)
		case i == 0:
			tan = c.knots[1].Position.Sub(cur).Scale(tension)
		case i == n-1:
			tan = cur.Sub(c.knots[n-2].Position).Scale(tension)
		default:
			tan = AutoSmoothTangent(c.knots[i-1].Position, cur, c.knots[i+1].Position, tension)
		}
		c.knots[i].TangentOut = tan
		c.knots[i].TangentIn = tan.Neg()
	}
	c.rebuild()
}

// ReorientKnots rotates every knot so that its forward axis follows the
// curve and its up axis faces the screen (-Z).
func (c *Curve) ReorientKnots() {
	n := len(c.knots)
	for i := range c.knots {
		fwd := c.knots[i].TangentOut
		if fwd.IsZero() {
			fwd = c.knots[i].TangentIn.Neg()
		}
		if fwd.IsZero() && n > 1 {
			if i < n-1 {
				fwd = c.knots[i+1].Position.Sub(c.knots[i].Position)
			} else {
				fwd = c.knots[i].Position.Sub(c.knots[i-1].Position)
			}
		}
		c.knots[i].Rotation = math.QuatLookRotation(fwd, math.Vec3Back)
	}
	c.rebuild()
}

// FromPoints builds a smooth open curve through points, with knots facing
// the screen.
func FromPoints(points ...math.Vec3) *Curve {
	knots := make([]Knot, len(points))
	for i, p := range points {
		knots[i] = NewKnot(p)
	}
	c := New(knots...)
	c.SmoothTangents(DefaultTension)
	c.ReorientKnots()
	return c
}
