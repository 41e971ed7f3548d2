package spline

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/pkg/math"
)

const (
	nearestSamplesPerSegment = 16
	nearestRefineSteps       = 24
)

// Nearest returns the distance from p to the closest point on the curve and
// the curve parameter of that point.
// A curve without knots reports +Inf distance.
func (c *Curve) Nearest(p math.Vec3) (dist, t float32) {
	switch len(c.knots) {
	case 0:
		return math32.Inf(1), 0
	case 1:
		return c.knots[0].Position.Distance(p), 0
	}

	n := len(c.segs) * nearestSamplesPerSegment
	best := 0
	bestD := c.EvaluatePosition(0).Sub(p).LengthSq()
	for i := 1; i <= n; i++ {
		d := c.EvaluatePosition(float32(i) / float32(n)).Sub(p).LengthSq()
		if d < bestD {
			best, bestD = i, d
		}
	}

	lo := float32(max(best-1, 0)) / float32(n)
	hi := float32(min(best+1, n)) / float32(n)
	for range nearestRefineSteps {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if c.EvaluatePosition(m1).Sub(p).LengthSq() < c.EvaluatePosition(m2).Sub(p).LengthSq() {
			hi = m2
		} else {
			lo = m1
		}
	}
	t = (lo + hi) / 2
	if d := c.EvaluatePosition(t).Sub(p).LengthSq(); d < bestD {
		return math32.Sqrt(d), t
	}
	return math32.Sqrt(bestD), float32(best) / float32(n)
}
