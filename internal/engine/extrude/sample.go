package extrude

import (
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/spline"
)

// Sample is one evaluated point along a curve.
type Sample struct {
	Position math.Vec3
	Tangent  math.Vec3
	Up       math.Vec3
	T        float32
}

// Evaluate appends n samples of c spread evenly over clip to dst.
// A tangent too short to normalize is replaced by the chord from the
// previous sample, or to the next sample for the first one.
func Evaluate(c *spline.Curve, n int, clip ClipRange, dst []Sample) []Sample {
	if n <= 0 {
		return dst
	}
	base := len(dst)
	for i := range n {
		s := float32(0)
		if n > 1 {
			s = float32(i) / float32(n-1)
		}
		t := clip.At(s)
		pos, tan, up := c.Evaluate(t)
		dst = append(dst, Sample{Position: pos, Tangent: tan, Up: up, T: t})
	}

	samples := dst[base:]
	for i := range samples {
		if samples[i].Tangent.Length() >= math.Epsilon {
			continue
		}
		switch {
		case i > 0:
			samples[i].Tangent = samples[i].Position.Sub(samples[i-1].Position)
		case len(samples) > 1:
			samples[i].Tangent = samples[1].Position.Sub(samples[0].Position)
		}
	}
	return dst
}
