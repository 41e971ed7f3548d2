package profile

import (
	"sort"

	"github.com/chewxy/math32"
)

// Keyframe is a point on a WidthCurve with Hermite tangents.
// An infinite tangent makes the segment stepped.
type Keyframe struct {
	Time       float32 `yaml:"time"`
	Value      float32 `yaml:"value"`
	InTangent  float32 `yaml:"in_tangent,omitempty"`
	OutTangent float32 `yaml:"out_tangent,omitempty"`
}

// WidthCurve maps a curve parameter to a width multiplier.
// Outside the key range the curve holds the first or last value; a curve
// with no keys evaluates to 0.
type WidthCurve struct {
	keys []Keyframe
}

// NewWidthCurve creates a curve from keys in any order.
func NewWidthCurve(keys ...Keyframe) *WidthCurve {
	c := &WidthCurve{}
	c.SetKeys(keys)
	return c
}

// ConstantCurve returns a curve with value v everywhere.
func ConstantCurve(v float32) *WidthCurve {
	return NewWidthCurve(Keyframe{Time: 0, Value: v}, Keyframe{Time: 1, Value: v})
}

// LinearCurve returns a straight ramp from (t0, v0) to (t1, v1).
func LinearCurve(t0, v0, t1, v1 float32) *WidthCurve {
	if t0 == t1 {
		return NewWidthCurve(Keyframe{Time: t0, Value: v1})
	}
	slope := (v1 - v0) / (t1 - t0)
	return NewWidthCurve(
		Keyframe{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Keyframe{Time: t1, Value: v1, InTangent: slope, OutTangent: slope},
	)
}

// Keys returns a copy of the keyframes sorted by time.
func (c *WidthCurve) Keys() []Keyframe {
	return append([]Keyframe(nil), c.keys...)
}

// SetKeys replaces the keyframes.
func (c *WidthCurve) SetKeys(keys []Keyframe) {
	c.keys = append(c.keys[:0], keys...)
	sort.SliceStable(c.keys, func(i, j int) bool { return c.keys[i].Time < c.keys[j].Time })
}

// Len returns the number of keys.
func (c *WidthCurve) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Evaluate returns the curve value at t. NaN reads the first key.
func (c *WidthCurve) Evaluate(t float32) float32 {
	n := c.Len()
	switch {
	case n == 0:
		return 0
	case n == 1 || !(t > c.keys[0].Time):
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t }) - 1
	return hermite(c.keys[i], c.keys[i+1], t)
}

func hermite(k0, k1 Keyframe, t float32) float32 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	if math32.IsInf(k0.OutTangent, 0) || math32.IsInf(k1.InTangent, 0) {
		return k0.Value
	}

	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
