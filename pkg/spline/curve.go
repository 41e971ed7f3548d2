package spline

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/pkg/math"
)

// Curve is a piecewise cubic Bezier curve through an ordered list of knots.
// The parameter t in [0,1] is proportional to arc length.
//
// Arc-length tables are rebuilt on every mutation, so concurrent evaluation
// of a curve that is not being mutated is safe.
type Curve struct {
	knots  []Knot
	closed bool

	segs []segment
	luts [][lutSteps + 1]float32
	// cum[i] is the arc length at the start of segment i; cum[len(segs)] is the total.
	cum []float32
}

// New creates an open curve through the given knots.
func New(knots ...Knot) *Curve {
	c := &Curve{knots: append([]Knot(nil), knots...)}
	c.rebuild()
	return c
}

// Count returns the number of knots.
func (c *Curve) Count() int {
	return len(c.knots)
}

// Knot returns the knot at index i.
func (c *Curve) Knot(i int) Knot {
	return c.knots[i]
}

// Knots returns a copy of the knot list.
func (c *Curve) Knots() []Knot {
	return append([]Knot(nil), c.knots...)
}

// SetKnot replaces the knot at index i.
func (c *Curve) SetKnot(i int, k Knot) {
	c.knots[i] = k
	c.rebuild()
}

// Add appends a knot.
func (c *Curve) Add(k Knot) {
	c.knots = append(c.knots, k)
	c.rebuild()
}

// Insert inserts a knot before index i.
func (c *Curve) Insert(i int, k Knot) {
	c.knots = append(c.knots, Knot{})
	copy(c.knots[i+1:], c.knots[i:])
	c.knots[i] = k
	c.rebuild()
}

// RemoveAt removes the knot at index i.
func (c *Curve) RemoveAt(i int) {
	c.knots = append(c.knots[:i], c.knots[i+1:]...)
	c.rebuild()
}

// SetKnots replaces all knots.
func (c *Curve) SetKnots(knots []Knot) {
	c.knots = append(c.knots[:0], knots...)
	c.rebuild()
}

// Closed reports whether the last knot connects back to the first.
func (c *Curve) Closed() bool {
	return c.closed
}

// SetClosed opens or closes the curve.
func (c *Curve) SetClosed(closed bool) {
	c.closed = closed
	c.rebuild()
}

// Clone returns a deep copy.
func (c *Curve) Clone() *Curve {
	n := New(c.knots...)
	if c.closed {
		n.SetClosed(true)
	}
	return n
}

// SegmentCount returns the number of Bezier segments.
func (c *Curve) SegmentCount() int {
	return len(c.segs)
}

// Length returns the arc length of the curve.
func (c *Curve) Length() float32 {
	if len(c.cum) == 0 {
		return 0
	}
	return c.cum[len(c.cum)-1]
}

func (c *Curve) rebuild() {
	n := len(c.knots)
	segCount := 0
	if n >= 2 {
		segCount = n - 1
		if c.closed {
			segCount = n
		}
	}

	c.segs = c.segs[:0]
	c.luts = c.luts[:0]
	c.cum = append(c.cum[:0], 0)
	for i := 0; i < segCount; i++ {
		s := newSegment(c.knots[i], c.knots[(i+1)%n])
		var lut [lutSteps + 1]float32
		s.table(&lut)
		c.segs = append(c.segs, s)
		c.luts = append(c.luts, lut)
		c.cum = append(c.cum, c.cum[i]+lut[lutSteps])
	}
}

// locate maps a curve parameter to a segment index and local parameter.
func (c *Curve) locate(t float32) (int, float32) {
	n := len(c.segs)
	if math32.IsNaN(t) || (c.closed && math32.IsInf(t, 0)) {
		t = 0
	}
	if c.closed {
		if t < 0 || t > 1 {
			t -= math32.Floor(t)
		}
	} else {
		t = math.Clamp01(t)
	}

	total := c.Length()
	if total <= 0 {
		f := t * float32(n)
		seg := int(f)
		if seg >= n {
			seg = n - 1
		}
		return seg, f - float32(seg)
	}

	d := t * total
	seg := sort.Search(n, func(i int) bool { return c.cum[i+1] >= d })
	if seg >= n {
		seg = n - 1
	}
	return seg, distanceToU(&c.luts[seg], d-c.cum[seg])
}

// Evaluate returns the position, tangent and up vector at t.
// The tangent is the raw derivative and may be zero where handles collapse.
func (c *Curve) Evaluate(t float32) (pos, tangent, up math.Vec3) {
	switch len(c.knots) {
	case 0:
		return math.Vec3Zero, math.Vec3Zero, math.Vec3Up
	case 1:
		return c.knots[0].Position, math.Vec3Zero, c.knots[0].Up()
	}
	seg, u := c.locate(t)
	s := c.segs[seg]
	a := c.knots[seg]
	b := c.knots[(seg+1)%len(c.knots)]
	up = a.rotation().Slerp(b.rotation(), u).Rotate(math.Vec3Up)
	return s.eval(u), s.deriv(u), up
}

// EvaluatePosition returns the position at t.
func (c *Curve) EvaluatePosition(t float32) math.Vec3 {
	switch len(c.knots) {
	case 0:
		return math.Vec3Zero
	case 1:
		return c.knots[0].Position
	}
	seg, u := c.locate(t)
	return c.segs[seg].eval(u)
}

// EvaluateTangent returns the derivative at t.
func (c *Curve) EvaluateTangent(t float32) math.Vec3 {
	if len(c.segs) == 0 {
		return math.Vec3Zero
	}
	seg, u := c.locate(t)
	return c.segs[seg].deriv(u)
}

// EvaluateAcceleration returns the second derivative at t.
func (c *Curve) EvaluateAcceleration(t float32) math.Vec3 {
	if len(c.segs) == 0 {
		return math.Vec3Zero
	}
	seg, u := c.locate(t)
	return c.segs[seg].accel(u)
}
