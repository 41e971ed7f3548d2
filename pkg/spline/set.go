package spline

// CurveSet is an ordered list of curves rendered together.
type CurveSet struct {
	curves []*Curve
}

// NewCurveSet creates a set from the given curves.
func NewCurveSet(curves ...*Curve) *CurveSet {
	return &CurveSet{curves: append([]*Curve(nil), curves...)}
}

// Len returns the number of curves.
func (s *CurveSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.curves)
}

// At returns the curve at index i.
func (s *CurveSet) At(i int) *Curve {
	return s.curves[i]
}

// Curves returns the underlying slice. Callers must not modify it.
func (s *CurveSet) Curves() []*Curve {
	if s == nil {
		return nil
	}
	return s.curves
}

// Add appends a curve and returns its index.
func (s *CurveSet) Add(c *Curve) int {
	s.curves = append(s.curves, c)
	return len(s.curves) - 1
}

// Set replaces the curve at index i.
func (s *CurveSet) Set(i int, c *Curve) {
	s.curves[i] = c
}

// RemoveAt removes the curve at index i.
func (s *CurveSet) RemoveAt(i int) {
	s.curves = append(s.curves[:i], s.curves[i+1:]...)
}

// Length returns the summed length of all curves.
func (s *CurveSet) Length() float32 {
	var total float32
	for _, c := range s.Curves() {
		total += c.Length()
	}
	return total
}

// ValidCount returns the number of curves with at least two knots.
func (s *CurveSet) ValidCount() int {
	n := 0
	for _, c := range s.Curves() {
		if c.Count() >= 2 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the set.
func (s *CurveSet) Clone() *CurveSet {
	out := &CurveSet{curves: make([]*Curve, 0, s.Len())}
	for _, c := range s.Curves() {
		out.curves = append(out.curves, c.Clone())
	}
	return out
}
