package spline

import "github.com/Faultbox/uispline/pkg/math"

// 8-point Legendre-Gauss quadrature: weight, abscissa.
var gaussLegendre8 = [...][2]float32{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

// lutSteps is the number of arc-length table intervals per segment.
const lutSteps = 16

type segment struct {
	p0, p1, p2, p3 math.Vec3
}

func newSegment(a, b Knot) segment {
	return segment{
		p0: a.Position,
		p1: a.Position.Add(a.TangentOut),
		p2: b.Position.Add(b.TangentIn),
		p3: b.Position,
	}
}

func (s segment) eval(u float32) math.Vec3 {
	mu := 1 - u
	a := s.p0.Scale(mu * mu * mu)
	b := s.p1.Scale(3 * mu * mu * u)
	c := s.p2.Scale(3 * mu * u * u)
	d := s.p3.Scale(u * u * u)
	return a.Add(b).Add(c).Add(d)
}

// deriv returns dB/du.
func (s segment) deriv(u float32) math.Vec3 {
	mu := 1 - u
	d01 := s.p1.Sub(s.p0)
	d12 := s.p2.Sub(s.p1)
	d23 := s.p3.Sub(s.p2)
	return d01.Scale(3 * mu * mu).Add(d12.Scale(6 * mu * u)).Add(d23.Scale(3 * u * u))
}

// accel returns d²B/du².
func (s segment) accel(u float32) math.Vec3 {
	a := s.p2.Sub(s.p1.Scale(2)).Add(s.p0)
	b := s.p3.Sub(s.p2.Scale(2)).Add(s.p1)
	return a.Scale(6 * (1 - u)).Add(b.Scale(6 * u))
}

// arclen integrates |B'(u)| over [u0, u1].
func (s segment) arclen(u0, u1 float32) float32 {
	half := (u1 - u0) / 2
	mid := (u1 + u0) / 2
	var sum float32
	for _, c := range gaussLegendre8 {
		sum += c[0] * s.deriv(mid+half*c[1]).Length()
	}
	return sum * half
}

// table fills lut with cumulative arc length at u = i/lutSteps.
func (s segment) table(lut *[lutSteps + 1]float32) {
	lut[0] = 0
	for i := 1; i <= lutSteps; i++ {
		u0 := float32(i-1) / lutSteps
		u1 := float32(i) / lutSteps
		lut[i] = lut[i-1] + s.arclen(u0, u1)
	}
}

// distanceToU inverts the arc-length table.
func distanceToU(lut *[lutSteps + 1]float32, d float32) float32 {
	total := lut[lutSteps]
	if total <= 0 || d <= 0 {
		return 0
	}
	if d >= total {
		return 1
	}
	lo, hi := 0, lutSteps
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if lut[mid] <= d {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := lut[hi] - lut[lo]
	frac := float32(0)
	if span > 0 {
		frac = (d - lut[lo]) / span
	}
	return (float32(lo) + frac) / lutSteps
}
