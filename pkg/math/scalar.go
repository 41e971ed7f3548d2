package math

import "github.com/chewxy/math32"

// Remap maps value from [fromMin, fromMax] onto [toMin, toMax].
// A zero-width source range maps everything to toMin.
func Remap(value, fromMin, fromMax, toMin, toMax float32) float32 {
	denom := fromMax - fromMin
	if denom == 0 {
		return toMin
	}
	ratio := (value - fromMin) / denom
	return (toMax-toMin)*ratio + toMin
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

// Pi as float32.
const Pi = math32.Pi
