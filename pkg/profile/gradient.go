package profile

import (
	"fmt"
	"sort"
	"strings"
)

// GradientMode selects how a Gradient interpolates between keys.
type GradientMode int

const (
	// Blend interpolates linearly between neighbouring keys.
	Blend GradientMode = iota
	// Fixed holds the value of the first key at or after t.
	Fixed
)

func (m GradientMode) String() string {
	switch m {
	case Blend:
		return "blend"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("GradientMode(%d)", int(m))
	}
}

// ParseGradientMode parses "blend" or "fixed".
func ParseGradientMode(s string) (GradientMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blend":
		return Blend, nil
	case "fixed":
		return Fixed, nil
	default:
		return Blend, fmt.Errorf("unknown gradient mode %q", s)
	}
}

// ColorKey is an RGB stop; its alpha is ignored.
type ColorKey struct {
	Color Color
	Time  float32
}

// AlphaKey is an alpha stop.
type AlphaKey struct {
	Alpha float32
	Time  float32
}

// Gradient maps a curve parameter to a color. Color and alpha are keyed
// separately and both pad beyond their first and last keys.
// With no color keys the color is white; with no alpha keys alpha is 1.
type Gradient struct {
	Mode      GradientMode
	colorKeys []ColorKey
	alphaKeys []AlphaKey
}

// NewGradient creates a gradient from keys in any order.
func NewGradient(mode GradientMode, colors []ColorKey, alphas []AlphaKey) *Gradient {
	g := &Gradient{Mode: mode}
	g.SetKeys(colors, alphas)
	return g
}

// Solid returns a gradient with a single color.
func Solid(c Color) *Gradient {
	return NewGradient(Blend, []ColorKey{{Color: c}}, []AlphaKey{{Alpha: c.A}})
}

// TwoColor returns a blend from a at t=0 to b at t=1.
func TwoColor(a, b Color) *Gradient {
	return NewGradient(Blend,
		[]ColorKey{{Color: a, Time: 0}, {Color: b, Time: 1}},
		[]AlphaKey{{Alpha: a.A, Time: 0}, {Alpha: b.A, Time: 1}},
	)
}

// SetKeys replaces the color and alpha keys.
func (g *Gradient) SetKeys(colors []ColorKey, alphas []AlphaKey) {
	g.colorKeys = append(g.colorKeys[:0], colors...)
	g.alphaKeys = append(g.alphaKeys[:0], alphas...)
	sort.SliceStable(g.colorKeys, func(i, j int) bool { return g.colorKeys[i].Time < g.colorKeys[j].Time })
	sort.SliceStable(g.alphaKeys, func(i, j int) bool { return g.alphaKeys[i].Time < g.alphaKeys[j].Time })
}

// ColorKeys returns a copy of the color keys.
func (g *Gradient) ColorKeys() []ColorKey {
	return append([]ColorKey(nil), g.colorKeys...)
}

// AlphaKeys returns a copy of the alpha keys.
func (g *Gradient) AlphaKeys() []AlphaKey {
	return append([]AlphaKey(nil), g.alphaKeys...)
}

// Evaluate returns the color at t. A nil gradient is white.
func (g *Gradient) Evaluate(t float32) Color {
	if g == nil {
		return White
	}
	c := White
	if n := len(g.colorKeys); n > 0 {
		i, frac := g.place(n, func(i int) float32 { return g.colorKeys[i].Time }, t)
		c = g.colorKeys[i].Color
		if frac > 0 {
			c = c.Lerp(g.colorKeys[i+1].Color, frac)
		}
	}
	c.A = 1
	if n := len(g.alphaKeys); n > 0 {
		i, frac := g.place(n, func(i int) float32 { return g.alphaKeys[i].Time }, t)
		c.A = g.alphaKeys[i].Alpha
		if frac > 0 {
			c.A += (g.alphaKeys[i+1].Alpha - c.A) * frac
		}
	}
	return c
}

// place returns the key index to read and, in Blend mode, the fraction
// toward the next key.
func (g *Gradient) place(n int, at func(int) float32, t float32) (int, float32) {
	if !(t > at(0)) {
		return 0, 0
	}
	if t >= at(n-1) {
		return n - 1, 0
	}
	next := sort.Search(n, func(i int) bool { return at(i) >= t })
	if g.Mode == Fixed {
		return next, 0
	}
	prev := next - 1
	span := at(next) - at(prev)
	if span <= 0 {
		return next, 0
	}
	return prev, (t - at(prev)) / span
}
