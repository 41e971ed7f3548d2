package extrude

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/spline"
)

// Resolution bounds.
const (
	MinResolution     = 1
	MaxResolution     = 10
	DefaultResolution = 5
)

// segmentDensity holds edges per unit of arc length for resolutions 1..10.
var segmentDensity = [MaxResolution]float32{0.01, 0.02, 0.05, 0.08, 0.12, 0.18, 0.24, 0.32, 0.40, 0.5}

// ClampResolution clamps r to [MinResolution, MaxResolution].
func ClampResolution(r int) int {
	return min(max(r, MinResolution), MaxResolution)
}

// SegmentDensity returns the sampling density for a resolution level.
func SegmentDensity(resolution int) float32 {
	return segmentDensity[ClampResolution(resolution)-1]
}

// ClipRange is the sub-interval of the curve parameter that is rendered.
type ClipRange struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// FullRange renders the whole curve.
var FullRange = ClipRange{Min: 0, Max: 1}

// Fraction returns the share of the curve covered by the range.
func (r ClipRange) Fraction() float32 {
	return r.Max - r.Min
}

// IsFinite reports whether both bounds are finite.
func (r ClipRange) IsFinite() bool {
	return !math32.IsNaN(r.Min) && !math32.IsInf(r.Min, 0) &&
		!math32.IsNaN(r.Max) && !math32.IsInf(r.Max, 0)
}

// At maps s in [0,1] into the range.
func (r ClipRange) At(s float32) float32 {
	return math.Remap(s, 0, 1, r.Min, r.Max)
}

// MaxEdgeCount bounds the edges of a single curve.
const MaxEdgeCount = 1 << 16

// EdgeCount returns the number of edges for a curve of the given length,
// in [1, MaxEdgeCount]. A non-finite length yields 1.
func EdgeCount(length float32, resolution int, clip ClipRange) int {
	n := math32.Ceil(length * clip.Fraction() * SegmentDensity(resolution))
	if !(n >= 1) || math32.IsInf(n, 1) {
		return 1
	}
	if n >= MaxEdgeCount {
		return MaxEdgeCount
	}
	return int(n)
}

// VertexCount returns the number of vertices extruding c produces, which is
// also the slot it occupies in a packed buffer. Curves with fewer than two
// knots produce none.
func VertexCount(c *spline.Curve, resolution int, clip ClipRange) int {
	if c == nil || c.Count() < 2 {
		return 0
	}
	return EdgeCount(c.Length(), resolution, clip)*2 + 4
}

// SampleCount returns the number of edge pairs in vertexCount vertices.
func SampleCount(vertexCount int) int {
	return vertexCount / 2
}
