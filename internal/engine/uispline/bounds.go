package uispline

import (
	"go.uber.org/zap"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/picking"
)

// Bounds returns the region to use for hit testing: the union of cubes
// sized by the local width around positions sampled along every curve.
// It reports false while no curve has at least two knots. When the
// sampled box is not finite the previous bounds are kept.
func (r *Renderer) Bounds() (picking.AABB, bool) {
	if r.boundsDirty {
		r.refreshBounds()
	}
	return r.bounds, r.hasBounds
}

func (r *Renderer) refreshBounds() {
	r.boundsDirty = false

	curves := r.curves.Curves()
	first := -1
	for i, c := range curves {
		if c.Count() >= 2 {
			first = i
			break
		}
	}
	if first < 0 {
		r.hasBounds = false
		return
	}

	opts := r.options()
	box := picking.CubeAt(curves[first].EvaluatePosition(0), opts.WidthAt(0))
	for _, c := range curves {
		n := extrude.SampleCount(extrude.VertexCount(c, opts.Resolution, opts.Clip))
		for j := range n {
			t := float32(j) / float32(n-1)
			box = box.Encapsulate(picking.CubeAt(c.EvaluatePosition(t), opts.WidthAt(t)))
		}
	}

	if !box.IsFinite() {
		r.log.Debug("Skipped non-finite bounds update",
			zap.Any("min", box.Min),
			zap.Any("max", box.Max),
		)
		return
	}
	r.bounds = box
	r.hasBounds = true
}
