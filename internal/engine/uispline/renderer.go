// Package uispline renders a set of spline curves as one ribbon mesh for a
// 2D canvas. It owns the curves and their width and color profiles, keeps
// the mesh cached until something changes, and answers bounds, hit-test and
// endpoint marker queries.
package uispline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/picking"
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
	"github.com/Faultbox/uispline/pkg/spline"
)

// Stats describes the last successful rebuild.
type Stats struct {
	Curves    int
	Vertices  int
	Triangles int
	Duration  time.Duration
}

// part is the per-curve working state reused between rebuilds.
type part struct {
	mesh    extrude.Mesh
	scratch extrude.Scratch
}

// Renderer turns a curve set into a cached ribbon mesh.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	settings   Settings
	curves     *spline.CurveSet
	widthCurve *profile.WidthCurve
	gradient   *profile.Gradient

	dirty       bool
	boundsDirty bool

	mesh      extrude.Mesh
	parts     []part
	starts    []int
	bounds    picking.AABB
	hasBounds bool
	stats     Stats

	log *zap.Logger
}

// New creates a renderer with an empty curve set, a constant width curve
// and a white gradient. A nil logger discards output.
func New(settings Settings, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	settings.Resolution = extrude.ClampResolution(settings.Resolution)
	return &Renderer{
		settings:    settings,
		curves:      spline.NewCurveSet(),
		widthCurve:  profile.ConstantCurve(1),
		gradient:    profile.Solid(profile.White),
		dirty:       true,
		boundsDirty: true,
		log:         log,
	}
}

// Settings returns the current settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Configure replaces the settings and reports whether the mesh was marked
// for rebuild.
func (r *Renderer) Configure(next Settings) bool {
	next.Resolution = extrude.ClampResolution(next.Resolution)
	rebuild := NeedsRebuild(r.settings, next)
	flatten := next.FlattenZ && !r.settings.FlattenZ
	r.settings = next
	if flatten {
		r.flattenCurves()
	}
	if rebuild {
		r.MarkDirty()
	}
	return rebuild
}

// MarkDirty schedules a rebuild before the next Mesh call.
func (r *Renderer) MarkDirty() {
	r.dirty = true
	r.boundsDirty = true
}

// Dirty reports whether the cached mesh is stale.
func (r *Renderer) Dirty() bool {
	return r.dirty
}

// Curves returns the curve set. After mutating it directly, call MarkDirty.
func (r *Renderer) Curves() *spline.CurveSet {
	return r.curves
}

// SetCurves replaces the curve set.
func (r *Renderer) SetCurves(set *spline.CurveSet) {
	if set == nil {
		set = spline.NewCurveSet()
	}
	r.curves = set
	if r.settings.FlattenZ {
		r.flattenCurves()
	}
	r.MarkDirty()
}

// AddCurve appends a curve and returns its index.
func (r *Renderer) AddCurve(c *spline.Curve) int {
	if r.settings.FlattenZ {
		flattenCurve(c)
	}
	i := r.curves.Add(c)
	r.MarkDirty()
	return i
}

// RemoveCurve removes the curve at index i.
func (r *Renderer) RemoveCurve(i int) {
	r.curves.RemoveAt(i)
	r.MarkDirty()
}

// SetKnot replaces one knot of one curve. With FlattenZ set the knot is
// moved onto the z=0 plane.
func (r *Renderer) SetKnot(curve, index int, k spline.Knot) {
	if r.settings.FlattenZ {
		k.Position.Z = 0
	}
	r.curves.At(curve).SetKnot(index, k)
	r.MarkDirty()
}

// WidthCurve returns the width profile.
func (r *Renderer) WidthCurve() *profile.WidthCurve {
	return r.widthCurve
}

// SetWidthCurve replaces the width profile. Nil means constant 1.
func (r *Renderer) SetWidthCurve(c *profile.WidthCurve) {
	if c == nil {
		c = profile.ConstantCurve(1)
	}
	r.widthCurve = c
	r.MarkDirty()
}

// Gradient returns the color profile.
func (r *Renderer) Gradient() *profile.Gradient {
	return r.gradient
}

// SetGradient replaces the color profile. Nil means white.
func (r *Renderer) SetGradient(g *profile.Gradient) {
	if g == nil {
		g = profile.Solid(profile.White)
	}
	r.gradient = g
	r.MarkDirty()
}

func (r *Renderer) options() extrude.Options {
	return r.settings.options(r.widthCurve, r.gradient)
}

// Mesh returns the ribbon mesh, rebuilding it first if stale.
// The mesh is owned by the renderer and valid until the next rebuild.
func (r *Renderer) Mesh() (*extrude.Mesh, error) {
	if r.dirty {
		if err := r.Rebuild(context.Background()); err != nil {
			return &r.mesh, err
		}
	}
	return &r.mesh, nil
}

// Stats returns statistics of the last successful rebuild.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Rebuild re-extrudes every curve into the mesh.
// On error, including an unknown UV mode, the previous mesh is left in
// place and the renderer stays dirty.
func (r *Renderer) Rebuild(ctx context.Context) error {
	opts := r.options()
	if !opts.UVMode.Valid() {
		err := fmt.Errorf("rebuild: %w: %d", extrude.ErrUnknownUVMode, int(opts.UVMode))
		r.log.Error("Invalid render configuration", zap.Error(err))
		return err
	}

	start := time.Now()
	curves := r.curves.Curves()
	if len(curves) > 0 && r.settings.Width != 0 {
		if err := r.extrudeAll(ctx, curves, opts); err != nil {
			return err
		}
	} else {
		r.mesh.Reset()
	}

	r.dirty = false
	r.refreshBounds()
	r.stats = Stats{
		Curves:    len(curves),
		Vertices:  len(r.mesh.Vertices),
		Triangles: r.mesh.TriangleCount(),
		Duration:  time.Since(start),
	}
	r.log.Debug("Rebuilt spline mesh",
		zap.Int("curves", r.stats.Curves),
		zap.Int("vertices", r.stats.Vertices),
		zap.Int("triangles", r.stats.Triangles),
		zap.Duration("duration", r.stats.Duration),
	)
	return nil
}

// extrudeAll assigns each curve its start index, extrudes the curves into
// their own parts and joins the parts in curve order.
func (r *Renderer) extrudeAll(ctx context.Context, curves []*spline.Curve, opts extrude.Options) error {
	for len(r.parts) < len(curves) {
		r.parts = append(r.parts, part{})
	}
	r.starts = r.starts[:0]
	total := 0
	for _, c := range curves {
		r.starts = append(r.starts, total)
		total += extrude.VertexCount(c, opts.Resolution, opts.Clip)
	}

	extrudeOne := func(i int) error {
		p := &r.parts[i]
		p.mesh.Reset()
		if err := extrude.Extrude(curves[i], r.starts[i], opts, &p.scratch, &p.mesh); err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
		return nil
	}

	if r.settings.Parallel && len(curves) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range curves {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return extrudeOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i := range curves {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := extrudeOne(i); err != nil {
				return err
			}
		}
	}

	r.mesh.Reset()
	if cap(r.mesh.Vertices) < total {
		r.mesh.Vertices = make([]extrude.Vertex, 0, total)
	}
	for i := range curves {
		r.mesh.Append(&r.parts[i].mesh)
	}
	return nil
}

// VertexCount returns the number of vertices the current curves produce.
func (r *Renderer) VertexCount() int {
	opts := r.options()
	n := 0
	for _, c := range r.curves.Curves() {
		n += extrude.VertexCount(c, opts.Resolution, opts.Clip)
	}
	return n
}

// WidthAt returns the ribbon width at curve parameter t.
func (r *Renderer) WidthAt(t float32) float32 {
	return r.options().WidthAt(t)
}

// ColorAt returns the ribbon color at curve parameter t, clamped to [0,1].
func (r *Renderer) ColorAt(t float32) profile.Color {
	return r.options().ColorAt(t)
}

// HitTest reports whether p lies on any curve's ribbon.
func (r *Renderer) HitTest(p math.Vec3) bool {
	_, _, ok := r.HitCurve(p)
	return ok
}

// HitCurve returns the first curve whose ribbon contains p and the curve
// parameter nearest to p. A point hits when its distance to the curve is
// at most the width at that parameter.
func (r *Renderer) HitCurve(p math.Vec3) (index int, t float32, ok bool) {
	for i, c := range r.curves.Curves() {
		if c.Count() < 2 {
			continue
		}
		d, nt := c.Nearest(p)
		if d <= r.WidthAt(nt) {
			return i, nt, true
		}
	}
	return -1, 0, false
}

func (r *Renderer) flattenCurves() {
	for _, c := range r.curves.Curves() {
		flattenCurve(c)
	}
}

func flattenCurve(c *spline.Curve) {
	knots := c.Knots()
	changed := false
	for i := range knots {
		if knots[i].Position.Z != 0 {
			knots[i].Position.Z = 0
			changed = true
		}
	}
	if changed {
		c.SetKnots(knots)
	}
}
