package uispline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
	"github.com/Faultbox/uispline/pkg/spline"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-2
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func line() *spline.Curve {
	return spline.FromPoints(math.Vec3{}, math.Vec3{X: 100})
}

func newRenderer(curves ...*spline.Curve) *Renderer {
	r := New(DefaultSettings(), nil)
	r.SetCurves(spline.NewCurveSet(curves...))
	return r
}

func TestMeshLazyRebuild(t *testing.T) {
	r := newRenderer(line())
	if !r.Dirty() {
		t.Fatal("new renderer should be dirty")
	}
	m, err := r.Mesh()
	if err != nil {
		t.Fatalf("Mesh() error = %v", err)
	}
	if r.Dirty() {
		t.Error("Dirty() after Mesh() = true")
	}
	if got, want := len(m.Vertices), r.VertexCount(); got != want {
		t.Errorf("len(Vertices) = %d, want %d", got, want)
	}
	if got := r.Stats().Vertices; got != len(m.Vertices) {
		t.Errorf("Stats().Vertices = %d, want %d", got, len(m.Vertices))
	}

	again, _ := r.Mesh()
	if again != m {
		t.Error("Mesh() returned a different buffer without a change")
	}
}

func TestConfigureNeedsRebuild(t *testing.T) {
	r := newRenderer(line())
	if _, err := r.Mesh(); err != nil {
		t.Fatal(err)
	}

	s := r.Settings()
	markers := s
	markers.Start.Enabled = true
	if r.Configure(markers) {
		t.Error("Configure(marker change) = true, want false")
	}
	if r.Dirty() {
		t.Error("marker change marked the mesh dirty")
	}

	wider, changed := r.Settings().WithWidth(20)
	if !changed {
		t.Error("WithWidth(20) changed = false")
	}
	if !r.Configure(wider) || !r.Dirty() {
		t.Error("Configure(width change) did not mark dirty")
	}

	same, changed := r.Settings().WithResolution(99)
	if _, again := same.WithResolution(10); again {
		t.Error("WithResolution(10) after clamp reported change")
	}
	if same.Resolution != extrude.MaxResolution || !changed {
		t.Errorf("WithResolution(99) = %d, %v", same.Resolution, changed)
	}
}

func TestRebuildDeterministicAndParallel(t *testing.T) {
	curves := func() []*spline.Curve {
		return []*spline.Curve{
			line(),
			spline.FromPoints(math.Vec3{Y: 40}, math.Vec3{X: 50, Y: 90}, math.Vec3{X: 120, Y: 40}),
			spline.FromPoints(math.Vec3{Y: -40}, math.Vec3{X: 80, Y: -60}),
		}
	}

	seq := newRenderer(curves()...)
	s := seq.Settings()
	s.Parallel = false
	seq.Configure(s)
	par := newRenderer(curves()...)

	a, err := seq.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	b, err := par.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Vertices, b.Vertices) || !slices.Equal(a.Indices, b.Indices) {
		t.Error("parallel and sequential rebuilds differ")
	}

	before := a.Clone()
	par.MarkDirty()
	c, err := par.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(before.Vertices, c.Vertices) || !slices.Equal(before.Indices, c.Indices) {
		t.Error("rebuild of unchanged input differs")
	}
}

func TestPackingSkipsShortCurves(t *testing.T) {
	c1 := line()
	short := spline.New(spline.NewKnot(math.Vec3{X: 5}))
	c3 := spline.FromPoints(math.Vec3{Y: 50}, math.Vec3{X: 60, Y: 50})
	r := newRenderer(c1, short, c3)

	m, err := r.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	s := r.Settings()
	v1 := extrude.VertexCount(c1, s.Resolution, s.Clip)
	v3 := extrude.VertexCount(c3, s.Resolution, s.Clip)
	if len(m.Vertices) != v1+v3 {
		t.Fatalf("len(Vertices) = %d, want %d", len(m.Vertices), v1+v3)
	}
	tris1 := 2 * (extrude.SampleCount(v1) - 1)
	for i, idx := range m.Indices {
		inFirst := i < tris1*3
		if inFirst && int(idx) >= v1 {
			t.Fatalf("curve 1 index %d >= %d", idx, v1)
		}
		if !inFirst && (int(idx) < v1 || int(idx) >= v1+v3) {
			t.Fatalf("curve 3 index %d outside [%d, %d)", idx, v1, v1+v3)
		}
	}
}

func TestUnknownUVModeKeepsPreviousMesh(t *testing.T) {
	r := newRenderer(line())
	m, err := r.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	n := len(m.Vertices)

	bad, _ := r.Settings().WithUVMode(extrude.UVMode(42))
	r.Configure(bad)
	m, err = r.Mesh()
	if !errors.Is(err, extrude.ErrUnknownUVMode) {
		t.Fatalf("Mesh() error = %v, want ErrUnknownUVMode", err)
	}
	if len(m.Vertices) != n {
		t.Errorf("len(Vertices) = %d, want previous %d", len(m.Vertices), n)
	}
	if !r.Dirty() {
		t.Error("renderer should stay dirty after a failed rebuild")
	}
}

func TestRebuildCanceled(t *testing.T) {
	r := newRenderer(line(), line())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Rebuild(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Rebuild() error = %v, want context.Canceled", err)
	}
	if !r.Dirty() {
		t.Error("canceled rebuild cleared the dirty flag")
	}
}

func TestEmptyDraws(t *testing.T) {
	tests := []struct {
		name string
		r    *Renderer
	}{
		{"no curves", newRenderer()},
		{"zero width", func() *Renderer {
			r := newRenderer(line())
			s, _ := r.Settings().WithWidth(0)
			r.Configure(s)
			return r
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.r.Mesh()
			if err != nil {
				t.Fatalf("Mesh() error = %v", err)
			}
			if len(m.Vertices) != 0 || len(m.Indices) != 0 {
				t.Errorf("Mesh() = %d vertices, %d indices, want empty", len(m.Vertices), len(m.Indices))
			}
		})
	}
}

func TestWidthAndColorAt(t *testing.T) {
	r := newRenderer(line())
	r.SetWidthCurve(profile.LinearCurve(0, 1, 1, 0))
	if got := r.WidthAt(0.5); !near(got, 5) {
		t.Errorf("WidthAt(0.5) = %v, want 5", got)
	}
	r.SetWidthCurve(nil)
	if got := r.WidthAt(0.5); !near(got, 10) {
		t.Errorf("WidthAt(0.5) with nil curve = %v, want 10", got)
	}

	r.SetGradient(profile.TwoColor(profile.White, profile.Black))
	if got := r.ColorAt(-1); got != profile.White {
		t.Errorf("ColorAt(-1) = %v, want white", got)
	}
}

func TestBounds(t *testing.T) {
	r := newRenderer(line())
	box, ok := r.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if !nearVec(box.Min, math.Vec3{X: -5, Y: -5, Z: -5}) || !nearVec(box.Max, math.Vec3{X: 105, Y: 5, Z: 5}) {
		t.Errorf("Bounds() = %v..%v", box.Min, box.Max)
	}

	nan := spline.New(spline.NewKnot(math.Vec3{}), spline.NewKnot(math.Vec3{X: math32.NaN()}))
	r.SetCurves(spline.NewCurveSet(nan))
	again, ok := r.Bounds()
	if !ok || again != box {
		t.Errorf("Bounds() after NaN curve = %v, %v, want previous %v", again, ok, box)
	}

	if _, ok := newRenderer().Bounds(); ok {
		t.Error("Bounds() of empty set ok = true")
	}

	r.SetCurves(spline.NewCurveSet(line()))
	if _, ok := r.Bounds(); !ok {
		t.Fatal("Bounds() ok = false")
	}
	r.SetCurves(spline.NewCurveSet(spline.New(spline.NewKnot(math.Vec3{}))))
	if _, ok := r.Bounds(); ok {
		t.Error("Bounds() ok = true after removing every drawable curve")
	}
}

func TestNonFiniteClipRendersWholeCurve(t *testing.T) {
	want, err := newRenderer(line()).Mesh()
	if err != nil {
		t.Fatalf("Mesh() error = %v", err)
	}

	clips := []extrude.ClipRange{
		{Min: math32.NaN(), Max: 1},
		{Min: 0, Max: math32.Inf(1)},
	}
	for _, clip := range clips {
		r := newRenderer(line())
		r.SetGradient(profile.TwoColor(profile.White, profile.Black))
		r.SetWidthCurve(profile.LinearCurve(0, 1, 1, 0.5))
		s, _ := r.Settings().WithClip(clip)
		r.Configure(s)

		m, err := r.Mesh()
		if err != nil {
			t.Fatalf("Mesh() with clip %v error = %v", clip, err)
		}
		if len(m.Vertices) != len(want.Vertices) {
			t.Errorf("Mesh() with clip %v = %d vertices, want %d", clip, len(m.Vertices), len(want.Vertices))
		}
		for i, v := range m.Vertices {
			p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
			uv := math.Vec3{X: v.TexCoord[0], Y: v.TexCoord[1]}
			c := math.Vec3{X: v.Color[0], Y: v.Color[1], Z: v.Color[2]}
			if !p.IsFinite() || !uv.IsFinite() || !c.IsFinite() || math32.IsNaN(v.Color[3]) {
				t.Fatalf("vertex %d with clip %v is not finite: %+v", i, clip, v)
			}
		}
	}
}

func TestProfilesAtNaN(t *testing.T) {
	r := newRenderer(line())
	r.SetGradient(profile.TwoColor(profile.White, profile.Black))
	r.SetWidthCurve(profile.LinearCurve(0, 1, 1, 0))
	if got := r.WidthAt(math32.NaN()); !near(got, 10) {
		t.Errorf("WidthAt(NaN) = %v, want 10", got)
	}
	if got := r.ColorAt(math32.NaN()); got != profile.White {
		t.Errorf("ColorAt(NaN) = %v, want white", got)
	}
}

func TestHitTest(t *testing.T) {
	r := newRenderer(spline.New(spline.NewKnot(math.Vec3{})), line())
	tests := []struct {
		p    math.Vec3
		want bool
	}{
		{math.Vec3{X: 50, Y: 3}, true},
		{math.Vec3{X: 50, Y: 9}, true},
		{math.Vec3{X: 50, Y: 12}, false},
		{math.Vec3{X: -20}, false},
	}
	for _, tt := range tests {
		if got := r.HitTest(tt.p); got != tt.want {
			t.Errorf("HitTest(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if i, nt, ok := r.HitCurve(math.Vec3{X: 25, Y: 1}); !ok || i != 1 || !near(nt, 0.25) {
		t.Errorf("HitCurve() = %d, %v, %v, want 1, 0.25, true", i, nt, ok)
	}
}

func TestFlattenZ(t *testing.T) {
	r := newRenderer(spline.New(spline.NewKnot(math.Vec3{Z: 3}), spline.NewKnot(math.Vec3{X: 10, Z: 3})))
	s, _ := r.Settings().WithFlattenZ(true)
	r.Configure(s)
	if z := r.Curves().At(0).Knot(0).Position.Z; z != 0 {
		t.Errorf("knot z after enabling FlattenZ = %v, want 0", z)
	}

	r.SetKnot(0, 1, spline.NewKnot(math.Vec3{X: 20, Z: 7}))
	if z := r.Curves().At(0).Knot(1).Position.Z; z != 0 {
		t.Errorf("SetKnot() z = %v, want 0", z)
	}
	if !r.Dirty() {
		t.Error("SetKnot() did not mark dirty")
	}
}
