package scene

import (
	"fmt"

	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
	"github.com/Faultbox/uispline/pkg/spline"
)

// CurveSet builds the curves described by the document.
func (d *Document) CurveSet() *spline.CurveSet {
	set := spline.NewCurveSet()
	for _, cd := range d.Curves {
		set.Add(cd.curve())
	}
	return set
}

func (cd CurveDoc) curve() *spline.Curve {
	knots := make([]spline.Knot, len(cd.Knots))
	for i, kd := range cd.Knots {
		k := spline.NewKnot(vec3(kd.Position))
		if kd.TangentIn != nil {
			k.TangentIn = vec3(*kd.TangentIn)
		}
		if kd.TangentOut != nil {
			k.TangentOut = vec3(*kd.TangentOut)
		}
		if kd.Rotation != nil {
			r := *kd.Rotation
			k.Rotation = math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}.Normalize()
		}
		knots[i] = k
	}

	c := spline.New(knots...)
	if cd.Closed {
		c.SetClosed(true)
	}
	if cd.Smooth {
		c.SmoothTangents(spline.DefaultTension)
		c.ReorientKnots()
	}
	return c
}

// WidthProfile returns the width curve, or nil when the document has none.
func (d *Document) WidthProfile() *profile.WidthCurve {
	if len(d.WidthCurve) == 0 {
		return nil
	}
	keys := make([]profile.Keyframe, len(d.WidthCurve))
	for i, k := range d.WidthCurve {
		keys[i] = profile.Keyframe(k)
	}
	return profile.NewWidthCurve(keys...)
}

// GradientProfile returns the color gradient, or nil when the document has
// none.
func (d *Document) GradientProfile() (*profile.Gradient, error) {
	if d.Gradient == nil {
		return nil, nil
	}
	mode, err := profile.ParseGradientMode(d.Gradient.Mode)
	if err != nil {
		return nil, fmt.Errorf("gradient: %w", err)
	}
	colors := make([]profile.ColorKey, len(d.Gradient.Colors))
	for i, c := range d.Gradient.Colors {
		colors[i] = profile.ColorKey{
			Color: profile.Color{R: c.Color[0], G: c.Color[1], B: c.Color[2], A: 1},
			Time:  c.Time,
		}
	}
	alphas := make([]profile.AlphaKey, len(d.Gradient.Alphas))
	for i, a := range d.Gradient.Alphas {
		alphas[i] = profile.AlphaKey{Alpha: a.Alpha, Time: a.Time}
	}
	return profile.NewGradient(mode, colors, alphas), nil
}

// Apply loads the document's curves and profiles into r. Nothing is
// changed when the document is invalid.
func (d *Document) Apply(r *uispline.Renderer) error {
	grad, err := d.GradientProfile()
	if err != nil {
		return err
	}
	r.SetCurves(d.CurveSet())
	r.SetWidthCurve(d.WidthProfile())
	r.SetGradient(grad)
	return nil
}

// FromRenderer captures the renderer's curves and profiles as a document
// with explicit tangents and rotations.
func FromRenderer(r *uispline.Renderer) *Document {
	d := &Document{}
	for _, c := range r.Curves().Curves() {
		cd := CurveDoc{Closed: c.Closed()}
		for _, k := range c.Knots() {
			in := k.TangentIn.Array()
			out := k.TangentOut.Array()
			rot := [4]float32{k.Rotation.X, k.Rotation.Y, k.Rotation.Z, k.Rotation.W}
			cd.Knots = append(cd.Knots, KnotDoc{
				Position:   k.Position.Array(),
				TangentIn:  &in,
				TangentOut: &out,
				Rotation:   &rot,
			})
		}
		d.Curves = append(d.Curves, cd)
	}

	if wc := r.WidthCurve(); wc != nil {
		for _, k := range wc.Keys() {
			d.WidthCurve = append(d.WidthCurve, KeyDoc(k))
		}
	}

	if g := r.Gradient(); g != nil {
		gd := &GradientDoc{Mode: g.Mode.String()}
		for _, k := range g.ColorKeys() {
			gd.Colors = append(gd.Colors, ColorKeyDoc{Time: k.Time, Color: [3]float32{k.Color.R, k.Color.G, k.Color.B}})
		}
		for _, k := range g.AlphaKeys() {
			gd.Alphas = append(gd.Alphas, AlphaKeyDoc{Time: k.Time, Alpha: k.Alpha})
		}
		d.Gradient = gd
	}
	return d
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
