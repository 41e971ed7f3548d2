// Package spline provides piecewise cubic Bezier curves with arc-length
// parameterisation, as edited by a UI spline front end.
package spline

import "github.com/Faultbox/uispline/pkg/math"

// Knot is a control point of a Bezier curve.
// TangentIn and TangentOut are offsets from Position in curve space; the
// rotation only orients the knot's up vector.
type Knot struct {
	Position   math.Vec3
	TangentIn  math.Vec3
	TangentOut math.Vec3
	Rotation   math.Quat
}

// NewKnot returns a knot with linear (zero) tangents and identity rotation.
func NewKnot(pos math.Vec3) Knot {
	return Knot{Position: pos, Rotation: math.QuatIdentity()}
}

// Up returns the knot's up vector.
func (k Knot) Up() math.Vec3 {
	return k.rotation().Rotate(math.Vec3Up)
}

// rotation treats a zero quaternion as identity.
func (k Knot) rotation() math.Quat {
	if k.Rotation == (math.Quat{}) {
		return math.QuatIdentity()
	}
	return k.Rotation
}
