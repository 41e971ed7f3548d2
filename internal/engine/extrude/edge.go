package extrude

import (
	"github.com/Faultbox/uispline/pkg/math"
	"github.com/Faultbox/uispline/pkg/profile"
)

// Vertex is one ribbon vertex, laid out for direct GPU upload.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Color    [4]float32
}

// EdgeParams holds the per-sample inputs of ExtrudeEdge.
type EdgeParams struct {
	Width        float32
	V            float32
	Color        profile.Color
	UVMultiplier math.Vec2
	UVOffset     math.Vec2
	Billboard    bool
	FlattenZ     bool
}

// ExtrudeEdge returns the left and right ribbon vertices for one sample.
// The vertices sit width/2 either side of the sample position along the
// perpendicular of the tangent. When billboarding the perpendicular is taken
// against the view axis (0,0,-1), otherwise against the sample's up vector.
// A degenerate perpendicular collapses both vertices onto the sample.
func ExtrudeEdge(s Sample, p EdgeParams) (left, right Vertex) {
	axis := s.Up
	if p.Billboard {
		axis = math.Vec3Back
	}
	perp := s.Tangent.Cross(axis).Normalize()

	pos := s.Position
	if p.FlattenZ {
		pos.Z = 0
	}
	offset := perp.Scale(p.Width * 0.5)

	color := p.Color.Array()
	left = Vertex{
		Position: pos.Add(offset).Array(),
		TexCoord: uv(0, p),
		Color:    color,
	}
	right = Vertex{
		Position: pos.Sub(offset).Array(),
		TexCoord: uv(1, p),
		Color:    color,
	}
	return left, right
}

func uv(u float32, p EdgeParams) [2]float32 {
	return [2]float32{
		u*p.UVMultiplier.X - p.UVOffset.X,
		p.V*p.UVMultiplier.Y - p.UVOffset.Y,
	}
}
