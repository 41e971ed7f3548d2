// Package extrude turns spline curves into ribbon meshes: it samples a
// curve over a clip range, offsets each sample into a pair of edge
// vertices and stitches consecutive pairs into a triangle strip.
package extrude

import (
	"fmt"

	"github.com/Faultbox/uispline/pkg/spline"
)

// Mesh holds ribbon vertex and index data ready for GPU upload.
// Indices are triangle triples.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Reset empties the mesh, keeping its storage.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Append copies other's vertices and indices onto m. Indices are copied
// unchanged, so other must already be offset for its position in m.
func (m *Mesh) Append(other *Mesh) {
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Indices = append(m.Indices, other.Indices...)
}

// Clone returns a copy that shares no storage with m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]Vertex(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// Scratch holds per-curve working storage reused between extrusions.
type Scratch struct {
	samples []Sample
}

// Extrude appends the ribbon for c to dst. Vertex indices start at
// startIndex, the number of vertices packed before this curve.
// A curve with fewer than two knots appends nothing. An unknown UV mode is
// reported before anything is appended.
func Extrude(c *spline.Curve, startIndex int, opts Options, scratch *Scratch, dst *Mesh) error {
	if !opts.UVMode.Valid() {
		return fmt.Errorf("extrude: %w: %d", ErrUnknownUVMode, int(opts.UVMode))
	}
	if c == nil || c.Count() < 2 {
		return nil
	}
	if scratch == nil {
		scratch = &Scratch{}
	}

	n := SampleCount(VertexCount(c, opts.Resolution, opts.Clip))
	scratch.samples = Evaluate(c, n, opts.Clip, scratch.samples[:0])

	length := c.Length()
	start := uint32(startIndex)
	for i, s := range scratch.samples {
		v, err := opts.UVMode.v(i, s.T, length, opts.Width)
		if err != nil {
			return fmt.Errorf("extrude: %w", err)
		}
		left, right := ExtrudeEdge(s, EdgeParams{
			Width:        opts.WidthAt(s.T),
			V:            v,
			Color:        opts.ColorAt(s.T),
			UVMultiplier: opts.UVMultiplier,
			UVOffset:     opts.UVOffset,
			Billboard:    opts.Billboard,
			FlattenZ:     opts.FlattenZ,
		})
		dst.Vertices = append(dst.Vertices, left, right)

		if i == 0 {
			continue
		}
		k := uint32(2 * i)
		dst.Indices = append(dst.Indices,
			k+start, k-1+start, k-2+start,
			k+1+start, k-1+start, k+start,
		)
	}
	return nil
}
