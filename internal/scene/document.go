// Package scene loads and saves YAML scene documents describing a curve
// set with its width and color profiles, and watches them for edits.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a scene.
type Document struct {
	Curves     []CurveDoc   `yaml:"curves"`
	WidthCurve []KeyDoc     `yaml:"width_curve,omitempty"`
	Gradient   *GradientDoc `yaml:"gradient,omitempty"`
}

// CurveDoc describes one curve. With Smooth set, tangents are generated
// from the knot positions and any given tangents are ignored.
type CurveDoc struct {
	Closed bool      `yaml:"closed,omitempty"`
	Smooth bool      `yaml:"smooth,omitempty"`
	Knots  []KnotDoc `yaml:"knots"`
}

// KnotDoc describes one knot. Tangents are offsets from the position.
type KnotDoc struct {
	Position   [3]float32  `yaml:"position,flow"`
	TangentIn  *[3]float32 `yaml:"tangent_in,omitempty,flow"`
	TangentOut *[3]float32 `yaml:"tangent_out,omitempty,flow"`
	Rotation   *[4]float32 `yaml:"rotation,omitempty,flow"` // x, y, z, w
}

// KeyDoc is a width curve keyframe.
type KeyDoc struct {
	Time       float32 `yaml:"time"`
	Value      float32 `yaml:"value"`
	InTangent  float32 `yaml:"in_tangent,omitempty"`
	OutTangent float32 `yaml:"out_tangent,omitempty"`
}

// GradientDoc describes a color gradient.
type GradientDoc struct {
	Mode   string        `yaml:"mode,omitempty"` // blend, fixed
	Colors []ColorKeyDoc `yaml:"colors,omitempty"`
	Alphas []AlphaKeyDoc `yaml:"alphas,omitempty"`
}

// ColorKeyDoc is an RGB gradient stop.
type ColorKeyDoc struct {
	Time  float32    `yaml:"time"`
	Color [3]float32 `yaml:"color,flow"`
}

// AlphaKeyDoc is an alpha gradient stop.
type AlphaKeyDoc struct {
	Time  float32 `yaml:"time"`
	Alpha float32 `yaml:"alpha"`
}

// Parse decodes a scene document. Unknown fields are rejected so typos in
// hand-edited scenes do not silently drop data.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &doc, nil
}

// Load reads a scene document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document to path, creating parent directories.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating scene dir: %w", err)
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Demo returns a small scene with an open S curve and a closed loop, used
// when no scene file exists yet.
func Demo() *Document {
	return &Document{
		Curves: []CurveDoc{
			{
				Smooth: true,
				Knots: []KnotDoc{
					{Position: [3]float32{-300, -100, 0}},
					{Position: [3]float32{-100, 100, 0}},
					{Position: [3]float32{100, -100, 0}},
					{Position: [3]float32{300, 100, 0}},
				},
			},
			{
				Closed: true,
				Smooth: true,
				Knots: []KnotDoc{
					{Position: [3]float32{0, 150, 0}},
					{Position: [3]float32{80, 230, 0}},
					{Position: [3]float32{0, 310, 0}},
					{Position: [3]float32{-80, 230, 0}},
				},
			},
		},
		WidthCurve: []KeyDoc{
			{Time: 0, Value: 0.4},
			{Time: 0.5, Value: 1},
			{Time: 1, Value: 0.4},
		},
		Gradient: &GradientDoc{
			Mode: "blend",
			Colors: []ColorKeyDoc{
				{Time: 0, Color: [3]float32{0.2, 0.6, 1}},
				{Time: 1, Color: [3]float32{1, 0.4, 0.2}},
			},
		},
	}
}

// LoadOrDemo loads path, falling back to Demo when the file does not
// exist. demo reports whether the fallback was taken.
func LoadOrDemo(path string) (doc *Document, demo bool, err error) {
	if path == "" {
		return Demo(), true, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Demo(), true, nil
	}
	doc, err = Load(path)
	return doc, false, err
}
