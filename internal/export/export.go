// Package export renders a curve set to an image file without a GPU.
package export

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/uispline/internal/config"
	"github.com/Faultbox/uispline/internal/engine/debug"
	"github.com/Faultbox/uispline/internal/engine/raster"
	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/pkg/profile"
)

// Options controls the rendered frame.
type Options struct {
	Width      int
	Height     int
	Margin     float32
	Background profile.Color
	// ShowBounds outlines the hit-test bounds.
	ShowBounds bool
	// GridStep draws a reference grid at this spacing; 0 disables it.
	GridStep float32
}

// OptionsFromConfig reads frame options from the export section.
func OptionsFromConfig(c config.ExportConfig) Options {
	bg := c.Background
	return Options{
		Width:      c.Width,
		Height:     c.Height,
		Margin:     16,
		Background: profile.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]},
	}
}

var (
	boundsColor = profile.Color{R: 1, G: 1, B: 0, A: 0.8}
	gridColor   = profile.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.35}
)

// Render rebuilds r if needed and draws its mesh, markers and optional
// overlays into a new image framed on the renderer bounds.
func Render(ctx context.Context, r *uispline.Renderer, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("export: invalid image size %dx%d", opts.Width, opts.Height)
	}
	if r.Dirty() {
		if err := r.Rebuild(ctx); err != nil {
			return nil, err
		}
	}
	mesh, err := r.Mesh()
	if err != nil {
		return nil, err
	}

	canvas := raster.NewCanvas(opts.Width, opts.Height)
	canvas.Clear(opts.Background)

	b, ok := r.Bounds()
	if !ok {
		return canvas.Image(), nil
	}
	xf := raster.Fit(b, opts.Width, opts.Height, opts.Margin)

	if opts.GridStep > 0 {
		canvas.DrawLines(debug.GridLines(b, opts.GridStep), 1, gridColor, xf)
	}
	canvas.DrawMesh(mesh, xf)
	for _, side := range []uispline.Side{uispline.Start, uispline.End} {
		for _, m := range r.Markers(side) {
			canvas.DrawMarker(m, xf)
		}
	}
	if opts.ShowBounds {
		canvas.DrawLines(debug.RectOutline(b, debug.DefaultOutlinePadding), 1, boundsColor, xf)
	}
	return canvas.Image(), nil
}

// Exporter writes rendered frames through a debug.Capture.
type Exporter struct {
	opts    Options
	capture *debug.Capture
	log     *zap.Logger
}

// New creates an exporter for the export config section. A nil logger
// discards output.
func New(c config.ExportConfig, log *zap.Logger) (*Exporter, error) {
	format, err := debug.ParseFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("export.format: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		opts:    OptionsFromConfig(c),
		capture: debug.NewCapture(c.Dir, c.Prefix, format),
		log:     log,
	}, nil
}

// Options returns the frame options, for callers that want to adjust them
// with SetOptions.
func (e *Exporter) Options() Options {
	return e.opts
}

// SetOptions replaces the frame options.
func (e *Exporter) SetOptions(opts Options) {
	e.opts = opts
}

// Export renders r and writes it to a new file, returning the path.
func (e *Exporter) Export(ctx context.Context, r *uispline.Renderer) (string, error) {
	start := time.Now()
	img, err := Render(ctx, r, e.opts)
	if err != nil {
		return "", err
	}
	path, err := e.capture.CaptureFromImage(img)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	st := r.Stats()
	e.log.Info("exported frame",
		zap.String("path", path),
		zap.Int("curves", st.Curves),
		zap.Int("vertices", st.Vertices),
		zap.Int("triangles", st.Triangles),
		zap.Duration("elapsed", time.Since(start)),
	)
	return path, nil
}
