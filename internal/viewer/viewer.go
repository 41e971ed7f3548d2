// Package viewer implements the interactive ribbon viewer loop.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/uispline/internal/config"
	"github.com/Faultbox/uispline/internal/controls"
	"github.com/Faultbox/uispline/internal/engine/camera"
	"github.com/Faultbox/uispline/internal/engine/debug"
	"github.com/Faultbox/uispline/internal/engine/framebuffer"
	"github.com/Faultbox/uispline/internal/engine/input"
	"github.com/Faultbox/uispline/internal/engine/renderer"
	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/internal/engine/window"
	"github.com/Faultbox/uispline/internal/logger"
	"github.com/Faultbox/uispline/internal/scene"
	"github.com/Faultbox/uispline/pkg/math"
)

const (
	fitMargin = 32
	gridStep  = 50
)

var (
	hoverTint   = [4]float32{1, 1, 0.6, 1}
	normalTint  = [4]float32{1, 1, 1, 1}
	boundsColor = [4]float32{1, 1, 0, 0.8}
	gridColor   = [4]float32{0.5, 0.5, 0.5, 0.25}
)

// Viewer owns the window, the GL renderer and the spline renderer.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.CanvasCamera
	capture  *debug.Capture

	splines *uispline.Renderer
	watcher *scene.Watcher

	showBounds bool
	showGrid   bool
	hovered    bool
	dragging   bool
	lastX      int
	lastY      int

	log *zap.Logger
}

// New opens the window and loads the configured scene.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	format, err := debug.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, fmt.Errorf("export.format: %w", err)
	}

	v := &Viewer{
		cfg:     cfg,
		input:   input.New(nil),
		camera:  camera.NewCanvasCamera(),
		capture: debug.NewCapture(cfg.Export.Dir, cfg.Export.Prefix, format),
		splines: uispline.New(settings, logger.Named("uispline")),
		log:     logger.Named("viewer"),
	}

	v.window, err = window.New(window.Config{
		Title:      "UI Spline Viewer",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbw, fbh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbw,
		Height:     fbh,
		Background: cfg.Export.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.loadScene(); err != nil {
		v.Close()
		return nil, err
	}
	v.fit()

	if cfg.Scene.Watch && cfg.Scene.Path != "" {
		v.watcher, err = scene.Watch(ctx, cfg.Scene.Path, scene.DefaultDebounce, v.log)
		if err != nil {
			v.log.Warn("scene watch disabled", zap.Error(err))
		}
	}

	v.log.Info("viewer initialized", zap.String("scene", cfg.Scene.Path))
	return v, nil
}

// Run drives the frame loop until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true
	frameCount := 0
	fpsTimer := time.Now()

	var changes <-chan struct{}
	if v.watcher != nil {
		changes = v.watcher.Changes()
	}

	for v.running {
		select {
		case <-ctx.Done():
			v.running = false
			continue
		case <-changes:
			v.reload()
		default:
		}

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		for _, a := range v.input.Actions() {
			v.handleAction(ctx, a)
		}
		v.updateHover()

		if err := v.render(ctx); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close releases the window, GL resources and the scene watcher.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) loadScene() error {
	doc, demo, err := scene.LoadOrDemo(v.cfg.Scene.Path)
	if err != nil {
		return err
	}
	if demo {
		v.log.Info("scene not found, using demo", zap.String("path", v.cfg.Scene.Path))
	}
	return doc.Apply(v.splines)
}

func (v *Viewer) reload() {
	if err := v.loadScene(); err != nil {
		v.log.Error("scene reload failed", zap.Error(err))
		return
	}
	v.log.Info("scene reloaded", zap.Int("curves", v.splines.Curves().Len()))
}

func (v *Viewer) fit() {
	if b, ok := v.splines.Bounds(); ok {
		w, h := v.window.Size()
		v.camera.FitToBounds(b, w, h, fitMargin)
	}
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			fbw, fbh := v.window.DrawableSize()
			v.renderer.Resize(fbw, fbh)
		case input.EventMouseDown:
			v.dragging = true
			v.lastX, v.lastY = e.MouseX, e.MouseY
		case input.EventMouseUp:
			v.dragging = false
		case input.EventMouseMove:
			if v.dragging {
				v.camera.HandleDrag(float32(e.MouseX-v.lastX), float32(e.MouseY-v.lastY))
				v.lastX, v.lastY = e.MouseX, e.MouseY
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.WheelY)
		}
	}
}

func (v *Viewer) handleAction(ctx context.Context, a controls.Action) {
	switch a {
	case controls.ActionQuit:
		v.running = false
	case controls.ActionReload:
		v.reload()
		v.fit()
	case controls.ActionScreenshot:
		v.screenshot(ctx)
	case controls.ActionToggleBounds:
		v.showBounds = !v.showBounds
	case controls.ActionToggleGrid:
		v.showGrid = !v.showGrid
	default:
		next, _, handled := controls.Apply(a, v.splines.Settings())
		if !handled {
			return
		}
		rebuild := v.splines.Configure(next)
		s := v.splines.Settings()
		v.log.Info("settings changed",
			zap.Stringer("action", a),
			zap.Bool("rebuild", rebuild),
			zap.Float32("width", s.Width),
			zap.Int("resolution", s.Resolution),
			zap.Stringer("uv_mode", s.UVMode),
		)
	}
}

func (v *Viewer) updateHover() {
	mx, my := v.input.Mouse()
	w, h := v.window.Size()
	p, ok := v.camera.Unproject(float32(mx), float32(my), w, h)
	if !ok {
		v.hovered = false
		return
	}
	hovered := v.splines.HitTest(p)
	if hovered != v.hovered {
		v.log.Debug("hover changed", zap.Bool("hovered", hovered))
	}
	v.hovered = hovered
}

func (v *Viewer) render(ctx context.Context) error {
	if err := v.prepare(ctx); err != nil {
		return err
	}
	w, h := v.window.Size()
	v.draw(v.camera.ViewProj(w, h))
	return nil
}

// prepare rebuilds and re-uploads the mesh when the spline renderer is stale.
func (v *Viewer) prepare(ctx context.Context) error {
	if !v.splines.Dirty() {
		return nil
	}
	if err := v.splines.Rebuild(ctx); err != nil {
		return err
	}
	mesh, err := v.splines.Mesh()
	if err != nil {
		return err
	}
	v.renderer.UploadMesh(mesh)
	return nil
}

func (v *Viewer) draw(viewProj math.Mat4) {
	v.renderer.SetViewProj(viewProj)
	v.renderer.Begin()

	b, hasBounds := v.splines.Bounds()
	if v.showGrid && hasBounds {
		v.renderer.DrawLines(debug.GridLines(b, gridStep), gridColor)
	}

	tint := normalTint
	if v.hovered {
		tint = hoverTint
	}
	stripe := float32(0)
	if v.showGrid {
		stripe = 0.25
	}
	v.renderer.DrawMesh(tint, stripe)

	v.renderer.DrawMarkers(v.splines.Markers(uispline.Start))
	v.renderer.DrawMarkers(v.splines.Markers(uispline.End))

	if v.showBounds && hasBounds {
		v.renderer.DrawLines(debug.BoundsOutline(b, debug.DefaultOutlinePadding), boundsColor)
	}
	v.renderer.End()
}

// screenshot renders the scene offscreen at the export size, framed on the
// curve bounds, and saves it.
func (v *Viewer) screenshot(ctx context.Context) {
	if err := v.prepare(ctx); err != nil {
		v.log.Error("screenshot rebuild failed", zap.Error(err))
		return
	}
	w, h := v.cfg.Export.Width, v.cfg.Export.Height
	fb, err := framebuffer.New(w, h)
	if err != nil {
		v.log.Error("screenshot target failed", zap.Error(err))
		return
	}
	defer fb.Destroy()

	cam := *v.camera
	if b, ok := v.splines.Bounds(); ok {
		cam.FitToBounds(b, w, h, fitMargin)
	}
	fw, fh := fb.Size()
	pixels := fb.Capture(func() { v.draw(cam.ViewProj(fw, fh)) })

	path, err := v.capture.CaptureFromPixels(pixels, fw, fh)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}
