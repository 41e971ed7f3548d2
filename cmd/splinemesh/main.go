// Command splinemesh builds the ribbon mesh for a scene file and exports it
// as an image. With -watch it re-exports whenever the scene changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/uispline/internal/config"
	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/internal/export"
	"github.com/Faultbox/uispline/internal/logger"
	"github.com/Faultbox/uispline/internal/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== UI Spline Mesh Export ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	r := uispline.New(settings, logger.Named("uispline"))

	exp, err := export.New(cfg.Export, logger.Named("export"))
	if err != nil {
		return err
	}

	if err := load(cfg.Scene.Path, r); err != nil {
		return err
	}
	if _, err := exp.Export(ctx, r); err != nil {
		return err
	}

	if !cfg.Scene.Watch {
		return nil
	}
	if cfg.Scene.Path == "" {
		return fmt.Errorf("scene.watch needs scene.path")
	}

	w, err := scene.Watch(ctx, cfg.Scene.Path, scene.DefaultDebounce, logger.Named("watch"))
	if err != nil {
		return err
	}
	defer w.Close()
	logger.Info("watching scene", zap.String("path", cfg.Scene.Path))

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching")
			return nil
		case <-w.Done():
			return fmt.Errorf("scene watcher stopped")
		case <-w.Changes():
			if err := load(cfg.Scene.Path, r); err != nil {
				// Keep the last good scene while the file is mid-edit.
				logger.Warn("scene reload failed", zap.Error(err))
				continue
			}
			if _, err := exp.Export(ctx, r); err != nil {
				logger.Error("re-export failed", zap.Error(err))
			}
		}
	}
}

func load(path string, r *uispline.Renderer) error {
	doc, demo, err := scene.LoadOrDemo(path)
	if err != nil {
		return err
	}
	if demo {
		logger.Info("scene not found, using demo", zap.String("path", path))
	}
	if err := doc.Apply(r); err != nil {
		return fmt.Errorf("applying scene: %w", err)
	}
	logger.Info("scene loaded",
		zap.Int("curves", r.Curves().Len()),
		zap.Int("vertices", r.VertexCount()),
	)
	return nil
}
