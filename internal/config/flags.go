package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Path to scene file")
	flagOut        = flag.String("out", "", "Export output directory")
	flagFormat     = flag.String("format", "", "Export image format (png, bmp)")
	flagResolution = flag.Int("resolution", 0, "Sampling resolution (1-10)")
	flagWidth      = flag.Float64("width", 0, "Ribbon width")
	flagUVMode     = flag.String("uv-mode", "", "UV mode (tile, repeat_per_segment, stretch)")
	flagWatch      = flag.Bool("watch", false, "Rebuild when the scene file changes")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagOut != "" {
		cfg.Export.Dir = *flagOut
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagResolution > 0 {
		cfg.Render.Resolution = *flagResolution
	}
	if *flagWidth > 0 {
		cfg.Render.Width = float32(*flagWidth)
	}
	if *flagUVMode != "" {
		cfg.Render.UVMode = *flagUVMode
	}
	if *flagWatch {
		cfg.Scene.Watch = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
}
