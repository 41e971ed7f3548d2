package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/uispline"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test render defaults
	if cfg.Render.Width != 10 {
		t.Errorf("expected ribbon width 10, got %f", cfg.Render.Width)
	}
	if cfg.Render.Resolution != 5 {
		t.Errorf("expected resolution 5, got %d", cfg.Render.Resolution)
	}
	if cfg.Render.ClipMin != 0 || cfg.Render.ClipMax != 1 {
		t.Errorf("expected clip [0,1], got [%f,%f]", cfg.Render.ClipMin, cfg.Render.ClipMax)
	}
	if cfg.Render.UVMode != "tile" {
		t.Errorf("expected uv mode 'tile', got %s", cfg.Render.UVMode)
	}
	if !cfg.Render.Billboard {
		t.Error("expected billboard to be true by default")
	}

	// Test export defaults
	if cfg.Export.Format != "png" {
		t.Errorf("expected format 'png', got %s", cfg.Export.Format)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

render:
  width: 4.5
  resolution: 8
  clip_min: 0.25
  clip_max: 0.75
  uv_mode: stretch
  uv_multiplier: [2, 3]
  flatten_z: true
  color: [1, 0.5, 0, 1]

markers:
  start:
    enabled: true
    size: 12
    offset_mode: normalized
    normalized_offset: -0.1

scene:
  path: "curves.yaml"
  watch: true

export:
  format: bmp

logging:
  level: "debug"
  log_file: "spline.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Render.Resolution != 8 {
		t.Errorf("expected resolution 8, got %d", cfg.Render.Resolution)
	}
	if cfg.Render.UVMultiplier != [2]float32{2, 3} {
		t.Errorf("expected uv multiplier [2 3], got %v", cfg.Render.UVMultiplier)
	}
	if !cfg.Scene.Watch || cfg.Scene.Path != "curves.yaml" {
		t.Errorf("unexpected scene config %+v", cfg.Scene)
	}
	if cfg.Export.Format != "bmp" {
		t.Errorf("expected format 'bmp', got %s", cfg.Export.Format)
	}
	if cfg.Logging.LogFile != "spline.log" {
		t.Errorf("expected log file 'spline.log', got %s", cfg.Logging.LogFile)
	}

	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if s.UVMode != extrude.Stretch {
		t.Errorf("expected stretch uv mode, got %v", s.UVMode)
	}
	if s.Clip != (extrude.ClipRange{Min: 0.25, Max: 0.75}) {
		t.Errorf("expected clip [0.25,0.75], got %v", s.Clip)
	}
	if !s.Start.Enabled || s.Start.Mode != uispline.Normalized || s.Start.NormalizedOffset != -0.1 {
		t.Errorf("unexpected start marker %+v", s.Start)
	}
	if s.Color.G != 0.5 {
		t.Errorf("expected color green 0.5, got %f", s.Color.G)
	}
}

func TestSettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		isUV   bool
	}{
		{"unknown uv mode", func(c *Config) { c.Render.UVMode = "mirror" }, true},
		{"unknown offset mode", func(c *Config) { c.Markers.End.OffsetMode = "percent" }, false},
		{"unknown export format", func(c *Config) { c.Export.Format = "gif" }, false},
		{"nan clip", func(c *Config) { c.Render.ClipMin = math32.NaN() }, false},
		{"infinite clip", func(c *Config) { c.Render.ClipMax = math32.Inf(1) }, false},
		{"nan normalized offset", func(c *Config) { c.Markers.Start.NormalizedOffset = math32.NaN() }, false},
		{"infinite distance offset", func(c *Config) { c.Markers.End.Offset = math32.Inf(-1) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.isUV && !errors.Is(err, extrude.ErrUnknownUVMode) {
				t.Errorf("expected ErrUnknownUVMode, got %v", err)
			}
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("render:\n  width: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "render flags",
			setup: func() {
				*flagResolution = 9
				*flagWidth = 3.5
				*flagUVMode = "repeat_per_segment"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Resolution != 9 {
					t.Errorf("expected resolution 9, got %d", cfg.Render.Resolution)
				}
				if cfg.Render.Width != 3.5 {
					t.Errorf("expected width 3.5, got %f", cfg.Render.Width)
				}
				if cfg.Render.UVMode != "repeat_per_segment" {
					t.Errorf("expected uv mode repeat_per_segment, got %s", cfg.Render.UVMode)
				}
			},
			teardown: func() {
				*flagResolution = 0
				*flagWidth = 0
				*flagUVMode = ""
			},
		},
		{
			name: "scene and export flags",
			setup: func() {
				*flagScene = "other.yaml"
				*flagWatch = true
				*flagOut = "frames"
				*flagFormat = "bmp"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Path != "other.yaml" || !cfg.Scene.Watch {
					t.Errorf("unexpected scene config %+v", cfg.Scene)
				}
				if cfg.Export.Dir != "frames" || cfg.Export.Format != "bmp" {
					t.Errorf("unexpected export config %+v", cfg.Export)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagWatch = false
				*flagOut = ""
				*flagFormat = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
render:
  width: 16
  resolution: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagResolution = 7
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Resolution should be from flag (7), not file (3)
	if cfg.Render.Resolution != 7 {
		t.Errorf("expected resolution 7 from flag, got %d", cfg.Render.Resolution)
	}

	// Width should be from file (16) since no flag override
	if cfg.Render.Width != 16 {
		t.Errorf("expected width 16 from file, got %f", cfg.Render.Width)
	}
}

func TestLoadRejectsBadUVMode(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  uv_mode: wrap\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, extrude.ErrUnknownUVMode) {
		t.Errorf("expected ErrUnknownUVMode from Load, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Render.Resolution = 9
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Render.Resolution != 9 {
		t.Errorf("expected resolution 9 after round trip, got %d", loaded.Render.Resolution)
	}
}
