package controls

import (
	"testing"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/uispline"
)

func TestApply(t *testing.T) {
	base := uispline.DefaultSettings()

	tests := []struct {
		action  Action
		rebuild bool
		check   func(s uispline.Settings) bool
	}{
		{ActionToggleBillboard, true, func(s uispline.Settings) bool { return s.Billboard != base.Billboard }},
		{ActionToggleFlattenZ, true, func(s uispline.Settings) bool { return s.FlattenZ }},
		{ActionCycleUVMode, true, func(s uispline.Settings) bool { return s.UVMode == extrude.RepeatPerSegment }},
		{ActionResolutionUp, true, func(s uispline.Settings) bool { return s.Resolution == base.Resolution+1 }},
		{ActionResolutionDown, true, func(s uispline.Settings) bool { return s.Resolution == base.Resolution-1 }},
		{ActionWidthUp, true, func(s uispline.Settings) bool { return s.Width == base.Width+WidthStep }},
		{ActionWidthDown, true, func(s uispline.Settings) bool { return s.Width == base.Width-WidthStep }},
		{ActionToggleMarkers, false, func(s uispline.Settings) bool { return s.Start.Enabled && s.End.Enabled }},
		{ActionToggleParallel, false, func(s uispline.Settings) bool { return s.Parallel != base.Parallel }},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			next, rebuild, handled := Apply(tt.action, base)
			if !handled {
				t.Fatalf("Apply(%v) not handled", tt.action)
			}
			if rebuild != tt.rebuild {
				t.Errorf("Apply(%v) rebuild = %v, want %v", tt.action, rebuild, tt.rebuild)
			}
			if !tt.check(next) {
				t.Errorf("Apply(%v) = %+v", tt.action, next)
			}
		})
	}
}

func TestApplyUnhandled(t *testing.T) {
	base := uispline.DefaultSettings()
	for _, a := range []Action{ActionNone, ActionQuit, ActionReload, ActionScreenshot, ActionToggleBounds, ActionToggleGrid} {
		next, rebuild, handled := Apply(a, base)
		if handled || rebuild || next != base {
			t.Errorf("Apply(%v) = %v, %v, want untouched", a, rebuild, handled)
		}
	}
}

func TestCycleUVMode(t *testing.T) {
	s := uispline.DefaultSettings()
	seen := []extrude.UVMode{s.UVMode}
	for i := 0; i < 3; i++ {
		s, _, _ = Apply(ActionCycleUVMode, s)
		seen = append(seen, s.UVMode)
	}
	want := []extrude.UVMode{extrude.Tile, extrude.RepeatPerSegment, extrude.Stretch, extrude.Tile}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestLimits(t *testing.T) {
	s := uispline.DefaultSettings()
	s.Width = 0.5
	s.Resolution = extrude.MaxResolution

	next, _, _ := Apply(ActionWidthDown, s)
	if next.Width != 0 {
		t.Errorf("width = %v, want 0", next.Width)
	}
	next, rebuild, _ := Apply(ActionResolutionUp, s)
	if next.Resolution != extrude.MaxResolution || rebuild {
		t.Errorf("resolution = %d (rebuild %v), want %d without rebuild", next.Resolution, rebuild, extrude.MaxResolution)
	}
}

func TestActionString(t *testing.T) {
	if got := ActionCycleUVMode.String(); got != "cycle_uv_mode" {
		t.Errorf("String() = %q", got)
	}
	if got := Action(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
