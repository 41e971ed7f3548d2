// Package controls maps viewer actions onto renderer settings.
package controls

import (
	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/uispline"
)

// Action is a user command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReload
	ActionScreenshot
	ActionToggleBillboard
	ActionToggleFlattenZ
	ActionCycleUVMode
	ActionResolutionUp
	ActionResolutionDown
	ActionWidthUp
	ActionWidthDown
	ActionToggleMarkers
	ActionToggleBounds
	ActionToggleGrid
	ActionToggleParallel
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionQuit:            "quit",
	ActionReload:          "reload",
	ActionScreenshot:      "screenshot",
	ActionToggleBillboard: "toggle_billboard",
	ActionToggleFlattenZ:  "toggle_flatten_z",
	ActionCycleUVMode:     "cycle_uv_mode",
	ActionResolutionUp:    "resolution_up",
	ActionResolutionDown:  "resolution_down",
	ActionWidthUp:         "width_up",
	ActionWidthDown:       "width_down",
	ActionToggleMarkers:   "toggle_markers",
	ActionToggleBounds:    "toggle_bounds",
	ActionToggleGrid:      "toggle_grid",
	ActionToggleParallel:  "toggle_parallel",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// WidthStep is the ribbon width change per width action.
const WidthStep = 1

// Apply returns the settings after a settings action. handled is false for
// actions that do not touch settings, in which case s is returned as is.
// rebuild reports whether the change invalidates the mesh.
func Apply(a Action, s uispline.Settings) (next uispline.Settings, rebuild, handled bool) {
	switch a {
	case ActionToggleBillboard:
		next, rebuild = s.WithBillboard(!s.Billboard)
	case ActionToggleFlattenZ:
		next, rebuild = s.WithFlattenZ(!s.FlattenZ)
	case ActionCycleUVMode:
		next, rebuild = s.WithUVMode(nextUVMode(s.UVMode))
	case ActionResolutionUp:
		next, rebuild = s.WithResolution(s.Resolution + 1)
	case ActionResolutionDown:
		next, rebuild = s.WithResolution(s.Resolution - 1)
	case ActionWidthUp:
		next, rebuild = s.WithWidth(s.Width + WidthStep)
	case ActionWidthDown:
		next, rebuild = s.WithWidth(max(s.Width-WidthStep, 0))
	case ActionToggleMarkers:
		start, end := s.Start, s.End
		on := !(start.Enabled || end.Enabled)
		start.Enabled, end.Enabled = on, on
		next, rebuild = s.WithMarkers(start, end)
	case ActionToggleParallel:
		next = s
		next.Parallel = !s.Parallel
	default:
		return s, false, false
	}
	return next, rebuild, true
}

func nextUVMode(m extrude.UVMode) extrude.UVMode {
	switch m {
	case extrude.Tile:
		return extrude.RepeatPerSegment
	case extrude.RepeatPerSegment:
		return extrude.Stretch
	default:
		return extrude.Tile
	}
}
