// Package input polls SDL2 events and turns key presses into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/uispline/internal/controls"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]controls.Action

// DefaultBindings returns the viewer key map.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE:       controls.ActionQuit,
		sdl.SCANCODE_Q:            controls.ActionQuit,
		sdl.SCANCODE_R:            controls.ActionReload,
		sdl.SCANCODE_F12:          controls.ActionScreenshot,
		sdl.SCANCODE_B:            controls.ActionToggleBillboard,
		sdl.SCANCODE_Z:            controls.ActionToggleFlattenZ,
		sdl.SCANCODE_U:            controls.ActionCycleUVMode,
		sdl.SCANCODE_RIGHTBRACKET: controls.ActionResolutionUp,
		sdl.SCANCODE_LEFTBRACKET:  controls.ActionResolutionDown,
		sdl.SCANCODE_EQUALS:       controls.ActionWidthUp,
		sdl.SCANCODE_MINUS:        controls.ActionWidthDown,
		sdl.SCANCODE_M:            controls.ActionToggleMarkers,
		sdl.SCANCODE_O:            controls.ActionToggleBounds,
		sdl.SCANCODE_G:            controls.ActionToggleGrid,
		sdl.SCANCODE_P:            controls.ActionToggleParallel,
	}
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	events   []Event
	actions  []controls.Action
	mouseX   int
	mouseY   int
}

// New creates an input handler. Nil bindings select DefaultBindings.
func New(bindings Bindings) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 16),
		actions:  make([]controls.Action, 0, 4),
	}
}

// Update polls SDL events. Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.actions = i.actions[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			switch e.Type {
			case sdl.KEYDOWN:
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				if e.Repeat == 0 {
					if a, ok := i.bindings[e.Keysym.Scancode]; ok {
						i.actions = append(i.actions, a)
					}
				}
			case sdl.KEYUP:
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.mouseX, i.mouseY = int(e.X), int(e.Y)
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: i.mouseX,
				MouseY: i.mouseY,
			})

		case *sdl.MouseWheelEvent:
			dy := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.events = append(i.events, Event{Type: EventMouseWheel, WheelY: dy})

		case *sdl.MouseButtonEvent:
			t := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventMouseUp
			}
			i.events = append(i.events, Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the bound actions triggered during the last Update, in
// press order.
func (i *Input) Actions() []controls.Action {
	return i.actions
}

// Mouse returns the last known cursor position in window coordinates.
func (i *Input) Mouse() (x, y int) {
	return i.mouseX, i.mouseY
}
