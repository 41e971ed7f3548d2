package extrude

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUVMode is returned when extrusion is asked for a UV mode it
// does not implement.
var ErrUnknownUVMode = errors.New("unknown uv mode")

// UVMode selects how the along-curve texture coordinate v is assigned.
type UVMode int

const (
	// Tile repeats the texture every width units of arc length.
	Tile UVMode = iota
	// RepeatPerSegment repeats the texture once per sampled segment.
	RepeatPerSegment
	// Stretch maps the texture once over the rendered range.
	Stretch
)

var uvModeNames = map[UVMode]string{
	Tile:             "tile",
	RepeatPerSegment: "repeat_per_segment",
	Stretch:          "stretch",
}

func (m UVMode) String() string {
	if name, ok := uvModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("UVMode(%d)", int(m))
}

// Valid reports whether m is one of the implemented modes.
func (m UVMode) Valid() bool {
	_, ok := uvModeNames[m]
	return ok
}

// ParseUVMode parses a mode name as written in config and scene files.
func ParseUVMode(s string) (UVMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for mode, name := range uvModeNames {
		if name == key {
			return mode, nil
		}
	}
	return Tile, fmt.Errorf("%w: %q", ErrUnknownUVMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m UVMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUVMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *UVMode) UnmarshalText(text []byte) error {
	mode, err := ParseUVMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// v returns the texture coordinate for sample i at curve parameter t.
func (m UVMode) v(i int, t, length, width float32) (float32, error) {
	switch m {
	case Tile:
		if width == 0 {
			return 0, nil
		}
		return length / width * t, nil
	case RepeatPerSegment:
		return float32(i), nil
	case Stretch:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownUVMode, int(m))
	}
}
