package input

// EventType distinguishes a key event from a mouse event.
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
)

// Event is a tagged union of a key press and a mouse report: a key
// event carries one raw byte; a mouse event carries a button code,
// press/release flag, and absolute 1-based terminal column/row.
type Event struct {
	Type EventType

	// Key is populated when Type == EventKey.
	Key byte

	// Mouse fields, populated when Type == EventMouse.
	Button   int
	Released bool
	X, Y     int
}

// MouseMode selects which mouse-tracking escape the pipeline enables
// at listen-start.
type MouseMode int

const (
	// MouseModeBasic enables X10 legacy tracking (press only, 3-byte
	// coordinate-offset encoding).
	MouseModeBasic MouseMode = iota
	// MouseModeButton enables button-event tracking (press, release and
	// drag-while-pressed).
	MouseModeButton
	// MouseModeAny enables any-event tracking (adds motion reports).
	MouseModeAny
	// MouseModeSGR enables the SGR extended encoding: decimal
	// coordinates with no 223-cell ceiling. This pipeline's default,
	// since it round-trips the full 16-bit coordinate range losslessly
	// where the legacy byte-offset encodings can't.
	MouseModeSGR
)

func (m MouseMode) escape() string {
	switch m {
	case MouseModeButton:
		return "\x1b[?1002h"
	case MouseModeAny:
		return "\x1b[?1003h"
	case MouseModeSGR:
		return "\x1b[?1006h"
	default:
		return "\x1b[?1000h"
	}
}
