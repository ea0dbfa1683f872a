// Package input turns raw button events from any backend (GPIO polling on the
// device, key events in the simulators) into one immutable snapshot per tick.
// Edge detection happens here once, so every scene sees the same semantics no
// matter whether the backend is polled or event driven.
package input

import (
	"fmt"
	"strings"
)

// Button identifies one of the device buttons. The set is closed.
type Button uint8

const (
	Up Button = iota
	Down
	Left
	Right
	A
	B

	// NumButtons is the number of buttons on the device.
	NumButtons = 6
)

// Buttons lists every button in index order.
var Buttons = [NumButtons]Button{Up, Down, Left, Right, A, B}

// Valid reports whether b names a real button.
func (b Button) Valid() bool {
	return b < NumButtons
}

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case A:
		return "A"
	case B:
		return "B"
	default:
		return fmt.Sprintf("Button(%d)", uint8(b))
	}
}

// ParseButton parses a button name case-insensitively ("up", "A", ...).
func ParseButton(name string) (Button, error) {
	for _, b := range Buttons {
		if strings.EqualFold(name, b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("input: unknown button %q", name)
}

// Polarity is the direction of a raw button transition.
type Polarity uint8

const (
	Press Polarity = iota
	Release
)

// String returns "press" or "release".
func (p Polarity) String() string {
	if p == Press {
		return "press"
	}
	return "release"
}

// Event is one raw button occurrence reported by a backend.
type Event struct {
	Button   Button
	Polarity Polarity
}

// Pressed creates a press event for b.
func Pressed(b Button) Event {
	return Event{Button: b, Polarity: Press}
}

// Released creates a release event for b.
func Released(b Button) Event {
	return Event{Button: b, Polarity: Release}
}

// String formats the event for logs, e.g. "A press".
func (e Event) String() string {
	return e.Button.String() + " " + e.Polarity.String()
}
