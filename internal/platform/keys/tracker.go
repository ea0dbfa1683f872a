package keys

import (
	"slices"

	"github.com/vovakirdan/tama/internal/input"
)

// Tracker converts key transitions into button events. A button is down
// while at least one of its keys is down, so pressing W and Up together and
// releasing only one of them keeps Up held.
type Tracker struct {
	keymap  *Keymap
	down    map[string]bool
	held    [input.NumButtons]int
	pending []input.Event
}

// NewTracker creates a tracker for km.
func NewTracker(km *Keymap) *Tracker {
	return &Tracker{
		keymap: km,
		down:   make(map[string]bool),
	}
}

// Keymap returns the tracker's keymap.
func (t *Tracker) Keymap() *Keymap { return t.keymap }

// KeyDown records a key press and reports whether the key is bound.
// Repeated presses of a held key are ignored.
func (t *Tracker) KeyDown(key string) bool {
	key = Normalize(key)
	b, ok := t.keymap.buttons[key]
	if !ok {
		return false
	}
	if t.down[key] {
		return true
	}
	t.down[key] = true
	t.held[b]++
	if t.held[b] == 1 {
		t.pending = append(t.pending, input.Pressed(b))
	}
	return true
}

// KeyUp records a key release and reports whether the key is bound.
func (t *Tracker) KeyUp(key string) bool {
	key = Normalize(key)
	b, ok := t.keymap.buttons[key]
	if !ok {
		return false
	}
	if !t.down[key] {
		return true
	}
	delete(t.down, key)
	t.held[b]--
	if t.held[b] == 0 {
		t.pending = append(t.pending, input.Released(b))
	}
	return true
}

// IsKeyDown reports whether key is currently held.
func (t *Tracker) IsKeyDown(key string) bool {
	return t.down[Normalize(key)]
}

// HeldKeys returns the held keys, sorted.
func (t *Tracker) HeldKeys() []string {
	out := make([]string, 0, len(t.down))
	for key := range t.down {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// Drain returns the events accumulated since the last call.
func (t *Tracker) Drain() []input.Event {
	if len(t.pending) == 0 {
		return nil
	}
	out := t.pending
	t.pending = nil
	return out
}

// ReleaseAll lets go of every held key, queuing the releases in button order.
func (t *Tracker) ReleaseAll() {
	for _, key := range t.HeldKeys() {
		delete(t.down, key)
	}
	for _, b := range input.Buttons {
		if t.held[b] > 0 {
			t.held[b] = 0
			t.pending = append(t.pending, input.Released(b))
		}
	}
}
