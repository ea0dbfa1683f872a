package keys

import (
	"github.com/vovakirdan/tama/internal/input"
)

// HoldTracker serves backends that report presses but no releases, such as
// terminals. A pressed key counts as held for a number of ticks; every
// repeat of the key restarts the countdown, and the release is synthesized
// when it runs out.
type HoldTracker struct {
	tracker *Tracker
	ticks   int
	left    map[string]int
}

// NewHoldTracker creates a hold tracker. releaseAfter is the number of ticks
// a key stays down without a repeat; values below one mean one tick.
func NewHoldTracker(km *Keymap, releaseAfter int) *HoldTracker {
	return &HoldTracker{
		tracker: NewTracker(km),
		ticks:   max(releaseAfter, 1),
		left:    make(map[string]int),
	}
}

// Keymap returns the underlying keymap.
func (h *HoldTracker) Keymap() *Keymap { return h.tracker.keymap }

// Press records a key press and reports whether the key is bound.
func (h *HoldTracker) Press(key string) bool {
	if !h.tracker.KeyDown(key) {
		return false
	}
	h.left[Normalize(key)] = h.ticks
	return true
}

// Tick returns the events for the coming engine tick and ages held keys.
// Releases of keys that expire now are returned by the next call, so a
// press and its synthesized release never share a tick.
func (h *HoldTracker) Tick() []input.Event {
	events := h.tracker.Drain()
	for _, key := range h.tracker.HeldKeys() {
		h.left[key]--
		if h.left[key] <= 0 {
			delete(h.left, key)
			h.tracker.KeyUp(key)
		}
	}
	return events
}

// HeldKeys returns the keys currently considered down.
func (h *HoldTracker) HeldKeys() []string { return h.tracker.HeldKeys() }

// ReleaseAll drops every held key; the releases come with the next Tick.
func (h *HoldTracker) ReleaseAll() {
	clear(h.left)
	h.tracker.ReleaseAll()
}
