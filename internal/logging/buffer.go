// Package logging builds the charmbracelet logger used by every binary and
// keeps the most recent records in a small ring buffer, so scenes can draw
// the log on the device screen.
package logging

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// Capacity is the number of entries the ring buffer keeps.
	Capacity = 32
	// LineMaxLen bounds a stored message, terminator included.
	LineMaxLen = 80
)

// Level orders captured entries. Notice sits above Error for messages that
// must always reach the screen.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNotice
)

// Prefix returns the one-letter tag drawn in front of an entry.
func (l Level) Prefix() string {
	switch l {
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarn:
		return "W"
	case LevelError:
		return "E"
	case LevelNotice:
		return "N"
	default:
		return "?"
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelNotice:
		return "notice"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

// ParseLevel parses a level name as written in config files.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "fatal":
		return LevelError, nil
	case "notice":
		return LevelNotice, nil
	}
	return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// Entry is one captured log line.
type Entry struct {
	Level   Level
	Message string
}

// String formats the entry the way the device draws it.
func (e Entry) String() string {
	return "[" + e.Level.Prefix() + "] " + e.Message
}

// NewEntry creates an entry, truncating msg to fit a line.
func NewEntry(level Level, msg string) Entry {
	return Entry{Level: level, Message: truncate(msg, LineMaxLen-1)}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// Buffer is a fixed-size ring of recent entries. Safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	entries  [Capacity]Entry
	start    int
	count    int
	minLevel Level
	enabled  bool
}

// NewBuffer creates an enabled buffer capturing Info and above.
func NewBuffer() *Buffer {
	return &Buffer{minLevel: LevelInfo, enabled: true}
}

// SetMinLevel sets the lowest level that is kept.
func (b *Buffer) SetMinLevel(level Level) {
	b.mu.Lock()
	b.minLevel = level
	b.mu.Unlock()
}

// MinLevel returns the lowest level that is kept.
func (b *Buffer) MinLevel() Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.minLevel
}

// SetEnabled switches capture on or off. Stored entries are kept.
func (b *Buffer) SetEnabled(enabled bool) {
	b.mu.Lock()
	b.enabled = enabled
	b.mu.Unlock()
}

// Enabled reports whether capture is on.
func (b *Buffer) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Push stores a message, dropping the oldest entry when full.
func (b *Buffer) Push(level Level, msg string) {
	b.PushEntry(NewEntry(level, msg))
}

// PushEntry stores an already built entry.
func (b *Buffer) PushEntry(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.enabled || e.Level < b.minLevel {
		return
	}
	e.Message = truncate(e.Message, LineMaxLen-1)
	if b.count == Capacity {
		b.entries[b.start] = e
		b.start = (b.start + 1) % Capacity
		return
	}
	b.entries[(b.start+b.count)%Capacity] = e
	b.count++
}

// Len returns the number of stored entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Clear drops every entry.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.start, b.count = 0, 0
	b.mu.Unlock()
}

// Entries returns a copy of all entries, oldest first.
func (b *Buffer) Entries() []Entry {
	return b.Recent(Capacity)
}

// Recent returns up to n of the newest entries, oldest first.
func (b *Buffer) Recent(n int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.count {
		n = b.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]Entry, n)
	first := b.count - n
	for i := range out {
		out[i] = b.entries[(b.start+first+i)%Capacity]
	}
	return out
}
