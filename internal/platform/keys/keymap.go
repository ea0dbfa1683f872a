// Package keys turns backend key names into button events. It is the only
// place that knows which physical key means which button; every simulator
// normalizes its own key codes to the names used in the config keymap
// ("w", "up", "space", "esc", "ctrl+c", ...).
package keys

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/input"
)

// Keymap maps key names to buttons. Several keys may share a button.
type Keymap struct {
	buttons map[string]input.Button
	keys    [input.NumButtons][]string
	quit    map[string]bool
}

// NewKeymap builds a keymap from the input section of the config.
func NewKeymap(cfg config.InputConfig) (*Keymap, error) {
	km := &Keymap{
		buttons: make(map[string]input.Button),
		quit:    make(map[string]bool),
	}

	names := make([]string, 0, len(cfg.Keymap))
	for name := range cfg.Keymap {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		b, err := input.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		for _, key := range cfg.Keymap[name] {
			key = Normalize(key)
			if key == "" {
				continue
			}
			if prev, ok := km.buttons[key]; ok && prev != b {
				return nil, fmt.Errorf("keys: key %q bound to both %s and %s", key, prev, b)
			}
			km.buttons[key] = b
			if !slices.Contains(km.keys[b], key) {
				km.keys[b] = append(km.keys[b], key)
			}
		}
	}

	for _, key := range cfg.Quit {
		key = Normalize(key)
		if _, ok := km.buttons[key]; ok {
			return nil, fmt.Errorf("keys: quit key %q is also bound to a button", key)
		}
		km.quit[key] = true
	}

	return km, nil
}

// DefaultKeymap returns the keymap of the built-in configuration.
func DefaultKeymap() *Keymap {
	km, err := NewKeymap(config.Default().Input)
	if err != nil {
		panic(err)
	}
	return km
}

// Normalize lowercases a key name and maps aliases to their canonical form.
func Normalize(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	}
	return key
}

// Lookup returns the button bound to key.
func (k *Keymap) Lookup(key string) (input.Button, bool) {
	b, ok := k.buttons[Normalize(key)]
	return b, ok
}

// IsQuit reports whether key asks the simulator to exit.
func (k *Keymap) IsQuit(key string) bool {
	return k.quit[Normalize(key)]
}

// Keys returns the keys bound to b in config order.
func (k *Keymap) Keys(b input.Button) []string {
	if !b.Valid() {
		return nil
	}
	return slices.Clone(k.keys[b])
}

// QuitKeys returns the quit keys, sorted.
func (k *Keymap) QuitKeys() []string {
	out := make([]string, 0, len(k.quit))
	for key := range k.quit {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}
