package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/platform/keys"
)

// keyMap holds the bindings shown in the help line. Button keys come from
// the configured keymap; the rest are simulator controls.
type keyMap struct {
	Up, Down, Left, Right key.Binding
	A, B                  key.Binding
	Quit                  key.Binding
	Screenshot            key.Binding
	Panel                 key.Binding
}

func newKeyMap(km *keys.Keymap) keyMap {
	button := func(b input.Button) key.Binding {
		bound := km.Keys(b)
		return key.NewBinding(
			key.WithKeys(bound...),
			key.WithHelp(strings.Join(bound, "/"), strings.ToLower(b.String())),
		)
	}
	quit := km.QuitKeys()

	return keyMap{
		Up:    button(input.Up),
		Down:  button(input.Down),
		Left:  button(input.Left),
		Right: button(input.Right),
		A:     button(input.A),
		B:     button(input.B),
		Quit: key.NewBinding(
			key.WithKeys(quit...),
			key.WithHelp(strings.Join(quit, "/"), "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Panel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "panel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.A, k.B, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.A, k.B},
		{k.Screenshot, k.Panel, k.Quit},
	}
}
