// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings shared by the workflow screens.
type KeyMap struct {
	// Quit abandons the current screen.
	Quit key.Binding

	// Up navigates up in the task menu.
	Up key.Binding

	// Down navigates down in the task menu.
	Down key.Binding

	// Select confirms a choice or dismisses a dialog.
	Select key.Binding

	// Cancel backs out of a prompt without choosing.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// MenuHelp returns the keybindings shown under the task menu.
func (k *KeyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// InputHelp returns the keybindings shown under a text prompt.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Select, k.Cancel}
}

// HelpLine renders bindings as "[key] description" pairs.
func HelpLine(bindings []key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += "[" + h.Key + "] " + h.Desc
	}
	return out
}
