package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings the browser reacts to outside of its
// embedded components.
type KeyMap struct {
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
	Abort  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort"),
		),
	}
}

// HelpText returns a formatted help string for navigation.
func (k KeyMap) HelpText() string {
	return "↑/↓ navigate • enter select • q quit"
}

// ResultHelpText returns help text while a result is shown.
func (k KeyMap) ResultHelpText() string {
	return "↑/↓ scroll • enter/esc back to catalog • q quit"
}
