package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Left  key.Binding
	Right key.Binding
	Enter key.Binding

	// Search
	Focus      key.Binding
	Complete   key.Binding
	MoreK      key.Binding
	FewerK     key.Binding
	Repeat     key.Binding
	OpenPoster key.Binding

	// Actions
	Quit      key.Binding
	ForceQuit key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "more like this"),
		),

		// Search
		Focus: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		MoreK: key.NewBinding(
			key.WithKeys("]", "+"),
			key.WithHelp("]", "more"),
		),
		FewerK: key.NewBinding(
			key.WithKeys("[", "-"),
			key.WithHelp("[", "fewer"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "search again"),
		),
		OpenPoster: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open poster"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Left, k.Right, k.Enter, k.FewerK, k.MoreK, k.OpenPoster, k.Quit}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
