package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the schedule viewer. Digit keys
// 1-9 (apply the nth tag of the selected talk) are matched directly in
// Update because they carry an argument rather than naming an action.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding

	// Day selection.
	PrevDay key.Binding
	NextDay key.Binding

	// Filters.
	ClearFilters key.Binding

	// Fetch retry (only active in the failed state).
	Retry key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous day"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next day"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filters"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry fetch"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
