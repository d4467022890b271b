package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// Actions
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	// Journal
	Edit        key.Binding
	ClearRating key.Binding
	Finalize    key.Binding
	Confirm     key.Binding
	Delete      key.Binding

	// Stats ranges
	AllTime  key.Binding
	Last30   key.Binding
	LastYear key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation (vim + arrows)
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/h", "lower"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/l", "raise"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "history"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "stats"),
		),
		Tab4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "config"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Edit: key.NewBinding(
			key.WithKeys("e", "i"),
			key.WithHelp("e", "write"),
		),
		ClearRating: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "clear rating"),
		),
		Finalize: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "finalize now"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),

		AllTime: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all time"),
		),
		Last30: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "last 30 days"),
		),
		LastYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "last year"),
		),
	}
}
