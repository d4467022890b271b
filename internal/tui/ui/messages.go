package ui

import "github.com/xolan/chronos/internal/service"

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// SessionEventMsg carries one event from the editing session.
type SessionEventMsg struct {
	Event service.Event
}

// JournalChangedMsg tells the read-only views to reload: an entry was
// finalized, deleted or restored.
type JournalChangedMsg struct{}
