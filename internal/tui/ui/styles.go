package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/chronos/internal/entry"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryDate     lipgloss.Style
	EntryRating   lipgloss.Style
	EntryText     lipgloss.Style

	// Rating editor
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	RatingEmpty  lipgloss.Style
	RatingUnset  lipgloss.Style

	// Ratings colors each rating value, see Rating
	Ratings [entry.MaxRating + 1]lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors
type palette struct {
	primary   lipgloss.TerminalColor
	secondary lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	muted     lipgloss.TerminalColor
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	errColor  lipgloss.TerminalColor
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
	selection lipgloss.TerminalColor
	ratings   RatingScale
}

// ansiRatings is the rating scale used without a theme
type ansiRatings struct{}

func (ansiRatings) Red() lipgloss.TerminalColor          { return lipgloss.Color("160") }
func (ansiRatings) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("202") }
func (ansiRatings) Yellow() lipgloss.TerminalColor       { return lipgloss.Color("214") }
func (ansiRatings) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("226") }
func (ansiRatings) Green() lipgloss.TerminalColor        { return lipgloss.Color("112") }
func (ansiRatings) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("82") }

// DefaultStyles returns the styles used without a theme registry
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),  // Purple
		secondary: lipgloss.Color("39"),  // Cyan
		accent:    lipgloss.Color("212"), // Pink
		muted:     lipgloss.Color("240"), // Gray
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		errColor:  lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		selection: lipgloss.Color("237"),
		ratings:   scaleFrom(ansiRatings{}),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// This maps theme colors to semantic UI elements:
// - Primary: Purple (tabs, titles, focused fields)
// - Secondary: Cyan (dates, keys)
// - Accent: BrightPurple (rating columns in lists)
// - Muted: BrightBlack (inactive elements, labels, empty rating cells)
// - Success/Warning/Error: Green/Yellow/Red
// - Ratings: Red through Yellow to BrightGreen
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		errColor:  r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		selection: r.BrightBlack(),
		ratings:   scaleFrom(r),
	})
}

func newStyles(p palette) Styles {
	var ratings [entry.MaxRating + 1]lipgloss.Style
	for v, c := range p.ratings {
		ratings[v] = lipgloss.NewStyle().Foreground(c)
	}

	return Styles{
		Ratings: ratings,


		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		EntrySelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryDate: lipgloss.NewStyle().
			Foreground(p.secondary).
			Width(12),
		EntryRating: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(8),
		EntryText: lipgloss.NewStyle().
			Foreground(p.fg),

		FieldLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(10),
		FieldFocused: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Width(10),
		RatingEmpty: lipgloss.NewStyle().
			Foreground(p.muted),
		RatingUnset: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}

// Rating returns the style for rating v, clamped to the valid range
func (s Styles) Rating(v int) lipgloss.Style {
	return s.Ratings[min(max(v, entry.MinRating), entry.MaxRating)]
}
