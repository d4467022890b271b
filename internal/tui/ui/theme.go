package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/chronos/internal/config"
	"github.com/xolan/chronos/internal/entry"
)

// DefaultTheme is the theme used when the configured one is empty or unknown
const DefaultTheme = config.DefaultTheme

// RatingScale holds one color per rating value, 0 through 10
type RatingScale [entry.MaxRating + 1]lipgloss.TerminalColor

// ratingColors is the part of a tint the rating scale is drawn from. Both a
// single tint and the registry (for its current tint) provide it.
type ratingColors interface {
	Red() lipgloss.TerminalColor
	BrightRed() lipgloss.TerminalColor
	Yellow() lipgloss.TerminalColor
	BrightYellow() lipgloss.TerminalColor
	Green() lipgloss.TerminalColor
	BrightGreen() lipgloss.TerminalColor
}

// ratingBand groups ratings into six bands: 0-2, 3, 4-5, 6, 7-8, 9-10.
func ratingBand(v int) int {
	switch {
	case v <= 2:
		return 0
	case v == 3:
		return 1
	case v <= 5:
		return 2
	case v == 6:
		return 3
	case v <= 8:
		return 4
	default:
		return 5
	}
}

// scaleFrom spreads the red, yellow and green of c over the ratings, so low
// days read red and good days green in every theme.
func scaleFrom(c ratingColors) RatingScale {
	bands := [6]lipgloss.TerminalColor{
		c.Red(), c.BrightRed(), c.Yellow(), c.BrightYellow(), c.Green(), c.BrightGreen(),
	}
	var s RatingScale
	for v := range s {
		s[v] = bands[ratingBand(v)]
	}
	return s
}

// ThemeProvider resolves theme names against the bubbletint registry and
// builds the styles, rating scale included, for the current theme.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider selects name, falling back to DefaultTheme when it is empty
// or unknown.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()
	fallback := tints[0]
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	tp.SetTheme(name)
	return tp
}

func normalizeTheme(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SetTheme switches to name. It reports false, keeping the current theme, when
// name is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(normalizeTheme(name))
}

// CurrentName returns the id of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// HasTheme reports whether name is a known theme id.
func (tp *ThemeProvider) HasTheme(name string) bool {
	_, ok := tp.registry.GetTint(normalizeTheme(name))
	return ok
}

// AvailableThemes returns the theme ids, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns the styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}

// RatingScale returns the rating colors of the current theme.
func (tp *ThemeProvider) RatingScale() RatingScale {
	return scaleFrom(tp.registry)
}

// Preview renders one dot per rating, 0 to 10, in the colors of theme name
// without switching to it. Unknown names render nothing.
func (tp *ThemeProvider) Preview(name string) string {
	t, ok := tp.registry.GetTint(normalizeTheme(name))
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, c := range scaleFrom(t) {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("●"))
	}
	return b.String()
}
