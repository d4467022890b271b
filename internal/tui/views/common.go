package views

import (
	"fmt"
	"strings"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected entry index (-1 for none)
}

// RenderEntryList renders entries as aligned rows: date, both ratings and
// the first line of text
func RenderEntryList(entries []entry.Entry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	textWidth := opts.Width - 12 - 8 - 8 - 4
	if textWidth < 20 {
		textWidth = 20
	}

	var b strings.Builder
	for i, e := range entries {
		row := styles.EntryDate.Render(e.Date) +
			styles.EntryRating.Render("P "+formatRating(e.Physical)) +
			styles.EntryRating.Render("M "+formatRating(e.Mental)) +
			styles.EntryText.Render(truncate(e.Text, textWidth))

		if i == opts.Cursor {
			b.WriteString(styles.EntrySelected.Render("▸ " + row))
		} else {
			b.WriteString(styles.EntryNormal.Render("  " + row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRatingBar draws a rating as ten cells. A nil rating has not been
// chosen yet and is shown as such.
func renderRatingBar(styles ui.Styles, r *int) string {
	if r == nil {
		return styles.RatingEmpty.Render(strings.Repeat("·", entry.MaxRating)) + " " +
			styles.RatingUnset.Render("not set")
	}
	v := min(max(*r, entry.MinRating), entry.MaxRating)
	return styles.Rating(v).Render(strings.Repeat("●", v)) +
		styles.RatingEmpty.Render(strings.Repeat("·", entry.MaxRating-v)) +
		" " + styles.StatValue.Render(fmt.Sprintf("%d/%d", v, entry.MaxRating))
}

// formatRating renders a finalized rating; 0 means unrated
func formatRating(v int) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", v, entry.MaxRating)
}

// formatAverage renders an average rating, or "-" when nothing was rated
func formatAverage(avg float64, rated int) string {
	if rated == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d rated)", avg, rated)
}

// truncate folds text onto one line and cuts it to limit runes
func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// pluralize returns singular or plural form based on count
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") && len(word) > 1 && !strings.ContainsRune("aeiou", rune(word[len(word)-2])) {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}
