package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/service"
	"github.com/xolan/chronos/internal/tui/ui"
)

// historyLevel is how deep the history browser is
type historyLevel int

const (
	levelYears historyLevel = iota
	levelMonths
	levelDays
	levelDetail
)

// HistoryModel browses finalized entries by year, month and day
type HistoryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	level  historyLevel
	cursor int

	years  []int
	months []time.Month
	days   []entry.Entry

	year     int
	month    time.Month
	selected *entry.Entry
	detail   viewport.Model

	confirmDelete bool
	status        string
	err           error
}

// NewHistoryModel creates a new history view model
func NewHistoryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) HistoryModel {
	return HistoryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		detail:   viewport.New(60, 10),
	}
}

// historyLoadedMsg is sent when the lists for the current level are loaded
type historyLoadedMsg struct {
	years  []int
	months []time.Month
	days   []entry.Entry
}

// entryDeletedMsg is sent after a delete from the detail view
type entryDeletedMsg struct {
	date string
	err  error
}

// Init implements tea.Model
func (m HistoryModel) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDelete {
			return m.handleConfirm(msg)
		}
		return m.handleKey(msg)

	case historyLoadedMsg:
		m.years = msg.years
		m.months = msg.months
		m.days = msg.days
		m.settle()
		return m, nil

	case entryDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "Deleted entry for " + msg.date
		m.selected = nil
		m.level = levelDays
		return m, tea.Batch(m.load(), journalChanged)

	case ui.JournalChangedMsg:
		return m, m.load()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		if m.selected != nil {
			m.detail.SetContent(m.renderDetail(*m.selected))
		}
		return m, nil
	}

	if m.level == levelDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m HistoryModel) handleKey(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.status = ""
		m.goUp()
		return m, m.load()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()

	case key.Matches(msg, m.keys.Delete) && (m.level == levelDetail || m.level == levelDays && len(m.days) > 0):
		if m.level == levelDays {
			e := m.days[m.cursor]
			m.selected = &e
		}
		m.confirmDelete = true
		return m, nil
	}

	if m.level == levelDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.status = ""
		cmd := m.descend()
		return m, cmd
	}
	return m, nil
}

func (m HistoryModel) handleConfirm(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	m.confirmDelete = false
	if !key.Matches(msg, m.keys.Confirm) || m.selected == nil {
		m.status = "Deletion cancelled"
		if m.level == levelDays {
			m.selected = nil
		}
		return m, nil
	}

	journal := m.services.Journal
	date := m.selected.Date
	return m, func() tea.Msg {
		_, err := journal.Delete(date)
		return entryDeletedMsg{date: date, err: err}
	}
}

// descend opens the item under the cursor
func (m *HistoryModel) descend() tea.Cmd {
	switch m.level {
	case levelYears:
		if len(m.years) == 0 {
			return nil
		}
		m.year = m.years[m.cursor]
		m.level = levelMonths
	case levelMonths:
		if len(m.months) == 0 {
			return nil
		}
		m.month = m.months[m.cursor]
		m.level = levelDays
	case levelDays:
		if len(m.days) == 0 {
			return nil
		}
		e := m.days[m.cursor]
		m.selected = &e
		m.level = levelDetail
		m.detail.SetContent(m.renderDetail(e))
		m.detail.GotoTop()
		return nil
	default:
		return nil
	}
	m.cursor = 0
	return m.load()
}

func (m *HistoryModel) goUp() {
	switch m.level {
	case levelDetail:
		m.level = levelDays
		m.selected = nil
		return
	case levelDays:
		m.level = levelMonths
		m.month = 0
	case levelMonths:
		m.level = levelYears
		m.year = 0
	}
	m.cursor = 0
}

// settle climbs out of levels that became empty and clamps the cursor
func (m *HistoryModel) settle() {
	if m.level == levelDays && len(m.days) == 0 && m.month != 0 {
		m.level = levelMonths
		m.month = 0
	}
	if m.level == levelMonths && len(m.months) == 0 && m.year != 0 {
		m.level = levelYears
		m.year = 0
	}
	if n := m.itemCount(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m HistoryModel) itemCount() int {
	switch m.level {
	case levelYears:
		return len(m.years)
	case levelMonths:
		return len(m.months)
	case levelDays:
		return len(m.days)
	}
	return 0
}

// View implements tea.Model
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(m.title()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.level {
	case levelYears:
		if len(m.years) == 0 {
			b.WriteString(m.styles.StatusHelp.Render("No entries yet"))
			break
		}
		for i, y := range m.years {
			b.WriteString(m.renderItem(i, fmt.Sprintf("%d", y)))
		}
	case levelMonths:
		for i, mo := range m.months {
			n := len(m.services.Journal.Days(m.year, mo))
			b.WriteString(m.renderItem(i, fmt.Sprintf("%-10s %d %s", mo, n, pluralize("entry", n))))
		}
	case levelDays:
		b.WriteString(RenderEntryList(m.days, m.styles, EntryRenderOptions{Width: m.width, Cursor: m.cursor}))
	case levelDetail:
		b.WriteString(m.detail.View())
	}

	b.WriteString("\n")
	switch {
	case m.confirmDelete && m.selected != nil:
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Delete the entry for %s? [y/N]", m.selected.Date)))
	case m.status != "":
		b.WriteString(m.styles.StatusHelp.Render(m.status))
	}

	return b.String()
}

func (m HistoryModel) title() string {
	switch m.level {
	case levelMonths:
		return fmt.Sprintf("History  %d", m.year)
	case levelDays:
		return fmt.Sprintf("History  %s %d", m.month, m.year)
	case levelDetail:
		if m.selected != nil {
			return "History  " + formatLongDate(m.selected.Date)
		}
	}
	return "History"
}

func (m HistoryModel) renderItem(i int, label string) string {
	if i == m.cursor {
		return m.styles.EntrySelected.Render("▸ "+label) + "\n"
	}
	return m.styles.EntryNormal.Render("  "+label) + "\n"
}

func (m HistoryModel) renderDetail(e entry.Entry) string {
	var b strings.Builder
	b.WriteString(m.styles.FieldLabel.Render("Physical") + " " + renderRatingBar(m.styles, entryRating(e.Physical)) + "\n")
	b.WriteString(m.styles.FieldLabel.Render("Mental") + " " + renderRatingBar(m.styles, entryRating(e.Mental)) + "\n")
	if !e.UpdatedAt.IsZero() {
		b.WriteString(m.styles.FieldLabel.Render("Updated") + " " + m.styles.StatusHelp.Render(e.UpdatedAt.Format("2006-01-02 15:04")) + "\n")
	}
	b.WriteString("\n")
	if strings.TrimSpace(e.Text) == "" {
		b.WriteString(m.styles.StatusHelp.Render("(no text)"))
	} else {
		b.WriteString(m.styles.EntryText.Render(e.Text))
	}
	return b.String()
}

// entryRating maps a finalized rating to the editor form: 0 is unrated
func entryRating(v int) *int {
	if v <= 0 {
		return nil
	}
	return entry.Rating(v)
}

// IsInputMode reports whether the view is capturing keys
func (m HistoryModel) IsInputMode() bool {
	return m.confirmDelete
}

// SetSize sets the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.detail.Width = max(20, width-6)
	m.detail.Height = max(3, height-6)
}

// load creates a command that reads the lists for the current level
func (m HistoryModel) load() tea.Cmd {
	journal := m.services.Journal
	year, month := m.year, m.month
	return func() tea.Msg {
		msg := historyLoadedMsg{years: journal.Years()}
		if year != 0 {
			msg.months = journal.Months(year)
		}
		if month != 0 {
			msg.days = journal.Days(year, month)
		}
		return msg
	}
}

func journalChanged() tea.Msg {
	return ui.JournalChangedMsg{}
}
