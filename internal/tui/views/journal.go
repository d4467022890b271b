package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/service"
	"github.com/xolan/chronos/internal/tui/ui"
)

// journalField is the focused row of the journal view
type journalField int

const (
	fieldPhysical journalField = iota
	fieldMental
	fieldText
)

// statusLevel picks the style of the status line
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusError
)

// JournalModel edits today's draft through a Session
type JournalModel struct {
	session *service.Session
	styles  ui.Styles
	keys    ui.KeyMap

	// UI state
	width  int
	height int
	state  service.State
	focus  journalField
	text   textarea.Model

	editing         bool
	confirmFinalize bool

	status      string
	statusLevel statusLevel
}

// NewJournalModel creates a journal view over a mounted session
func NewJournalModel(session *service.Session, styles ui.Styles, keys ui.KeyMap) JournalModel {
	text := textarea.New()
	text.Placeholder = "How was today?"
	text.ShowLineNumbers = false
	text.CharLimit = 0
	text.MaxHeight = 0
	text.SetWidth(60)
	text.SetHeight(6)

	m := JournalModel{
		session: session,
		styles:  styles,
		keys:    keys,
		text:    text,
	}
	m.setState(session.State())
	return m
}

// stateLoadedMsg carries a fresh snapshot of the session
type stateLoadedMsg struct {
	state service.State
}

// Init implements tea.Model
func (m JournalModel) Init() tea.Cmd {
	return m.loadState()
}

// Update implements tea.Model
func (m JournalModel) Update(msg tea.Msg) (JournalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		m.setState(msg.state)
		return m, nil

	case ui.SessionEventMsg:
		m.applyEvent(msg.Event)
		return m, m.loadState()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditing(msg)
		}
		if m.confirmFinalize {
			return m.handleConfirm(msg)
		}
		return m.handleNormal(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m JournalModel) handleNormal(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.focus > fieldPhysical {
			m.focus--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus < fieldText {
			m.focus++
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.adjustRating(-1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.adjustRating(1)
		return m, nil

	case key.Matches(msg, m.keys.ClearRating):
		if kind, ok := m.focusedKind(); ok {
			if err := m.session.ClearRating(kind); err != nil {
				m.setStatus(statusError, fmt.Sprintf("Could not clear %s rating: %v", kind, err))
			}
			m.state = m.session.State()
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select) && m.focus == fieldText:
		m.focus = fieldText
		m.editing = true
		cmd := m.text.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Finalize):
		m.confirmFinalize = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadState()
	}

	return m, nil
}

func (m JournalModel) handleEditing(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.editing = false
		m.text.Blur()
		m.session.Flush()
		m.state = m.session.State()
		return m, nil
	}

	before := m.text.Value()
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	if after := m.text.Value(); after != before {
		if err := m.session.SetText(after); err != nil {
			m.setStatus(statusError, fmt.Sprintf("Could not update text: %v", err))
		}
		m.state = m.session.State()
	}
	return m, cmd
}

func (m JournalModel) handleConfirm(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	m.confirmFinalize = false
	if !key.Matches(msg, m.keys.Confirm) {
		m.setStatus(statusInfo, "Finalize cancelled")
		return m, nil
	}

	result := m.session.FinalizeNow()
	m.describeFinalize(result.Date, result.Outcome)
	m.setState(m.session.State())
	return m, nil
}

// adjustRating moves the focused rating by delta. An unset rating starts
// from 0, so lowering it records an explicit 0.
func (m *JournalModel) adjustRating(delta int) {
	kind, ok := m.focusedKind()
	if !ok {
		return
	}

	current := m.state.Physical
	if kind == entry.Mental {
		current = m.state.Mental
	}

	next := delta
	if current != nil {
		next = *current + delta
	}
	next = min(max(next, entry.MinRating), entry.MaxRating)
	if current != nil && *current == next {
		return
	}

	if err := m.session.SetRating(kind, next); err != nil {
		m.setStatus(statusError, fmt.Sprintf("Could not set %s rating: %v", kind, err))
		return
	}
	m.state = m.session.State()
}

func (m JournalModel) focusedKind() (entry.Kind, bool) {
	switch m.focus {
	case fieldPhysical:
		return entry.Physical, true
	case fieldMental:
		return entry.Mental, true
	}
	return "", false
}

// applyEvent turns a session event into a status line
func (m *JournalModel) applyEvent(ev service.Event) {
	switch ev.Kind {
	case service.EventDraftSaved:
		m.setStatus(statusSuccess, "Draft saved at "+ev.At.Format("15:04:05"))
	case service.EventDraftCleared:
		m.setStatus(statusInfo, "Draft cleared")
	case service.EventFinalized:
		m.describeFinalize(ev.Date, ev.Outcome)
	case service.EventRollover:
		m.editing = false
		m.confirmFinalize = false
		m.text.Blur()
		m.setStatus(statusInfo, "A new day: "+formatLongDate(ev.Date))
	case service.EventSaveFailed:
		m.setStatus(statusError, fmt.Sprintf("Could not save the draft for %s; your changes are kept", ev.Date))
	}
}

func (m *JournalModel) describeFinalize(date string, outcome service.FinalizeOutcome) {
	switch outcome {
	case service.FinalizeWritten:
		m.setStatus(statusSuccess, "Finalized "+date)
	case service.FinalizeDiscarded:
		m.setStatus(statusInfo, "Discarded empty draft for "+date)
	default:
		m.setStatus(statusInfo, "Nothing to finalize for "+date)
	}
}

func (m *JournalModel) setStatus(level statusLevel, text string) {
	m.statusLevel = level
	m.status = text
}

// setState replaces the snapshot; the text box follows it unless the user is typing
func (m *JournalModel) setState(s service.State) {
	m.state = s
	if !m.editing && m.text.Value() != s.Text {
		m.text.SetValue(s.Text)
	}
}

// IsInputMode reports whether the view is capturing keys
func (m JournalModel) IsInputMode() bool {
	return m.editing || m.confirmFinalize
}

// State returns the last snapshot shown
func (m JournalModel) State() service.State {
	return m.state
}

// View implements tea.Model
func (m JournalModel) View() string {
	var b strings.Builder

	title := "Today"
	if m.state.Date != "" {
		title += "  " + formatLongDate(m.state.Date)
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	if !m.state.Mounted {
		b.WriteString(m.styles.Warning.Render("No active day"))
		return b.String()
	}

	b.WriteString(m.renderField(fieldPhysical, "Physical", renderRatingBar(m.styles, m.state.Physical)))
	b.WriteString(m.renderField(fieldMental, "Mental", renderRatingBar(m.styles, m.state.Mental)))

	textLabel := "Text"
	if m.state.TextPending {
		textLabel += " " + m.styles.StatusHelp.Render("(unsaved)")
	}
	b.WriteString(m.renderField(fieldText, textLabel, ""))

	box := m.styles.Input
	if m.editing {
		box = m.styles.InputFocused
	}
	b.WriteString(box.Render(m.text.View()))
	b.WriteString("\n\n")

	switch {
	case m.confirmFinalize:
		b.WriteString(m.styles.Warning.Render("Finalize today now? [y/N]"))
	case m.status != "":
		b.WriteString(m.renderStatus())
	case !entry.HasContent(m.state.Physical, m.state.Mental, m.state.Text):
		b.WriteString(m.styles.StatusHelp.Render("Nothing recorded yet"))
	}

	return b.String()
}

func (m JournalModel) renderField(f journalField, label, value string) string {
	labelStyle := m.styles.FieldLabel
	prefix := "  "
	if m.focus == f {
		labelStyle = m.styles.FieldFocused
		prefix = "▸ "
	}
	line := prefix + labelStyle.Render(label)
	if value != "" {
		line += " " + value
	}
	return line + "\n"
}

func (m JournalModel) renderStatus() string {
	switch m.statusLevel {
	case statusSuccess:
		return m.styles.Success.Render(m.status)
	case statusError:
		return m.styles.Error.Render(m.status)
	}
	return m.styles.StatusHelp.Render(m.status)
}

// SetSize sets the view dimensions
func (m *JournalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.text.SetWidth(max(20, width-10))
	m.text.SetHeight(max(3, height-12))
}

// loadState creates a command that snapshots the session
func (m JournalModel) loadState() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return stateLoadedMsg{state: session.State()}
	}
}

// formatLongDate renders a YYYY-MM-DD key as "Sun, Oct 18, 2026"
func formatLongDate(date string) string {
	t, err := time.Parse(entry.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}

// IsConfirming reports whether the finalize prompt is open
func (m JournalModel) IsConfirming() bool {
	return m.confirmFinalize
}
