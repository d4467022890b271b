// Package tui provides the Terminal User Interface for the chronos journal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/chronos/internal/service"
	"github.com/xolan/chronos/internal/tui/ui"
	"github.com/xolan/chronos/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabJournal Tab = iota
	TabHistory
	TabStats
	TabConfig
)

var tabNames = []string{"Today", "History", "Stats", "Config"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services
	session  *service.Session

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	journalView views.JournalModel
	historyView views.HistoryModel
	statsView   views.StatsModel
	configView  views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model around a mounted session. The caller owns the
// session and closes it when the program ends.
func New(services *service.Services, session *service.Session) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		session:       session,
		activeTab:     TabJournal,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		journalView:   views.NewJournalModel(session, styles, keys),
		historyView:   views.NewHistoryModel(services, styles, keys),
		statsView:     views.NewStatsModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.journalView.Init(),
		m.historyView.Init(),
		waitForEvent(m.session.Events()),
	)
}

// waitForEvent delivers the next session event as a message
func waitForEvent(events <-chan service.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ui.SessionEventMsg{Event: ev}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Writing and confirmations block every global key but ctrl+c
		modalInput := m.isModalInputMode()

		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !modalInput:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !modalInput:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !modalInput:
			m.activeTab = TabJournal
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !modalInput:
			m.activeTab = TabHistory
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !modalInput:
			m.activeTab = TabStats
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab4) && !modalInput:
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.journalView.SetSize(m.width, contentHeight)
		m.historyView.SetSize(m.width, contentHeight)
		m.statsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case tea.FocusMsg:
		m.session.BecameActive()
		return m, m.journalView.Init()

	case tea.BlurMsg:
		m.session.EnteredBackground()
		return m, nil

	case ui.SessionEventMsg:
		// Always routed to the journal view, whatever tab is showing
		m.journalView, cmd = m.journalView.Update(msg)
		cmds = append(cmds, cmd, waitForEvent(m.session.Events()))
		if msg.Event.Kind == service.EventFinalized && msg.Event.Outcome == service.FinalizeWritten {
			cmds = append(cmds, func() tea.Msg { return ui.JournalChangedMsg{} })
		}
		return m, tea.Batch(cmds...)

	case ui.JournalChangedMsg:
		m.historyView, cmd = m.historyView.Update(msg)
		cmds = append(cmds, cmd)
		m.statsView, cmd = m.statsView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.journalView, _ = m.journalView.Update(themeMsg)
		m.historyView, _ = m.historyView.Update(themeMsg)
		m.statsView, _ = m.statsView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)

	case views.ThemeSavedMsg:
		if msg.Err != nil {
			m.services.Logger.Error("failed to save theme", "theme", msg.ThemeName, "err", msg.Err)
		}
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd
	}

	switch m.activeTab {
	case TabJournal:
		m.journalView, cmd = m.journalView.Update(msg)
	case TabHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case TabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabJournal:
		b.WriteString(m.journalView.View())
	case TabHistory:
		b.WriteString(m.historyView.View())
	case TabStats:
		b.WriteString(m.statsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		if m.activeTab == TabJournal && !m.journalView.IsConfirming() {
			parts = append(parts, m.renderKeyHelp("Esc", "done"))
			parts = append(parts, m.renderKeyHelp("ctrl+c", "quit"))
		} else {
			parts = append(parts, m.renderKeyHelp("y", "confirm"))
			parts = append(parts, m.renderKeyHelp("any key", "cancel"))
		}
	} else {
		switch m.activeTab {
		case TabJournal:
			parts = append(parts, m.renderKeyHelp("↑/↓", "field"))
			parts = append(parts, m.renderKeyHelp("←/→", "rate"))
			parts = append(parts, m.renderKeyHelp("x", "clear"))
			parts = append(parts, m.renderKeyHelp("e", "write"))
			parts = append(parts, m.renderKeyHelp("F", "finalize"))
		case TabHistory:
			parts = append(parts, m.renderKeyHelp("Enter", "open"))
			parts = append(parts, m.renderKeyHelp("Esc", "back"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
		case TabStats:
			parts = append(parts, m.renderKeyHelp("a/m/y", "range"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the current view is capturing keyboard input
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabJournal:
		return m.journalView.IsInputMode()
	case TabHistory:
		return m.historyView.IsInputMode()
	}
	return false
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabJournal:
		return m.journalView.Init()
	case TabHistory:
		return m.historyView.Init()
	case TabStats:
		return m.statsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	services := m.services
	return func() tea.Msg {
		return views.ThemeSavedMsg{ThemeName: themeName, Err: services.Config.SetTheme(themeName)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabJournal:
		help.WriteString(m.styles.StatLabel.Render("Today:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Move between fields\n")
		help.WriteString("  h/l, -/+   Lower/raise rating\n")
		help.WriteString("  x          Clear rating\n")
		help.WriteString("  e/Enter    Write text (Esc when done)\n")
		help.WriteString("  F          Finalize today now\n")
		help.WriteString("  r          Refresh\n")
	case TabHistory:
		help.WriteString(m.styles.StatLabel.Render("History:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  Enter      Open year, month or day\n")
		help.WriteString("  Esc        Go back\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  r          Refresh\n")
	case TabStats:
		help.WriteString(m.styles.StatLabel.Render("Stats:"))
		help.WriteString("\n")
		help.WriteString("  a          All time\n")
		help.WriteString("  m          Last 30 days\n")
		help.WriteString("  y          Last 365 days\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run mounts an editing session and starts the TUI. Pending text is saved
// when the program exits.
func Run(services *service.Services) error {
	session := services.NewSession()
	session.Mount()
	defer func() {
		session.Flush()
		session.Close()
	}()

	model := New(services, session)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
