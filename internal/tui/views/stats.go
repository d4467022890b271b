package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
	"github.com/xolan/chronos/internal/service"
	"github.com/xolan/chronos/internal/stats"
	"github.com/xolan/chronos/internal/timeutil"
	"github.com/xolan/chronos/internal/tui/ui"
)

// statsRange selects the period the stats view covers
type statsRange int

const (
	rangeAll statsRange = iota
	rangeLast30
	rangeLastYear
)

// maxReportMonths is how many months of averages the stats view shows
const maxReportMonths = 6

// StatsModel is the model for the stats view
type StatsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	result *service.StatsResult
	report *service.ReportData
	span   statsRange
}

// NewStatsModel creates a new stats view model
func NewStatsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) StatsModel {
	return StatsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		span:     rangeAll,
	}
}

// statsLoadedMsg is sent when stats are loaded
type statsLoadedMsg struct {
	result *service.StatsResult
	report *service.ReportData
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return m.loadStats()
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.AllTime):
			m.span = rangeAll
			return m, m.loadStats()
		case key.Matches(msg, m.keys.Last30):
			m.span = rangeLast30
			return m, m.loadStats()
		case key.Matches(msg, m.keys.LastYear):
			m.span = rangeLastYear
			return m, m.loadStats()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadStats()
		}

	case statsLoadedMsg:
		m.result = msg.result
		m.report = msg.report

	case ui.JournalChangedMsg:
		return m, m.loadStats()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder

	if m.result == nil {
		b.WriteString(m.styles.ViewTitle.Render("Statistics"))
		b.WriteString("\n\n")
		b.WriteString("Loading...")
		return b.String()
	}

	b.WriteString(m.styles.ViewTitle.Render("Statistics for " + m.result.Period))
	b.WriteString("\n\n")

	s := m.result.Statistics
	b.WriteString(m.renderStatLine("Total entries:", fmt.Sprintf("%d %s", s.EntryCount, pluralize("entry", s.EntryCount))))
	if s.EntryCount == 0 {
		return b.String()
	}
	b.WriteString(m.renderStatLine("First entry:", s.FirstDate))
	b.WriteString(m.renderStatLine("Last entry:", s.LastDate))
	b.WriteString(m.renderStatLine("Longest streak:", fmt.Sprintf("%d %s", s.LongestStreak, pluralize("day", s.LongestStreak))))
	b.WriteString(m.renderStatLine("Average physical:", formatAverage(s.AveragePhysical, s.RatedPhysical)))
	b.WriteString(m.renderStatLine("Average mental:", formatAverage(s.AverageMental, s.RatedMental)))

	b.WriteString("\n")
	b.WriteString(m.renderBreakdowns())

	if m.report != nil && len(m.report.Groups) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Month"))
		b.WriteString("\n")
		groups := m.report.Groups
		if len(groups) > maxReportMonths {
			groups = groups[:maxReportMonths]
		}
		for _, g := range groups {
			b.WriteString(fmt.Sprintf("  %-8s  %3d %-8s  P %-4s  M %-4s\n",
				g.Name, g.EntryCount, pluralize("entry", g.EntryCount),
				formatMonthAverage(g.AveragePhysical), formatMonthAverage(g.AverageMental)))
		}
	}

	return b.String()
}

// renderBreakdowns draws how often each rating was given, side by side
func (m StatsModel) renderBreakdowns() string {
	physical := breakdownCounts(m.result.Physical)
	mental := breakdownCounts(m.result.Mental)

	peak := 1
	for v := 1; v <= entry.MaxRating; v++ {
		peak = max(peak, physical[v], mental[v])
	}
	const barWidth = 12

	var b strings.Builder
	b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("      %-*s  %s", barWidth+4, "Physical", "Mental")))
	b.WriteString("\n")
	for v := entry.MaxRating; v >= 1; v-- {
		p := physical[v] * barWidth / peak
		mn := mental[v] * barWidth / peak
		b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("  %2d  ", v)))
		bar := m.styles.Rating(v)
		b.WriteString(bar.Render(strings.Repeat("▇", p)))
		b.WriteString(fmt.Sprintf("%-*s", barWidth-p+4, fmt.Sprintf(" %d", physical[v])))
		b.WriteString("  ")
		b.WriteString(bar.Render(strings.Repeat("▇", mn)))
		b.WriteString(fmt.Sprintf(" %d\n", mental[v]))
	}
	return b.String()
}

func breakdownCounts(rows []stats.RatingBreakdown) [entry.MaxRating + 1]int {
	var counts [entry.MaxRating + 1]int
	for _, r := range rows {
		if r.Rating >= entry.MinRating && r.Rating <= entry.MaxRating {
			counts[r.Rating] = r.EntryCount
		}
	}
	return counts
}

func formatMonthAverage(avg float64) string {
	if avg <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", avg)
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// bounds returns the date range for the selected span; empty is open
func (m StatsModel) bounds() (from, to string) {
	if m.span == rangeAll {
		return "", ""
	}
	today := timeutil.DateKey(m.services.Source.Now())
	days := 30
	if m.span == rangeLastYear {
		days = 365
	}
	return timeutil.AddDays(today, -(days - 1)), today
}

// loadStats creates a command to load stats
func (m StatsModel) loadStats() tea.Cmd {
	from, to := m.bounds()
	services := m.services
	return func() tea.Msg {
		f := filter.NewFilter("", 0, 0).WithRange(from, to)
		return statsLoadedMsg{
			result: services.Stats.ForRange(from, to),
			report: services.Report.GroupByMonth(f),
		}
	}
}

func (m StatsModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}
