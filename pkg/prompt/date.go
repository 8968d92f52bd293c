package prompt

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/indent"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
)

type monthLoadedMsg struct {
	year    int
	month   time.Month
	entries []entry.Entry
	err     error
}

type dateModel struct {
	ctx       context.Context
	prompt    string
	cursor    entry.Date
	today     entry.Date
	weekStart calendar.WeekStart
	load      MonthFunc
	entries   []entry.Entry

	keys dateKeys
	help help.Model

	done     bool
	canceled bool
	err      error
}

func newDateModel(ctx context.Context, prompt string, today entry.Date, ws calendar.WeekStart, load MonthFunc) *dateModel {
	return &dateModel{
		ctx:       ctx,
		prompt:    prompt,
		cursor:    today,
		today:     today,
		weekStart: ws,
		load:      load,
		keys:      newDateKeys(),
		help:      help.New(),
	}
}

func (m *dateModel) Init() tea.Cmd {
	return m.loadMonth()
}

func (m *dateModel) loadMonth() tea.Cmd {
	if m.load == nil {
		return nil
	}
	ctx, load := m.ctx, m.load
	year, month := m.cursor.Year, m.cursor.Month
	return func() tea.Msg {
		entries, err := load(ctx, year, month)
		return monthLoadedMsg{year: year, month: month, entries: entries, err: err}
	}
}

func (m *dateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.year == m.cursor.Year && msg.month == m.cursor.Month {
			m.entries = msg.entries
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *dateModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.cursor
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.cursor = m.cursor.AddDays(-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = m.cursor.AddDays(1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = m.cursor.AddDays(-7)
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.cursor.AddDays(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.cursor = shiftMonth(m.cursor, -1)
	case key.Matches(msg, m.keys.NextMonth):
		m.cursor = shiftMonth(m.cursor, 1)
	case key.Matches(msg, m.keys.Today):
		m.cursor = m.today
	}
	// The cursor stops at the ends of the supported years.
	if !m.cursor.Valid() {
		m.cursor = before
		return m, nil
	}
	if before.Year != m.cursor.Year || before.Month != m.cursor.Month {
		m.entries = nil
		return m, m.loadMonth()
	}
	return m, nil
}

// shiftMonth keeps the day of month where it can and clamps it otherwise,
// so January 31st steps to the last day of February.
func shiftMonth(d entry.Date, delta int) entry.Date {
	year, month := calendar.NextMonth(d.Year, d.Month, delta)
	day := d.Day
	if last := calendar.DaysIn(year, month); day > last {
		day = last
	}
	return entry.Date{Year: year, Month: month, Day: day}
}

func (m *dateModel) View() string {
	if m.done {
		return answered(m.prompt, m.cursor.String())
	}
	if m.canceled || m.err != nil {
		return ""
	}

	cells, err := calendar.Build(m.cursor.Year, m.cursor.Month, m.entries)
	if err != nil {
		return err.Error() + "\n"
	}
	opts := calendar.DefaultOptions()
	opts.WeekStart = m.weekStart
	opts.Selected = m.cursor.Day
	if m.today.SameMonth(m.cursor.Year, m.cursor.Month) {
		opts.Today = m.today.Day
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render("? "+m.prompt) + " " + mutedStyle.Render(m.cursor.String()) + "\n")
	b.WriteString(indent.String(calendar.Render(m.cursor.Year, m.cursor.Month, cells, opts), 2))
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}
