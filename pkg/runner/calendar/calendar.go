// Package calendar runs the full-screen month view. The screen re-reads the
// month from the store on every tick so entries logged elsewhere show up.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	cal "tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
	"tableflip.dev/flowlog/pkg/store"
)

// RefreshInterval is how often the screen polls the store.
const RefreshInterval = 250 * time.Millisecond

type Calendar struct {
	Persistence store.Persistence
	// Year and Month select the first month shown; zero means the current one.
	Year      int
	Month     time.Month
	WeekStart cal.WeekStart
	Now       func() time.Time
	Log       *zap.Logger

	In  io.Reader
	Out io.Writer
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Persistence == nil {
		return errors.New("can not show calendar, no persistence")
	}
	m := New(ctx, c.Persistence, c.Now, c.WeekStart)
	if c.Year != 0 {
		m.year, m.month = c.Year, c.Month
	}
	if c.Log != nil {
		m.log = c.Log
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.In != nil {
		opts = append(opts, tea.WithInput(c.In))
	}
	if c.Out != nil {
		opts = append(opts, tea.WithOutput(c.Out))
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("calendar: %w", err)
	}
	return final.(*Model).err
}

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Prev, k.Next, k.Today, k.Quit} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type (
	tickMsg   time.Time
	loadedMsg struct {
		year    int
		month   time.Month
		entries []entry.Entry
		err     error
	}
)

// Model is the Bubble Tea model of the month screen.
type Model struct {
	ctx   context.Context
	store store.Persistence
	now   func() time.Time
	log   *zap.Logger

	year      int
	month     time.Month
	weekStart cal.WeekStart
	entries   []entry.Entry

	keys keyMap
	help help.Model

	width  int
	height int
	err    error
}

// New builds a model showing the current month.
func New(ctx context.Context, p store.Persistence, now func() time.Time, ws cal.WeekStart) *Model {
	if now == nil {
		now = time.Now
	}
	today := entry.Today(now)
	return &Model{
		ctx:       ctx,
		store:     p,
		now:       now,
		log:       zap.NewNop(),
		year:      today.Year,
		month:     today.Month,
		weekStart: ws,
		keys: keyMap{
			Prev:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev month")),
			Next:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next month")),
			Today: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this month")),
			Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		help: help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) load() tea.Cmd {
	ctx, p := m.ctx, m.store
	year, month := m.year, m.month
	return func() tea.Msg {
		entries, err := p.Month(ctx, year, month)
		return loadedMsg{year: year, month: month, entries: entries, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.load(), tick())

	case loadedMsg:
		if msg.err != nil {
			m.log.Error("month load failed", zap.Int("year", msg.year), zap.Stringer("month", msg.month), zap.Error(msg.err))
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.year == m.year && msg.month == m.month {
			m.entries = msg.entries
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			return m, m.show(cal.NextMonth(m.year, m.month, -1))
		case key.Matches(msg, m.keys.Next):
			return m, m.show(cal.NextMonth(m.year, m.month, 1))
		case key.Matches(msg, m.keys.Today):
			today := entry.Today(m.now)
			return m, m.show(today.Year, today.Month)
		}
	}
	return m, nil
}

func (m *Model) show(year int, month time.Month) tea.Cmd {
	if year == m.year && month == m.month {
		return nil
	}
	m.year, m.month = year, month
	m.entries = nil
	return m.load()
}

var (
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func (m *Model) View() string {
	cells, err := cal.Build(m.year, m.month, m.entries)
	if err != nil {
		return err.Error()
	}
	opts := cal.DefaultOptions()
	opts.WeekStart = m.weekStart
	if today := entry.Today(m.now); today.SameMonth(m.year, m.month) {
		opts.Today = today.Day
	}

	logged := 0
	for _, c := range cells {
		if c.Logged() {
			logged++
		}
	}

	var b strings.Builder
	b.WriteString(cal.Render(m.year, m.month, cells, opts))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%d of %d days logged", logged, len(cells))))
	b.WriteString("\n\n")
	b.WriteString(m.legend())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m *Model) legend() string {
	parts := make([]string, 0, len(flow.Options()))
	for _, f := range flow.Options() {
		parts = append(parts, cal.Swatch(f)+" "+legendStyle.Render(f.String()))
	}
	w := m.width
	if w <= 0 || w > 40 {
		w = 40
	}
	return wordwrap.String(strings.Join(parts, "  "), w)
}
