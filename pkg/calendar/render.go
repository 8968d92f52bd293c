package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	TitleStyle    lipgloss.Style
	EmptyStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	WeekStart     WeekStart
	// Today and Selected are days of the rendered month, 0 for none.
	Today    int
	Selected int
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Reverse(true),
		WeekStart:     Sunday,
	}
}

const width = len("Su Mo Tu We Th Fr Sa")

// Render produces a multi-line calendar for the month. Logged days are drawn
// in the heat color of their flow.
func Render(year int, month time.Month, cells []Cell, opts Options) string {
	title := fmt.Sprintf("%s %d", month, year)
	lines := []string{
		opts.TitleStyle.Render(center(title, width)),
		opts.HeaderStyle.Render(strings.Join(opts.WeekStart.Weekdays(), " ")),
	}

	for _, week := range Grid(year, month, cells, opts.WeekStart) {
		row := make([]string, 0, 7)
		for _, c := range week {
			if c == nil {
				row = append(row, "  ")
				continue
			}
			row = append(row, renderDay(*c, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(row, " "), " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(c Cell, opts Options) string {
	text := fmt.Sprintf("%2d", c.Day)

	style := opts.EmptyStyle
	if c.Logged() {
		style = lipgloss.NewStyle().Foreground(HeatColor(*c.Flow)).Bold(true)
	}
	if c.Day == opts.Today {
		style = style.Inherit(opts.TodayStyle)
	}
	if c.Day == opts.Selected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-left-len(s))
}
