// Package prompt implements the interactive collaborators of a session as
// small inline Bubble Tea programs.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
)

// ErrInterrupted is returned when the user cancels a prompt.
var ErrInterrupted = errors.New("prompt: interrupted")

// MonthFunc loads the entries to overlay while a month is shown.
type MonthFunc func(ctx context.Context, year int, month time.Month) ([]entry.Entry, error)

// Prompter asks questions on a terminal. The zero value reads stdin and
// writes stdout.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	// Now is the clock used for the initial date; time.Now when nil.
	Now       func() time.Time
	WeekStart calendar.WeekStart
	// Month, when set, marks already logged days in the date picker.
	Month MonthFunc
}

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (p *Prompter) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// PickDate shows a month calendar and returns the highlighted day.
func (p *Prompter) PickDate(ctx context.Context, prompt string) (entry.Date, error) {
	m := newDateModel(ctx, prompt, entry.Today(p.now), p.WeekStart, p.Month)
	final, err := p.run(ctx, m)
	if err != nil {
		return entry.Date{}, err
	}
	dm := final.(*dateModel)
	if dm.err != nil {
		return entry.Date{}, dm.err
	}
	if dm.canceled {
		return entry.Date{}, ErrInterrupted
	}
	if !dm.cursor.Valid() {
		return entry.Date{}, fmt.Errorf("prompt: %w: %s", entry.ErrInvalidDate, dm.cursor)
	}
	return dm.cursor, nil
}

// PickFlow shows options as a list and returns the chosen one.
func (p *Prompter) PickFlow(ctx context.Context, prompt string, options []flow.Flow) (flow.Flow, error) {
	if len(options) == 0 {
		return flow.None, fmt.Errorf("prompt: no options for %q", prompt)
	}
	final, err := p.run(ctx, newFlowModel(prompt, options))
	if err != nil {
		return flow.None, err
	}
	fm := final.(*flowModel)
	if fm.canceled {
		return flow.None, ErrInterrupted
	}
	return fm.options[fm.cursor], nil
}

// Confirm asks a yes/no question; enter alone answers no.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(prompt, false))
	if err != nil {
		return false, err
	}
	cm := final.(*confirmModel)
	if cm.canceled {
		return false, ErrInterrupted
	}
	return cm.answer, nil
}

func (p *Prompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

func answered(prompt, answer string) string {
	return promptStyle.Render("? "+prompt) + " " + answerStyle.Render(answer) + "\n"
}
