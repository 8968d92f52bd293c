// Package log runs the interactive logging session on the terminal.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
	"tableflip.dev/flowlog/pkg/prompt"
	"tableflip.dev/flowlog/pkg/session"
	"tableflip.dev/flowlog/pkg/store"
)

// ErrNotTerminal is returned when the session is started without a terminal
// to prompt on.
var ErrNotTerminal = errors.New("log: interactive session needs a terminal")

type Log struct {
	Persistence store.Persistence
	WeekStart   calendar.WeekStart
	Log         *zap.Logger
	Out         io.Writer

	// Prompter overrides the terminal prompts.
	Prompter session.Prompter
	// Terminal reports whether stdin and stdout are terminals.
	Terminal func() bool
}

func (n *Log) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not log, no persistence")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	p := n.Prompter
	if p == nil {
		terminal := n.Terminal
		if terminal == nil {
			terminal = isTerminal
		}
		if !terminal() {
			return ErrNotTerminal
		}
		p = &prompt.Prompter{
			Now:       time.Now,
			WeekStart: n.WeekStart,
			Month:     n.Persistence.Month,
		}
	}

	faint := color.New(color.Faint)
	loop := session.Loop{
		Store:    n.Persistence,
		Prompter: p,
		Log:      n.Log,
		OnSaved: func(date entry.Date, f flow.Flow, outcome store.Outcome) {
			switch outcome {
			case store.Skipped:
				_, _ = faint.Fprintf(out, "kept the entry already logged for %s\n", date)
			default:
				_, _ = fmt.Fprintf(out, "%s %s\n", calendar.Swatch(f), faint.Sprintf("%s %s", outcome, entry.New(date, f)))
			}
		},
	}
	return loop.Run(ctx)
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
