// Package session drives the interactive logging cycle: pick a date, pick a
// flow, confirm, store, and ask whether to stop.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
	"tableflip.dev/flowlog/pkg/store"
)

// DatePicker yields a calendar date chosen by the user.
type DatePicker interface {
	PickDate(ctx context.Context, prompt string) (entry.Date, error)
}

// FlowPicker yields one of options chosen by the user.
type FlowPicker interface {
	PickFlow(ctx context.Context, prompt string, options []flow.Flow) (flow.Flow, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Prompter is the full set of collaborators a Loop needs.
type Prompter interface {
	DatePicker
	FlowPicker
	Confirmer
}

// State is a step of the loop.
type State int

const (
	PromptingDate State = iota
	PromptingIntensity
	ConfirmingSave
	ConfirmingExit
	Done
)

func (s State) String() string {
	switch s {
	case PromptingDate:
		return "prompting-date"
	case PromptingIntensity:
		return "prompting-intensity"
	case ConfirmingSave:
		return "confirming-save"
	case ConfirmingExit:
		return "confirming-exit"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loop repeatedly records entries until the user confirms exit.
type Loop struct {
	Store    store.Persistence
	Prompter Prompter
	Log      *zap.Logger

	// OnSaved, if set, is called after every completed upsert.
	OnSaved func(date entry.Date, f flow.Flow, outcome store.Outcome)
	// OnState, if set, is called on every transition.
	OnState func(State)

	date entry.Date
	flow flow.Flow
}

// Run drives the loop to Done. Any collaborator or store error ends it and is
// returned as is; nothing partial is left behind because the upsert is the
// only write.
func (l *Loop) Run(ctx context.Context) error {
	if l.Store == nil || l.Prompter == nil {
		return fmt.Errorf("session: store and prompter are required")
	}
	if l.Log == nil {
		l.Log = zap.NewNop()
	}

	state := PromptingDate
	for state != Done {
		if l.OnState != nil {
			l.OnState(state)
		}
		next, err := l.step(ctx, state)
		if err != nil {
			l.Log.Debug("session aborted", zap.Stringer("state", state), zap.Error(err))
			return err
		}
		state = next
	}
	if l.OnState != nil {
		l.OnState(Done)
	}
	return nil
}

func (l *Loop) step(ctx context.Context, state State) (State, error) {
	switch state {
	case PromptingDate:
		d, err := l.Prompter.PickDate(ctx, "Select date")
		if err != nil {
			return state, err
		}
		l.date = d
		return PromptingIntensity, nil

	case PromptingIntensity:
		f, err := l.Prompter.PickFlow(ctx, "Select flow intensity", flow.Options())
		if err != nil {
			return state, err
		}
		l.flow = f
		return ConfirmingSave, nil

	case ConfirmingSave:
		ok, err := l.Prompter.Confirm(ctx, fmt.Sprintf("Save %s flow for %s?", l.flow, l.date))
		if err != nil {
			return state, err
		}
		if !ok {
			l.reset()
			return ConfirmingExit, nil
		}
		if err := l.save(ctx); err != nil {
			return state, err
		}
		return ConfirmingExit, nil

	case ConfirmingExit:
		ok, err := l.Prompter.Confirm(ctx, "Exit?")
		if err != nil {
			return state, err
		}
		if ok {
			return Done, nil
		}
		return PromptingDate, nil
	}
	return Done, nil
}

func (l *Loop) save(ctx context.Context) error {
	date, f := l.date, l.flow
	outcome, err := l.Store.Upsert(ctx, date, f, func(existing flow.Flow) (store.Decision, error) {
		overwrite, err := l.Prompter.Confirm(ctx,
			fmt.Sprintf("%s already present at %s, overwrite?", existing, date))
		if err != nil {
			return store.KeepExisting, err
		}
		decision := store.KeepExisting
		if overwrite {
			decision = store.Overwrite
		}
		l.Log.Debug("conflict resolved",
			zap.Stringer("date", date),
			zap.Stringer("existing", existing),
			zap.Stringer("decision", decision))
		return decision, nil
	})
	if err != nil {
		return err
	}
	l.reset()

	l.Log.Info("entry saved",
		zap.Stringer("date", date),
		zap.Stringer("flow", f),
		zap.Stringer("outcome", outcome))
	if l.OnSaved != nil {
		l.OnSaved(date, f, outcome)
	}
	return nil
}

func (l *Loop) reset() {
	l.date = entry.Date{}
	l.flow = flow.None
}
