package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
	"tableflip.dev/flowlog/pkg/store"
)

// script answers prompts in order and records the questions it was asked.
type script struct {
	dates   []entry.Date
	flows   []flow.Flow
	answers []bool
	failOn  string
	asked   []string
	options [][]flow.Flow
}

var errInterrupted = errors.New("interrupted")

func (s *script) PickDate(_ context.Context, prompt string) (entry.Date, error) {
	s.asked = append(s.asked, prompt)
	if s.failOn == "date" || len(s.dates) == 0 {
		return entry.Date{}, errInterrupted
	}
	d := s.dates[0]
	s.dates = s.dates[1:]
	return d, nil
}

func (s *script) PickFlow(_ context.Context, prompt string, options []flow.Flow) (flow.Flow, error) {
	s.asked = append(s.asked, prompt)
	s.options = append(s.options, options)
	if s.failOn == "flow" || len(s.flows) == 0 {
		return flow.None, errInterrupted
	}
	f := s.flows[0]
	s.flows = s.flows[1:]
	return f, nil
}

func (s *script) Confirm(_ context.Context, prompt string) (bool, error) {
	s.asked = append(s.asked, prompt)
	if len(s.answers) == 0 {
		return false, errInterrupted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func newStore(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.OpenSQLite(store.MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func mustDate(t *testing.T, v string) entry.Date {
	t.Helper()
	d, err := entry.ParseDate(v)
	require.NoError(t, err)
	return d
}

func find(t *testing.T, p store.Persistence, d entry.Date) (flow.Flow, bool) {
	t.Helper()
	f, ok, err := p.Find(context.Background(), d)
	require.NoError(t, err)
	return f, ok
}

func TestLoopSavesAndExits(t *testing.T) {
	p := newStore(t)
	d := mustDate(t, "2024-03-10")
	s := &script{
		dates:   []entry.Date{d},
		flows:   []flow.Flow{flow.Medium},
		answers: []bool{true, true},
	}
	var states []State
	var saved []store.Outcome
	l := &Loop{
		Store:    p,
		Prompter: s,
		OnState:  func(st State) { states = append(states, st) },
		OnSaved:  func(_ entry.Date, _ flow.Flow, o store.Outcome) { saved = append(saved, o) },
	}

	require.NoError(t, l.Run(context.Background()))

	f, ok := find(t, p, d)
	require.True(t, ok)
	assert.Equal(t, flow.Medium, f)
	assert.Equal(t, []store.Outcome{store.Inserted}, saved)
	assert.Equal(t, []State{PromptingDate, PromptingIntensity, ConfirmingSave, ConfirmingExit, Done}, states)
	assert.Equal(t, []string{
		"Select date",
		"Select flow intensity",
		"Save Medium flow for 2024-03-10?",
		"Exit?",
	}, s.asked)
	require.Len(t, s.options, 1)
	assert.Equal(t, flow.Options(), s.options[0])
}

func TestLoopDeclineSaveWritesNothing(t *testing.T) {
	p := newStore(t)
	d := mustDate(t, "2024-03-10")
	s := &script{
		dates:   []entry.Date{d},
		flows:   []flow.Flow{flow.Heavy},
		answers: []bool{false, true},
	}
	require.NoError(t, (&Loop{Store: p, Prompter: s}).Run(context.Background()))

	_, ok := find(t, p, d)
	assert.False(t, ok)
	assert.Equal(t, "Exit?", s.asked[len(s.asked)-1])
}

func TestLoopConflictOverwriteAndKeep(t *testing.T) {
	p := newStore(t)
	d := mustDate(t, "2024-03-10")
	_, err := p.Upsert(context.Background(), d, flow.Medium, nil)
	require.NoError(t, err)

	// First pass overwrites with Heavy, second pass declines Light.
	s := &script{
		dates: []entry.Date{d, d},
		flows: []flow.Flow{flow.Heavy, flow.Light},
		answers: []bool{
			true, true, false, // save, overwrite, don't exit
			true, false, true, // save, keep, exit
		},
	}
	var saved []store.Outcome
	l := &Loop{
		Store:    p,
		Prompter: s,
		OnSaved:  func(_ entry.Date, _ flow.Flow, o store.Outcome) { saved = append(saved, o) },
	}
	require.NoError(t, l.Run(context.Background()))

	f, ok := find(t, p, d)
	require.True(t, ok)
	assert.Equal(t, flow.Heavy, f)
	assert.Equal(t, []store.Outcome{store.Overwritten, store.Skipped}, saved)
	assert.Contains(t, s.asked, "Medium already present at 2024-03-10, overwrite?")
	assert.Contains(t, s.asked, "Heavy already present at 2024-03-10, overwrite?")
}

func TestLoopRepeatsUntilExit(t *testing.T) {
	p := newStore(t)
	days := []entry.Date{mustDate(t, "2024-03-10"), mustDate(t, "2024-03-11"), mustDate(t, "2024-03-12")}
	s := &script{
		dates:   days,
		flows:   []flow.Flow{flow.Light, flow.Medium, flow.Heavy},
		answers: []bool{true, false, true, false, true, true},
	}
	require.NoError(t, (&Loop{Store: p, Prompter: s}).Run(context.Background()))

	for i, want := range []flow.Flow{flow.Light, flow.Medium, flow.Heavy} {
		f, ok := find(t, p, days[i])
		require.True(t, ok)
		assert.Equal(t, want, f)
	}
}

func TestLoopPropagatesCollaboratorFailure(t *testing.T) {
	for _, failOn := range []string{"date", "flow"} {
		t.Run(failOn, func(t *testing.T) {
			p := newStore(t)
			s := &script{
				dates:   []entry.Date{mustDate(t, "2024-03-10")},
				flows:   []flow.Flow{flow.Light},
				answers: []bool{true, true},
				failOn:  failOn,
			}
			err := (&Loop{Store: p, Prompter: s}).Run(context.Background())
			require.ErrorIs(t, err, errInterrupted)

			_, ok := find(t, p, mustDate(t, "2024-03-10"))
			assert.False(t, ok)
		})
	}
}

func TestLoopInterruptDuringOverwriteLeavesEntry(t *testing.T) {
	p := newStore(t)
	d := mustDate(t, "2024-03-10")
	_, err := p.Upsert(context.Background(), d, flow.Medium, nil)
	require.NoError(t, err)

	s := &script{
		dates:   []entry.Date{d},
		flows:   []flow.Flow{flow.Heavy},
		answers: []bool{true}, // save, then the overwrite prompt is interrupted
	}
	err = (&Loop{Store: p, Prompter: s}).Run(context.Background())
	require.ErrorIs(t, err, errInterrupted)

	f, ok := find(t, p, d)
	require.True(t, ok)
	assert.Equal(t, flow.Medium, f)
}

func TestLoopRequiresCollaborators(t *testing.T) {
	require.Error(t, (&Loop{}).Run(context.Background()))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "confirming-save", ConfirmingSave.String())
	assert.Equal(t, "State(42)", State(42).String())
}
