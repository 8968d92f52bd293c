package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
	"tableflip.dev/flowlog/pkg/store"
)

type answers struct {
	date    entry.Date
	flow    flow.Flow
	confirm []bool
}

func (a *answers) PickDate(context.Context, string) (entry.Date, error) { return a.date, nil }

func (a *answers) PickFlow(context.Context, string, []flow.Flow) (flow.Flow, error) {
	return a.flow, nil
}

func (a *answers) Confirm(context.Context, string) (bool, error) {
	ok := a.confirm[0]
	a.confirm = a.confirm[1:]
	return ok, nil
}

func openStore(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.OpenSQLite(store.MemoryPath, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestLogRefusesWithoutTerminal(t *testing.T) {
	l := &Log{
		Persistence: openStore(t),
		Terminal:    func() bool { return false },
	}
	assert.ErrorIs(t, l.Do(context.Background()), ErrNotTerminal)
}

func TestLogSavesEntry(t *testing.T) {
	color.NoColor = true
	p := openStore(t)
	d := entry.Date{Year: 2024, Month: 3, Day: 10}

	var out bytes.Buffer
	l := &Log{
		Persistence: p,
		Out:         &out,
		Prompter:    &answers{date: d, flow: flow.Heavy, confirm: []bool{true, true}},
	}
	require.NoError(t, l.Do(context.Background()))

	got, found, err := p.Find(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, flow.Heavy, got)
	assert.Contains(t, out.String(), "inserted")
	assert.Contains(t, out.String(), "2024-03-10")
}

func TestLogReportsKeptEntry(t *testing.T) {
	color.NoColor = true
	p := openStore(t)
	d := entry.Date{Year: 2024, Month: 3, Day: 10}
	_, err := p.Upsert(context.Background(), d, flow.Light, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	l := &Log{
		Persistence: p,
		Out:         &out,
		// save, decline overwrite, exit
		Prompter: &answers{date: d, flow: flow.Heavy, confirm: []bool{true, false, true}},
	}
	require.NoError(t, l.Do(context.Background()))
	assert.Contains(t, out.String(), "kept the entry already logged for 2024-03-10")
}
