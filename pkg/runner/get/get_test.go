package get

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
	"tableflip.dev/flowlog/pkg/store"
)

func seeded(t *testing.T, entries ...entry.Entry) store.Persistence {
	t.Helper()
	p, err := store.OpenSQLite(store.MemoryPath, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	for _, e := range entries {
		_, err := p.Upsert(context.Background(), e.Date, e.Flow, nil)
		require.NoError(t, err)
	}
	return p
}

func TestGetDefaultsToCurrentMonth(t *testing.T) {
	color.NoColor = true
	p := seeded(t,
		entry.New(entry.Date{Year: 2024, Month: time.March, Day: 15}, flow.Heavy),
		entry.New(entry.Date{Year: 2024, Month: time.April, Day: 1}, flow.Light),
	)

	var buf bytes.Buffer
	g := &Get{
		WeekStart:   calendar.Sunday,
		Now:         func() time.Time { return time.Date(2024, time.March, 20, 8, 0, 0, 0, time.Local) },
		Out:         &buf,
		Persistence: p,
	}
	require.NoError(t, g.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Entries - 1 entry")
	assert.Contains(t, out, "2024-03-15")
	assert.NotContains(t, out, "2024-04-01")
	assert.Contains(t, out, "Key")
}

func TestGetJSONEmptyMonth(t *testing.T) {
	var buf bytes.Buffer
	g := &Get{Year: 2023, Month: time.February, JSON: true, Out: &buf, Persistence: seeded(t)}
	require.NoError(t, g.Do(context.Background()))
	assert.Equal(t, "[]\n", buf.String())
}

func TestGetNeedsPersistence(t *testing.T) {
	assert.Error(t, (&Get{}).Do(context.Background()))
}
