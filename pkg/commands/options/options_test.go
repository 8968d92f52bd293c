package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/flowlog/pkg/entry"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"2024-03-10": "2024-03-10",
		"2024-3-9":   "2024-03-09",
		"3/10":       "2024-03-10",
		"12/31":      "2024-12-31",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseDay(in, now)
			require.NoError(t, err)
			assert.Equal(t, want, got.String())
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-02-30", "13/1"} {
		_, err := ParseDay(bad, now)
		assert.Error(t, err, bad)
	}
}

func TestParseDayShortFormKeepsLeapDay(t *testing.T) {
	leap := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	got, err := ParseDay("2/29", leap)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.String())

	plain := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	_, err = ParseDay("2/29", plain)
	assert.ErrorIs(t, err, entry.ErrInvalidDate)
}

func TestGetMonth(t *testing.T) {
	o := &MonthOptions{}
	year, _, err := o.GetMonth()
	require.NoError(t, err)
	assert.Zero(t, year)

	o.MonthString = "2024-02"
	year, month, err := o.GetMonth()
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)

	o.MonthString = "soon"
	_, _, err = o.GetMonth()
	assert.Error(t, err)
}
