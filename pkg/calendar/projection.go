// Package calendar projects stored entries onto month grids and renders them.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
)

// ErrInvalidMonth is returned for a month or year outside the supported range.
var ErrInvalidMonth = errors.New("calendar: invalid month")

// Cell is one day of the month being shown. Flow is nil when nothing is logged.
type Cell struct {
	Day  int
	Flow *flow.Flow
}

// Logged reports whether the day has an entry.
func (c Cell) Logged() bool {
	return c.Flow != nil
}

// Build returns one cell per day of the month, in order, with the flow of any
// entry dated that exact day attached. Entries from other months are ignored.
// If entries holds the same date twice the later one wins.
func Build(year int, month time.Month, entries []entry.Entry) ([]Cell, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}

	days := DaysIn(year, month)
	cells := make([]Cell, days)
	for i := range cells {
		cells[i].Day = i + 1
	}
	for _, e := range entries {
		if !e.Date.SameMonth(year, month) || e.Date.Day < 1 || e.Date.Day > days {
			continue
		}
		f := e.Flow
		cells[e.Date.Day-1].Flow = &f
	}
	return cells, nil
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsLeap follows the Gregorian rule: every fourth year, except centuries not
// divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func validMonth(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidMonth, month)
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidMonth, year)
	}
	return nil
}

// ParseMonth parses "2006-01" or "January 2006".
func ParseMonth(v string) (int, time.Month, error) {
	for _, layout := range []string{"2006-01", "January 2006", "Jan 2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Year(), t.Month(), nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, v)
}

// NextMonth steps forward (delta > 0) or back by delta months.
func NextMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}
