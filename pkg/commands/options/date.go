package options

import (
	"time"

	"tableflip.dev/flowlog/pkg/entry"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// ParseDay reads a date argument, example: "2024-3-10" or "3/10". The short
// form is taken in the year of now; "2/29" outside a leap year is an error.
func ParseDay(v string, now time.Time) (entry.Date, error) {
	t, err := time.Parse(layoutISO, v)
	if err == nil {
		return entry.NewDate(t.Year(), t.Month(), t.Day())
	}
	short, serr := time.Parse(layoutISOShort, v)
	if serr != nil {
		return entry.Date{}, err
	}
	return entry.NewDate(now.Year(), short.Month(), short.Day())
}
