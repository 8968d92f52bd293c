package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekStart is the weekday shown in the first column.
type WeekStart time.Weekday

const (
	Sunday = WeekStart(time.Sunday)
	Monday = WeekStart(time.Monday)
)

// ParseWeekStart accepts "sunday" or "monday"; empty means Sunday.
func ParseWeekStart(v string) (WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "sunday", "sun":
		return Sunday, nil
	case "monday", "mon":
		return Monday, nil
	default:
		return Sunday, fmt.Errorf("calendar: unsupported week start %q", v)
	}
}

// Weekdays returns the two-letter column headers.
func (w WeekStart) Weekdays() []string {
	names := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	out := make([]string, 7)
	for i := range out {
		out[i] = names[(int(w)+i)%7]
	}
	return out
}

// Grid lays cells into week rows. Slots before the first and after the last
// day of the month are nil.
func Grid(year int, month time.Month, cells []Cell, start WeekStart) [][]*Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(start) + 7) % 7
	rows := (offset + len(cells) + 6) / 7

	grid := make([][]*Cell, rows)
	for row := range grid {
		grid[row] = make([]*Cell, 7)
		for col := 0; col < 7; col++ {
			idx := row*7 + col - offset
			if idx >= 0 && idx < len(cells) {
				grid[row][col] = &cells[idx]
			}
		}
	}
	return grid
}
