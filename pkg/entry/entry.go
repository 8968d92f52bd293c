// Package entry holds the records kept in the log.
package entry

import (
	"fmt"

	"tableflip.dev/flowlog/pkg/flow"
)

// Entry is one date-to-flow record. Date is unique across a store.
type Entry struct {
	Date Date      `json:"date"`
	Flow flow.Flow `json:"flow"`
}

func New(date Date, f flow.Flow) Entry {
	return Entry{Date: date, Flow: f}
}

// Row returns the cells used when printing entries as a table.
func (e Entry) Row() (string, string, string) {
	return e.Date.String(), e.Flow.Symbol(), e.Flow.String()
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s  %s", e.Date, e.Flow.Symbol(), e.Flow)
}
