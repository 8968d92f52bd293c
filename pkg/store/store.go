// Package store persists log entries keyed by date.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
)

// Decision resolves an upsert against an existing entry.
type Decision int

const (
	KeepExisting Decision = iota
	Overwrite
)

func (d Decision) String() string {
	if d == Overwrite {
		return "overwrite"
	}
	return "keep"
}

// Outcome reports what an upsert did.
type Outcome int

const (
	Skipped Outcome = iota
	Inserted
	Overwritten
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Overwritten:
		return "overwritten"
	default:
		return "skipped"
	}
}

// ConflictFunc is asked what to do when the date already has an entry. It is
// only called when an entry exists. A nil ConflictFunc keeps the existing entry.
type ConflictFunc func(existing flow.Flow) (Decision, error)

// Always returns a ConflictFunc that answers d without asking.
func Always(d Decision) ConflictFunc {
	return func(flow.Flow) (Decision, error) { return d, nil }
}

// Persistence defines the persistence contract for log entries.
type Persistence interface {
	// Find returns the flow stored for exactly date.
	Find(ctx context.Context, date entry.Date) (flow.Flow, bool, error)
	// Upsert inserts, overwrites or skips according to onConflict.
	// An overwrite replaces the entry in one transaction.
	Upsert(ctx context.Context, date entry.Date, f flow.Flow, onConflict ConflictFunc) (Outcome, error)
	// Delete removes the entry for date if there is one.
	Delete(ctx context.Context, date entry.Date) error
	// Month returns the entries of one month ordered by date.
	Month(ctx context.Context, year int, month time.Month) ([]entry.Entry, error)
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Config selects and locates the backing medium.
type Config interface {
	Backend() string
	BasePath() string
	InMemory() bool
}

// Load opens the Persistence described by cfg.
func Load(cfg Config, log *zap.Logger) (Persistence, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.InMemory() {
		return OpenSQLite(MemoryPath, log)
	}
	switch strings.ToLower(cfg.Backend()) {
	case "", BackendSQLite:
		return OpenSQLite(cfg.BasePath(), log)
	case BackendDiskv:
		return OpenDiskv(cfg.BasePath(), log)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrStorageUnavailable, cfg.Backend())
	}
}

// monthBounds returns the first day of month and of the month after.
func monthBounds(year int, month time.Month) (entry.Date, entry.Date) {
	first := entry.Date{Year: year, Month: month, Day: 1}
	next := entry.FromTime(first.Time().AddDate(0, 1, 0))
	return first, next
}

func decode(date entry.Date, code int64) (flow.Flow, error) {
	f, err := flow.FromInt(code)
	if err != nil {
		return flow.None, fmt.Errorf("%w: %s: %w", ErrCodec, date, err)
	}
	return f, nil
}
