package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
)

// MemoryPath opens a database that lives only as long as the process.
const MemoryPath = ":memory:"

//go:embed migrations/*.sql
var migrationFS embed.FS

type sqliteStore struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// OpenSQLite opens or creates the database at path and applies migrations.
// It is safe to call against an already initialized database.
func OpenSQLite(path string, log *zap.Logger) (Persistence, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dsn := path + "?_pragma=busy_timeout(5000)"
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: ensure directory: %w", ErrStorageUnavailable, err)
		}
		dsn += "&_pragma=journal_mode(wal)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageUnavailable, path, err)
	}

	// One connection: a single writer, and the in-memory database would
	// otherwise be private to whichever connection created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrStorageUnavailable, path, err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	log.Debug("opened sqlite store", zap.String("path", path))
	return &sqliteStore{db: db, path: path, log: log}, nil
}

func migrate(db *sql.DB) error {
	migrations, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations sub-fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *sqliteStore) Find(ctx context.Context, date entry.Date) (flow.Flow, bool, error) {
	var code int64
	err := s.db.QueryRowContext(ctx,
		`SELECT flow FROM period WHERE logdate = ?`, date.String()).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return flow.None, false, nil
	}
	if err != nil {
		return flow.None, false, fmt.Errorf("store: find %s: %w", date, err)
	}
	f, err := decode(date, code)
	if err != nil {
		return flow.None, false, err
	}
	return f, true, nil
}

func (s *sqliteStore) Upsert(ctx context.Context, date entry.Date, f flow.Flow, onConflict ConflictFunc) (Outcome, error) {
	if !f.Valid() {
		return Skipped, fmt.Errorf("store: upsert %s: %w", date, flow.ErrUnsupportedCode)
	}
	if !date.Valid() {
		return Skipped, fmt.Errorf("store: upsert %s: %w", date, entry.ErrInvalidDate)
	}

	existing, found, err := s.Find(ctx, date)
	if err != nil {
		return Skipped, err
	}

	if !found {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO period (logdate, flow) VALUES (?, ?)`, date.String(), f.Code()); err != nil {
			return Skipped, s.writeError("insert", date, err)
		}
		s.log.Info("entry inserted", zap.Stringer("date", date), zap.Stringer("flow", f))
		return Inserted, nil
	}

	decision := KeepExisting
	if onConflict != nil {
		if decision, err = onConflict(existing); err != nil {
			return Skipped, fmt.Errorf("store: upsert %s: resolve conflict: %w", date, err)
		}
	}
	if decision != Overwrite {
		s.log.Info("entry kept", zap.Stringer("date", date), zap.Stringer("flow", existing))
		return Skipped, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Skipped, fmt.Errorf("store: upsert %s: begin tx: %w", date, err)
	}
	defer tx.Rollback() // no-op once committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM period WHERE logdate = ?`, date.String()); err != nil {
		return Skipped, s.writeError("delete", date, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO period (logdate, flow) VALUES (?, ?)`, date.String(), f.Code()); err != nil {
		return Skipped, s.writeError("insert", date, err)
	}
	if err := tx.Commit(); err != nil {
		return Skipped, s.writeError("commit", date, err)
	}

	s.log.Info("entry overwritten",
		zap.Stringer("date", date),
		zap.Stringer("old", existing),
		zap.Stringer("flow", f))
	return Overwritten, nil
}

func (s *sqliteStore) Delete(ctx context.Context, date entry.Date) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM period WHERE logdate = ?`, date.String())
	if err != nil {
		return s.writeError("delete", date, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.log.Info("entry deleted", zap.Stringer("date", date))
	}
	return nil
}

func (s *sqliteStore) Month(ctx context.Context, year int, month time.Month) ([]entry.Entry, error) {
	first, next := monthBounds(year, month)
	rows, err := s.db.QueryContext(ctx, `
		SELECT logdate, flow FROM period
		WHERE logdate >= ? AND logdate < ?
		ORDER BY logdate ASC
	`, first.String(), next.String())
	if err != nil {
		return nil, fmt.Errorf("store: month %04d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	var out []entry.Entry
	for rows.Next() {
		var (
			raw  any
			code int64
		)
		if err := rows.Scan(&raw, &code); err != nil {
			return nil, fmt.Errorf("store: month %04d-%02d: scan: %w", year, month, err)
		}
		date, err := scanDate(raw)
		if err != nil {
			return nil, err
		}
		f, err := decode(date, code)
		if err != nil {
			return nil, err
		}
		out = append(out, entry.New(date, f))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: month %04d-%02d: %w", year, month, err)
	}
	return out, nil
}

func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) writeError(op string, date entry.Date, err error) error {
	if isConstraintError(err) {
		return fmt.Errorf("%w: %s %s: %w", ErrConstraintViolation, op, date, err)
	}
	return fmt.Errorf("store: %s %s: %w", op, date, err)
}

// scanDate accepts the logdate column as text or, since the column is
// declared DATE, as a time value parsed by the driver.
func scanDate(v any) (entry.Date, error) {
	switch t := v.(type) {
	case time.Time:
		return entry.FromTime(t.UTC()), nil
	case string:
		return entry.ParseDate(t)
	case []byte:
		return entry.ParseDate(string(t))
	default:
		return entry.Date{}, fmt.Errorf("%w: logdate has type %T", ErrCodec, v)
	}
}
