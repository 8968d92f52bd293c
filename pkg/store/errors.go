package store

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrStorageUnavailable means the backing medium could not be opened or created.
	ErrStorageUnavailable = errors.New("store: storage unavailable")
	// ErrCodec means a stored flow code is outside the known levels.
	ErrCodec = errors.New("store: stored flow code is not supported")
	// ErrConstraintViolation means the medium rejected a write, which the
	// upsert protocol should make impossible.
	ErrConstraintViolation = errors.New("store: constraint violation")
)

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
