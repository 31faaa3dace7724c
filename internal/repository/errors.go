package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate reports a unique constraint violation.
var ErrDuplicate = errors.New("duplicate record")

// translate maps driver-specific constraint errors onto ErrDuplicate.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(ErrDuplicate, err)
		}
		if strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed") {
			return errors.Join(ErrDuplicate, err)
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
