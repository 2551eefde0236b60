package db

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// errorCode extracts the extended SQLite result code from err.
func errorCode(err error) (int, bool) {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	return sqliteErr.Code(), true
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func IsUniqueViolation(err error) bool {
	code, ok := errorCode(err)
	if !ok {
		return false
	}
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// IsConstraintViolation reports whether err is any kind of constraint failure
// (unique, not null, foreign key, check...).
func IsConstraintViolation(err error) bool {
	code, ok := errorCode(err)
	if !ok {
		return false
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT
}
