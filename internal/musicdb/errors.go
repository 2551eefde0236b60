package musicdb

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicatePath means a song with the same device path is already indexed.
	ErrDuplicatePath = errors.New("duplicate path")
	// ErrConstraint is any other integrity failure while writing a song.
	ErrConstraint = errors.New("constraint violation")
	// ErrSchemaMissing means a required table is absent.
	ErrSchemaMissing = errors.New("schema missing")
)

// SchemaMissingError names the first required table not found in a database.
type SchemaMissingError struct {
	Table string
}

func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("table %q missing", e.Table)
}

func (e *SchemaMissingError) Unwrap() error {
	return ErrSchemaMissing
}
