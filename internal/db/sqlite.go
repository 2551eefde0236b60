// Package db holds the SQLite plumbing shared by the writer and the readers
// of the music database.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "modernc.org/sqlite" // SQLite driver
)

// pragmas are applied to every connection through the DSN so they hold
// regardless of which pooled connection serves a statement.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(DELETE)",
}

// DSN builds the driver data source name for a database file.
// extra pragmas are applied after the defaults.
func DSN(path string, extra ...string) string {
	q := url.Values{}
	for _, p := range append(pragmas, extra...) {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// Open opens (creating if needed) the SQLite database at path.
// The pool is limited to a single connection: the indexer is a single writer
// and the device-side readers never need more.
func Open(path string) (*sql.DB, error) {
	return open(DSN(path))
}

// OpenReadOnly opens an existing database and rejects every write on it.
func OpenReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return open(DSN(path, "query_only(1)"))
}

func open(dsn string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return database, nil
}
