// Package musicdb owns the on-disk index: schema creation, artist and album
// identity resolution, batched song writes and post-run verification.
package musicdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	dbutil "github.com/llehouerou/sdindex/internal/db"
)

// Tables lists the tables a valid index must contain, parents first.
var Tables = []string{"artists", "albums", "songs"}

const schema = `
	CREATE TABLE artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE albums (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		year INTEGER,
		FOREIGN KEY (artist_id) REFERENCES artists(id),
		UNIQUE(artist_id, name)
	);

	CREATE TABLE songs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		album_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		path TEXT NOT NULL UNIQUE,
		track_number INTEGER,
		duration INTEGER,
		file_size INTEGER,
		FOREIGN KEY (album_id) REFERENCES albums(id)
	);

	CREATE INDEX idx_songs_album ON songs(album_id);
	CREATE INDEX idx_albums_artist ON albums(artist_id);
	CREATE INDEX idx_songs_title ON songs(title);
	CREATE INDEX idx_artists_name ON artists(name);
`

// Create replaces any database at path with a fresh, empty index.
func Create(ctx context.Context, path string) (*sql.DB, error) {
	for _, p := range []string{path, path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove existing database: %w", err)
		}
	}

	database, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	if err := CreateSchema(ctx, database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// CreateSchema creates the tables and indexes in an empty database.
func CreateSchema(ctx context.Context, database *sql.DB) error {
	err := dbutil.WithTx(ctx, database, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
