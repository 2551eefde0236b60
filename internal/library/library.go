// Package library finds the music files to index and answers the browse
// queries a playback device runs against a finished index.
package library

import (
	"database/sql"
)

// Artist is one row of the artists table.
type Artist struct {
	ID   int64
	Name string
}

// Album is one row of the albums table. Year is nil when unknown.
type Album struct {
	ID       int64
	ArtistID int64
	Name     string
	Year     *int
}

// Song is one row of the songs table.
type Song struct {
	ID          int64
	AlbumID     int64
	Title       string
	Path        string
	TrackNumber int
	Duration    int // seconds
	FileSize    int64
}

// Library reads an index database.
type Library struct {
	db *sql.DB
}

func New(db *sql.DB) *Library {
	return &Library{db: db}
}
