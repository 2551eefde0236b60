package musicdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbutil "github.com/llehouerou/sdindex/internal/db"
)

// sampleSize is the number of rows shown per table by Verify.
const sampleSize = 5

// Pair is a name shown with the artist that owns it.
type Pair struct {
	Name   string
	Artist string
}

// Report is what Verify found in an index.
type Report struct {
	Tables  []string // tables checked, all present
	Artists []string
	Albums  []Pair
	Songs   []Pair
}

// Verify opens the index at path read-only, checks every table exists and
// samples a few rows of each. A missing table is a *SchemaMissingError.
func Verify(ctx context.Context, path string) (*Report, error) {
	database, err := dbutil.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return VerifyDB(ctx, database)
}

// VerifyDB is Verify on an open database.
func VerifyDB(ctx context.Context, database *sql.DB) (*Report, error) {
	report := &Report{}
	for _, table := range Tables {
		var name string
		err := database.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &SchemaMissingError{Table: table}
		}
		if err != nil {
			return nil, fmt.Errorf("check table %s: %w", table, err)
		}
		report.Tables = append(report.Tables, table)
	}

	var err error
	report.Artists, err = sampleNames(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("sample artists: %w", err)
	}

	report.Albums, err = samplePairs(ctx, database, `
		SELECT albums.name, artists.name
		FROM albums
		JOIN artists ON albums.artist_id = artists.id
		LIMIT ?
	`)
	if err != nil {
		return nil, fmt.Errorf("sample albums: %w", err)
	}

	report.Songs, err = samplePairs(ctx, database, `
		SELECT songs.title, artists.name
		FROM songs
		JOIN albums ON songs.album_id = albums.id
		JOIN artists ON albums.artist_id = artists.id
		LIMIT ?
	`)
	if err != nil {
		return nil, fmt.Errorf("sample songs: %w", err)
	}

	return report, nil
}

func sampleNames(ctx context.Context, database *sql.DB) ([]string, error) {
	rows, err := database.QueryContext(ctx, `SELECT name FROM artists LIMIT ?`, sampleSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func samplePairs(ctx context.Context, database *sql.DB, query string) ([]Pair, error) {
	rows, err := database.QueryContext(ctx, query, sampleSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Name, &p.Artist); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
