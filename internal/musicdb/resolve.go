package musicdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbutil "github.com/llehouerou/sdindex/internal/db"
)

// Querier runs single-row queries. *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ResolveArtist returns the id of the artist with exactly this name,
// creating the artist if needed.
func ResolveArtist(ctx context.Context, q Querier, name string) (int64, error) {
	id, err := getOrCreate(ctx, q,
		`SELECT id FROM artists WHERE name = ?`,
		`INSERT INTO artists (name) VALUES (?) ON CONFLICT DO NOTHING RETURNING id`,
		[]any{name}, []any{name},
	)
	if err != nil {
		return 0, fmt.Errorf("resolve artist %q: %w", name, err)
	}
	return id, nil
}

// ResolveAlbum returns the id of the album with this name under artistID,
// creating it with year if needed. An existing album keeps the year it was
// created with.
func ResolveAlbum(ctx context.Context, q Querier, artistID int64, name string, year *int) (int64, error) {
	id, err := getOrCreate(ctx, q,
		`SELECT id FROM albums WHERE artist_id = ? AND name = ?`,
		`INSERT INTO albums (artist_id, name, year) VALUES (?, ?, ?) ON CONFLICT DO NOTHING RETURNING id`,
		[]any{artistID, name}, []any{artistID, name, dbutil.IntPtrToNullInt64(year)},
	)
	if err != nil {
		return 0, fmt.Errorf("resolve album %q: %w", name, err)
	}
	return id, nil
}

// getOrCreate looks a row up, inserts it when absent, and looks it up again
// when the insert lost a race against another writer.
func getOrCreate(ctx context.Context, q Querier, lookup, insert string, keyArgs, insertArgs []any) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, lookup, keyArgs...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = q.QueryRowContext(ctx, insert, insertArgs...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = q.QueryRowContext(ctx, lookup, keyArgs...).Scan(&id)
	return id, err
}
