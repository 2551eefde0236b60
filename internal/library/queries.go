package library

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/sdindex/internal/db"
)

// Artists returns every artist ordered by name, ignoring case.
func (l *Library) Artists(ctx context.Context) ([]Artist, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, name FROM artists ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// Albums returns the albums of the named artist, oldest first.
// Albums without a year sort before dated ones, as SQLite orders NULL first.
func (l *Library) Albums(ctx context.Context, artist string) ([]Album, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT albums.id, albums.artist_id, albums.name, albums.year
		FROM albums
		JOIN artists ON albums.artist_id = artists.id
		WHERE artists.name = ?
		ORDER BY albums.year, albums.name COLLATE NOCASE
	`, artist)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var a Album
		var year sql.NullInt64
		if err := rows.Scan(&a.ID, &a.ArtistID, &a.Name, &year); err != nil {
			return nil, err
		}
		a.Year = dbutil.NullInt64ToIntPtr(year)
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// Songs returns the songs of one album in track order.
func (l *Library) Songs(ctx context.Context, artist, album string) ([]Song, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT songs.id, songs.album_id, songs.title, songs.path,
			songs.track_number, songs.duration, songs.file_size
		FROM songs
		JOIN albums ON songs.album_id = albums.id
		JOIN artists ON albums.artist_id = artists.id
		WHERE artists.name = ? AND albums.name = ?
		ORDER BY songs.track_number, songs.title COLLATE NOCASE
	`, artist, album)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var s Song
		var trackNum, duration, size sql.NullInt64
		if err := rows.Scan(&s.ID, &s.AlbumID, &s.Title, &s.Path,
			&trackNum, &duration, &size); err != nil {
			return nil, err
		}
		s.TrackNumber = int(dbutil.NullInt64Value(trackNum))
		s.Duration = int(dbutil.NullInt64Value(duration))
		s.FileSize = dbutil.NullInt64Value(size)
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// SongCount returns the total number of songs.
func (l *Library) SongCount(ctx context.Context) (int, error) {
	return l.count(ctx, `SELECT COUNT(*) FROM songs`)
}

// ArtistCount returns the total number of artists.
func (l *Library) ArtistCount(ctx context.Context) (int, error) {
	return l.count(ctx, `SELECT COUNT(*) FROM artists`)
}

// AlbumCount returns the total number of albums.
func (l *Library) AlbumCount(ctx context.Context) (int, error) {
	return l.count(ctx, `SELECT COUNT(*) FROM albums`)
}

func (l *Library) count(ctx context.Context, query string) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
