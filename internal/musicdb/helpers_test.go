package musicdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/sdindex/internal/tags"
)

func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "music.db")
	database, err := Create(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, path
}

func song(title, artist, album string, year *int) *tags.Metadata {
	return &tags.Metadata{
		Title:    title,
		Artist:   artist,
		Album:    album,
		Year:     year,
		Duration: 180,
		FileSize: 4096,
	}
}

func intPtr(v int) *int {
	return &v
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
