package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConstraintDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "constraints.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`
		CREATE TABLE parents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE children (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_id INTEGER NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES parents(id)
		);
	`)
	require.NoError(t, err)
	return database
}

func TestIsUniqueViolation(t *testing.T) {
	database := setupConstraintDB(t)

	_, err := database.Exec(`INSERT INTO parents (name) VALUES (?)`, "a")
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO parents (name) VALUES (?)`, "a")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsConstraintViolation(err))
}

func TestIsConstraintViolation_ForeignKey(t *testing.T) {
	database := setupConstraintDB(t)

	_, err := database.Exec(`INSERT INTO children (parent_id) VALUES (?)`, 42)
	require.Error(t, err, "foreign keys must be enforced")
	assert.False(t, IsUniqueViolation(err))
	assert.True(t, IsConstraintViolation(err))
}

func TestIsConstraintViolation_NotNull(t *testing.T) {
	database := setupConstraintDB(t)

	_, err := database.Exec(`INSERT INTO parents (name) VALUES (NULL)`)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))
	assert.True(t, IsConstraintViolation(err))
}

func TestConstraintHelpers_NonSQLiteErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsConstraintViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed")))
	assert.False(t, IsConstraintViolation(errors.New("constraint failed")))
}

func TestDSN_CarriesPragmas(t *testing.T) {
	dsn := DSN("/tmp/music.db")
	assert.Contains(t, dsn, "/tmp/music.db?")
	assert.Contains(t, dsn, "_pragma=foreign_keys%281%29")
}
