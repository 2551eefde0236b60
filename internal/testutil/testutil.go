// Package testutil provides fixtures shared by the package tests: tagged
// MP3 files and music folder trees built in a temporary directory.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content, creating parent
// directories as needed.
func WriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Touch creates an empty file, creating parent directories as needed.
func Touch(t *testing.T, path string) {
	t.Helper()
	WriteFile(t, path, nil)
}
