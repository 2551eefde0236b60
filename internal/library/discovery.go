package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/sdindex/internal/tags"
)

// ErrInvalidInput is returned when the scan root is missing or is not a directory.
var ErrInvalidInput = errors.New("invalid input")

// systemFiles are operating system metadata entries that never hold music.
var systemFiles = map[string]bool{
	".DS_Store":       true,
	".Spotlight-V100": true,
	".Trashes":        true,
}

// File is a music file found under the scan root.
type File struct {
	Path    string // absolute
	RelPath string // relative to the scan root, host separators
}

// SkipReason tells why a file was left out of a Discovery.
type SkipReason int

const (
	SkipSystem    SkipReason = iota // hidden, resource fork or OS metadata
	SkipWrongType                   // not an MP3
)

func (r SkipReason) String() string {
	switch r {
	case SkipSystem:
		return "system file"
	case SkipWrongType:
		return "not an mp3"
	}
	return "unknown"
}

// Discovery is the result of walking a music folder.
type Discovery struct {
	Root             string // absolute
	Files            []File
	SystemSkipped    int
	WrongTypeSkipped int
}

// DiscoverOptions tunes Discover.
type DiscoverOptions struct {
	// OnSkip, if set, is called for every file left out.
	OnSkip func(name string, reason SkipReason)
}

// Discover walks root in lexical order and returns the MP3 files under it.
// Directories whose name starts with a dot are not descended into, and a
// symbolic link to a directory is neither followed nor counted.
// Unreadable entries are ignored so one bad directory does not stop the scan.
// The walk stops with ctx.Err() when ctx is canceled.
func Discover(ctx context.Context, root string, opts DiscoverOptions) (*Discovery, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: music folder not found: %s", ErrInvalidInput, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidInput, root)
	}

	d := &Discovery{Root: abs}
	skip := func(name string, reason SkipReason) {
		switch reason {
		case SkipSystem:
			d.SystemSkipped++
		case SkipWrongType:
			d.WrongTypeSkipped++
		}
		if opts.OnSkip != nil {
			opts.OnSkip(name, reason)
		}
	}

	err = filepath.WalkDir(abs, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if entry != nil && entry.IsDir() && path != abs {
				return fs.SkipDir
			}
			return nil //nolint:nilerr // intentionally skipping errors
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != abs && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if isDirLink(path, entry) {
			return nil
		}

		if isSystemFile(name) {
			skip(name, SkipSystem)
			return nil
		}
		if !tags.IsMusicFile(name) {
			skip(name, SkipWrongType)
			return nil
		}

		d.Files = append(d.Files, File{
			Path:    path,
			RelPath: relativePath(abs, path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// isDirLink reports whether entry is a symbolic link that resolves to a directory.
func isDirLink(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isSystemFile reports whether name is a resource fork sidecar, an OS
// metadata file or any other hidden file.
func isSystemFile(name string) bool {
	return strings.HasPrefix(name, "._") ||
		systemFiles[name] ||
		strings.HasPrefix(name, ".")
}

// relativePath returns the path relative to root, or the full path if not under root.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
