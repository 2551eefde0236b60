// Package tags reads the metadata the indexer needs from MP3 files and
// normalizes its text for the player's display.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ExtMP3 is the only container format the player can decode.
const ExtMP3 = ".mp3"

// Placeholders stored when a file carries no usable value.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Tag contains the raw tag values read from a music file.
// Track and Date are kept as written in the file and parsed on demand.
type Tag struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Track  string // "N" or "N/Total"
	Date   string // YYYY, YYYY-MM-DD, ...
}

// TrackNumber parses the number before an optional "/" separator.
// Returns 0 if Track is empty or not a number.
func (t *Tag) TrackNumber() int {
	num, _ := parseTrackNumber(t.Track)
	return num
}

// Year parses the leading four characters of Date.
// The boolean is false when Date is empty or does not start with a year.
func (t *Tag) Year() (int, bool) {
	if t.Date == "" {
		return 0, false
	}
	year := []rune(t.Date)
	if len(year) > 4 {
		year = year[:4]
	}
	y, err := strconv.Atoi(strings.TrimSpace(string(year)))
	if err != nil {
		return 0, false
	}
	return y, true
}

// applyDefaults fills empty fields with their placeholder values.
// A missing title falls back to the file's base name.
func (t *Tag) applyDefaults() {
	if t.Title == "" {
		t.Title = filepath.Base(t.Path)
	}
	if t.Artist == "" {
		t.Artist = UnknownArtist
	}
	if t.Album == "" {
		t.Album = UnknownAlbum
	}
}

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration   time.Duration
	SampleRate int
}

// Metadata is everything the indexer stores for one song.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Year        *int // nil when the file has no parseable date
	Duration    int  // seconds, truncated
	FileSize    int64
}

// IsMusicFile returns true if the path has the supported music file extension.
// The comparison is case-insensitive.
func IsMusicFile(path string) bool {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return false
	}
	return strings.EqualFold(path[idx:], ExtMP3)
}

// parseTrackNumber parses a track number string like "5" or "5/10".
func parseTrackNumber(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}
