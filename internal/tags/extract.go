package tags

import (
	"os"
	"time"
)

// Extract reads everything the index stores for one file: sanitized title,
// artist and album with their placeholders, track number, year, duration
// and size on disk.
//
// A tag that is present but sanitizes to an empty string counts as missing:
// an artist of "東京事変" is stored as UnknownArtist, and such a title falls
// back to the file name like an absent one.
//
// Any failure is returned as an *ExtractionError (matching ErrExtraction);
// the file then contributes nothing to the index.
func Extract(path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	audio, err := ReadAudioInfo(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	t, err := Read(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	t.applyDefaults()
	t.Sanitize()
	// A value made only of unsupported characters sanitizes to nothing.
	t.applyDefaults()
	t.Sanitize()

	m := &Metadata{
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber(),
		Duration:    int(audio.Duration / time.Second),
		FileSize:    info.Size(),
	}
	if year, ok := t.Year(); ok {
		m.Year = &year
	}
	return m, nil
}
