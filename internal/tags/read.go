package tags

import (
	"errors"
	"os"
	"strconv"

	"github.com/dhowden/tag"
)

// Frame names holding the track number and the release date, covering
// ID3v2.4/2.3 (four letters), ID3v2.2 (three letters) and ID3v1.
var (
	trackKeys = []string{"TRCK", "TRK", "track"}
	dateKeys  = []string{"TDRC", "TYER", "TYE", "year"}
)

// Read reads tag metadata from a music file.
// It returns only tag metadata, not audio stream properties. A file without
// any tag yields an empty Tag, not an error.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return &Tag{Path: path}, nil
	}
	if err != nil {
		// dhowden/tag has issues with some UTF-16 encoded ID3 tags
		return readMP3WithID3v2Fallback(path)
	}

	t := &Tag{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Track:  rawText(m, trackKeys...),
		Date:   rawText(m, dateKeys...),
	}
	return t, nil
}

// rawText returns the first non-empty raw frame value among keys.
// ID3v1 stores the track as an int, so numbers are formatted back to text.
func rawText(m tag.Metadata, keys ...string) string {
	raw := m.Raw()
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case int:
			if v > 0 {
				return strconv.Itoa(v)
			}
		}
	}
	return ""
}
