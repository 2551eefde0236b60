package tags

import (
	"errors"
	"fmt"

	"github.com/bogem/id3v2/v2"
	"go.senan.xyz/taglib"
)

// readMP3WithID3v2Fallback reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
// TagLib is the last resort when id3v2 cannot parse the tag either.
func readMP3WithID3v2Fallback(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t, taglibErr := readMP3WithTaglib(path)
		if taglibErr != nil {
			return nil, errors.Join(fmt.Errorf("id3v2: %w", err), fmt.Errorf("taglib: %w", taglibErr))
		}
		return t, nil
	}
	defer id3tag.Close()

	date := getID3TextFrame(id3tag, "TDRC") // ID3v2.4 recording date
	if date == "" {
		date = getID3TextFrame(id3tag, "TYER") // ID3v2.3 year
	}

	return &Tag{
		Path:   path,
		Title:  id3tag.Title(),
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
		Track:  getID3TextFrame(id3tag, "TRCK"),
		Date:   date,
	}, nil
}

// readMP3WithTaglib reads MP3 metadata through TagLib's property map.
func readMP3WithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	return &Tag{
		Path:   path,
		Title:  tags.get(taglib.Title),
		Artist: tags.get(taglib.Artist),
		Album:  tags.get(taglib.Album),
		Track:  tags.get(taglib.TrackNumber),
		Date:   tags.get(taglib.Date),
	}, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
