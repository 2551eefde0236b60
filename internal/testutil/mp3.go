package testutil

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// mp3FrameSize is the length of one MPEG1 Layer III frame at 128kbps/44100Hz
// without padding. Each frame holds 1152 samples.
const mp3FrameSize = 417

// ID3 holds the text frames written into a test MP3. Empty fields are not written.
type ID3 struct {
	Title  string
	Artist string
	Album  string
	Track  string // TRCK
	Date   string // TDRC
}

// MinimalMP3 returns a silent MP3 stream of the given number of frames.
func MinimalMP3(frames int) []byte {
	frames = max(frames, 1)
	frame := make([]byte, mp3FrameSize)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	frame[3] = 0x00
	return bytes.Repeat(frame, frames)
}

// WriteMP3 creates a single-frame MP3 at path and tags it with tags.
// A nil tags leaves the file untagged.
func WriteMP3(t *testing.T, path string, tags *ID3) string {
	t.Helper()
	return WriteMP3Frames(t, path, 1, tags)
}

// WriteMP3Frames is WriteMP3 with a chosen stream length
// (about 38 frames per second of audio).
func WriteMP3Frames(t *testing.T, path string, frames int, tags *ID3) string {
	t.Helper()
	WriteFile(t, path, MinimalMP3(frames))
	if tags != nil {
		TagMP3(t, path, *tags)
	}
	return path
}

// TagMP3 writes ID3v2.4 UTF-8 text frames into an existing file.
func TagMP3(t *testing.T, path string, tags ID3) {
	t.Helper()

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to open %s for tagging: %v", filepath.Base(path), err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	frames := []struct {
		id    string
		value string
	}{
		{"TIT2", tags.Title},
		{"TPE1", tags.Artist},
		{"TALB", tags.Album},
		{"TRCK", tags.Track},
		{"TDRC", tags.Date},
	}
	for _, f := range frames {
		if f.value != "" {
			tag.AddTextFrame(f.id, id3v2.EncodingUTF8, f.value)
		}
	}

	if err := tag.Save(); err != nil {
		t.Fatalf("failed to save ID3 tags: %v", err)
	}
}
