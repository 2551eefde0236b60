package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/llehouerou/go-mp3"
)

// ReadAudioInfo reads audio stream properties (duration, sample rate).
// A file that does not decode as an MPEG audio stream is an error.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	if !IsMusicFile(path) {
		return nil, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readMP3AudioInfo(f)
}

// readMP3AudioInfo extracts audio info from an MP3 file.
func readMP3AudioInfo(f *os.File) (*AudioInfo, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}

	sampleCount := max(decoder.SampleCount(), 0)

	duration := time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second))

	return &AudioInfo{
		Duration:   duration,
		SampleRate: sampleRate,
	}, nil
}
