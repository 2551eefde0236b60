package musicdb

import (
	"path/filepath"
	"strings"
)

// DefaultRootLabel is the folder the device mounts the music tree under.
const DefaultRootLabel = "Music"

// DevicePath builds the path stored for a song: the root label followed by
// the path relative to the scanned folder, always with forward slashes.
func DevicePath(label, rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	label = strings.TrimSuffix(label, "/")
	if label == "" {
		return rel
	}
	return label + "/" + rel
}
