package tags

import (
	"errors"
	"fmt"
)

// ErrExtraction marks a file whose metadata or audio stream could not be read.
var ErrExtraction = errors.New("metadata extraction failed")

// ExtractionError records which file failed and why.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}
