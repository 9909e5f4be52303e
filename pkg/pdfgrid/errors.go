package pdfgrid

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable PDF.
var ErrInvalidFormat = errors.New("invalid pdf format")

// ErrNothingExtractable indicates the document holds no usable text.
// Conversion itself never returns it; callers use it to report an empty result.
var ErrNothingExtractable = errors.New("no extractable text found")

// ExtractionError represents an error during conversion.
type ExtractionError struct {
	Page  int    // 0 when the failure is not tied to a page
	Stage string // "open", "text"
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extraction error on page %d (%s): %v", e.Page, e.Stage, e.Err)
	}
	return fmt.Sprintf("extraction error (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(page int, stage string, err error) *ExtractionError {
	return &ExtractionError{
		Page:  page,
		Stage: stage,
		Err:   err,
	}
}
