package csvio

import (
	"errors"
	"fmt"
)

// Import error codes surfaced to API clients
const (
	ErrCodeInvalidFile     = "ERR_IMPORT_INVALID_FILE"
	ErrCodeEmptyFile       = "ERR_IMPORT_EMPTY_FILE"
	ErrCodeInvalidEncoding = "ERR_IMPORT_INVALID_ENCODING"
	ErrCodeMissingHeader   = "ERR_IMPORT_MISSING_HEADER"
	ErrCodeMalformedRow    = "ERR_IMPORT_MALFORMED_ROW"
)

var (
	// ErrEmptyFile is returned when the uploaded file has no content
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("file must be UTF-8 encoded")

	// ErrMissingHeader is returned when the file has no header row
	ErrMissingHeader = errors.New("missing header row")
)

// RowError records a failure for a single data row
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// NewRowError creates a row error
func NewRowError(line int, column, message string) RowError {
	return RowError{Line: line, Column: column, Message: message}
}
