package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Writer emits CSV exports. Output is UTF-8 with an optional BOM so
// spreadsheet tools pick the right encoding.
type Writer struct {
	w       *csv.Writer
	started bool
	withBOM bool
	out     io.Writer
}

// WriterOption is a functional option for Writer configuration
type WriterOption func(*Writer)

// WithBOM prefixes the output with a UTF-8 byte order mark
func WithBOM(enabled bool) WriterOption {
	return func(w *Writer) {
		w.withBOM = enabled
	}
}

// NewWriter creates a CSV writer over out
func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	writer := &Writer{
		w:   csv.NewWriter(out),
		out: out,
	}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// WriteHeader writes the header row. Must be the first write.
func (w *Writer) WriteHeader(headers []string) error {
	if w.started {
		return fmt.Errorf("header must be written before any records")
	}
	if w.withBOM {
		if _, err := w.out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	w.started = true
	return w.w.Write(headers)
}

// WriteRecord writes a single data row
func (w *Writer) WriteRecord(record []string) error {
	w.started = true
	return w.w.Write(record)
}

// Flush flushes buffered rows and reports any write error
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// BuildCSV renders a complete CSV document in memory
func BuildCSV(headers []string, records [][]string, opts ...WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf, opts...)
	if err := w.WriteHeader(headers); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.WriteRecord(record); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
