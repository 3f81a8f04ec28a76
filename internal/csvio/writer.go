package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reeldata/reelprep/internal/domain"
)

// Writer emits records to a CSV file using a fixed header.
type Writer struct {
	f      *os.File
	cw     *csv.Writer
	header []string
	rows   int64
}

// Create opens the output path for writing, creating any missing parent
// directories, and writes the header row. Directory creation is idempotent.
func Create(path string, header []string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header to %s: %w", path, err)
	}

	return &Writer{f: f, cw: cw, header: header}, nil
}

// Write emits one record, projecting its values onto the writer's header.
func (w *Writer) Write(rec domain.Record) error {
	vals := make([]string, len(w.header))
	for i, col := range w.header {
		vals[i] = rec.Get(col)
	}
	if err := w.cw.Write(vals); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written (excluding the header).
func (w *Writer) Rows() int64 {
	return w.rows
}

// Close flushes buffered rows and closes the file. The flush error, if
// any, takes precedence over the close error so write failures surface.
func (w *Writer) Close() error {
	w.cw.Flush()
	flushErr := w.cw.Error()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush output: %w", flushErr)
	}
	return closeErr
}
