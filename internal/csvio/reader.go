package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reeldata/reelprep/internal/domain"
)

// Reader produces records from a header-bearing CSV file in file order.
// It holds the file handle open for the duration of iteration; callers
// must Close it on every exit path.
type Reader struct {
	f      *os.File
	cr     *csv.Reader
	header []string
	rows   int64
}

// Open opens a CSV file and parses its header row.
// Returns domain.ErrInputNotFound if the path does not exist and
// domain.ErrMissingHeader if the file is empty.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingHeader, path)
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	return &Reader{f: f, cr: cr, header: header}, nil
}

// Header returns the column names from the first row of the file.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next record in file order.
// Returns io.EOF when the input is exhausted.
func (r *Reader) Next() (domain.Record, error) {
	row, err := r.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Record{}, io.EOF
		}
		return domain.Record{}, fmt.Errorf("read row %d: %w", r.rows+2, err)
	}
	r.rows++

	vals := make(map[string]string, len(r.header))
	for i, col := range r.header {
		if i < len(row) {
			vals[col] = row[i]
		}
	}
	return domain.NewRecord(r.header, vals), nil
}

// Rows returns the number of data rows read so far (excluding the header).
func (r *Reader) Rows() int64 {
	return r.rows
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}
