package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent fatal conditions detected before or during a pass.
// They are returned by the public API and can be checked with errors.Is.
var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("reelprep: input file not found")

	// ErrMissingHeader is returned when the input is empty or has no
	// parseable header row.
	ErrMissingHeader = errors.New("reelprep: input has no header row")
)

// SchemaError reports required columns that are absent from the input
// header. It carries the full list of available columns for diagnosis.
type SchemaError struct {
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing expected columns %s; available: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}
