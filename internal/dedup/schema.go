package dedup

import "github.com/reeldata/reelprep/internal/domain"

// CheckSchema verifies that every required column is present in the
// header. It runs once before a scan begins, never per row. On failure it
// returns a *domain.SchemaError listing the missing and available columns.
func CheckSchema(header []string, required ...string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &domain.SchemaError{Missing: missing, Available: header}
	}
	return nil
}
