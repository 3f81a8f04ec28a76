package domain

// Record is one CSV row: an ordered mapping from column name to value.
// Column order follows the header of the file the record was read from,
// so emitting a record reproduces the source column layout.
type Record struct {
	header []string
	vals   map[string]string
}

// NewRecord builds a Record over the given header. The header slice is
// shared between all records of one file and must not be mutated.
func NewRecord(header []string, vals map[string]string) Record {
	return Record{header: header, vals: vals}
}

// Header returns the column names in file order.
func (r Record) Header() []string {
	return r.header
}

// Get returns the value for a column, or "" if the column is absent.
func (r Record) Get(col string) string {
	return r.vals[col]
}

// Values returns the row values in header order, ready for CSV emission.
func (r Record) Values() []string {
	out := make([]string, len(r.header))
	for i, col := range r.header {
		out[i] = r.vals[col]
	}
	return out
}
