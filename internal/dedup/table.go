package dedup

import (
	"sort"

	"github.com/reeldata/reelprep/internal/domain"
)

// Key is the composite identity under which duplicate rows are grouped.
// Equality is exact string equality; no normalization is applied.
type Key struct {
	User string
	Item string
}

// Entry is one retained row together with its recency.
type Entry struct {
	Recency int64
	Record  domain.Record
}

// Table maps each composite key to the single retained row for that key.
// It only grows or replaces in place; entries are never removed. Memory
// is O(distinct keys), not O(total rows).
//
// Keys are also tracked in first-insertion order so that iteration is
// deterministic and the recency sort has a defined baseline order.
type Table struct {
	entries map[Key]Entry
	order   []Key
}

// NewTable creates an empty retention table.
func NewTable() *Table {
	return &Table{entries: make(map[Key]Entry)}
}

// Insert applies the newest-wins rule. An absent key is inserted
// unconditionally. A present key is replaced iff the new recency is >=
// the stored one; the >= (not >) ties toward the later-encountered row
// in input order.
func (t *Table) Insert(key Key, recency int64, rec domain.Record) {
	cur, ok := t.entries[key]
	if !ok {
		t.entries[key] = Entry{Recency: recency, Record: rec}
		t.order = append(t.order, key)
		return
	}
	if recency >= cur.Recency {
		t.entries[key] = Entry{Recency: recency, Record: rec}
	}
}

// Len returns the number of distinct keys retained.
func (t *Table) Len() int {
	return len(t.entries)
}

// Get returns the retained entry for a key.
func (t *Table) Get(key Key) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Entries returns the retained rows. With byRecency false the order is
// first-insertion order; with byRecency true entries are stably sorted by
// recency ascending, so equal recencies keep their insertion-relative
// order and output is byte-reproducible across runs.
func (t *Table) Entries(byRecency bool) []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.entries[k])
	}
	if byRecency {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Recency < out[j].Recency
		})
	}
	return out
}
