// Package dedup implements the newest-wins record deduplication pass.
//
// Rows are grouped by a composite (user, item) key and reduced to the
// single row with the highest timestamp per key; timestamp ties go to the
// later-encountered row in input order. Memory scales with the number of
// distinct keys, not total rows.
//
// # Algorithm
//
// One full pass over the input accumulates the winning row per key in a
// [Table]. Emission starts only after the scan completes, because any
// later row can still supersede an earlier one for the same key.
package dedup
