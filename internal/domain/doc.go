// Package domain contains the core entities and error taxonomy for reelprep.
//
// It has no dependencies on infrastructure concerns (CSV parsing, logging,
// the network) and holds only the row model and the error values shared by
// every pipeline stage.
//
// # Entities
//
//   - [Record]: one CSV row, an ordered mapping from column name to value
//
// # Errors
//
//   - [ErrInputNotFound]: input path does not exist at open time
//   - [ErrMissingHeader]: input file is empty or has no header row
//   - [SchemaError]: one or more required columns absent from the header
package domain
