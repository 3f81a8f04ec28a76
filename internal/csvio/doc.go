// Package csvio provides the shared CSV record source and emitter used by
// every reelprep pipeline stage.
//
// A [Reader] parses a header-bearing CSV file into a lazy sequence of
// [domain.Record] values in file order. It is finite and not restartable;
// a stage that needs a second pass opens a fresh Reader.
//
// A [Writer] emits records to a new CSV file, creating missing parent
// directories of the output path first.
package csvio
