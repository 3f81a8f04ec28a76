package dedup

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/reeldata/reelprep/internal/csvio"
	"github.com/reeldata/reelprep/internal/progress"
)

// Config holds the parameters for one deduplication pass.
type Config struct {
	Input  string
	Output string

	// Column names for the composite key and the recency value. The
	// rating column is validated for presence only; its value passes
	// through unexamined.
	UserCol      string
	ItemCol      string
	TimestampCol string
	RatingCol    string

	// SortByRecency writes output rows sorted by recency ascending
	// instead of table order, making the file reproducible across runs.
	SortByRecency bool
}

// Result summarizes a completed pass.
type Result struct {
	// Total is the number of data rows scanned.
	Total int64

	// Kept is the number of rows written, one per distinct key.
	Kept int64
}

// Run executes a full deduplication pass: scan every input row into the
// retention table, then emit the table once. Schema validation happens
// before the output path is touched, so a schema mismatch leaves no
// partial output behind.
func Run(cfg Config, log zerolog.Logger, prog progress.Reporter) (Result, error) {
	r, err := csvio.Open(cfg.Input)
	if err != nil {
		return Result{}, err
	}
	defer r.Close()

	required := []string{cfg.UserCol, cfg.ItemCol, cfg.TimestampCol, cfg.RatingCol}
	if err := CheckSchema(r.Header(), required...); err != nil {
		return Result{}, err
	}

	table := NewTable()
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, err
		}

		key := Key{User: rec.Get(cfg.UserCol), Item: rec.Get(cfg.ItemCol)}
		recency := parseRecency(rec.Get(cfg.TimestampCol), log)
		table.Insert(key, recency, rec)
		prog.Advance(1)
	}
	prog.Finish()

	w, err := csvio.Create(cfg.Output, r.Header())
	if err != nil {
		return Result{}, err
	}

	for _, e := range table.Entries(cfg.SortByRecency) {
		if err := w.Write(e.Record); err != nil {
			w.Close()
			return Result{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Result{}, err
	}

	res := Result{Total: r.Rows(), Kept: int64(table.Len())}
	log.Info().
		Int64("total", res.Total).
		Int64("kept", res.Kept).
		Str("output", cfg.Output).
		Msg("deduplication complete")
	return res, nil
}
