// Package userfilter removes rows belonging to low-activity users.
//
// It is a two-pass stage sharing the csvio source/emitter contracts: pass
// one folds the input into a per-user row count, pass two streams rows
// whose user meets the threshold to the output in input order.
package userfilter

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/reeldata/reelprep/internal/csvio"
	"github.com/reeldata/reelprep/internal/dedup"
	"github.com/reeldata/reelprep/internal/progress"
)

// Config holds the parameters for one filter run.
type Config struct {
	Input   string
	Output  string
	UserCol string

	// Threshold is the minimum number of rows a user must have for any
	// of their rows to be kept. Must be >= 1.
	Threshold int
}

// Result summarizes a completed filter run.
type Result struct {
	Total     int64
	Kept      int64
	UsersKept int64
}

// countByUser is the first pass: fold the input into a user -> row count
// side table. The reader is not restartable, so the second pass opens a
// fresh one.
func countByUser(path, userCol string) (map[string]int64, error) {
	r, err := csvio.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := dedup.CheckSchema(r.Header(), userCol); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		counts[rec.Get(userCol)]++
	}
	return counts, nil
}

// Run executes both passes.
func Run(cfg Config, log zerolog.Logger, prog progress.Reporter) (Result, error) {
	if cfg.Threshold < 1 {
		return Result{}, fmt.Errorf("threshold must be >= 1, got %d", cfg.Threshold)
	}

	counts, err := countByUser(cfg.Input, cfg.UserCol)
	if err != nil {
		return Result{}, err
	}

	keep := make(map[string]bool, len(counts))
	for user, n := range counts {
		if n >= int64(cfg.Threshold) {
			keep[user] = true
		}
	}

	r, err := csvio.Open(cfg.Input)
	if err != nil {
		return Result{}, err
	}
	defer r.Close()

	w, err := csvio.Create(cfg.Output, r.Header())
	if err != nil {
		return Result{}, err
	}

	var kept int64
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			w.Close()
			return Result{}, err
		}
		if keep[rec.Get(cfg.UserCol)] {
			if err := w.Write(rec); err != nil {
				w.Close()
				return Result{}, err
			}
			kept++
		}
		prog.Advance(1)
	}
	prog.Finish()

	if err := w.Close(); err != nil {
		return Result{}, err
	}

	res := Result{Total: r.Rows(), Kept: kept, UsersKept: int64(len(keep))}
	log.Info().
		Int64("total", res.Total).
		Int64("kept", res.Kept).
		Int64("users_kept", res.UsersKept).
		Str("output", cfg.Output).
		Msg("low-activity filter complete")
	return res, nil
}
