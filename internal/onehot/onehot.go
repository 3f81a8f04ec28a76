// Package onehot expands a pipe-delimited genre column into fixed
// presence/absence flag columns, one per known genre. The stage is
// stateless per row and shares the csvio source/emitter contracts.
package onehot

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reeldata/reelprep/internal/csvio"
	"github.com/reeldata/reelprep/internal/dedup"
	"github.com/reeldata/reelprep/internal/domain"
	"github.com/reeldata/reelprep/internal/progress"
)

// noGenres is the MovieLens placeholder for an unlabeled title. The exact
// string matters: it becomes a CSV column header.
const noGenres = "(no genres listed)"

// Genres is the MovieLens genre vocabulary. Column headers use these
// exact strings; change them only if the dataset uses different names.
var Genres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Children",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Fantasy",
	"Film-Noir",
	"Horror",
	"Musical",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Thriller",
	"War",
	"Western",
	noGenres,
}

// Config holds the parameters for one encoding run.
type Config struct {
	Input    string
	Output   string
	GenreCol string

	// SortGenres orders the flag columns alphabetically instead of the
	// vocabulary order above.
	SortGenres bool
}

// splitGenres parses one genre cell into the set of present genres. A
// case-insensitive placeholder entry collapses the set to the placeholder
// alone so exactly one flag column is set for unlabeled titles.
func splitGenres(raw string) map[string]bool {
	present := make(map[string]bool)
	for _, g := range strings.Split(raw, "|") {
		g = strings.TrimSpace(g)
		if g != "" {
			present[g] = true
		}
	}
	for g := range present {
		if strings.EqualFold(g, noGenres) {
			return map[string]bool{noGenres: true}
		}
	}
	return present
}

// Run encodes the input file. Returns the number of rows written.
func Run(cfg Config, log zerolog.Logger, prog progress.Reporter) (int64, error) {
	genres := Genres
	if cfg.SortGenres {
		genres = append([]string(nil), Genres...)
		sort.Strings(genres)
	}

	r, err := csvio.Open(cfg.Input)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if err := dedup.CheckSchema(r.Header(), cfg.GenreCol); err != nil {
		return 0, err
	}

	// Output header: original columns minus the genre column, then one
	// flag column per genre.
	var other []string
	for _, col := range r.Header() {
		if col != cfg.GenreCol {
			other = append(other, col)
		}
	}
	header := append(append([]string(nil), other...), genres...)

	w, err := csvio.Create(cfg.Output, header)
	if err != nil {
		return 0, err
	}

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			w.Close()
			return 0, err
		}

		vals := make(map[string]string, len(header))
		for _, col := range other {
			vals[col] = rec.Get(col)
		}
		present := splitGenres(rec.Get(cfg.GenreCol))
		for _, g := range genres {
			if present[g] {
				vals[g] = "1"
			} else {
				vals[g] = "0"
			}
		}
		if err := w.Write(domain.NewRecord(header, vals)); err != nil {
			w.Close()
			return 0, err
		}
		prog.Advance(1)
	}
	prog.Finish()

	if err := w.Close(); err != nil {
		return 0, err
	}

	log.Info().
		Int64("rows", w.Rows()).
		Int("genres", len(genres)).
		Str("output", cfg.Output).
		Msg("one-hot encoding complete")
	return w.Rows(), nil
}
