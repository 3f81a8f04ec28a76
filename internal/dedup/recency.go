package dedup

import (
	"math"
	"strconv"

	"github.com/rs/zerolog"
)

// MinRecency is the fallback recency for unparsable timestamp values.
// Rows carrying it are treated as oldest: they only survive when no
// competing row for the same key exists.
const MinRecency int64 = math.MinInt64

// parseRecency converts a raw timestamp cell to a comparable recency.
//
// Three-tier policy: integer parse; then decimal parse truncated toward
// zero; then a non-fatal warning and MinRecency. Dirty timestamp data
// deprioritizes a row but never aborts the run.
func parseRecency(raw string, log zerolog.Logger) int64 {
	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ts
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(f)
	}
	log.Warn().Str("value", raw).Msg("could not parse timestamp; treating as oldest")
	return MinRecency
}
