// Package progress provides a terminal progress reporter for pipeline
// stages. Reporters are purely observational: they receive row-count
// callbacks and never affect stage correctness.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Reporter receives periodic row-count callbacks from a pipeline stage.
// Implementations can render a terminal bar or discard the updates.
// A Reporter is created per run and finalized at end of run.
type Reporter interface {
	// Advance advances the row count by n and redraws if needed.
	Advance(n int)

	// Finish draws the final state and terminates the line.
	Finish()
}

// Noop discards all progress updates.
type Noop struct{}

// Advance discards the update.
func (Noop) Advance(n int) {}

// Finish does nothing.
func (Noop) Finish() {}

const barWidth = 40

// Bar renders a single-line progress bar, redrawing in place with a
// carriage return. When the total is unknown (<= 0) it shows a plain
// counter instead of a percentage.
type Bar struct {
	w      io.Writer
	prefix string
	total  int64
	count  int64
	start  time.Time
	last   string
}

// NewBar creates a bar writing to w. Pass total <= 0 when the row count
// is not known up front.
func NewBar(w io.Writer, prefix string, total int64) *Bar {
	return &Bar{w: w, prefix: prefix, total: total, start: time.Now()}
}

// Advance advances the count by n and redraws the bar.
func (b *Bar) Advance(n int) {
	b.count += int64(n)
	b.draw()
}

// Finish draws the final state and moves to a fresh line.
func (b *Bar) Finish() {
	b.draw()
	fmt.Fprintln(b.w)
}

func (b *Bar) draw() {
	elapsed := int(time.Since(b.start).Seconds())

	var line string
	if b.total > 0 {
		frac := float64(b.count) / float64(b.total)
		if frac > 1 {
			frac = 1
		}
		filled := int(frac*barWidth + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("-", barWidth-filled)
		line = fmt.Sprintf("%s |%s| %3d%% (%d/%d) Elapsed: %ds",
			b.prefix, bar, int(frac*100), b.count, b.total, elapsed)
	} else {
		line = fmt.Sprintf("%s %d rows Elapsed: %ds", b.prefix, b.count, elapsed)
	}

	// Only rewrite when the rendered line changes to cut terminal noise.
	if line == b.last {
		return
	}
	fmt.Fprintf(b.w, "%s\r", line)
	b.last = line
}
