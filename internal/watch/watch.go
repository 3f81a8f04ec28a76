// Package watch re-runs a pipeline stage whenever its input file changes.
// It watches the file's parent directory, filters events down to the
// watched name, and debounces bursts of writes so a stage runs once per
// settled change.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the delay after the last event before the stage runs.
const DefaultDebounce = 500 * time.Millisecond

// Run watches path and invokes fn after each settled change. Errors from
// fn are logged, not fatal: a broken input edit should not kill the
// watcher. Run blocks until ctx is cancelled.
func Run(ctx context.Context, path string, debounce time.Duration, fn func() error, log zerolog.Logger) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and re-runs of upstream
	// stages replace the file by rename, which would drop a file watch.
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("watching for changes")

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			log.Info().Str("path", path).Msg("input changed, re-running")
			if err := fn(); err != nil {
				log.Error().Err(err).Msg("re-run failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watch error")
		}
	}
}
