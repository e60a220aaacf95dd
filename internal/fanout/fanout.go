// Package fanout provides a bounded-concurrency fan-out/fan-in group with a
// completion barrier between consecutive chunks. The page aggregator uses it
// unbounded; the batch image collector uses it with a limit and an
// inter-chunk pause.
package fanout

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Options controls how Map schedules its tasks.
type Options struct {
	// Limit is the maximum number of tasks in flight at once.
	// Zero or negative means all tasks run in a single chunk.
	Limit int

	// Pause is slept after every chunk except the last, as load-shedding
	// against the origin server. Zero means no pause.
	Pause time.Duration
}

// sleep is a variable so tests can observe pacing without waiting.
var sleep = time.Sleep

// Map runs task once per element of items and returns positional results and
// errors. Items are processed in consecutive chunks of Options.Limit; a chunk
// is fully awaited before the next one starts, but tasks within a chunk run
// concurrently with no relative ordering guarantee. A failing task only marks
// its own slot; callers decide whether any error aborts the whole operation.
func Map[T, R any](ctx context.Context, items []T, opts Options, task func(ctx context.Context, index int, item T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}

	limit := opts.Limit
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	chunks := lo.Chunk(items, limit)
	offset := 0
	for ci, chunk := range chunks {
		var wg sync.WaitGroup
		wg.Add(len(chunk))

		for i, item := range chunk {
			index := offset + i
			item := item
			go func() {
				defer wg.Done()
				results[index], errs[index] = task(ctx, index, item)
			}()
		}

		wg.Wait()
		offset += len(chunk)

		if opts.Pause > 0 && ci < len(chunks)-1 {
			sleep(opts.Pause)
		}
	}

	return results, errs
}

// FirstError returns the error at the lowest index, or nil if all slots
// succeeded. Used by all-or-nothing callers.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
