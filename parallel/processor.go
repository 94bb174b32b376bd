// Package parallel implements the generator's fan-out engine: a worker
// pool for processing many routes concurrently (Process) and a
// chunked variant that bounds how much is in flight at once
// (ProcessChunks), so generating docs for a large application doesn't
// spike memory with every route's AST held open simultaneously.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultActivationThreshold is the minimum item count before Process
// bothers spinning up goroutines at all. Below it, the fixed cost of
// scheduling goroutines outweighs any benefit — a handful of routes
// just gets processed inline.
const DefaultActivationThreshold = 8

// Options configures a Process/ProcessChunks run.
type Options struct {
	// MaxWorkers caps concurrent workers. Zero means
	// runtime.GOMAXPROCS(0).
	MaxWorkers int
	// ActivationThreshold below which processing runs sequentially on
	// the calling goroutine. Zero means DefaultActivationThreshold.
	ActivationThreshold int
	// ChunkSize is the number of items grouped per chunk in
	// ProcessChunks. Zero means all items form a single chunk.
	ChunkSize int
}

func (o Options) workers() int {
	if o.MaxWorkers > 0 {
		return o.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) threshold() int {
	if o.ActivationThreshold > 0 {
		return o.ActivationThreshold
	}
	return DefaultActivationThreshold
}

// Result pairs a processed item's index (its position in the original
// input) with its output and any error, since fan-out workers complete
// out of order.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Process runs fn over every item in items. When len(items) is below
// the activation threshold it runs sequentially on the caller's
// goroutine; otherwise it fans out across up to opts.workers()
// goroutines via errgroup, bounded by a semaphore channel. Results are
// returned in the same order as items regardless of completion order —
// callers that only need "did everything succeed" should check each
// Result.Err; a context cancellation (opts or an item's own failure,
// if the caller wants fail-fast) is left to the caller via ctx.
func Process[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))

	if len(items) < opts.threshold() {
		for i, item := range items {
			v, err := fn(ctx, item)
			results[i] = Result[R]{Index: i, Value: v, Err: err}
		}
		return results
	}

	workers := opts.workers()
	sem := make(chan struct{}, workers)
	g, gctx := errgroup.WithContext(ctx)

	for i, item := range items {
		i, item := i, item
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			v, err := fn(gctx, item)
			results[i] = Result[R]{Index: i, Value: v, Err: err}
			return nil // per-item errors are carried in Result, not propagated as fatal
		})
	}

	_ = g.Wait()
	return results
}

// ProcessChunks groups items into fixed-size chunks (Options.ChunkSize,
// default the same as a single chunk containing everything) and runs fn
// once per chunk, fanning chunks out the same way Process fans out
// items. Use this when per-item work allocates enough that holding all
// of it in flight at once (one goroutine per route, for a
// many-thousand-route application) would be wasteful — each chunk's
// memory is released before the next chunk starts on that worker.
func ProcessChunks[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, []T) ([]R, error)) ([]R, error) {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = len(items)
		if chunkSize == 0 {
			chunkSize = 1
		}
	}

	var chunks [][]T
	for start := 0; start < len(items); start += chunkSize {
		end := min(start+chunkSize, len(items))
		chunks = append(chunks, items[start:end])
	}

	chunkResults := Process(ctx, chunks, opts, fn)

	var out []R
	for _, r := range chunkResults {
		if r.Err != nil {
			return nil, r.Err
		}
		out = append(out, r.Value...)
	}
	return out, nil
}
