// Package workerpool bounds the concurrency of the protocol's fan-out (the
// per-row permutation-apply of the online shuffle, the per-contributor mask
// derivation of the offline phase) using golang.org/x/sync/errgroup, the teacher's declared dependency for
// exactly this kind of bounded parallel-with-first-error execution.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes n independently-indexed units of work with at most limit
// running concurrently, returning the first error any unit reports (after
// which in-flight units finish but no new ones start, per errgroup's
// contract).
func Run(ctx context.Context, n, limit int, work func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if limit <= 0 {
		limit = n
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			return work(ctx, i)
		})
	}
	return g.Wait()
}
