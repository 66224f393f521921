package quadgrid

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runBatch calls fn for every index in [0, n) on at most o.concurrency
// goroutines. Each call first acquires a query slot from the resource
// controller, if one is configured. The first error, including cancellation
// of ctx, stops queries that have not started yet.
func (o *options) runBatch(ctx context.Context, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := o.controller.AcquireQuery(gctx); err != nil {
				return err
			}
			defer o.controller.ReleaseQuery()

			fn(i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Queries skipped by the loop leave no error in the group.
	return ctx.Err()
}
