// internal/join/join.go

// Package join provides a barrier join over independent asynchronous operations.
package join

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Op is a single operation taking part in a join.
type Op[T any] func(ctx context.Context) (T, error)

// All runs every op concurrently and waits for all of them. It returns the
// results in the order of ops, or the first error observed. When an op fails
// the context passed to the remaining ops is cancelled and no partial result
// is returned. There is no bound on fan-out.
func All[T any](ctx context.Context, ops ...Op[T]) ([]T, error) {
	results := make([]T, len(ops))
	g, gctx := errgroup.WithContext(ctx)

	for i, op := range ops {
		g.Go(func() error {
			v, err := op(gctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
