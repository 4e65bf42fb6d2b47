// Package fanout bounds and joins concurrent model calls.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool limits how many calls run at once across every caller that shares it.
// Create one at start-up and hand the same instance to all consumers.
// A nil *Pool is valid and unbounded.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool admitting size concurrent calls. size <= 0 means unbounded.
func NewPool(size int) *Pool {
	if size <= 0 {
		return &Pool{}
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the configured bound, or 0 when unbounded.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

// Do runs fn while holding one slot. It blocks until a slot is free or ctx is done.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p != nil && p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("acquire pool slot: %w", err)
		}
		defer p.sem.Release(1)
	}
	return fn(ctx)
}

// Gather calls fn for every index in [0, n) concurrently, each call holding a
// pool slot, and returns the results in index order. The first error cancels
// the context passed to the remaining calls and is returned with no results.
func Gather[T any](ctx context.Context, pool *Pool, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			return pool.Do(gctx, func(ctx context.Context) error {
				v, err := fn(ctx, i)
				if err != nil {
					return err
				}
				results[i] = v
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
