package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel3 runs three independent lookups at once. When one fails the
// others see a cancelled context and every result comes back zeroed.
func Parallel3[A, B, C any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
	fc func(context.Context) (C, error),
) (A, B, C, error) {
	var (
		a A
		b B
		c C
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { a, err = fa(gctx); return err })
	g.Go(func() (err error) { b, err = fb(gctx); return err })
	g.Go(func() (err error) { c, err = fc(gctx); return err })

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
			zc C
		)

		return za, zb, zc, fmt.Errorf("parallel lookup: %w", err)
	}

	return a, b, c, nil
}
