package pair

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrFault marks an abnormal termination: a panic inside a unit of work or a
// failing output sink.
var ErrFault = errors.New("pair: computation fault")

// slicer runs a kernel once per slice index, either in order on the calling
// goroutine or fanned out over at most workers goroutines. Every call is a
// barrier: it returns only after all slices finish.
type slicer struct {
	workers int
}

func newSlicer(cfg Config) slicer {
	return slicer{workers: cfg.WorkerCount()}
}

func (s slicer) run(ctx context.Context, n int, fn func(i int)) error {
	if s.workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := guard(fn, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return guard(fn, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func guard(fn func(int), i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: slice %d: %v", ErrFault, i, r)
		}
	}()
	fn(i)
	return nil
}
