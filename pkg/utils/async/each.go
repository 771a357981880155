package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Each runs fn for every index in [0, n) concurrently and waits for all of
// them. A panic inside fn is recovered, logged with its stack, and returned
// as an error. The first non-nil error cancels the context passed to the
// remaining calls, and Each returns that error.
func Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	grp, grpCtx := errgroup.WithContext(ctx)

	for i := range n {
		grp.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(grpCtx).Error("panic in async task",
						"recover", r,
						"stack", string(stack))
					err = goerr.New("panic in async task", goerr.V("recover", r))
				}
			}()

			return fn(grpCtx, i)
		})
	}

	return grp.Wait()
}
