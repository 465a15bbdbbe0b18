package bench

import (
	"context"
	"time"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// WithTimeout runs fn with a bound of d on wall-clock time. d <= 0 runs fn
// inline without a bound.
//
// fn runs in its own goroutine and receives a context that is cancelled
// when the bound expires. Its result travels through a one-slot channel, so
// a worker that finishes late never blocks and its result is dropped.
// Subprocess delegates stop when the context is cancelled; in-process
// delegates that ignore ctx run to completion in the background.
//
// Expiry yields a Timeout result even if fn would eventually succeed. If the
// parent ctx ends first the result is a Failure carrying ctx.Err().
func WithTimeout(ctx context.Context, d time.Duration, fn func(ctx context.Context) Result) Result {
	if err := ctx.Err(); err != nil {
		return Failed(errors.Wrap(err, "benchmark cancelled"))
	}
	if d <= 0 {
		return runGuarded(ctx, fn)
	}

	runCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan Result, 1)
	started := time.Now()
	go func() {
		done <- runGuarded(runCtx, fn)
	}()

	select {
	case res := <-done:
		if time.Since(started) > d || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return TimedOut()
		}
		return res
	case <-runCtx.Done():
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return TimedOut()
		}
		return Failed(errors.Wrap(ctx.Err(), "benchmark cancelled"))
	}
}

func runGuarded(ctx context.Context, fn func(ctx context.Context) Result) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failed(errors.NewPanicError("benchmark", r))
		}
	}()
	return fn(ctx)
}
