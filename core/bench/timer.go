package bench

import (
	"time"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Timer is a stopwatch for one delegated call.
//
//	t := bench.StartTimer()
//	model.Fit(X, y)
//	elapsed := t.Stop()
type Timer struct {
	start   time.Time
	elapsed time.Duration
	stopped bool
}

// StartTimer returns a running Timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop freezes the timer and returns the elapsed time. Further calls
// return the same value.
func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		t.elapsed = time.Since(t.start)
		t.stopped = true
	}
	return t.elapsed
}

// Elapsed returns the running or frozen elapsed time.
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return time.Since(t.start)
}

// Measure times fn. A returned error or a panic becomes a Failure; only the
// time spent inside fn is reported.
func Measure(operation string, fn func() error) Result {
	t := StartTimer()
	err := errors.SafeExecute(operation, fn)
	elapsed := t.Stop()
	if err != nil {
		return Failed(err)
	}
	return Succeeded(elapsed)
}
