// Package bench holds the benchmark execution contract shared by every
// method adapter: the tagged Result, the Method interface, dataset
// references, the scoped Timer, the timeout wrapper and the scratch
// workspace for intermediate files.
package bench

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Legacy scalar values reported in place of a duration.
const (
	SentinelFailure = -1.0
	SentinelTimeout = -2.0
)

// Status is the outcome of a timing run.
type Status int

const (
	StatusSuccess Status = iota
	StatusTimeout
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTimeout:
		return "timeout"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the tagged outcome of RunTiming: Success carries the elapsed
// time, Timeout and Failure carry the reason in Err.
type Result struct {
	Status  Status
	Elapsed time.Duration
	Err     error
}

// Succeeded returns a Success result. Negative durations are clamped to 0.
func Succeeded(elapsed time.Duration) Result {
	if elapsed < 0 {
		elapsed = 0
	}
	return Result{Status: StatusSuccess, Elapsed: elapsed}
}

// TimedOut returns a Timeout result.
func TimedOut() Result {
	return Result{Status: StatusTimeout, Err: errors.ErrTimeout}
}

// Failed returns a Failure result for err.
func Failed(err error) Result {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result{Status: StatusFailure, Err: err}
}

// OK reports whether the run succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Seconds returns the elapsed seconds on success, SentinelTimeout on
// timeout and SentinelFailure otherwise.
func (r Result) Seconds() float64 {
	switch r.Status {
	case StatusSuccess:
		return r.Elapsed.Seconds()
	case StatusTimeout:
		return SentinelTimeout
	default:
		return SentinelFailure
	}
}

func (r Result) String() string {
	switch r.Status {
	case StatusSuccess:
		return fmt.Sprintf("%.6fs", r.Elapsed.Seconds())
	case StatusTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("failure: %v", r.Err)
	}
}
