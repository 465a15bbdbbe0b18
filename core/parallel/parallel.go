// Package parallel splits row-oriented work across CPU cores. It is used by
// the dataset loader to parse large tables and by the ridge model to
// center its training data.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count below which work stays on the calling
// goroutine.
const DefaultThreshold = 1000

// Chunks splits [0, items) into at most workers contiguous ranges of
// near-equal size. workers <= 0 means runtime.NumCPU().
func Chunks(items, workers int) [][2]int {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	size := (items + workers - 1) / workers

	out := make([][2]int, 0, workers)
	for start := 0; start < items; start += size {
		end := start + size
		if end > items {
			end = items
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// Run calls fn over contiguous ranges of [0, items), one goroutine per CPU,
// and waits for all of them. Below threshold rows fn is called once with
// the full range. The error of the lowest failing range is
// returned so the result does not depend on scheduling.
func Run(items, threshold int, fn func(start, end int) error) error {
	if items <= 0 {
		return nil
	}
	if items <= threshold {
		return fn(0, items)
	}

	chunks := Chunks(items, 0)
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func(i, s, e int) {
			defer wg.Done()
			errs[i] = fn(s, e)
		}(i, c[0], c[1])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
