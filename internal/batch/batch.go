// Package batch runs indexed units of work on a bounded set of workers.
package batch

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerCount resolves a worker setting for n units of work.
// Values < 0 force serial processing. Zero uses GOMAXPROCS. The result is
// never more than n and never less than 1.
func WorkerCount(workers, n int) int {
	switch {
	case workers < 0:
		return 1
	case workers == 0:
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n))
}

// Run calls fn(i) for every i in [0, n).
//
// With more than one worker, units are striped across workers and may run
// in any order; fn must write its results into per-index slots. Processing
// stops on the first error, which is returned.
func Run(n, workers int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	workers = WorkerCount(workers, n)
	if workers < 2 {
		for i := range n {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var stop atomic.Bool
	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	for w := range workers {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < n; i += workers {
				if stop.Load() {
					return
				}
				if err := fn(i); err != nil {
					if stop.CompareAndSwap(false, true) {
						errCh <- err
					}
					return
				}
			}
		}(w)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
