package parallel

import "runtime"

// ForEach calls fn(worker, i) for every i in [0, n) using up to workers
// goroutines and returns the number of workers used. Indices are handed out
// in chunks; fn may write to the slot selected by worker without locking.
// Results that depend on accumulation order must be merged by the caller
// in worker order after ForEach returns.
func ForEach(workers, n int, fn func(worker, i int)) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	workers = Workers(workers, n)
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(0, i)
		}
		return 1, nil
	}

	pool, err := NewWorkerPool(workers)
	if err != nil {
		return 0, err
	}

	chunk := chunkSize(n, workers)
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		if err := pool.Submit(func(worker int) {
			for i := lo; i < hi; i++ {
				fn(worker, i)
			}
		}); err != nil {
			pool.Close()
			return 0, err
		}
	}
	return workers, pool.Close()
}

// Workers resolves a requested worker count for n items: <= 0 means
// GOMAXPROCS, and the result is clamped to [1, min(n, MaxWorkers)].
// Callers size their per-worker accumulators with it before ForEach.
func Workers(requested, n int) int {
	if requested <= 0 {
		requested = runtime.GOMAXPROCS(0)
	}
	return max(1, min(requested, n, MaxWorkers))
}

// chunkSize aims for roughly four chunks per worker so slow sources do not
// leave other workers idle.
func chunkSize(n, workers int) int {
	c := n / (workers * 4)
	if c < 1 {
		return 1
	}
	return c
}
