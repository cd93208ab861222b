package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("worker pool is closed")

// MaxWorkers caps the pool size. Per-worker accumulators are allocated up
// front, so an unbounded count would be a memory bug rather than a speedup.
const MaxWorkers = 1024

// Task receives the index of the worker executing it. Indices are in
// [0, Workers()) and stable for the life of the pool, so a task may write to
// a per-worker slot without synchronization.
type Task func(worker int)

// WorkerPool runs tasks on a fixed set of goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // guards closed and the send on taskQueue
	closed    bool

	panicMu sync.Mutex
	panics  []any
}

// NewWorkerPool starts a pool of workers goroutines. workers <= 0 means GOMAXPROCS.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("worker count %d exceeds maximum %d", workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan Task, workers*2),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool, nil
}

// Workers returns the number of goroutines in the pool
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.run(id, task)
	}
}

func (wp *WorkerPool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			wp.panicMu.Lock()
			wp.panics = append(wp.panics, r)
			wp.panicMu.Unlock()
		}
	}()
	task(id)
}

// Submit queues a task. It blocks while the queue is full.
func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolClosed
	}
	wp.taskQueue <- task
	return nil
}

// Close stops accepting tasks and waits for queued ones to finish. It
// returns an error if any task panicked.
func (wp *WorkerPool) Close() error {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()

	wp.panicMu.Lock()
	defer wp.panicMu.Unlock()
	if len(wp.panics) > 0 {
		return fmt.Errorf("%d task(s) panicked, first: %v", len(wp.panics), wp.panics[0])
	}
	return nil
}
