package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// WorkerPool runs a fixed number of workers over a job queue. results are delivered on a channel of the
// same capacity as the job queue, so a caller that queues at most jobQueueSize jobs can Wait before it
// reads the results.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
	skipped    int64
	mu         sync.Mutex
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

// worker drains the queue. once ctx is done the remaining jobs are discarded without running.
func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if ctx.Err() != nil {
			wp.mu.Lock()
			wp.skipped++
			wp.mu.Unlock()
			continue
		}
		wp.results <- jobFunc(ctx, job)
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait blocks until every worker has returned, then closes the results channel. Close must have been
// called before.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// Submit queues job unless ctx is done first.
func (wp *WorkerPool[T, G]) Submit(ctx context.Context, job T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case wp.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Skipped. number of queued jobs that were dropped because the context was done.
func (wp *WorkerPool[T, G]) Skipped() int64 {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.skipped
}
