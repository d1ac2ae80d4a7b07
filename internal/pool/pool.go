// Package pool provides a bounded worker pool for CPU-heavy pipeline stages.
//
// Audio transcoding and transcription block for hundreds of milliseconds per
// request; running them on a fixed set of workers keeps concurrent requests
// and channel I/O responsive.
package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when a task is submitted after Close.
var ErrClosed = errors.New("pool: closed")

type task struct {
	ctx    context.Context
	fn     func(ctx context.Context) error
	result chan error
}

// Pool runs submitted tasks on a fixed number of worker goroutines.
type Pool struct {
	tasks  chan task
	wg     sync.WaitGroup
	closed atomic.Bool

	submitted atomic.Int64
	completed atomic.Int64
}

// New creates a pool with the given worker count and queue depth. workers
// and queueSize are clamped to at least 1.
func New(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{tasks: make(chan task, queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		if t.ctx.Err() != nil {
			t.result <- t.ctx.Err()
			continue
		}
		t.result <- t.fn(t.ctx)
		p.completed.Add(1)
	}
}

// Do submits fn and blocks until it completes or ctx is done while the task
// is still queued. A task that has already started always runs to
// completion; a hung task blocks only its worker slot.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.closed.Load() {
		return ErrClosed
	}
	p.submitted.Add(1)

	t := task{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-t.result
}

// Stats returns the number of submitted and completed tasks.
func (p *Pool) Stats() (submitted, completed int64) {
	return p.submitted.Load(), p.completed.Load()
}

// Close stops accepting tasks and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.tasks)
	p.wg.Wait()
}
