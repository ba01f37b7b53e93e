// Package parallel runs independent tasks on a fixed set of worker
// goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is reported for tasks handed to a closed Pool.
var ErrClosed = errors.New("parallel: pool closed")

// Pool runs tasks on a fixed number of workers. Tasks are dealt
// round-robin to per-worker queues; an idle worker steals from the
// others, so one slow task does not hold up the rest of its queue.
//
// Pool is safe for concurrent use, but Run must not race with Close.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	open    atomic.Bool
}

// NewPool starts a pool with the given number of workers, or GOMAXPROCS
// workers if n < 1.
func NewPool(n int) *Pool {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: n,
		queues:  make([]chan func(), n),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), max(8, 4*n))
	}
	p.open.Store(true)

	p.wg.Add(n)
	for i := range n {
		go p.work(i)
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Run calls fn(ctx, i) for every i in [0, n) and waits for all calls to
// return. The result holds each call's error at its index. Calls that
// have not started when ctx is cancelled are skipped and report ctx.Err().
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if !p.open.Load() {
		for i := range errs {
			errs[i] = ErrClosed
		}
		return errs
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		task := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = fn(ctx, i)
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			errs[i] = ErrClosed
			wg.Done()
		}
	}
	wg.Wait()
	return errs
}

// Close stops the workers after they finish queued tasks. It is safe to
// call more than once.
func (p *Pool) Close() {
	if !p.open.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case task := <-own:
			task()
			continue
		default:
		}

		if task := p.steal(id); task != nil {
			task()
			continue
		}

		select {
		case task := <-own:
			task()
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case task := <-p.queues[(id+i)%p.workers]:
			return task
		default:
		}
	}
	return nil
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			task()
		default:
			return
		}
	}
}
