package worker

import (
	"context"
	"log"
	"runtime"
	"sync"

	"chordcap/action"
)

// ResultCallback is invoked on capture completion (from a worker goroutine).
// The event loop should pass a closure that posts back into the event loop safely.
type ResultCallback func(a action.Action, path string, err error)

// Pool is a fixed-size capture worker pool with a 1-slot input queue (strict back-pressure).
type Pool struct {
	target action.Context
	jobs   chan job
	wg     sync.WaitGroup
}

type job struct {
	ctx    context.Context
	action action.Action
	cb     ResultCallback
}

// New creates a worker pool executing actions against target. Size defaults
// to NumCPU when size<=0. Queue is 1 slot.
func New(size int, target action.Context) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{target: target, jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				if err := j.ctx.Err(); err != nil {
					j.cb(j.action, "", err)
					continue
				}
				log.Printf("Worker: starting %s capture", j.action)
				path, err := executeWithContext(j.ctx, j.action, p.target)
				log.Printf("Worker: %s capture completed, path=%q, err=%v", j.action, path, err)
				j.cb(j.action, path, err)
			}
		}()
	}
}

// Submit enqueues an action if the single-slot queue is free. Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, a action.Action, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, action: a, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

// executeWithContext runs action.Execute, returning ctx.Err() if ctx is done
// first. The capture itself keeps running in the background.
func executeWithContext(ctx context.Context, a action.Action, target action.Context) (string, error) {
	if ctx.Done() == nil {
		return action.Execute(a, target)
	}
	type outcome struct {
		path string
		err  error
	}
	resCh := make(chan outcome, 1)
	go func() {
		path, err := action.Execute(a, target)
		resCh <- outcome{path, err}
	}()
	select {
	case r := <-resCh:
		return r.path, r.err
	case <-ctx.Done():
		log.Printf("Worker: %s capture abandoned: %v", a, ctx.Err())
		return "", ctx.Err()
	}
}
