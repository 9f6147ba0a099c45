package eventloop

import (
	"context"
	"log"
	"time"

	"chordcap/action"
	"chordcap/keys"
	"chordcap/shortcut"
	"chordcap/worker"
)

const DefaultDeadline = 20 * time.Second

// Submitter runs actions off the loop goroutine.
type Submitter interface {
	Submit(ctx context.Context, a action.Action, cb worker.ResultCallback) bool
}

// Options tune a Loop.
type Options struct {
	// Deadline bounds one capture. Defaults to DefaultDeadline.
	Deadline time.Duration
	// ChordTimeout abandons a partially typed chord when no key arrives
	// within it. Zero disables the timeout.
	ChordTimeout time.Duration
}

// Loop is the single-threaded coordinator: it owns the recognizer, feeds it
// key tokens and hands matched actions to the worker pool. The recognizer is
// only ever touched from the goroutine running Run.
type Loop struct {
	pool    Submitter
	opts    Options
	rec     *shortcut.Recognizer
	ctx     context.Context
	busy    bool
	swaps   chan *shortcut.Recognizer
	resets  chan struct{}
	results chan result
}

type result struct {
	action action.Action
	path   string
	err    error
	cancel context.CancelFunc
}

// New creates a new event loop submitting captures to pool.
func New(pool Submitter, opts Options) *Loop {
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultDeadline
	}
	return &Loop{
		pool:    pool,
		opts:    opts,
		swaps:   make(chan *shortcut.Recognizer, 1),
		resets:  make(chan struct{}, 1),
		results: make(chan result, 4),
	}
}

// Swap installs a rebuilt recognizer. Safe to call from any goroutine; a
// pending swap not yet picked up by the loop is replaced.
func (l *Loop) Swap(rec *shortcut.Recognizer) {
	if rec == nil {
		return
	}
	for {
		select {
		case l.swaps <- rec:
			return
		default:
		}
		select {
		case <-l.swaps:
		default:
		}
	}
}

// Reset asks the loop to abandon any partially typed chord. Safe to call
// from any goroutine.
func (l *Loop) Reset() {
	select {
	case l.resets <- struct{}{}:
	default:
	}
}

// Dispatch submits a capture. It is meant to be called from recognizer
// callbacks, which run on the loop goroutine.
func (l *Loop) Dispatch(a action.Action) {
	if l.busy {
		log.Printf("Dispatch: busy, dropping %s capture", a)
		return
	}

	jobCtx, cancel := context.WithTimeout(l.ctx, l.opts.Deadline)
	l.busy = true
	submitted := l.pool.Submit(jobCtx, a, func(a action.Action, path string, err error) {
		l.results <- result{action: a, path: path, err: err, cancel: cancel}
	})
	if !submitted {
		cancel()
		l.busy = false
		log.Printf("Dispatch: worker queue full, dropping %s capture", a)
	}
}

// Run feeds tokens to rec until ctx is cancelled or tokens is closed.
func (l *Loop) Run(ctx context.Context, rec *shortcut.Recognizer, tokens <-chan keys.Token) error {
	l.ctx = ctx
	l.rec = rec

	idle := time.NewTimer(time.Hour)
	idle.Stop()
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tok, ok := <-tokens:
			if !ok {
				return nil
			}
			// Reloads, resets and finished captures requested before this
			// key arrived take effect first.
			l.drainPending(idle)
			l.rec.Consume(tok)
			if l.opts.ChordTimeout > 0 {
				if l.rec.State().Kind() == shortcut.KindPartial {
					idle.Reset(l.opts.ChordTimeout)
				} else {
					idle.Stop()
				}
			}
		case <-idle.C:
			log.Printf("Chord timed out after %s", l.rec.State().Seq())
			l.rec.Reset()
		case <-l.resets:
			l.rec.Reset()
			idle.Stop()
		case rec := <-l.swaps:
			l.install(rec)
			idle.Stop()
		case res := <-l.results:
			l.handleResult(res)
		}
	}
}

func (l *Loop) drainPending(idle *time.Timer) {
	for {
		select {
		case rec := <-l.swaps:
			l.install(rec)
			idle.Stop()
		case <-l.resets:
			l.rec.Reset()
			idle.Stop()
		case res := <-l.results:
			l.handleResult(res)
		default:
			return
		}
	}
}

func (l *Loop) install(rec *shortcut.Recognizer) {
	log.Printf("Shortcuts reloaded (%d rows)", rec.Table().Len())
	l.rec = rec
}

// State returns the state of the recognizer currently installed. It must
// only be called from a recognizer callback or after Run has returned.
func (l *Loop) State() shortcut.State {
	if l.rec == nil {
		return shortcut.Empty()
	}
	return l.rec.State()
}

func (l *Loop) handleResult(res result) {
	defer func() {
		l.busy = false
		if res.cancel != nil {
			res.cancel()
		}
	}()
	if res.err != nil {
		log.Printf("handleResult: %s capture failed: %v", res.action, res.err)
		return
	}
	log.Printf("handleResult: %s capture saved to %s", res.action, res.path)
}
