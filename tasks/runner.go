// Package tasks runs the delayed and background work owned by a single session. Every task is
// filed under a key; starting a key again cancels the task already running under it. Each run
// gets a Token, and a finished task must call Finish with it before touching shared state, so
// a superseded or torn-down run can never apply a stale result.
package tasks

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when scheduling on a runner that has been closed
var ErrClosed = errors.New("task runner closed")

// Token identifies one run of a task key
type Token uint64

type task struct {
	token  Token
	cancel context.CancelFunc
}

// Runner owns a set of cancellable tasks
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	seq    Token
	tasks  map[string]task
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a runner whose tasks are cancelled when parent is done or Close is called
func NewRunner(parent context.Context) *Runner {
	ctx, cancel := context.WithCancel(parent)
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[string]task),
	}
}

// Go runs fn in its own goroutine under key, cancelling whatever ran under key before
func (r *Runner) Go(key string, fn func(ctx context.Context, tok Token)) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}

	if prev, ok := r.tasks[key]; ok {
		prev.cancel()
	}
	r.seq++
	tok := r.seq
	ctx, cancel := context.WithCancel(r.ctx)
	r.tasks[key] = task{token: tok, cancel: cancel}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.retire(key, tok)
		fn(ctx, tok)
	}()
	return tok, nil
}

// After calls fn once d has elapsed, unless the task is cancelled or replaced first
func (r *Runner) After(key string, d time.Duration, fn func(tok Token)) (Token, error) {
	return r.Go(key, func(ctx context.Context, tok Token) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
			fn(tok)
		}
	})
}

// Finish retires tok if it is still the live run of key. A false result means the run was
// cancelled or superseded and its result must be dropped.
func (r *Runner) Finish(key string, tok Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[key]
	if !ok || t.token != tok {
		return false
	}
	t.cancel()
	delete(r.tasks, key)
	return true
}

// Cancel stops the task running under key, if any
func (r *Runner) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[key]
	if !ok {
		return false
	}
	t.cancel()
	delete(r.tasks, key)
	return true
}

// Pending reports whether a task is live under key
func (r *Runner) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[key]
	return ok
}

// Len returns the number of live tasks
func (r *Runner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Close cancels every task and waits for their goroutines to return. Tasks must not hold a
// lock the caller of Close is holding.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for key, t := range r.tasks {
		t.cancel()
		delete(r.tasks, key)
	}
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

func (r *Runner) retire(key string, tok Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[key]; ok && t.token == tok {
		t.cancel()
		delete(r.tasks, key)
	}
}
