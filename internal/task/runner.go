// Package task is a small in-process replacement for fire-and-forget
// goroutines: every background unit of work gets a handle whose terminal
// state can be awaited, so tests observe completion without sleeping.
package task

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Handle struct {
	name string
	done chan struct{}
	err  error
}

// Done closes once the task function has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err is valid only after Done is closed.
func (h *Handle) Err() error {
	return h.err
}

// Wait blocks until the task finishes or the context is cancelled.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type Runner struct {
	logger *zap.Logger

	mu     sync.Mutex
	active map[string]*Handle
	wg     sync.WaitGroup
}

func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
		active: make(map[string]*Handle),
	}
}

// Go schedules fn on its own goroutine. A non-empty key makes the task
// exclusive: while a task with that key is running, further submissions are
// rejected.
func (r *Runner) Go(ctx context.Context, key, name string, fn func(ctx context.Context) error) (*Handle, error) {
	handle := &Handle{name: name, done: make(chan struct{})}

	if key != "" {
		r.mu.Lock()
		if _, busy := r.active[key]; busy {
			r.mu.Unlock()
			return nil, fmt.Errorf("task %q already running", key)
		}
		r.active[key] = handle
		r.mu.Unlock()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if key != "" {
				r.mu.Lock()
				delete(r.active, key)
				r.mu.Unlock()
			}
			close(handle.done)
		}()
		defer func() {
			if rec := recover(); rec != nil {
				handle.err = fmt.Errorf("task %s panicked: %v", name, rec)
				r.logger.Error("background task panicked",
					zap.String("task", name), zap.Any("panic", rec))
			}
		}()

		if err := fn(ctx); err != nil {
			handle.err = err
			r.logger.Error("background task failed",
				zap.String("task", name), zap.Error(err))
		}
	}()

	return handle, nil
}

// Running reports whether an exclusive task with the key is in flight.
func (r *Runner) Running(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.active[key]
	return busy
}

// Shutdown waits for in-flight tasks to drain or the context to expire.
func (r *Runner) Shutdown(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
