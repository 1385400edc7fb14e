package coord

import (
	"context"

	"github.com/google/uuid"
)

// Handle tracks one background task the coordinator owns: its identity, its
// cancellation hook and its completion signal.
type Handle struct {
	ID     uuid.UUID
	Name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel asks the task to stop. The task honors it at its next suspension
// point, not instantaneously; use Wait when ordering matters. Cancelling a
// finished task is a no-op.
func (h *Handle) Cancel() { h.cancel() }

// Wait blocks until the task has fully unwound.
func (h *Handle) Wait() { <-h.done }

// Done reports without blocking whether the task has finished.
func (h *Handle) Done() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// spawn starts run on its own goroutine under a child context and registers
// the handle. The handle's done channel closes only after run returns, so a
// joined handle implies the task's cleanup has finished.
func (c *Coordinator) spawn(ctx context.Context, name string, run func(ctx context.Context)) *Handle {
	tctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		ID:     uuid.New(),
		Name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.mu.Lock()
	c.handles = append(c.handles, h)
	c.mu.Unlock()

	go func() {
		defer close(h.done)
		run(tctx)
	}()
	return h
}
