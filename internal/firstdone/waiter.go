// Package firstdone runs a batch of independent timed tasks and yields each
// result as soon as it finishes, under an overall timeout.
package firstdone

import (
	"context"
	"sync"
	"time"

	"github.com/jask/keyclock/internal/clock"
)

// Task is one unit of the batch: it waits for Duration, then reports ID.
type Task struct {
	ID       int
	Duration time.Duration
}

// Result is the outcome of one finished task.
type Result struct {
	ID       int
	Duration time.Duration
}

// Waiter fans a batch out and streams results back in completion order.
type Waiter struct {
	clock clock.Clock
}

// NewWaiter creates a waiter. A nil clock falls back to the system clock.
func NewWaiter(clk clock.Clock) *Waiter {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Waiter{clock: clk}
}

// Wait starts every task concurrently and returns a channel yielding each
// result the moment its task finishes; relative order reflects actual
// completion time, ties broken arbitrarily. The channel closes when every
// task has reported or when timeout elapses, whichever comes first.
//
// On timeout the stragglers are cancelled through the shared context rather
// than abandoned, so no goroutine outlives the returned channel's close.
func (w *Waiter) Wait(ctx context.Context, tasks []Task, timeout time.Duration) <-chan Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)

	// Buffered to len(tasks): a finishing task never blocks on a slow reader,
	// so completion order is decided by the timers alone.
	finished := make(chan Result, len(tasks))
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			select {
			case <-ctx.Done():
			case <-w.clock.After(t.Duration):
				finished <- Result{ID: t.ID, Duration: t.Duration}
			}
		}(t)
	}

	out := make(chan Result)
	go func() {
		// LIFO: cancel the stragglers, wait for them to unwind, then close.
		defer close(out)
		defer wg.Wait()
		defer cancel()
		for remaining := len(tasks); remaining > 0; remaining-- {
			select {
			case r := <-finished:
				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
