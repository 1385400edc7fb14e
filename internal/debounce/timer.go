// Package debounce provides a restartable delayed notification: rapid
// re-arms collapse so only the latest countdown fires.
package debounce

import (
	"sync"
	"time"
)

// Timer fires a callback once after a quiet period. At most one countdown is
// live at a time; arming while one is pending cancels it first.
type Timer struct {
	fire func()

	mu      sync.Mutex
	pending *time.Timer
}

// New creates a timer that runs fire when a countdown elapses. The callback
// runs on its own goroutine, so it must be safe to call concurrently with
// Arm and Stop.
func New(fire func()) *Timer {
	return &Timer{fire: fire}
}

// Arm starts (or restarts) the countdown. A pending countdown is stopped
// before the new one begins, so two Arms within delay produce one firing.
func (t *Timer) Arm(delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(delay, t.fire)
}

// Stop cancels a pending countdown. Stopping a timer that has already fired
// or was never armed is a no-op.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
