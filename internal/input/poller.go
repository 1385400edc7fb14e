// Package input turns a non-blocking key source into a blocking next-key
// call without busy-spinning the thread.
package input

import (
	"context"
	"time"

	"github.com/jask/keyclock/internal/clock"
)

// DefaultPollInterval is how long the poller sleeps between empty reads.
const DefaultPollInterval = 10 * time.Millisecond

// Code is a terminal key code.
type Code int

// NoKey is the "no data yet" sentinel. It is a state, not an error.
const NoKey Code = -1

// Esc is the conventional quit key code.
const Esc Code = 27

// A KeySource reports one pending key without blocking. ok is false when no
// key is pending.
type KeySource interface {
	ReadKey() (code Code, ok bool)
}

// Poller repeatedly reads a KeySource, sleeping between misses so other
// tasks keep running.
type Poller struct {
	src      KeySource
	interval time.Duration
	clock    clock.Clock
}

// NewPoller creates a poller. A zero interval falls back to
// DefaultPollInterval; a nil clock falls back to the system clock.
func NewPoller(src KeySource, interval time.Duration, clk clock.Clock) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Poller{src: src, interval: interval, clock: clk}
}

// Poll blocks until a key is available and returns its code. A quit key is a
// normal return value, not an error. If ctx is cancelled first, Poll returns
// NoKey and ctx.Err().
func (p *Poller) Poll(ctx context.Context) (Code, error) {
	for {
		if code, ok := p.src.ReadKey(); ok {
			return code, nil
		}
		select {
		case <-ctx.Done():
			return NoKey, ctx.Err()
		case <-p.clock.After(p.interval):
		}
	}
}
