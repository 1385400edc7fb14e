// Package clock produces timestamped ticks at a fixed period.
//
// A Source supports two delivery modes: direct, where the emit callback runs
// in the source's own loop, and decoupled, where a producer goroutine pushes
// ticks into a bounded channel drained by a separate consumer.
package clock

import (
	"context"
	"time"
)

// DefaultPeriod is the nominal tick period.
const DefaultPeriod = time.Second

// DefaultQueueCapacity bounds the tick channel in decoupled mode.
const DefaultQueueCapacity = 100

// Clock abstracts time operations so tick production is testable.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock uses actual system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time                         { return time.Now() }
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Tick is a single timestamped emission. Ticks from one Source are
// monotonically non-decreasing.
type Tick struct {
	At time.Time
}

// Source emits one Tick per period until cancelled.
type Source struct {
	period time.Duration
	clock  Clock
}

// NewSource creates a tick source. A zero period falls back to DefaultPeriod;
// a nil clock falls back to SystemClock.
func NewSource(period time.Duration, clk Clock) *Source {
	if period <= 0 {
		period = DefaultPeriod
	}
	if clk == nil {
		clk = SystemClock{}
	}
	return &Source{period: period, clock: clk}
}

// Run is direct mode: emit is called once per period, starting immediately,
// until ctx is cancelled. Cancellation is observed at the period wait, so a
// tick is never emitted partially.
func (s *Source) Run(ctx context.Context, emit func(Tick)) error {
	for {
		emit(Tick{At: s.clock.Now()})
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.period):
		}
	}
}

// Produce is the producing half of decoupled mode: one Tick per period is
// pushed into out. A full channel suspends the producer until the consumer
// frees space; ticks are never dropped. Produce closes out on return so the
// consumer can drain the remainder and exit on its own.
func (s *Source) Produce(ctx context.Context, out chan<- Tick) error {
	defer close(out)
	for {
		t := Tick{At: s.clock.Now()}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- t:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.period):
		}
	}
}

// Consume forwards every tick from in to emit, in FIFO order, and returns
// once in is closed and fully drained. Returning is the consumer's drain
// acknowledgment: a caller that waits for Consume has seen every tick the
// producer managed to send.
func Consume(in <-chan Tick, emit func(Tick)) {
	for t := range in {
		emit(t)
	}
}
