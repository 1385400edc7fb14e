// Package coord owns the application's background tasks: the clock
// writer(s), the key-poll loop and the debounced reset timer. It drives them
// through a fixed lifecycle and guarantees the display sink is torn down on
// every exit path.
package coord

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jask/keyclock/internal/clock"
	"github.com/jask/keyclock/internal/debounce"
	"github.com/jask/keyclock/internal/input"
	"github.com/jask/keyclock/internal/term"
)

// State is the coordinator lifecycle position.
type State int32

const (
	StateInitializing State = iota
	StateRunning
	StateDraining
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Config tunes the coordinator. Zero values fall back to the package
// defaults noted per field.
type Config struct {
	Period        time.Duration // clock period; default clock.DefaultPeriod
	PollInterval  time.Duration // key poll sleep; default input.DefaultPollInterval
	ResetDelay    time.Duration // quiet period before the no-activity notice; default 1s
	QueueCapacity int           // decoupled tick channel capacity; default clock.DefaultQueueCapacity
	QuitKey       input.Code    // default input.Esc
	Decoupled     bool          // route ticks through the bounded channel
	Layout        term.Layout   // zero value means term.DefaultLayout
	Clock         clock.Clock   // default clock.SystemClock
}

func (c Config) withDefaults() Config {
	if c.Period <= 0 {
		c.Period = clock.DefaultPeriod
	}
	if c.PollInterval <= 0 {
		c.PollInterval = input.DefaultPollInterval
	}
	if c.ResetDelay <= 0 {
		c.ResetDelay = time.Second
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = clock.DefaultQueueCapacity
	}
	if c.QuitKey == 0 {
		c.QuitKey = input.Esc
	}
	if c.Layout == (term.Layout{}) {
		c.Layout = term.DefaultLayout()
	}
	if c.Clock == nil {
		c.Clock = clock.SystemClock{}
	}
	return c
}

// Coordinator runs the clock, key and reset-timer tasks against one display
// sink and joins them all before returning.
type Coordinator struct {
	cfg   Config
	sink  term.Sink
	reset *debounce.Timer
	state atomic.Int32

	mu      sync.Mutex
	handles []*Handle
}

// New creates a coordinator writing to sink.
func New(cfg Config, sink term.Sink) *Coordinator {
	cfg = cfg.withDefaults()
	c := &Coordinator{cfg: cfg, sink: sink}
	c.reset = debounce.New(func() {
		sink.Write(cfg.Layout.KeyRow, cfg.Layout.KeyCol,
			fmt.Sprintf("No key pressed in the last %v", cfg.ResetDelay), term.StyleNotice)
	})
	return c
}

// State reports the current lifecycle position. Safe to call from any
// goroutine.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Run drives the full lifecycle: initialize the sink, start the clock
// task(s), poll keys until the quit key or ctx cancellation, then drain.
// On return every background task has been joined and the sink shut down,
// regardless of how Run exits — including a panic in the key loop.
//
// Run returns nil on a clean quit and ctx.Err() on external cancellation.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.sink.Init(); err != nil {
		return fmt.Errorf("init display: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		c.state.Store(int32(StateDraining))
		c.reset.Stop()
		cancel()
		c.joinAll()
		c.sink.Shutdown()
		c.state.Store(int32(StateTerminated))
	}()

	c.startClock(ctx)
	c.sink.Write(c.cfg.Layout.KeyRow, c.cfg.Layout.KeyCol, "No key pressed yet", term.StyleNotice)

	c.state.Store(int32(StateRunning))
	return c.pollKeys(ctx)
}

// startClock launches the clock task(s). In decoupled mode the producer owns
// the tick channel: cancellation makes it close the channel, and the
// consumer exits once it has drained the remainder, so joining the consumer
// handle is the drain acknowledgment the shutdown path relies on.
func (c *Coordinator) startClock(ctx context.Context) {
	src := clock.NewSource(c.cfg.Period, c.cfg.Clock)

	if !c.cfg.Decoupled {
		c.spawn(ctx, "clock", func(ctx context.Context) {
			src.Run(ctx, c.renderTick)
		})
		return
	}

	ticks := make(chan clock.Tick, c.cfg.QueueCapacity)
	c.spawn(ctx, "clock-producer", func(ctx context.Context) {
		src.Produce(ctx, ticks)
	})
	c.spawn(ctx, "clock-consumer", func(context.Context) {
		clock.Consume(ticks, c.renderTick)
	})
}

func (c *Coordinator) renderTick(t clock.Tick) {
	c.sink.Write(c.cfg.Layout.ClockRow, c.cfg.Layout.ClockCol,
		"Current time "+t.At.Format("15:04:05"), term.StyleClock)
}

// pollKeys is the Running loop: echo each key, re-arm the reset timer, stop
// on the quit key.
func (c *Coordinator) pollKeys(ctx context.Context) error {
	poller := input.NewPoller(c.sink, c.cfg.PollInterval, c.cfg.Clock)
	for {
		code, err := poller.Poll(ctx)
		if err != nil {
			return err
		}
		c.sink.Write(c.cfg.Layout.KeyRow, c.cfg.Layout.KeyCol,
			fmt.Sprintf("Last key pressed: %d", code), term.StyleDefault)
		if code == c.cfg.QuitKey {
			return nil
		}
		c.reset.Arm(c.cfg.ResetDelay)
	}
}

// joinAll waits for every spawned task, in spawn order. The producer is
// always joined before its consumer, which preserves the close-then-drain
// handshake.
func (c *Coordinator) joinAll() {
	c.mu.Lock()
	handles := append([]*Handle(nil), c.handles...)
	c.mu.Unlock()
	for _, h := range handles {
		h.Wait()
	}
}
