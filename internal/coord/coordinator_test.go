package coord

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jask/keyclock/internal/input"
	"github.com/jask/keyclock/internal/term"
)

type write struct {
	row, col int
	text     string
	style    term.Style
}

// fakeSink records sink calls and serves scripted keys non-blockingly.
type fakeSink struct {
	mu        sync.Mutex
	inits     int
	shutdowns int
	writes    []write
	keys      chan input.Code
	initErr   error
	panicOn   string // panic when a write contains this text
}

func newFakeSink() *fakeSink {
	return &fakeSink{keys: make(chan input.Code, 16)}
}

func (f *fakeSink) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits++
	return f.initErr
}

func (f *fakeSink) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
}

func (f *fakeSink) Write(row, col int, text string, style term.Style) {
	f.mu.Lock()
	f.writes = append(f.writes, write{row, col, text, style})
	trigger := f.panicOn
	f.mu.Unlock()
	if trigger != "" && strings.Contains(text, trigger) {
		panic("sink write exploded")
	}
}

func (f *fakeSink) ReadKey() (input.Code, bool) {
	select {
	case c := <-f.keys:
		return c, true
	default:
		return input.NoKey, false
	}
}

func (f *fakeSink) shutdownCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdowns
}

func (f *fakeSink) textsAt(row int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, w := range f.writes {
		if w.row == row {
			out = append(out, w.text)
		}
	}
	return out
}

func testConfig() Config {
	return Config{
		Period:       2 * time.Millisecond,
		PollInterval: time.Millisecond,
		ResetDelay:   5 * time.Millisecond,
		QuitKey:      'q',
	}
}

func TestRunCleanQuit(t *testing.T) {
	sink := newFakeSink()
	sink.keys <- 'a'
	sink.keys <- 'q'

	c := New(testConfig(), sink)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := c.State(); got != StateTerminated {
		t.Fatalf("state = %v, want terminated", got)
	}
	if got := sink.shutdownCount(); got != 1 {
		t.Fatalf("sink shut down %d times, want exactly 1", got)
	}

	keyLine := sink.textsAt(keyRow())
	var sawEcho, sawQuit bool
	for _, s := range keyLine {
		if s == "Last key pressed: 97" {
			sawEcho = true
		}
		if s == "Last key pressed: 113" {
			sawQuit = true
		}
	}
	if !sawEcho || !sawQuit {
		t.Fatalf("key line writes = %q, want echoes for 97 and 113", keyLine)
	}
}

func TestRunExternalCancelStillTearsDown(t *testing.T) {
	sink := newFakeSink()
	c := New(testConfig(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if got := c.State(); got != StateTerminated {
		t.Fatalf("state = %v, want terminated", got)
	}
	if got := sink.shutdownCount(); got != 1 {
		t.Fatalf("sink shut down %d times, want exactly 1", got)
	}
}

func TestRunDecoupledDrainsInOrder(t *testing.T) {
	sink := newFakeSink()
	cfg := testConfig()
	cfg.Decoupled = true
	cfg.QueueCapacity = 4
	c := New(cfg, sink)

	go func() {
		time.Sleep(20 * time.Millisecond)
		sink.keys <- 'q'
	}()
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	clockLine := sink.textsAt(term.DefaultLayout().ClockRow)
	if len(clockLine) == 0 {
		t.Fatal("no clock writes reached the sink")
	}
	for i := 1; i < len(clockLine); i++ {
		if clockLine[i] < clockLine[i-1] {
			t.Fatalf("clock writes out of order: %q before %q", clockLine[i-1], clockLine[i])
		}
	}
	if got := sink.shutdownCount(); got != 1 {
		t.Fatalf("sink shut down %d times, want exactly 1", got)
	}
}

func TestRunResetNoticeAfterQuietPeriod(t *testing.T) {
	sink := newFakeSink()
	sink.keys <- 'a'
	c := New(testConfig(), sink)

	go func() {
		time.Sleep(40 * time.Millisecond) // well past the 5ms reset delay
		sink.keys <- 'q'
	}()
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var sawNotice bool
	for _, s := range sink.textsAt(keyRow()) {
		if strings.HasPrefix(s, "No key pressed in the last") {
			sawNotice = true
		}
	}
	if !sawNotice {
		t.Fatal("reset notice never reached the sink")
	}
}

func TestRunInitFailureReportsError(t *testing.T) {
	sink := newFakeSink()
	sink.initErr = errors.New("no tty")
	c := New(testConfig(), sink)

	err := c.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Fatalf("Run returned %v, want wrapped init error", err)
	}
	if got := sink.shutdownCount(); got != 0 {
		t.Fatalf("sink shut down %d times after failed init, want 0", got)
	}
}

func TestRunPanicStillTearsDown(t *testing.T) {
	sink := newFakeSink()
	sink.panicOn = "Last key pressed: 120"
	sink.keys <- 'x'
	c := New(testConfig(), sink)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the panic to propagate")
			}
		}()
		c.Run(context.Background())
	}()

	if got := c.State(); got != StateTerminated {
		t.Fatalf("state = %v, want terminated", got)
	}
	if got := sink.shutdownCount(); got != 1 {
		t.Fatalf("sink shut down %d times, want exactly 1", got)
	}
}

// keyRow avoids repeating the literal key row in assertions.
func keyRow() int {
	return term.DefaultLayout().KeyRow
}
