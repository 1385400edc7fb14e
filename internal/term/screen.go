package term

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/eiannone/keyboard"

	"github.com/jask/keyclock/internal/input"
)

const (
	ansiHideCursor  = "\x1b[?25l"
	ansiShowCursor  = "\x1b[?25h"
	ansiClearScreen = "\x1b[2J"
	ansiClearLine   = "\x1b[2K"
	ansiHome        = "\x1b[H"
)

var _ Sink = (*Screen)(nil)

// Screen is the real-terminal Sink. Input comes from the keyboard package's
// raw-mode event channel; output is ANSI cursor-addressed writes.
type Screen struct {
	out    io.Writer
	events <-chan keyboard.KeyEvent
	styles map[Style]lipgloss.Style
}

// NewScreen creates a screen writing to out, typically os.Stdout.
func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out, styles: defaultStyles()}
}

// Init puts the terminal in raw mode with echo off, hides the cursor and
// clears the screen. Pair with Shutdown on every exit path.
func (s *Screen) Init() error {
	events, err := keyboard.GetKeys(8)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	s.events = events
	fmt.Fprint(s.out, ansiHideCursor+ansiClearScreen+ansiHome)
	return nil
}

// Shutdown restores the terminal: cooked mode, echo, visible cursor.
func (s *Screen) Shutdown() {
	keyboard.Close()
	fmt.Fprint(s.out, ansiClearScreen+ansiHome+ansiShowCursor)
}

// Write clears the target line and writes styled text at row, col
// (zero-based; ANSI addressing is one-based).
func (s *Screen) Write(row, col int, text string, style Style) {
	fmt.Fprintf(s.out, "\x1b[%d;%dH%s%s", row+1, col+1, ansiClearLine, s.styles[style].Render(text))
}

// ReadKey reports one pending key without blocking. Runes carry their
// codepoint; special keys carry the keyboard package's key code (Esc is 27
// either way).
func (s *Screen) ReadKey() (input.Code, bool) {
	select {
	case ev := <-s.events:
		if ev.Err != nil {
			return input.NoKey, false
		}
		if ev.Rune != 0 {
			return input.Code(ev.Rune), true
		}
		return input.Code(ev.Key), true
	default:
		return input.NoKey, false
	}
}
