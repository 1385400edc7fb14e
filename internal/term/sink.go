// Package term is the display collaborator: a raw-mode terminal the
// coordinator writes lines to and polls keys from.
package term

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/keyclock/internal/input"
)

// Style selects how a sink renders a line.
type Style int

const (
	StyleDefault Style = iota
	StyleClock
	StyleNotice
)

// A Sink is the display surface tasks write to.
//
// Init and Shutdown form a scoped pair: after a successful Init, Shutdown
// must run on every exit path, normal or not, and restores the terminal.
// Write clears the target line before writing. ReadKey never blocks; a
// false ok means no key is pending, which is a state, not an error.
type Sink interface {
	Init() error
	Shutdown()
	Write(row, col int, text string, style Style)
	ReadKey() (code input.Code, ok bool)
}

// Layout fixes the screen coordinates each writer owns. The clock and key
// regions are disjoint by construction, so writers need no locking.
type Layout struct {
	ClockRow, ClockCol int
	KeyRow, KeyCol     int
}

// DefaultLayout mirrors the classic arrangement: clock on the top line, key
// echo further down.
func DefaultLayout() Layout {
	return Layout{ClockRow: 0, ClockCol: 0, KeyRow: 10, KeyCol: 0}
}

var (
	colorAccent lipgloss.Color = "#89b4fa"
	colorMuted  lipgloss.Color = "#a6adc8"
	colorText   lipgloss.Color = "#cdd6f4"
)

func defaultStyles() map[Style]lipgloss.Style {
	return map[Style]lipgloss.Style{
		StyleDefault: lipgloss.NewStyle().Foreground(colorText),
		StyleClock:   lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		StyleNotice:  lipgloss.NewStyle().Foreground(colorMuted),
	}
}
