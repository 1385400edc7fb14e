// teaclock is the bubbletea rendition of the clock / key-echo screen: the
// framework owns the terminal, ticks arrive as messages, and the delayed
// "no activity" notice is a tagged tick whose stale firings are ignored.
package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("teaclock: %v", err)
	}
}
