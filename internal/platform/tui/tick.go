// Package tui provides the Bubble Tea driver for the snake engine.
// It owns scheduling, input mapping, rendering and the session-end hook.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance the engine by one move. Gen identifies
// the scheduler run that produced it; ticks from a stopped run are dropped.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd returns a Bubble Tea command that fires one tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
