// Package tui provides the Bubble Tea integration for PuzzleBit.
// It handles the terminal UI loop, input mapping, menus and persistence.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Session identifies the
// Model whose tick loop sent it.
type TickMsg struct {
	Time    time.Time
	Session string
}

// tickCmd returns a Bubble Tea command that sends one tick message after
// the interval for tickRate.
func tickCmd(tickRate int, session string) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Session: session}
	})
}
