// Package tui provides the Bubble Tea host for Carpet Run.
// It runs both tick streams, maps keys to carpet intents and renders the game.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SimTickMsg triggers a simulation tick.
type SimTickMsg time.Time

// MotionTickMsg triggers a carpet motion tick.
type MotionTickMsg time.Time

// simTickCmd schedules the next simulation tick.
func simTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return SimTickMsg(t)
	})
}

// motionTickCmd schedules the next motion tick.
func motionTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return MotionTickMsg(t)
	})
}
