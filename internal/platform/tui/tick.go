// Package tui runs the snake game in a terminal with Bubble Tea, either
// locally or behind a Wish SSH server. It owns input mapping, the fixed-rate
// tick loop and conversion of the screen buffer to styled output.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at the given rate per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
