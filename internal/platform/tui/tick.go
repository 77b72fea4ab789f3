// Package tui provides the Bubble Tea integration for the race game.
// It renders engine frames in the terminal and turns key presses into the
// integer key codes the engine consumes.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/carrace/internal/games/carrace"
)

// frameMsg carries a snapshot from the engine goroutine to the UI.
type frameMsg carrace.Frame

// finishedMsg is sent once the engine has returned.
type finishedMsg struct {
	outcome carrace.Outcome
	err     error
}

// holdExpiredMsg ends the game-over screen.
type holdExpiredMsg time.Time

// holdCmd keeps the final frame on screen for d before quitting.
func holdCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return holdExpiredMsg(t)
	})
}
