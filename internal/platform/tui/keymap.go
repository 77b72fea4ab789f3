package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/carrace/internal/core"
)

// KeyMapper translates Bubble Tea key messages to the integer key codes the
// game configuration uses.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	quit int
}

// NewKeyMapper creates a key mapper. Ctrl+C always reports quitCode so the
// game can be left even when 'q' is rebound.
func NewKeyMapper(quitCode int) *KeyMapper {
	return &KeyMapper{quit: quitCode}
}

// MapKey translates a key message to a key code.
// Keys without a code (function keys, multi-rune pastes, alt combos) map to core.NoKey.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) int {
	switch msg.Type {
	case tea.KeyCtrlC:
		return km.quit
	case tea.KeyLeft:
		return core.KeyLeft
	case tea.KeyRight:
		return core.KeyRight
	case tea.KeyUp:
		return core.KeyUp
	case tea.KeyDown:
		return core.KeyDown
	case tea.KeyEsc:
		return core.KeyEscape
	case tea.KeyEnter:
		return core.KeyEnter
	case tea.KeyTab:
		return core.KeyTab
	case tea.KeyBackspace:
		return core.KeyBackspace
	case tea.KeySpace:
		return core.KeySpace
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return int(msg.Runes[0])
		}
	}
	return core.NoKey
}

// KeyName returns a short label for a key code, used in help text.
func KeyName(code int) string {
	switch code {
	case core.KeyLeft:
		return "←"
	case core.KeyRight:
		return "→"
	case core.KeyUp:
		return "↑"
	case core.KeyDown:
		return "↓"
	case core.KeyEscape:
		return "esc"
	case core.KeyEnter:
		return "enter"
	case core.KeyTab:
		return "tab"
	case core.KeyBackspace:
		return "backspace"
	case core.KeySpace:
		return "space"
	}
	if code > core.KeySpace && code < 0x7f {
		return string(rune(code))
	}
	return fmt.Sprintf("#%d", code)
}

// RaceKeyMap defines the help bindings shown under the arena.
// Matching is done on key codes by KeyMapper; these bindings only describe them.
type RaceKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k RaceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k RaceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// NewRaceKeyMap builds help bindings for the configured key codes.
func NewRaceKeyMap(b core.KeyBindings) RaceKeyMap {
	quitHelp := KeyName(b.Quit)
	if quitHelp != "q" {
		quitHelp += "/ctrl+c"
	}
	return RaceKeyMap{
		Left: key.NewBinding(
			key.WithKeys(KeyName(b.Left)),
			key.WithHelp(KeyName(b.Left), "steer left"),
		),
		Right: key.NewBinding(
			key.WithKeys(KeyName(b.Right)),
			key.WithHelp(KeyName(b.Right), "steer right"),
		),
		Quit: key.NewBinding(
			key.WithKeys(KeyName(b.Quit), "ctrl+c"),
			key.WithHelp(quitHelp, "quit"),
		),
	}
}
