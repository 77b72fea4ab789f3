package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/carrace/internal/core"
	"github.com/vovakirdan/carrace/internal/games/carrace"
)

// Model is the Bubble Tea model for a race session.
// Frames arrive from the engine goroutine as messages; key codes go back over
// the input channel.
type Model struct {
	frame    carrace.Frame
	hasFrame bool
	screen   *core.Screen
	width    int
	height   int
	mapper   *KeyMapper
	keys     RaceKeyMap
	help     help.Model
	input    chan<- int
	opts     Options
	finished bool
	outcome  carrace.Outcome
	quitting bool
}

// NewModel creates a model that forwards key codes to input.
func NewModel(bindings core.KeyBindings, input chan<- int, opts Options) Model {
	opts = opts.withDefaults()
	h := help.New()
	h.ShowAll = false

	return Model{
		screen: core.NewScreen(opts.Width, opts.Height),
		width:  opts.Width,
		height: opts.Height,
		mapper: NewKeyMapper(bindings.Quit),
		keys:   NewRaceKeyMap(bindings),
		help:   h,
		input:  input,
		opts:   opts,
	}
}

// Init initializes the model. The engine drives all updates.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.frame = carrace.Frame(msg)
		m.hasFrame = true
		return m, nil

	case finishedMsg:
		m.finished = true
		m.outcome = msg.outcome
		if msg.err != nil || msg.outcome.State != carrace.StateCollided {
			m.quitting = true
			return m, tea.Quit
		}
		return m, holdCmd(m.opts.Hold)

	case holdExpiredMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey forwards the key code to the engine. After a crash any key leaves.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		m.quitting = true
		return m, tea.Quit
	}

	code := m.mapper.MapKey(msg)
	if code == core.NoKey {
		return m, nil
	}
	// Drop the key if the engine is far behind rather than block the UI
	select {
	case m.input <- code:
	default:
	}
	return m, nil
}

// View renders the current frame to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.hasFrame {
		return statusStyle.Render("starting...")
	}

	vp := NewViewport(m.frame.Arena, m.width, m.height)
	DrawFrame(m.screen, m.frame, vp)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.finished {
		footer = crashLine(m.outcome)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusLine(m.frame),
		RenderScreen(m.screen),
		footer,
	)
}
