package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/carrace/internal/core"
)

// DetectedKey is one answered prompt of the key detector.
type DetectedKey struct {
	Prompt string
	Code   int
}

// detectorKeyMap holds the only binding the detector does not capture.
type detectorKeyMap struct {
	Abort key.Binding
}

func (k detectorKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Abort} }
func (k detectorKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// DetectorModel asks for one key per prompt and records the code each
// produces, so users can fill in the key settings of a config file.
type DetectorModel struct {
	prompts  []string
	detected []DetectedKey
	mapper   *KeyMapper
	keys     detectorKeyMap
	help     help.Model
	aborted  bool
}

// NewDetectorModel creates a detector for the given prompts.
func NewDetectorModel(prompts []string) DetectorModel {
	return DetectorModel{
		prompts: prompts,
		mapper:  NewKeyMapper(core.NoKey),
		keys: detectorKeyMap{
			Abort: key.NewBinding(
				key.WithKeys("ctrl+c"),
				key.WithHelp("ctrl+c", "abort"),
			),
		},
		help: help.New(),
	}
}

// Init initializes the detector.
func (m DetectorModel) Init() tea.Cmd {
	return nil
}

// Update records key codes until every prompt is answered.
func (m DetectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, m.keys.Abort) {
		m.aborted = true
		return m, tea.Quit
	}

	code := m.mapper.MapKey(keyMsg)
	if code == core.NoKey {
		return m, nil
	}
	m.detected = append(m.detected, DetectedKey{Prompt: m.prompts[len(m.detected)], Code: code})
	if len(m.detected) == len(m.prompts) {
		return m, tea.Quit
	}
	return m, nil
}

// View lists answered prompts and asks for the next key.
func (m DetectorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Key code detector"))
	b.WriteString("\n\n")

	for _, d := range m.detected {
		b.WriteString(fmt.Sprintf("%s: %d (%s)\n", d.Prompt, d.Code, KeyName(d.Code)))
	}
	if len(m.detected) < len(m.prompts) {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("Press the key for: %s", m.prompts[len(m.detected)])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Detected returns the codes recorded so far.
func (m DetectorModel) Detected() []DetectedKey {
	return m.detected
}

// Aborted reports whether the user left with ctrl+c.
func (m DetectorModel) Aborted() bool {
	return m.aborted
}

// RunKeyDetector runs the detector and returns one code per prompt.
// Returns nil without error if the user aborted.
func RunKeyDetector(prompts []string, opts ...tea.ProgramOption) ([]DetectedKey, error) {
	if len(prompts) == 0 {
		return nil, nil
	}
	p := tea.NewProgram(NewDetectorModel(prompts), opts...)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: key detector: %w", err)
	}
	m, ok := final.(DetectorModel)
	if !ok || m.Aborted() {
		return nil, nil
	}
	return m.Detected(), nil
}
