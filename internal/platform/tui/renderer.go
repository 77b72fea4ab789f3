package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrace/internal/config"
	"github.com/vovakirdan/carrace/internal/core"
	"github.com/vovakirdan/carrace/internal/games/carrace"
)

// ErrClosed is returned by Render once the terminal program has exited.
var ErrClosed = errors.New("tui: renderer closed")

const (
	defaultInputWait = 33 * time.Millisecond
	defaultHold      = 3 * time.Second
	inputBuffer      = 8
)

// Options configures a terminal session.
type Options struct {
	Seed      int64         // Obstacle RNG seed, 0 = time based
	Logger    *log.Logger   // Engine logger; must not write to the terminal
	InputWait time.Duration // Longest wait for a key per frame
	Hold      time.Duration // How long the crash screen stays up
	Width     int           // Initial terminal width
	Height    int           // Initial terminal height

	// ProgramOptions are passed to tea.NewProgram after the defaults.
	ProgramOptions []tea.ProgramOption
}

func (o Options) withDefaults() Options {
	def := core.DefaultConfig()
	if o.InputWait <= 0 {
		o.InputWait = defaultInputWait
	}
	if o.Hold <= 0 {
		o.Hold = defaultHold
	}
	if o.Width <= 0 {
		o.Width = def.ScreenW
	}
	if o.Height <= 0 {
		o.Height = def.ScreenH
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Renderer implements carrace.Renderer on top of a Bubble Tea program.
// Render hands the frame to the program and waits up to InputWait for a key.
type Renderer struct {
	program   *tea.Program
	keys      <-chan int
	inputWait time.Duration
	done      chan struct{}
	doneOnce  sync.Once
}

// NewRenderer wraps a program whose model forwards key codes to keys.
func NewRenderer(p *tea.Program, keys <-chan int, inputWait time.Duration) *Renderer {
	if inputWait <= 0 {
		inputWait = defaultInputWait
	}
	return &Renderer{
		program:   p,
		keys:      keys,
		inputWait: inputWait,
		done:      make(chan struct{}),
	}
}

// Render implements carrace.Renderer.
func (r *Renderer) Render(f carrace.Frame) (int, error) {
	select {
	case <-r.done:
		return core.NoKey, ErrClosed
	default:
	}

	r.program.Send(frameMsg(f))

	timer := time.NewTimer(r.inputWait)
	defer timer.Stop()

	select {
	case code := <-r.keys:
		return code, nil
	case <-timer.C:
		return core.NoKey, nil
	case <-r.done:
		return core.NoKey, ErrClosed
	}
}

// Close implements carrace.Renderer. The program itself keeps running so the
// final frame stays visible; Run shuts it down.
func (r *Renderer) Close() error {
	r.shutdown()
	return nil
}

func (r *Renderer) shutdown() {
	r.doneOnce.Do(func() { close(r.done) })
}

// Run plays one session in the terminal and returns its outcome.
// The engine runs on its own goroutine while Bubble Tea owns the terminal.
func Run(ctx context.Context, cfg config.RaceConfig, opts Options) (carrace.Outcome, error) {
	opts = opts.withDefaults()
	cfg = cfg.WithDefaults()

	keys := make(chan int, inputBuffer)
	model := NewModel(cfg.KeyBindings(), keys, opts)

	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts.ProgramOptions...)
	p := tea.NewProgram(model, programOpts...)
	r := NewRenderer(p, keys, opts.InputWait)

	engine, err := carrace.NewEngine(cfg,
		carrace.WithRenderer(r),
		carrace.WithLogger(opts.Logger),
		carrace.WithSeed(opts.Seed),
	)
	if err != nil {
		return carrace.Outcome{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		outcome carrace.Outcome
		err     error
	}
	results := make(chan result, 1)
	go func() {
		out, err := engine.Start(ctx)
		p.Send(finishedMsg{outcome: out, err: err})
		results <- result{outcome: out, err: err}
	}()

	_, runErr := p.Run()
	cancel()
	r.shutdown()
	res := <-results

	if runErr != nil {
		return res.outcome, fmt.Errorf("tui: %w", runErr)
	}
	return res.outcome, res.err
}
