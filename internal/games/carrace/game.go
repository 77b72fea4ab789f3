// Package carrace implements a vertical dodging game: the player steers a
// block along the bottom of the arena while obstacle blocks fall from the top
// at a speed that grows over time.
package carrace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrace/internal/config"
	"github.com/vovakirdan/carrace/internal/core"
)

var (
	// ErrAlreadyStarted is returned by Start on an engine that has left Idle.
	ErrAlreadyStarted = errors.New("carrace: engine already started")

	// ErrNoRenderer is returned by Start when no renderer was supplied.
	ErrNoRenderer = errors.New("carrace: no renderer")
)

// State is the engine lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCollided
	StateQuit
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCollided:
		return "Collided"
	case StateQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state ends the session.
func (s State) Terminal() bool {
	return s == StateCollided || s == StateQuit
}

// Frame is a consistent snapshot of the world handed to the renderer.
type Frame struct {
	Arena    core.Rect
	Blocks   []core.Block // Player first, then obstacles newest first
	Title    string
	StepSize float64
	State    State
	Elapsed  time.Duration
}

// Renderer draws frames and reports user input.
// Render blocks for at most a short, bounded wait and returns the pressed
// key code or core.NoKey.
type Renderer interface {
	Render(f Frame) (int, error)
	Close() error
}

// Outcome summarizes a finished session.
type Outcome struct {
	State    State
	Frames   int
	Ticks    uint64
	StepSize float64
	Elapsed  time.Duration
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRenderer sets the frame sink and input source.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock replaces the wall clock used for speed increases.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSeed seeds the obstacle generator. 0 means time based.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithRand replaces the obstacle generator entirely.
func WithRand(r RandSource) Option {
	return func(e *Engine) { e.rng = r }
}

// Engine owns the arena, obstacles, player and timer of one game session.
type Engine struct {
	cfg       config.RaceConfig
	keys      core.KeyBindings
	arena     core.Rect
	obstacles *ObstacleManager
	player    *Player
	timer     *Timer
	speed     *SpeedSchedule

	renderer Renderer
	logger   *log.Logger
	clock    Clock
	seed     int64
	rng      RandSource

	// mu guards the world: state, speed schedule, player and every obstacle
	// mutation, so a snapshot never sees a half-applied tick.
	mu        sync.Mutex
	state     State
	frames    int
	startedAt time.Time
	stopOnce  sync.Once
	stopErr   error
}

// NewEngine builds an engine from configuration.
// Invalid configuration yields a *config.ConfigurationError.
func NewEngine(cfg config.RaceConfig, opts ...Option) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:   cfg,
		keys:  cfg.KeyBindings(),
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.rng == nil {
		seed := e.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}

	arena, err := core.RectFromSize(float64(cfg.ArenaWidth), float64(cfg.ArenaHeight))
	if err != nil {
		return nil, &config.ConfigurationError{Field: "arena_width", Reason: "invalid arena", Err: err}
	}
	e.arena = arena

	e.obstacles, err = NewObstacleManager(arena, ObstacleParams{
		MaxObstacles: cfg.MaxObstacles,
		Width:        float64(cfg.ObstacleWidth),
		Height:       float64(cfg.ObstacleHeight),
		StepSize:     cfg.ObstacleStepSize,
		MinDist:      cfg.ObstacleMinDist,
		MaxDist:      cfg.ObstacleMaxDist,
		Meta:         core.Meta{core.MetaColor: cfg.ObstacleColorValue()},
	}, e.rng)
	if err != nil {
		return nil, fmt.Errorf("carrace: obstacles: %w", err)
	}

	e.player, err = NewPlayer(arena,
		float64(cfg.PlayerWidth), float64(cfg.PlayerHeight), cfg.PlayerStepSize,
		core.Meta{core.MetaColor: cfg.PlayerColorValue()})
	if err != nil {
		return nil, fmt.Errorf("carrace: player: %w", err)
	}

	e.speed = NewSpeedSchedule(cfg.SpeedIncreaseInterval(), cfg.ObstacleStepIncrement)
	e.timer = NewTimer(cfg.TickInterval(), e)
	return e, nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Arena returns the playing field.
func (e *Engine) Arena() core.Rect {
	return e.arena
}

// Config returns the validated configuration the engine was built from.
func (e *Engine) Config() config.RaceConfig {
	return e.cfg
}

// Notify advances the world by one tick. It is the Timer callback and does
// nothing unless the engine is running.
func (e *Engine) Notify() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}
	res := e.obstacles.Step()
	if res.Evicted {
		e.logger.Debug("obstacle retired", "active", e.obstacles.Len())
	}

	if e.speed.Due(e.clock.Now()) && e.speed.Enabled() {
		e.obstacles.IncrementStepSize(e.speed.Increment())
		e.logger.Info("increasing speed", "step", e.obstacles.StepSize())
	}
}

// Snapshot copies the world for rendering.
func (e *Engine) Snapshot() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Frame {
	obstacles := e.obstacles.Obstacles()
	blocks := make([]core.Block, 0, len(obstacles)+1)
	blocks = append(blocks, e.player.Block())
	blocks = append(blocks, obstacles...)

	var elapsed time.Duration
	if !e.startedAt.IsZero() {
		elapsed = e.clock.Now().Sub(e.startedAt)
	}
	return Frame{
		Arena:    e.arena,
		Blocks:   blocks,
		Title:    e.cfg.UITitle,
		StepSize: e.obstacles.StepSize(),
		State:    e.state,
		Elapsed:  elapsed,
	}
}

// Start runs the session: it starts the timer and blocks in the input and
// render loop until the player quits, collides or ctx is cancelled.
// Collision and quitting are normal outcomes, not errors.
func (e *Engine) Start(ctx context.Context) (Outcome, error) {
	if e.renderer == nil {
		return Outcome{}, ErrNoRenderer
	}

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return Outcome{}, ErrAlreadyStarted
	}
	e.state = StateRunning
	e.startedAt = e.clock.Now()
	e.speed.Reset(e.startedAt)
	e.mu.Unlock()

	e.logger.Info("game started",
		"arena", fmt.Sprintf("%dx%d", e.cfg.ArenaWidth, e.cfg.ArenaHeight),
		"tick", e.timer.Interval(),
		"speedup_every", e.speed.Interval())

	e.timer.Start()
	loopErr := e.monitor(ctx)
	stopErr := e.Stop()

	out := e.outcome()
	switch out.State {
	case StateCollided:
		e.logger.Info("player collided with obstacle", "elapsed", out.Elapsed.Round(time.Millisecond), "step", out.StepSize)
	case StateQuit:
		e.logger.Info("game quit", "elapsed", out.Elapsed.Round(time.Millisecond))
	}

	if loopErr != nil {
		return out, loopErr
	}
	if stopErr != nil {
		return out, fmt.Errorf("carrace: close renderer: %w", stopErr)
	}
	return out, nil
}

// monitor is the foreground loop: render, read one key, act, check collision.
func (e *Engine) monitor(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			e.finish(StateQuit)
			return nil
		}

		e.mu.Lock()
		if e.state != StateRunning {
			e.mu.Unlock()
			return nil
		}
		frame := e.snapshotLocked()
		e.frames++
		e.mu.Unlock()

		code, err := e.renderer.Render(frame)
		if err != nil {
			e.finish(StateQuit)
			return fmt.Errorf("carrace: render: %w", err)
		}

		if e.handleKey(code) == core.ActionQuit {
			return nil
		}

		if e.obstacles.OverlapsAny(e.player.Rect()) {
			// Stop the world first so the last frame shows the hit.
			if !e.finish(StateCollided) {
				return nil
			}
			final := e.Snapshot()
			if _, err := e.renderer.Render(final); err != nil {
				return fmt.Errorf("carrace: render final frame: %w", err)
			}
			e.mu.Lock()
			e.frames++
			e.mu.Unlock()
			return nil
		}
	}
}

// handleKey applies one key code and returns the resolved action.
func (e *Engine) handleKey(code int) core.Action {
	action := e.keys.Action(code)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch action {
	case core.ActionLeft:
		e.player.StepLeft()
	case core.ActionRight:
		e.player.StepRight()
	case core.ActionQuit:
		if e.state == StateRunning {
			e.state = StateQuit
		}
	}
	return action
}

// finish moves a running engine into a terminal state.
// Returns false if the engine had already left Running.
func (e *Engine) finish(s State) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning {
		return false
	}
	e.state = s
	return true
}

// Stop halts the timer and closes the renderer. A session that has not ended
// yet ends as Quit.
// Safe to call more than once and from another goroutine.
func (e *Engine) Stop() error {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		if !e.state.Terminal() {
			e.state = StateQuit
		}
		e.mu.Unlock()

		e.timer.Stop()
		if e.renderer != nil {
			e.stopErr = e.renderer.Close()
		}
	})
	return e.stopErr
}

func (e *Engine) outcome() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Outcome{
		State:    e.state,
		Frames:   e.frames,
		Ticks:    e.timer.Ticks(),
		StepSize: e.obstacles.StepSize(),
		Elapsed:  e.clock.Now().Sub(e.startedAt),
	}
}
