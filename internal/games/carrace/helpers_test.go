package carrace

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/carrace/internal/config"
	"github.com/vovakirdan/carrace/internal/core"
)

// fixedRand returns values from a fixed sequence, clamped to [0, n).
type fixedRand struct {
	values []int
	i      int
}

func (r *fixedRand) Intn(n int) int {
	v := r.values[r.i%len(r.values)]
	r.i++
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// mockClock provides a controllable time source for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// scriptRenderer replays key codes and records every frame.
// After the script runs out it returns core.NoKey.
type scriptRenderer struct {
	mu       sync.Mutex
	keys     []int
	frames   []Frame
	closed   int
	onRender func(n int) // Called before each frame is recorded
	err      error
}

func (r *scriptRenderer) Render(f Frame) (int, error) {
	r.mu.Lock()
	n := len(r.frames)
	hook := r.onRender
	r.mu.Unlock()

	if hook != nil {
		hook(n)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return core.NoKey, r.err
	}
	r.frames = append(r.frames, f)
	if n < len(r.keys) {
		return r.keys[n], nil
	}
	return core.NoKey, nil
}

func (r *scriptRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *scriptRenderer) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// testConfig is the default configuration with a timer slow enough that
// tests drive ticks by hand through Notify.
func testConfig() config.RaceConfig {
	cfg := config.DefaultRaceConfig()
	cfg.ObstacleMoveMS = int(time.Hour / time.Millisecond)
	return cfg
}

func mustArena(t *testing.T, w, h float64) core.Rect {
	t.Helper()
	r, err := core.RectFromSize(w, h)
	if err != nil {
		t.Fatalf("RectFromSize(%v, %v) failed: %v", w, h, err)
	}
	return r
}
