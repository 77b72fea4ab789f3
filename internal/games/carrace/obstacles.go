package carrace

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/vovakirdan/carrace/internal/core"
)

// RandSource is the random generator an ObstacleManager draws from.
// *rand.Rand satisfies it; tests substitute fixed sequences.
type RandSource interface {
	Intn(n int) int
}

// ObstacleParams configures spawning and movement.
type ObstacleParams struct {
	MaxObstacles int       // Cap on active obstacles; negative disables the cap
	Width        float64   // Obstacle width
	Height       float64   // Obstacle height
	StepSize     float64   // Initial downward movement per Step
	MinDist      int       // Lower bound of the randomized spacing draw
	MaxDist      int       // Upper bound of the randomized spacing draw
	Meta         core.Meta // Attached to every spawned obstacle
}

// StepResult describes what a single Step changed.
type StepResult struct {
	Evicted bool // The oldest obstacle left the arena and was removed
	Spawned bool // A new obstacle was inserted at the top
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
// Obstacles are ordered newest first. It is safe for concurrent use: the
// timer goroutine steps it while the render loop reads it.
type ObstacleManager struct {
	mu        sync.RWMutex
	arena     core.Rect
	params    ObstacleParams
	stepSize  float64
	obstacles []core.Block
	rng       RandSource
}

// NewObstacleManager creates a manager for the given arena.
func NewObstacleManager(arena core.Rect, params ObstacleParams, rng RandSource) (*ObstacleManager, error) {
	switch {
	case !arena.Valid():
		return nil, fmt.Errorf("carrace: arena must have positive size: %w", core.ErrInvalidArgument)
	case rng == nil:
		return nil, fmt.Errorf("carrace: nil random source: %w", core.ErrInvalidArgument)
	case params.Width <= 0 || params.Height <= 0:
		return nil, fmt.Errorf("carrace: obstacle size %vx%v: %w", params.Width, params.Height, core.ErrInvalidArgument)
	case params.Width > arena.Width():
		return nil, fmt.Errorf("carrace: obstacle width %v exceeds arena width %v: %w", params.Width, arena.Width(), core.ErrInvalidArgument)
	case params.MinDist > params.MaxDist:
		return nil, fmt.Errorf("carrace: min dist %d > max dist %d: %w", params.MinDist, params.MaxDist, core.ErrInvalidArgument)
	}

	return &ObstacleManager{
		arena:     arena,
		params:    params,
		stepSize:  params.StepSize,
		obstacles: make([]core.Block, 0, 8),
		rng:       rng,
	}, nil
}

// Reset clears all obstacles and restores the initial step size.
func (om *ObstacleManager) Reset() {
	om.mu.Lock()
	defer om.mu.Unlock()

	om.obstacles = om.obstacles[:0]
	om.stepSize = om.params.StepSize
}

// Step moves every obstacle down, retires the oldest one once it has left
// the arena, and spawns at most one new obstacle.
func (om *ObstacleManager) Step() StepResult {
	om.mu.Lock()
	defer om.mu.Unlock()

	var res StepResult
	for i := range om.obstacles {
		om.obstacles[i].MoveY(om.stepSize)
	}

	// Only the oldest obstacle can be retired, one per tick
	if n := len(om.obstacles); n > 0 && !om.obstacles[n-1].Rect().Overlaps(om.arena) {
		om.obstacles = om.obstacles[:n-1]
		res.Evicted = true
	}

	if om.shouldSpawn() {
		res.Spawned = om.spawn()
	}
	return res
}

// shouldSpawn decides whether a new obstacle enters this tick.
// Spacing is drawn at random so obstacles do not arrive at a fixed cadence.
func (om *ObstacleManager) shouldSpawn() bool {
	if om.params.MaxObstacles >= 0 && len(om.obstacles) >= om.params.MaxObstacles {
		return false
	}
	if len(om.obstacles) == 0 {
		return true
	}
	top := om.obstacles[0].Rect().Top() - om.arena.Top()
	if top <= float64(om.params.MinDist) {
		return false
	}
	return float64(om.randInt(om.params.MinDist, om.params.MaxDist)) < top
}

// spawn inserts a new obstacle whose bottom edge sits one unit below the
// arena top, at a random horizontal offset.
func (om *ObstacleManager) spawn() bool {
	maxLeft := int(math.Floor(om.arena.Width() - om.params.Width))
	left := om.arena.Left() + float64(om.randInt(0, maxLeft))
	bottom := om.arena.Top() + 1
	top := bottom - om.params.Height

	rect, err := core.RectFromBBox(left, top, left+om.params.Width, bottom)
	if err != nil {
		return false
	}
	om.obstacles = slices.Insert(om.obstacles, 0, core.NewBlock(rect, om.params.Meta, nil))
	return true
}

// randInt returns a uniform integer in [lo, hi].
func (om *ObstacleManager) randInt(lo, hi int) int {
	return lo + om.rng.Intn(hi-lo+1)
}

// IncrementStepSize speeds obstacles up by delta.
func (om *ObstacleManager) IncrementStepSize(delta float64) {
	om.mu.Lock()
	defer om.mu.Unlock()
	om.stepSize += delta
}

// StepSize returns the current movement per Step.
func (om *ObstacleManager) StepSize() float64 {
	om.mu.RLock()
	defer om.mu.RUnlock()
	return om.stepSize
}

// Len returns the number of active obstacles.
func (om *ObstacleManager) Len() int {
	om.mu.RLock()
	defer om.mu.RUnlock()
	return len(om.obstacles)
}

// Obstacles returns a copy of the active obstacles, newest first.
func (om *ObstacleManager) Obstacles() []core.Block {
	om.mu.RLock()
	defer om.mu.RUnlock()
	return slices.Clone(om.obstacles)
}

// OverlapsAny tests the given rectangle against every obstacle using the
// loose overlap rule of core.Rect.Overlaps.
func (om *ObstacleManager) OverlapsAny(r core.Rect) bool {
	om.mu.RLock()
	defer om.mu.RUnlock()
	for _, o := range om.obstacles {
		if o.Rect().Overlaps(r) {
			return true
		}
	}
	return false
}

// Arena returns the rectangle obstacles move through.
func (om *ObstacleManager) Arena() core.Rect {
	return om.arena
}
