package carrace

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/vovakirdan/carrace/internal/core"
)

func newTestManager(t *testing.T, arena core.Rect, params ObstacleParams, rng RandSource) *ObstacleManager {
	t.Helper()
	om, err := NewObstacleManager(arena, params, rng)
	if err != nil {
		t.Fatalf("NewObstacleManager() failed: %v", err)
	}
	return om
}

func obstacleAt(t *testing.T, tlx, tly, brx, bry float64) core.Block {
	t.Helper()
	r, err := core.RectFromBBox(tlx, tly, brx, bry)
	if err != nil {
		t.Fatalf("RectFromBBox() failed: %v", err)
	}
	return core.NewBlock(r, nil, nil)
}

func TestNewObstacleManagerRejectsBadArguments(t *testing.T) {
	arena := mustArena(t, 100, 200)
	valid := ObstacleParams{MaxObstacles: 3, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50}
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		arena  core.Rect
		params func(p ObstacleParams) ObstacleParams
		rng    RandSource
	}{
		{"zero arena", core.Rect{}, func(p ObstacleParams) ObstacleParams { return p }, rng},
		{"nil rng", arena, func(p ObstacleParams) ObstacleParams { return p }, nil},
		{"zero width", arena, func(p ObstacleParams) ObstacleParams { p.Width = 0; return p }, rng},
		{"negative height", arena, func(p ObstacleParams) ObstacleParams { p.Height = -1; return p }, rng},
		{"wider than arena", arena, func(p ObstacleParams) ObstacleParams { p.Width = 101; return p }, rng},
		{"min above max", arena, func(p ObstacleParams) ObstacleParams { p.MinDist = 60; return p }, rng},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewObstacleManager(tc.arena, tc.params(valid), tc.rng)
			if !errors.Is(err, core.ErrInvalidArgument) {
				t.Errorf("error = %v, expected ErrInvalidArgument", err)
			}
		})
	}
}

func TestSpawnPlacement(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: -1, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{10}})

	res := om.Step()
	if !res.Spawned {
		t.Fatal("empty arena should spawn on the first step")
	}

	obstacles := om.Obstacles()
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}
	b := obstacles[0].Rect().BBox()
	if b.TLX < 0 || b.TLX > 80 {
		t.Errorf("left edge %v outside [0, 80]", b.TLX)
	}
	if b.TLX != 10 {
		t.Errorf("left edge %v, expected forced draw 10", b.TLX)
	}
	if b.TLY != -9 || b.BRY != 1 {
		t.Errorf("vertical span (%v, %v), expected (-9, 1)", b.TLY, b.BRY)
	}
	if b.BRX-b.TLX != 20 {
		t.Errorf("width %v, expected 20", b.BRX-b.TLX)
	}
}

func TestSpawnLeftEdgeStaysInArena(t *testing.T) {
	arena := mustArena(t, 100, 200)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		om := newTestManager(t, arena, ObstacleParams{
			MaxObstacles: 1, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
		}, rng)
		om.Step()
		r := om.Obstacles()[0].Rect()
		if r.Left() < 0 || r.Right() > 100 {
			t.Fatalf("spawned obstacle %v outside arena width", r)
		}
	}
}

func TestStepMovesObstaclesDown(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 0, Width: 20, Height: 10, StepSize: 3, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{0}})
	om.obstacles = []core.Block{obstacleAt(t, 0, 10, 20, 20), obstacleAt(t, 40, 50, 60, 60)}

	om.Step()

	got := om.Obstacles()
	if got[0].Rect().Top() != 13 || got[1].Rect().Top() != 53 {
		t.Errorf("tops = (%v, %v), expected (13, 53)", got[0].Rect().Top(), got[1].Rect().Top())
	}
	if got[0].Rect().Left() != 0 || got[1].Rect().Left() != 40 {
		t.Error("Step should not move obstacles horizontally")
	}
}

func TestStepEvictsOnlyOldest(t *testing.T) {
	arena := mustArena(t, 100, 200)
	// MaxObstacles 0 disables spawning so only eviction is observed
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 0, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{0}})

	// Loose overlap keeps an obstacle until its center is more than
	// 200+10 below the arena center (y=100), i.e. center y > 310.
	om.obstacles = []core.Block{
		obstacleAt(t, 0, 50, 20, 60),   // newest, inside
		obstacleAt(t, 0, 400, 20, 410), // far below
		obstacleAt(t, 0, 500, 20, 510), // oldest, far below
	}

	res := om.Step()
	if !res.Evicted {
		t.Fatal("oldest obstacle outside the arena should be evicted")
	}
	if om.Len() != 2 {
		t.Fatalf("expected 2 obstacles after one eviction, got %d", om.Len())
	}
	if top := om.Obstacles()[1].Rect().Top(); top != 401 {
		t.Errorf("remaining oldest top = %v, expected 401", top)
	}

	om.Step()
	if om.Len() != 1 {
		t.Fatalf("expected 1 obstacle after second eviction, got %d", om.Len())
	}

	res = om.Step()
	if res.Evicted || om.Len() != 1 {
		t.Error("obstacle inside the arena must not be evicted")
	}
}

func TestStepKeepsOldestWhileItOverlaps(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 0, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{0}})

	// The newer obstacle is far outside but the oldest still overlaps:
	// eviction never skips ahead of the oldest entry.
	om.obstacles = []core.Block{
		obstacleAt(t, 0, 900, 20, 910),
		obstacleAt(t, 0, 150, 20, 160),
	}

	if res := om.Step(); res.Evicted {
		t.Error("newer out-of-arena obstacle must not be evicted before the oldest")
	}
	if om.Len() != 2 {
		t.Errorf("expected 2 obstacles, got %d", om.Len())
	}
}

func TestMaxObstaclesCap(t *testing.T) {
	arena := mustArena(t, 100, 200)
	// MinDist 0 with a zero draw makes every tick eligible once the newest
	// obstacle's top is below the arena top.
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 3, Width: 20, Height: 10, StepSize: 10, MinDist: 0, MaxDist: 0,
	}, &fixedRand{values: []int{0}})

	reached := false
	for i := 0; i < 200; i++ {
		om.Step()
		if n := om.Len(); n > 3 {
			t.Fatalf("tick %d: %d obstacles exceeds cap 3", i, n)
		} else if n == 3 {
			reached = true
		}
	}
	if !reached {
		t.Error("cap should have been reached")
	}
}

func TestNoLimitKeepsSpawning(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: -1, Width: 20, Height: 10, StepSize: 10, MinDist: 0, MaxDist: 0,
	}, &fixedRand{values: []int{0}})

	for i := 0; i < 10; i++ {
		om.Step()
	}
	if om.Len() != 10 {
		t.Errorf("expected one spawn per tick without a cap, got %d obstacles", om.Len())
	}
}

func TestShouldSpawnSpacing(t *testing.T) {
	arena := mustArena(t, 100, 200)

	tests := []struct {
		name     string
		newest   float64 // top of newest obstacle
		draw     int     // Intn result; spacing = MinDist + draw
		expected bool
	}{
		{"top at arena top", 0, 0, false},
		{"top at min dist", 5, 0, false},
		{"top below min dist", 3, 0, false},
		{"draw below top", 20, 4, true},   // spacing 9 < 20
		{"draw equal top", 20, 15, false}, // spacing 20 == 20
		{"draw above top", 20, 30, false}, // spacing 35 > 20
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			om := newTestManager(t, arena, ObstacleParams{
				MaxObstacles: -1, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
			}, &fixedRand{values: []int{tc.draw}})
			om.obstacles = []core.Block{obstacleAt(t, 0, tc.newest, 20, tc.newest+10)}

			if got := om.shouldSpawn(); got != tc.expected {
				t.Errorf("shouldSpawn() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSpawnInsertsAtFront(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: -1, Width: 20, Height: 10, StepSize: 1, MinDist: 0, MaxDist: 0,
	}, &fixedRand{values: []int{0}})
	om.obstacles = []core.Block{obstacleAt(t, 50, 30, 70, 40)}

	if res := om.Step(); !res.Spawned {
		t.Fatal("expected a spawn")
	}
	got := om.Obstacles()
	if got[0].Rect().Bottom() != 1 {
		t.Errorf("newest obstacle should be first, bottom = %v", got[0].Rect().Bottom())
	}
	if got[1].Rect().Left() != 50 {
		t.Error("previous obstacle should move to index 1")
	}
}

func TestIncrementStepSize(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 0, Width: 20, Height: 10, StepSize: 2, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{0}})
	om.obstacles = []core.Block{obstacleAt(t, 0, 0, 20, 10)}

	om.IncrementStepSize(0.5)
	om.IncrementStepSize(0.5)
	if om.StepSize() != 3 {
		t.Errorf("StepSize() = %v, expected 3", om.StepSize())
	}

	om.Step()
	if top := om.Obstacles()[0].Rect().Top(); top != 3 {
		t.Errorf("obstacle moved to %v, expected 3", top)
	}

	om.Reset()
	if om.StepSize() != 2 || om.Len() != 0 {
		t.Errorf("Reset should restore step 2 and clear obstacles, got step %v len %d", om.StepSize(), om.Len())
	}
}

func TestOverlapsAny(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 0, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{0}})

	player, err := core.RectFromBBox(40, 190, 60, 200) // center (50, 195)
	if err != nil {
		t.Fatal(err)
	}

	if om.OverlapsAny(player) {
		t.Error("no obstacles should mean no overlap")
	}

	// Center (10, 5): far above the player
	om.obstacles = []core.Block{obstacleAt(t, 0, 0, 20, 10)}
	if om.OverlapsAny(player) {
		t.Error("distant obstacle should not overlap")
	}

	// Center (90, 175): dx 40 == 20+20, dy 20 == 10+10, loose rule says overlap
	om.obstacles = append(om.obstacles, obstacleAt(t, 80, 170, 100, 180))
	if !om.OverlapsAny(player) {
		t.Error("obstacle within full extents should overlap under the loose rule")
	}

	// Center (90.5, 175): dx 40.5 exceeds the sum of widths
	om.obstacles = []core.Block{obstacleAt(t, 80.5, 170, 100.5, 180)}
	if om.OverlapsAny(player) {
		t.Error("obstacle beyond sum of widths should not overlap")
	}
}

func TestObstaclesReturnsCopy(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: 0, Width: 20, Height: 10, StepSize: 1, MinDist: 5, MaxDist: 50,
	}, &fixedRand{values: []int{0}})
	om.obstacles = []core.Block{obstacleAt(t, 0, 0, 20, 10)}

	got := om.Obstacles()
	got[0].MoveY(50)

	if om.Obstacles()[0].Rect().Top() != 0 {
		t.Error("mutating the returned slice changed the manager")
	}
}

func TestObstacleDeterminism(t *testing.T) {
	arena := mustArena(t, 100, 200)
	params := ObstacleParams{MaxObstacles: -1, Width: 20, Height: 10, StepSize: 2, MinDist: 5, MaxDist: 50}

	a := newTestManager(t, arena, params, rand.New(rand.NewSource(12345)))
	b := newTestManager(t, arena, params, rand.New(rand.NewSource(12345)))

	for i := 0; i < 300; i++ {
		a.Step()
		b.Step()
	}

	oa, ob := a.Obstacles(), b.Obstacles()
	if len(oa) != len(ob) {
		t.Fatalf("Determinism failed: counts differ. Run1=%d, Run2=%d", len(oa), len(ob))
	}
	for i := range oa {
		if oa[i].Rect() != ob[i].Rect() {
			t.Errorf("Determinism failed at %d: %v vs %v", i, oa[i].Rect(), ob[i].Rect())
		}
	}
}

func TestConcurrentStepAndRead(t *testing.T) {
	arena := mustArena(t, 100, 200)
	om := newTestManager(t, arena, ObstacleParams{
		MaxObstacles: -1, Width: 20, Height: 10, StepSize: 3, MinDist: 5, MaxDist: 50,
	}, rand.New(rand.NewSource(3)))

	probe, err := core.RectFromBBox(40, 190, 60, 200)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			om.Step()
			if i%100 == 0 {
				om.IncrementStepSize(0.1)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			obs := om.Obstacles()
			// Newest first: tops must be non-decreasing along the slice
			for j := 1; j < len(obs); j++ {
				if obs[j].Rect().Top() < obs[j-1].Rect().Top() {
					t.Errorf("inconsistent snapshot: %v before %v", obs[j-1].Rect(), obs[j].Rect())
					return
				}
			}
			om.OverlapsAny(probe)
		}
	}()
	wg.Wait()
}
