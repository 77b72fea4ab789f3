package tui

import (
	"math"

	"github.com/vovakirdan/carrace/internal/core"
	"github.com/vovakirdan/carrace/internal/games/carrace"
)

const (
	chromeCols = 2 // Left and right border
	chromeRows = 4 // Border top and bottom, status line, help line
	blockRune  = '█'
)

// Viewport maps arena coordinates onto terminal cells.
// Arenas larger than the terminal are scaled down uniformly; smaller ones are
// drawn one cell per unit.
type Viewport struct {
	Scale float64 // Cells per arena unit, never above 1
	Cols  int     // Arena width in cells, border excluded
	Rows  int     // Arena height in cells, border excluded
}

// NewViewport fits arena into a terminal of termW x termH cells.
func NewViewport(arena core.Rect, termW, termH int) Viewport {
	availW := float64(max(termW-chromeCols, 1))
	availH := float64(max(termH-chromeRows, 1))

	scale := math.Min(1, math.Min(availW/arena.Width(), availH/arena.Height()))
	return Viewport{
		Scale: scale,
		Cols:  max(int(math.Ceil(arena.Width()*scale)), 1),
		Rows:  max(int(math.Ceil(arena.Height()*scale)), 1),
	}
}

// DrawFrame rasterizes a frame: arena border plus every block, clipped to the
// arena. Obstacles are drawn first so the player stays visible on a hit.
func DrawFrame(s *core.Screen, f carrace.Frame, vp Viewport) {
	s.Resize(vp.Cols+chromeCols, vp.Rows+2)
	s.Clear()
	s.DrawBox(0, 0, vp.Cols+chromeCols, vp.Rows+2)

	for i := len(f.Blocks) - 1; i >= 0; i-- {
		drawBlock(s, f.Arena, f.Blocks[i], vp)
	}

	if f.State == carrace.StateCollided {
		s.DrawTextCentered(vp.Rows/2+1, " CRASH ")
	}
}

// drawBlock fills the cells a block covers. Blocks without a color are drawn
// in the default color.
func drawBlock(s *core.Screen, arena core.Rect, b core.Block, vp Viewport) {
	bb := b.Rect().BBox()
	tlx := core.ClampF(bb.TLX, arena.Left(), arena.Right())
	brx := core.ClampF(bb.BRX, arena.Left(), arena.Right())
	tly := core.ClampF(bb.TLY, arena.Top(), arena.Bottom())
	bry := core.ClampF(bb.BRY, arena.Top(), arena.Bottom())

	// Offset by one cell for the border
	cell, err := core.RectFromBBox(
		1+(tlx-arena.Left())*vp.Scale,
		1+(tly-arena.Top())*vp.Scale,
		1+(brx-arena.Left())*vp.Scale,
		1+(bry-arena.Top())*vp.Scale,
	)
	if err != nil {
		return // Entirely outside the arena
	}

	color, ok := b.Meta()[core.MetaColor].(core.Color)
	if !ok {
		color = core.ColorDefault
	}
	s.FillRect(cell, blockRune, color)
}
