package core

// MetaColor is the metadata key renderers read a block's Color from.
const MetaColor = "color"

// Meta is opaque data attached to a block for rendering or identification.
// Game logic passes it through without interpreting it.
type Meta map[string]any

// Clone returns a shallow copy of the metadata map.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Block is a rectangle that may be confined to a boundary.
// Moves that would leave the boundary are rejected, so the block stops at the wall.
type Block struct {
	rect     Rect
	meta     Meta
	boundary *Rect
}

// NewBlock creates a block. A nil boundary means the block moves freely.
// The boundary is copied and never changes afterwards.
func NewBlock(rect Rect, meta Meta, boundary *Rect) Block {
	b := Block{rect: rect, meta: meta}
	if boundary != nil {
		bound := *boundary
		b.boundary = &bound
	}
	return b
}

// Rect returns the block's current geometry.
func (b Block) Rect() Rect {
	return b.rect
}

// Meta returns the block's metadata (may be nil).
func (b Block) Meta() Meta {
	return b.meta
}

// Boundary returns the confining rectangle, if any.
func (b Block) Boundary() (Rect, bool) {
	if b.boundary == nil {
		return Rect{}, false
	}
	return *b.boundary, true
}

// TryMoveX moves the block horizontally and reports whether it moved.
func (b *Block) TryMoveX(dx float64) bool {
	return b.tryMove(dx, 0)
}

// TryMoveY moves the block vertically and reports whether it moved.
func (b *Block) TryMoveY(dy float64) bool {
	return b.tryMove(0, dy)
}

// MoveX moves the block horizontally, ignoring a blocked move.
func (b *Block) MoveX(dx float64) *Block {
	b.TryMoveX(dx)
	return b
}

// MoveY moves the block vertically, ignoring a blocked move.
func (b *Block) MoveY(dy float64) *Block {
	b.TryMoveY(dy)
	return b
}

func (b *Block) tryMove(dx, dy float64) bool {
	if b.boundary != nil && !b.rect.Translated(dx, dy).Inside(*b.boundary) {
		return false
	}
	b.rect.Translate(dx, dy)
	return true
}

// Clone returns a copy that shares no mutable state with b.
func (b Block) Clone() Block {
	return NewBlock(b.rect, b.meta.Clone(), b.boundary)
}
