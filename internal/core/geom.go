// Package core provides fundamental types and utilities for the race game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimension is returned when a rectangle is built with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidBBox is returned when a bounding box has its bottom-right
	// corner not strictly below and to the right of its top-left corner.
	ErrInvalidBBox = errors.New("invalid bbox")

	// ErrInvalidArgument is returned when a constructor receives a value of
	// the wrong shape (zero arena, nil generator, impossible spawn range).
	ErrInvalidArgument = errors.New("invalid argument")
)

// BBox is the top-left / bottom-right view of a rectangle.
type BBox struct {
	TLX, TLY float64 // Top-left corner
	BRX, BRY float64 // Bottom-right corner
}

// Rect is an axis-aligned rectangle stored as center and size.
// Y grows downward, so Top < Bottom.
type Rect struct {
	cx, cy float64
	w, h   float64
}

// NewRect creates a rectangle centered at (cx, cy).
func NewRect(cx, cy, w, h float64) (Rect, error) {
	if w <= 0 {
		return Rect{}, fmt.Errorf("core: width must be > 0, got %v: %w", w, ErrInvalidDimension)
	}
	if h <= 0 {
		return Rect{}, fmt.Errorf("core: height must be > 0, got %v: %w", h, ErrInvalidDimension)
	}
	return Rect{cx: cx, cy: cy, w: w, h: h}, nil
}

// RectFromBBox creates a rectangle from its top-left and bottom-right corners.
func RectFromBBox(tlx, tly, brx, bry float64) (Rect, error) {
	if brx <= tlx {
		return Rect{}, fmt.Errorf("core: brx(%v) should be > tlx(%v): %w", brx, tlx, ErrInvalidBBox)
	}
	if bry <= tly {
		return Rect{}, fmt.Errorf("core: bry(%v) should be > tly(%v): %w", bry, tly, ErrInvalidBBox)
	}
	return Rect{
		cx: (tlx + brx) / 2,
		cy: (tly + bry) / 2,
		w:  brx - tlx,
		h:  bry - tly,
	}, nil
}

// RectFromSize creates a rectangle whose top-left corner sits at the origin.
func RectFromSize(w, h float64) (Rect, error) {
	if w <= 0 || h <= 0 {
		return Rect{}, fmt.Errorf("core: size %vx%v: %w", w, h, ErrInvalidDimension)
	}
	return RectFromBBox(0, 0, w, h)
}

// Valid reports whether the rectangle has positive dimensions.
// The zero Rect is not valid.
func (r Rect) Valid() bool {
	return r.w > 0 && r.h > 0
}

func (r Rect) CenterX() float64 { return r.cx }
func (r Rect) CenterY() float64 { return r.cy }
func (r Rect) Width() float64   { return r.w }
func (r Rect) Height() float64  { return r.h }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 { return r.cy - r.h/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.cy + r.h/2 }

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 { return r.cx - r.w/2 }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.cx + r.w/2 }

// BBox returns the corner view of the rectangle.
func (r Rect) BBox() BBox {
	return BBox{TLX: r.Left(), TLY: r.Top(), BRX: r.Right(), BRY: r.Bottom()}
}

// Translate moves the rectangle in place and returns it for chaining.
func (r *Rect) Translate(dx, dy float64) *Rect {
	r.cx += dx
	r.cy += dy
	return r
}

// Translated returns a copy of the rectangle moved by (dx, dy).
func (r Rect) Translated(dx, dy float64) Rect {
	return Rect{cx: r.cx + dx, cy: r.cy + dy, w: r.w, h: r.h}
}

// Overlaps reports whether two rectangles are close enough to count as touching.
//
// The test compares the distance between centers against the sum of the FULL
// extents on each axis, not the half extents a strict AABB test would use.
// Collision and obstacle retirement are tuned around this wider range, so it
// must stay as is.
func (r Rect) Overlaps(other Rect) bool {
	if math.Abs(r.cx-other.cx) > r.w+other.w {
		return false
	}
	if math.Abs(r.cy-other.cy) > r.h+other.h {
		return false
	}
	return true
}

// Contains returns true if other lies within r. Shared edges count as inside.
func (r Rect) Contains(other Rect) bool {
	a, b := r.BBox(), other.BBox()
	return a.TLX <= b.TLX && a.BRX >= b.BRX &&
		a.TLY <= b.TLY && a.BRY >= b.BRY
}

// Inside returns true if r lies within other.
func (r Rect) Inside(other Rect) bool {
	return other.Contains(r)
}

// String formats the rectangle by its corners.
func (r Rect) String() string {
	b := r.BBox()
	return fmt.Sprintf("Rect{TL: (%g, %g) BR: (%g, %g)}", b.TLX, b.TLY, b.BRX, b.BRY)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
