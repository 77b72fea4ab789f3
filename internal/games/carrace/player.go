package carrace

import (
	"fmt"

	"github.com/vovakirdan/carrace/internal/core"
)

// Player is the block the user steers. It is confined to the arena and
// moves horizontally by a fixed step.
type Player struct {
	block    core.Block
	stepSize float64
}

// NewPlayer places a player of the given size at the horizontal center of
// the arena with its bottom edge on the arena floor.
func NewPlayer(arena core.Rect, width, height, stepSize float64, meta core.Meta) (*Player, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("carrace: player step size must be > 0, got %v: %w", stepSize, core.ErrInvalidArgument)
	}
	rect, err := core.NewRect(arena.CenterX(), arena.Bottom()-height/2, width, height)
	if err != nil {
		return nil, fmt.Errorf("carrace: player: %w", err)
	}
	if !rect.Inside(arena) {
		return nil, fmt.Errorf("carrace: player %v does not fit in arena %v: %w", rect, arena, core.ErrInvalidArgument)
	}
	return &Player{
		block:    core.NewBlock(rect, meta, &arena),
		stepSize: stepSize,
	}, nil
}

// StepLeft moves the player one step left. Returns false at the left wall.
func (p *Player) StepLeft() bool {
	return p.block.TryMoveX(-p.stepSize)
}

// StepRight moves the player one step right. Returns false at the right wall.
func (p *Player) StepRight() bool {
	return p.block.TryMoveX(p.stepSize)
}

// Block returns a copy of the player's block.
func (p *Player) Block() core.Block {
	return p.block
}

// Rect returns the player's current geometry.
func (p *Player) Rect() core.Rect {
	return p.block.Rect()
}

// StepSize returns the horizontal distance of one step.
func (p *Player) StepSize() float64 {
	return p.stepSize
}
