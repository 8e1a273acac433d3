// Package piece defines chess pieces and their declarative movement tables.
package piece

import (
	"fmt"

	"chessplay/internal/core"

	"github.com/google/uuid"
)

// Piece is a single chess piece. It is mutated in place as it moves and is
// never removed from its board: capture sets Captured instead.
type Piece struct {
	ID       string
	Kind     core.Kind
	Side     core.Side
	Position core.Square
	Moved    bool
	InCheck  bool // last move by this piece attacked the enemy king
	Captured bool
}

// New creates an unmoved piece on pos
func New(side core.Side, pos core.Square, kind core.Kind) *Piece {
	return &Piece{
		ID:       uuid.New().String(),
		Kind:     kind,
		Side:     side,
		Position: pos,
	}
}

// Table returns the movement table for the piece's kind and side
func (p *Piece) Table() *Table {
	return TableFor(p.Kind, p.Side)
}

func (p *Piece) Alive() bool {
	return !p.Captured
}

// Promote replaces the piece's kind in place, keeping identity and position
func (p *Piece) Promote(kind core.Kind) {
	p.Kind = kind
}

// Clone returns an independent copy with the same ID
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

func (p *Piece) String() string {
	if p.Captured {
		return fmt.Sprintf("%s %s (captured)", p.Side, p.Kind)
	}
	return fmt.Sprintf("%s %s at (%s)", p.Side, p.Kind, p.Position.Label())
}
