// Package board holds the piece collection of a game and implements move
// generation, move application, capture and check detection over it.
package board

import (
	"chessplay/internal/core"
	"chessplay/internal/piece"
)

// Notifier receives check and capture events as moves are applied
type Notifier func(core.Event)

type Option func(*Board)

// WithCheckDetection toggles the post-move check scan (enabled by default)
func WithCheckDetection(enabled bool) Option {
	return func(b *Board) {
		b.detectCheck = enabled
	}
}

func WithNotifier(fn Notifier) Option {
	return func(b *Board) {
		b.notify = fn
	}
}

// Board is the complete collection of pieces of both sides, alive and
// captured. Captured pieces stay in the collection and are skipped by every
// occupancy query.
type Board struct {
	pieces      []*piece.Piece
	detectCheck bool
	notify      Notifier
}

func New(pieces []*piece.Piece, opts ...Option) *Board {
	b := &Board{
		pieces:      pieces,
		detectCheck: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewStandard returns a board with a fresh 32-piece starting layout
func NewStandard(opts ...Option) *Board {
	return New(StandardSetup(), opts...)
}

func (b *Board) CheckDetection() bool {
	return b.detectCheck
}

// Pieces returns the board's own collection; callers must not append to it
func (b *Board) Pieces() []*piece.Piece {
	return b.pieces
}

// Alive returns the uncaptured pieces of side in collection order
func (b *Board) Alive(side core.Side) []*piece.Piece {
	var out []*piece.Piece
	for _, p := range b.pieces {
		if p.Alive() && p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// PieceAt returns the first alive piece on sq, or nil
func (b *Board) PieceAt(sq core.Square) *piece.Piece {
	for _, p := range b.pieces {
		if p.Alive() && p.Position == sq {
			return p
		}
	}
	return nil
}

// PieceByID finds a piece by its stable ID, captured or not
func (b *Board) PieceByID(id string) *piece.Piece {
	for _, p := range b.pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// King returns the first alive king of side, or nil when it has been captured
func (b *Board) King(side core.Side) *piece.Piece {
	for _, p := range b.pieces {
		if p.Alive() && p.Kind == core.King && p.Side == side {
			return p
		}
	}
	return nil
}

// PossibleMoves generates the destinations of p against this board
func (b *Board) PossibleMoves(p *piece.Piece) []core.Square {
	return PossibleMoves(p, b.pieces)
}

// Clone deep-copies the pieces and keeps the check detection setting. The
// copy has no notifier, so its moves are never reported to the original's
// listener.
func (b *Board) Clone() *Board {
	pieces := make([]*piece.Piece, len(b.pieces))
	for i, p := range b.pieces {
		pieces[i] = p.Clone()
	}
	return &Board{
		pieces:      pieces,
		detectCheck: b.detectCheck,
	}
}

func (b *Board) owns(p *piece.Piece) bool {
	for _, q := range b.pieces {
		if q == p {
			return true
		}
	}
	return false
}

func (b *Board) emit(ev core.Event) {
	if b.notify != nil {
		b.notify(ev)
	}
}
