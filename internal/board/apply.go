package board

import (
	"errors"
	"fmt"
	"slices"

	"chessplay/internal/core"
	"chessplay/internal/piece"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrCaptured    = errors.New("piece is captured")
	ErrForeign     = errors.New("piece does not belong to this board")
)

// Outcome describes a move that was applied to the board
type Outcome struct {
	Piece    *piece.Piece
	From     core.Square
	To       core.Square
	Captured *piece.Piece // nil when the destination was empty
	Check    bool
	// CapturableBy lists the opposing pieces that can take the moved piece
	// on its new square. Only populated when Check is set.
	CapturableBy []*piece.Piece
	Events       []core.Event
}

// ApplyMove moves p to dest. The destination must be one of p's possible
// moves. An enemy on dest is captured first, then p is relocated and marked
// moved, then the check scan runs from p's new square when enabled.
func (b *Board) ApplyMove(p *piece.Piece, dest core.Square) (*Outcome, error) {
	if p == nil || !b.owns(p) {
		return nil, ErrForeign
	}
	if !p.Alive() {
		return nil, fmt.Errorf("%w: %s", ErrCaptured, p)
	}
	if !slices.Contains(b.PossibleMoves(p), dest) {
		return nil, fmt.Errorf("%w: %s cannot reach %s", ErrIllegalMove, p, dest.Label())
	}

	out := &Outcome{Piece: p, From: p.Position, To: dest}

	if target := b.PieceAt(dest); target != nil && target.Side != p.Side {
		if ev, ok := b.capture(target); ok {
			out.Captured = target
			out.Events = append(out.Events, ev)
		}
	}

	p.Position = dest
	p.Moved = true

	if b.detectCheck {
		b.scanCheck(out)
	} else {
		p.InCheck = false
	}

	return out, nil
}

// Recheck repeats the check scan for the moved piece, for callers that change
// the piece after ApplyMove (promotion). A check already reported is kept.
func (b *Board) Recheck(out *Outcome) {
	if b.detectCheck && !out.Check {
		b.scanCheck(out)
	}
}

func (b *Board) scanCheck(out *Outcome) {
	p := out.Piece
	if !b.givesCheck(p) {
		p.InCheck = false
		return
	}
	p.InCheck = true
	out.Check = true
	out.CapturableBy = b.Attackers(p.Position, core.Opponent(p.Side))
	ev := core.Event{Kind: core.EventCheck, Side: p.Side, Piece: p.Kind, Square: p.Position}
	b.emit(ev)
	out.Events = append(out.Events, ev)
}

// Capture removes target from play. Capturing an already captured piece is
// a no-op and emits nothing.
func (b *Board) Capture(target *piece.Piece) {
	if target == nil || !b.owns(target) {
		return
	}
	b.capture(target)
}

func (b *Board) capture(target *piece.Piece) (core.Event, bool) {
	if target.Captured {
		return core.Event{}, false
	}
	target.Captured = true
	ev := core.Event{Kind: core.EventCaptured, Side: target.Side, Piece: target.Kind, Square: target.Position}
	b.emit(ev)
	return ev, true
}

// givesCheck reports whether any square p can reach holds the enemy king
func (b *Board) givesCheck(p *piece.Piece) bool {
	occ := occupancy(b.pieces)
	for _, sq := range generate(p, occ) {
		if q := occ[sq]; q != nil && q.Kind == core.King && q.Side != p.Side {
			return true
		}
	}
	return false
}

// InCheck reports whether side's king is attacked by any opposing piece
func (b *Board) InCheck(side core.Side) bool {
	king := b.King(side)
	if king == nil {
		return false
	}
	return len(b.Attackers(king.Position, core.Opponent(side))) > 0
}
