package board

import (
	"chessplay/internal/core"
	"chessplay/internal/piece"
)

// occupancy indexes alive pieces by square. When two pieces claim the same
// square the one earlier in the collection wins, as with a linear scan.
func occupancy(pieces []*piece.Piece) map[core.Square]*piece.Piece {
	occ := make(map[core.Square]*piece.Piece, len(pieces))
	for _, p := range pieces {
		if !p.Alive() {
			continue
		}
		if _, taken := occ[p.Position]; !taken {
			occ[p.Position] = p
		}
	}
	return occ
}

// PossibleMoves returns the squares p may move to given every piece in
// pieces. Sliding directions stop at the first occupied square, which is
// included only when it holds an enemy. Kings and knights test each special
// vector on its own. Pawns push straight only onto empty squares, may push
// two while still inside their starting rank band, and take diagonally only
// onto enemy pieces. Captured pieces have no moves.
func PossibleMoves(p *piece.Piece, pieces []*piece.Piece) []core.Square {
	if p == nil || !p.Alive() || !p.Position.OnBoard() {
		return nil
	}
	return generate(p, occupancy(pieces))
}

func generate(p *piece.Piece, occ map[core.Square]*piece.Piece) []core.Square {
	var moves []core.Square
	seen := make(map[core.Square]bool)
	add := func(sq core.Square) {
		if !seen[sq] {
			seen[sq] = true
			moves = append(moves, sq)
		}
	}

	table := p.Table()
	for _, d := range piece.Directions {
		list := table.List(d)
		if d == piece.Special && p.Kind == core.Pawn {
			pawnMoves(p, list, occ, add)
			continue
		}
		for _, v := range list {
			target := p.Position.Add(v.DRank, v.DFile)
			if !target.OnBoard() {
				continue
			}
			occupant := occ[target]
			if occupant == nil || occupant.Side != p.Side {
				add(target)
			}
			if occupant != nil && d.Sliding() {
				break
			}
		}
	}
	return moves
}

func pawnMoves(p *piece.Piece, pushes []piece.Vector, occ map[core.Square]*piece.Piece, add func(core.Square)) {
	for i, v := range pushes {
		if i > 0 && !inStartBand(p) {
			break
		}
		target := p.Position.Add(v.DRank, v.DFile)
		// A pawn never takes straight ahead: any occupant blocks the push.
		if !target.OnBoard() || occ[target] != nil {
			break
		}
		add(target)
	}

	forward := pawnForward(p.Side)
	for _, dFile := range []int{1, -1} {
		target := p.Position.Add(forward, dFile)
		if !target.OnBoard() {
			continue
		}
		if occupant := occ[target]; occupant != nil && occupant.Side != p.Side {
			add(target)
		}
	}
}

// inStartBand gates the double step on the pawn's current rank rather than
// its moved flag: Black ranks 0-1, White ranks 6-7.
func inStartBand(p *piece.Piece) bool {
	if p.Side == core.SideBlack {
		return p.Position.Rank <= 1
	}
	return p.Position.Rank >= core.BoardSize-2
}

func pawnForward(side core.Side) int {
	if side == core.SideBlack {
		return 1
	}
	return -1
}

// Attackers returns the alive pieces of side by whose possible moves include sq
func (b *Board) Attackers(sq core.Square, by core.Side) []*piece.Piece {
	occ := occupancy(b.pieces)
	var out []*piece.Piece
	for _, p := range b.pieces {
		if !p.Alive() || p.Side != by {
			continue
		}
		for _, m := range generate(p, occ) {
			if m == sq {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
