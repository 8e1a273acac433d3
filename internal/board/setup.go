package board

import (
	"chessplay/internal/core"
	"chessplay/internal/piece"
)

var backRank = [core.BoardSize]core.Kind{
	core.Rook, core.Knight, core.Bishop, core.Queen,
	core.King, core.Bishop, core.Knight, core.Rook,
}

// Home ranks: Black starts on ranks 0-1, White on ranks 6-7
func homeRanks(side core.Side) (back, pawns int) {
	if side == core.SideBlack {
		return 0, 1
	}
	return 7, 6
}

// InitialPieces returns a fresh set of the sixteen starting pieces of side
func InitialPieces(side core.Side) []*piece.Piece {
	back, pawns := homeRanks(side)
	out := make([]*piece.Piece, 0, 2*core.BoardSize)
	for file, kind := range backRank {
		out = append(out, piece.New(side, core.Sq(back, file), kind))
	}
	for file := 0; file < core.BoardSize; file++ {
		out = append(out, piece.New(side, core.Sq(pawns, file), core.Pawn))
	}
	return out
}

// StandardSetup returns all 32 starting pieces, Black first
func StandardSetup() []*piece.Piece {
	return append(InitialPieces(core.SideBlack), InitialPieces(core.SideWhite)...)
}
