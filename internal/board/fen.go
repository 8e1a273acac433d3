package board

import (
	"fmt"
	"strconv"
	"strings"

	"chessplay/internal/core"
	"chessplay/internal/piece"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Meta holds the FEN fields outside piece placement that the game keeps
type Meta struct {
	Turn     core.Side
	Halfmove int
	Fullmove int
}

// ParseFEN builds a board from a FEN string. The first placement row maps to
// rank 0 (Black's home rank). Castling and en passant fields are checked for
// shape only. Each side must have exactly one king.
func ParseFEN(fen string, opts ...Option) (*Board, Meta, error) {
	var meta Meta
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, meta, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != core.BoardSize {
		return nil, meta, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	var pieces []*piece.Piece
	kings := map[core.Side]int{}
	for r := 0; r < core.BoardSize; r++ {
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= core.BoardSize {
				return nil, meta, fmt.Errorf("invalid FEN: too many pieces in rank %d", r+1)
			}
			kind, side, ok := core.ParseSymbol(ch)
			if !ok {
				return nil, meta, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			p := piece.New(side, core.Sq(r, file), kind)
			if kind == core.Pawn {
				_, pawnRank := homeRanks(side)
				p.Moved = r != pawnRank
			}
			if kind == core.King {
				kings[side]++
			}
			pieces = append(pieces, p)
			file++
		}
		if file != core.BoardSize {
			return nil, meta, fmt.Errorf("invalid FEN: rank %d has %d files", r+1, file)
		}
	}
	if kings[core.SideWhite] != 1 || kings[core.SideBlack] != 1 {
		return nil, meta, fmt.Errorf("invalid FEN: each side needs exactly one king")
	}

	switch parts[1] {
	case "w":
		meta.Turn = core.SideWhite
	case "b":
		meta.Turn = core.SideBlack
	default:
		return nil, meta, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	if !validCastling(parts[2]) {
		return nil, meta, fmt.Errorf("invalid FEN: castling field %q", parts[2])
	}
	if !validEnPassant(parts[3]) {
		return nil, meta, fmt.Errorf("invalid FEN: en passant field %q", parts[3])
	}

	var err error
	if meta.Halfmove, err = strconv.Atoi(parts[4]); err != nil || meta.Halfmove < 0 {
		return nil, Meta{}, fmt.Errorf("invalid FEN: halfmove counter %q", parts[4])
	}
	if meta.Fullmove, err = strconv.Atoi(parts[5]); err != nil || meta.Fullmove < 1 {
		return nil, Meta{}, fmt.Errorf("invalid FEN: fullmove counter %q", parts[5])
	}

	return New(pieces, opts...), meta, nil
}

func validCastling(s string) bool {
	if s == "-" {
		return true
	}
	if len(s) == 0 || len(s) > 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune("KQkq", rune(s[i])) {
			return false
		}
	}
	return true
}

func validEnPassant(s string) bool {
	if s == "-" {
		return true
	}
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && (s[1] == '3' || s[1] == '6')
}

// grid places alive pieces by square, first piece in the collection winning
func (b *Board) grid() [core.BoardSize][core.BoardSize]*piece.Piece {
	var g [core.BoardSize][core.BoardSize]*piece.Piece
	for _, p := range b.pieces {
		if !p.Alive() || !p.Position.OnBoard() {
			continue
		}
		if g[p.Position.Rank][p.Position.File] == nil {
			g[p.Position.Rank][p.Position.File] = p
		}
	}
	return g
}

// Placement returns the FEN piece-placement field
func (b *Board) Placement() string {
	g := b.grid()
	var sb strings.Builder
	for r := 0; r < core.BoardSize; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < core.BoardSize; f++ {
			p := g[r][f]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Kind.Symbol(p.Side))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// FEN exports the position. Castling and en passant are not tracked and are
// always written as "-".
func (b *Board) FEN(meta Meta) string {
	fullmove := meta.Fullmove
	if fullmove < 1 {
		fullmove = 1
	}
	return fmt.Sprintf("%s %s - - %d %d", b.Placement(), meta.Turn.Code(), meta.Halfmove, fullmove)
}
