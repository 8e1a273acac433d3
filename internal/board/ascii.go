package board

import (
	"fmt"
	"strings"

	"chessplay/internal/core"
)

// fileHeader lists label columns for files 0..7
const fileHeader = "  H G F E D C B A"

// ToASCII creates an ASCII representation of the board using square labels,
// Black's home rank on top
func (b *Board) ToASCII() string {
	g := b.grid()
	var sb strings.Builder
	sb.WriteString(fileHeader + "\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < core.BoardSize; f++ {
			if p := g[r][f]; p == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", p.Kind.Symbol(p.Side)))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString(fileHeader)

	return sb.String()
}

// SymbolAt returns the FEN letter of the piece on sq, or 0 when empty
func (b *Board) SymbolAt(sq core.Square) byte {
	if p := b.PieceAt(sq); p != nil {
		return p.Kind.Symbol(p.Side)
	}
	return 0
}
