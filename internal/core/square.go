package core

import (
	"fmt"
	"strings"
)

const BoardSize = 8

// labelFiles maps file index to label letter; file 0 is "H"
const labelFiles = "HGFEDCBA"

// Square addresses a board cell by rank (row 0 at Black's back rank) and file
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

func (s Square) OnBoard() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

func (s Square) Add(dRank, dFile int) Square {
	return Square{Rank: s.Rank + dRank, File: s.File + dFile}
}

// Label renders the display label: file letter from H..A followed by rank+1.
// Square (0,7) is "A1" and square (7,0) is "H8".
func (s Square) Label() string {
	if !s.OnBoard() {
		return "--"
	}
	return fmt.Sprintf("%c%d", labelFiles[s.File], s.Rank+1)
}

func (s Square) String() string {
	return s.Label()
}

// ParseLabel is the inverse of Square.Label, case-insensitive on the letter
func ParseLabel(label string) (Square, error) {
	if len(label) != 2 {
		return Square{}, fmt.Errorf("invalid square label %q: expected 2 characters", label)
	}
	file := strings.IndexByte(labelFiles, upper(label[0]))
	if file < 0 {
		return Square{}, fmt.Errorf("invalid square label %q: file must be A-H", label)
	}
	if label[1] < '1' || label[1] > '8' {
		return Square{}, fmt.Errorf("invalid square label %q: rank must be 1-8", label)
	}
	return Square{Rank: int(label[1] - '1'), File: file}, nil
}

// Algebraic renders standard notation (file 0 is "a", rank index 0 is "8").
// Used for FEN and for talking to other chess tooling.
func (s Square) Algebraic() string {
	if !s.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '8'-s.Rank)
}

// ParseAlgebraic is the inverse of Square.Algebraic
func ParseAlgebraic(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("invalid square %q: expected 2 characters", name)
	}
	f := name[0] | 0x20
	if f < 'a' || f > 'h' || name[1] < '1' || name[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	return Square{Rank: int('8' - name[1]), File: int(f - 'a')}, nil
}

// Chebyshev returns the king-move distance between two squares
func Chebyshev(a, b Square) int {
	return max(abs(a.Rank-b.Rank), abs(a.File-b.File))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
