package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// IsOver reports whether the game has reached a terminal state
func (s State) IsOver() bool {
	return s == StateWhiteWins || s == StateBlackWins
}

// WinnerState returns the terminal state in which side has won
func WinnerState(side Side) State {
	if side == SideWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type Side byte

const (
	SideWhite Side = 'w'
	SideBlack Side = 'b'
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return "-"
	}
}

// Code returns the single letter used in FEN and API payloads
func (s Side) Code() string {
	switch s {
	case SideWhite:
		return "w"
	case SideBlack:
		return "b"
	default:
		return "-"
	}
}

func (s Side) Valid() bool {
	return s == SideWhite || s == SideBlack
}

// ParseSide accepts "w"/"b" as well as "white"/"black" in any case
func ParseSide(s string) (Side, bool) {
	switch s {
	case "w", "W", "white", "White", "WHITE":
		return SideWhite, true
	case "b", "B", "black", "Black", "BLACK":
		return SideBlack, true
	}
	return 0, false
}

func Opponent(s Side) Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

type Kind int

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists every piece kind in ascending value order
var Kinds = []Kind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Unknown"
	}
}

// Symbol returns the FEN letter for the kind, upper case for White
func (k Kind) Symbol(side Side) byte {
	var c byte
	switch k {
	case Pawn:
		c = 'p'
	case Knight:
		c = 'n'
	case Bishop:
		c = 'b'
	case Rook:
		c = 'r'
	case Queen:
		c = 'q'
	case King:
		c = 'k'
	default:
		return '?'
	}
	if side == SideWhite {
		c -= 'a' - 'A'
	}
	return c
}

// ParseSymbol is the inverse of Kind.Symbol
func ParseSymbol(c byte) (Kind, Side, bool) {
	side := SideBlack
	if c >= 'A' && c <= 'Z' {
		side = SideWhite
		c += 'a' - 'A'
	}
	switch c {
	case 'p':
		return Pawn, side, true
	case 'n':
		return Knight, side, true
	case 'b':
		return Bishop, side, true
	case 'r':
		return Rook, side, true
	case 'q':
		return Queen, side, true
	case 'k':
		return King, side, true
	}
	return 0, 0, false
}
