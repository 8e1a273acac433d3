package piece

import "chessplay/internal/core"

// Direction names one labelled vector list of a movement table
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
	Special
	numDirections
)

// Directions lists every direction in generation order
var Directions = []Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight, Special}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case UpLeft:
		return "upLeft"
	case UpRight:
		return "upRight"
	case DownLeft:
		return "downLeft"
	case DownRight:
		return "downRight"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// Sliding reports whether vectors of this direction are successive multiples
// of one unit step, so generation stops at the first occupied square
func (d Direction) Sliding() bool {
	return d != Special
}

// Vector is an offset relative to the piece's current square
type Vector struct {
	DRank int
	DFile int
}

// Table holds the vector lists of one piece kind, indexed by Direction
type Table [numDirections][]Vector

func (t *Table) List(d Direction) []Vector {
	return t[d]
}

// Empty reports whether the table has no vectors at all
func (t *Table) Empty() bool {
	for _, l := range t {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

const maxSlide = core.BoardSize - 1

var unit = [Special]Vector{
	Up:        {-1, 0},
	Down:      {1, 0},
	Left:      {0, -1},
	Right:     {0, 1},
	UpLeft:    {-1, -1},
	UpRight:   {-1, 1},
	DownLeft:  {1, -1},
	DownRight: {1, 1},
}

var (
	orthogonal = []Direction{Up, Down, Left, Right}
	diagonal   = []Direction{UpLeft, UpRight, DownLeft, DownRight}
)

var (
	kingTable   = buildTable(nil, []Vector{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}})
	queenTable  = buildTable(append(append([]Direction{}, orthogonal...), diagonal...), nil)
	rookTable   = buildTable(orthogonal, nil)
	bishopTable = buildTable(diagonal, nil)
	knightTable = buildTable(nil, []Vector{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {2, 1}, {2, -1}, {-2, 1}, {-2, -1}})

	blackPawnTable = buildTable(nil, []Vector{{1, 0}, {2, 0}})
	whitePawnTable = buildTable(nil, []Vector{{-1, 0}, {-2, 0}})
)

func buildTable(slides []Direction, special []Vector) Table {
	var t Table
	for _, d := range slides {
		u := unit[d]
		list := make([]Vector, 0, maxSlide)
		for m := 1; m <= maxSlide; m++ {
			list = append(list, Vector{DRank: u.DRank * m, DFile: u.DFile * m})
		}
		t[d] = list
	}
	t[Special] = special
	return t
}

// TableFor returns the movement table of a kind. Only pawns depend on side:
// Black pawns advance toward higher ranks, White pawns toward lower ones.
// The returned table is shared and must not be modified.
func TableFor(kind core.Kind, side core.Side) *Table {
	switch kind {
	case core.King:
		return &kingTable
	case core.Queen:
		return &queenTable
	case core.Rook:
		return &rookTable
	case core.Bishop:
		return &bishopTable
	case core.Knight:
		return &knightTable
	case core.Pawn:
		if side == core.SideBlack {
			return &blackPawnTable
		}
		return &whitePawnTable
	}
	return &Table{}
}
