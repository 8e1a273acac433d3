// Package game wraps a board with turn ownership, promotion, the move log and
// game end by king capture.
package game

import (
	"errors"
	"fmt"

	"chessplay/internal/board"
	"chessplay/internal/core"
	"chessplay/internal/piece"
)

var (
	ErrNoPiece     = errors.New("no piece on square")
	ErrNotYourTurn = errors.New("not your turn")
	ErrGameOver    = errors.New("game is over")
)

// LogEntry is one line of the move log: the kind that moved and where it went
type LogEntry struct {
	Piece core.Kind
	To    core.Square
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s %s", e.Piece, e.To.Label())
}

// PieceRef is a value copy of a piece's identity at a point in time
type PieceRef struct {
	ID     string
	Kind   core.Kind
	Side   core.Side
	Square core.Square
}

func refOf(p *piece.Piece) PieceRef {
	return PieceRef{ID: p.ID, Kind: p.Kind, Side: p.Side, Square: p.Position}
}

func (r PieceRef) String() string {
	return fmt.Sprintf("%s %s at (%s)", r.Side, r.Kind, r.Square.Label())
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Piece        PieceRef // as it stood on From, before any promotion
	From         core.Square
	To           core.Square
	Captured     *PieceRef
	Promoted     bool
	Check        bool
	CapturableBy []PieceRef
	Events       []core.Event
	State        core.State
	MoveCount    int
}

type Game struct {
	board      *board.Board
	players    map[core.Side]*core.Player
	turn       core.Side
	state      core.State
	log        []LogEntry
	halfmove   int
	fullmove   int
	initialFEN string
	lastResult *MoveResult
}

func New(b *board.Board, whitePlayer, blackPlayer *core.Player, startingTurn core.Side) *Game {
	return newGame(b, whitePlayer, blackPlayer, board.Meta{Turn: startingTurn, Fullmove: 1})
}

// NewStandard starts a game from the standard layout with White to move
func NewStandard(whitePlayer, blackPlayer *core.Player, opts ...board.Option) *Game {
	return New(board.NewStandard(opts...), whitePlayer, blackPlayer, core.SideWhite)
}

// FromFEN resumes a game from a FEN position
func FromFEN(fen string, whitePlayer, blackPlayer *core.Player, opts ...board.Option) (*Game, error) {
	b, meta, err := board.ParseFEN(fen, opts...)
	if err != nil {
		return nil, err
	}
	return newGame(b, whitePlayer, blackPlayer, meta), nil
}

func newGame(b *board.Board, white, black *core.Player, meta board.Meta) *Game {
	if !meta.Turn.Valid() {
		meta.Turn = core.SideWhite
	}
	if meta.Fullmove < 1 {
		meta.Fullmove = 1
	}
	g := &Game{
		board: b,
		players: map[core.Side]*core.Player{
			core.SideWhite: white,
			core.SideBlack: black,
		},
		turn:     meta.Turn,
		state:    core.StateOngoing,
		halfmove: meta.Halfmove,
		fullmove: meta.Fullmove,
	}
	g.initialFEN = g.FEN()
	return g
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Turn() core.Side {
	return g.turn
}

func (g *Game) State() core.State {
	return g.state
}

func (g *Game) Player(side core.Side) *core.Player {
	return g.players[side]
}

// NextPlayer returns the player whose turn it is
func (g *Game) NextPlayer() *core.Player {
	return g.players[g.turn]
}

func (g *Game) MoveCount() int {
	return len(g.log)
}

func (g *Game) Log() []LogEntry {
	return append([]LogEntry(nil), g.log...)
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

func (g *Game) InitialFEN() string {
	return g.initialFEN
}

func (g *Game) FEN() string {
	return g.board.FEN(board.Meta{Turn: g.turn, Halfmove: g.halfmove, Fullmove: g.fullmove})
}

// Select returns the piece on sq and its possible moves when it belongs to
// the side to move
func (g *Game) Select(sq core.Square) (*piece.Piece, []core.Square, error) {
	if g.state.IsOver() {
		return nil, nil, ErrGameOver
	}
	p := g.board.PieceAt(sq)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoPiece, sq.Label())
	}
	if p.Side != g.turn {
		return nil, nil, fmt.Errorf("%w: %s belongs to %s", ErrNotYourTurn, sq.Label(), p.Side)
	}
	return p, g.board.PossibleMoves(p), nil
}

// Play moves the piece on from to to. The order is fixed: capture, move,
// promotion, turn switch, log append.
func (g *Game) Play(from, to core.Square) (*MoveResult, error) {
	p, _, err := g.Select(from)
	if err != nil {
		return nil, err
	}

	before := refOf(p)
	out, err := g.board.ApplyMove(p, to)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{
		Piece: before,
		From:  out.From,
		To:    out.To,
	}

	if p.Kind == core.Pawn && (to.Rank == 0 || to.Rank == core.BoardSize-1) {
		p.Promote(core.Queen)
		result.Promoted = true
		g.board.Recheck(out)
	}

	if out.Captured != nil {
		ref := refOf(out.Captured)
		result.Captured = &ref
		if out.Captured.Kind == core.King {
			g.state = core.WinnerState(p.Side)
		}
	}

	if before.Kind == core.Pawn || out.Captured != nil {
		g.halfmove = 0
	} else {
		g.halfmove++
	}
	if g.turn == core.SideBlack {
		g.fullmove++
	}
	g.turn = core.Opponent(g.turn)
	g.log = append(g.log, LogEntry{Piece: before.Kind, To: to})

	result.Check = out.Check
	for _, q := range out.CapturableBy {
		result.CapturableBy = append(result.CapturableBy, refOf(q))
	}
	result.Events = out.Events
	result.State = g.state
	result.MoveCount = len(g.log)

	g.lastResult = result
	return result, nil
}

// Snapshot is an immutable copy of a game for concurrent readers
type Snapshot struct {
	FEN       string
	Turn      core.Side
	State     core.State
	MoveCount int
	Log       []LogEntry
	White     core.Player
	Black     core.Player
	Pieces    []piece.Piece
	LastMove  *MoveResult
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		FEN:       g.FEN(),
		Turn:      g.turn,
		State:     g.state,
		MoveCount: len(g.log),
		Log:       g.Log(),
		LastMove:  g.lastResult,
	}
	if w := g.players[core.SideWhite]; w != nil {
		s.White = *w
	}
	if b := g.players[core.SideBlack]; b != nil {
		s.Black = *b
	}
	for _, p := range g.board.Pieces() {
		s.Pieces = append(s.Pieces, *p)
	}
	return s
}
