package game

import (
	"errors"
	"testing"

	"chessplay/internal/board"
	"chessplay/internal/core"

	"github.com/google/go-cmp/cmp"
)

func newPlayers() (*core.Player, *core.Player) {
	return core.NewPlayer(core.PlayerConfig{}, core.SideWhite), core.NewPlayer(core.PlayerConfig{}, core.SideBlack)
}

func mustFEN(t *testing.T, fen string) *Game {
	t.Helper()
	w, b := newPlayers()
	g, err := FromFEN(fen, w, b)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return g
}

func TestPlaySequence(t *testing.T) {
	g := NewStandard(newPlayers())

	moves := []struct {
		from, to core.Square
	}{
		{core.Sq(6, 4), core.Sq(4, 4)},
		{core.Sq(1, 3), core.Sq(3, 3)},
		{core.Sq(4, 4), core.Sq(3, 3)},
	}
	var last *MoveResult
	for _, m := range moves {
		res, err := g.Play(m.from, m.to)
		if err != nil {
			t.Fatalf("Play(%s, %s): %v", m.from, m.to, err)
		}
		last = res
	}

	if last.Captured == nil || last.Captured.Kind != core.Pawn || last.Captured.Side != core.SideBlack {
		t.Errorf("Captured = %+v, want black pawn", last.Captured)
	}
	if len(last.Events) != 1 || last.Events[0].Message() != "Black Pawn Died" {
		t.Errorf("events = %+v", last.Events)
	}

	wantLog := []LogEntry{
		{core.Pawn, core.Sq(4, 4)},
		{core.Pawn, core.Sq(3, 3)},
		{core.Pawn, core.Sq(3, 3)},
	}
	if diff := cmp.Diff(wantLog, g.Log()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if g.Turn() != core.SideBlack || g.MoveCount() != 3 || last.MoveCount != 3 {
		t.Errorf("turn %s count %d", g.Turn(), g.MoveCount())
	}
	if got, want := g.FEN(), "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b - - 0 2"; got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestTurnOwnership(t *testing.T) {
	g := NewStandard(newPlayers())

	tests := []struct {
		name     string
		from, to core.Square
		want     error
	}{
		{"black moves first", core.Sq(1, 0), core.Sq(2, 0), ErrNotYourTurn},
		{"empty square", core.Sq(4, 4), core.Sq(3, 4), ErrNoPiece},
		{"unreachable", core.Sq(7, 0), core.Sq(5, 0), board.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.Play(tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if g.Turn() != core.SideWhite || g.MoveCount() != 0 {
		t.Error("rejected moves changed the game")
	}
}

func TestSelect(t *testing.T) {
	g := NewStandard(newPlayers())
	p, moves, err := g.Select(core.Sq(7, 1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != core.Knight || len(moves) != 2 {
		t.Errorf("Select = %v %v", p, moves)
	}
	if _, _, err := g.Select(core.Sq(0, 1)); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("selecting opponent piece err = %v", err)
	}
}

func TestAutoQueen(t *testing.T) {
	g := mustFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	res, err := g.Play(core.Sq(1, 0), core.Sq(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Promoted || res.Piece.Kind != core.Pawn {
		t.Errorf("result = %+v", res)
	}
	if p := g.Board().PieceAt(core.Sq(0, 0)); p == nil || p.Kind != core.Queen {
		t.Errorf("promoted piece = %v", p)
	}
	if !res.Check {
		t.Error("new queen on the king's rank should give check")
	}
	if got := g.Log()[0]; got.Piece != core.Pawn {
		t.Errorf("log entry = %v", got)
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	g := mustFEN(t, "4k3/8/8/8/8/8/8/4K2r b - - 0 1")
	res, err := g.Play(core.Sq(7, 7), core.Sq(7, 4))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != core.StateBlackWins || g.State() != core.StateBlackWins {
		t.Errorf("state = %s", g.State())
	}
	if g.Board().King(core.SideWhite) != nil {
		t.Error("white king still alive")
	}
	if _, err := g.Play(core.Sq(0, 4), core.Sq(1, 4)); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after game end err = %v", err)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	g := NewStandard(newPlayers())
	snap := g.Snapshot()

	if _, err := g.Play(core.Sq(6, 4), core.Sq(4, 4)); err != nil {
		t.Fatal(err)
	}

	if snap.MoveCount != 0 || len(snap.Log) != 0 || snap.Turn != core.SideWhite {
		t.Errorf("snapshot changed: %+v", snap)
	}
	for _, p := range snap.Pieces {
		if p.Position == core.Sq(4, 4) {
			t.Error("snapshot piece moved")
		}
	}
	if snap.FEN != g.InitialFEN() {
		t.Errorf("snapshot FEN %q != initial %q", snap.FEN, g.InitialFEN())
	}
	if got := g.Snapshot().LastMove; got == nil || got.To != core.Sq(4, 4) {
		t.Errorf("LastMove = %+v", got)
	}
}
