package processor

import (
	"fmt"

	"chessplay/internal/core"
	"chessplay/internal/game"
)

// IconPath returns the asset path of a piece image
func IconPath(kind core.Kind, side core.Side) string {
	shade := byte('l')
	if side == core.SideBlack {
		shade = 'd'
	}
	return fmt.Sprintf("/pieces/Chess_%c%ct45.svg", kind.Symbol(core.SideBlack), shade)
}

// buildGameResponse constructs standard game response
func buildGameResponse(gameID string, snap game.Snapshot) core.GameResponse {
	resp := core.GameResponse{
		GameID:    gameID,
		FEN:       snap.FEN,
		Turn:      snap.Turn.Code(),
		State:     snap.State.String(),
		MoveCount: snap.MoveCount,
		Log:       buildLog(snap.Log),
		Players: core.PlayersResponse{
			White: snap.White.Info(),
			Black: snap.Black.Info(),
		},
		Pieces: make([]core.PieceInfo, 0, len(snap.Pieces)),
	}

	for _, p := range snap.Pieces {
		if !p.Alive() {
			continue
		}
		resp.Pieces = append(resp.Pieces, core.PieceInfo{
			ID:      p.ID,
			Kind:    p.Kind.String(),
			Side:    p.Side.Code(),
			Square:  p.Position.Label(),
			Moved:   p.Moved,
			InCheck: p.InCheck,
			Icon:    IconPath(p.Kind, p.Side),
		})
	}

	if snap.LastMove != nil {
		resp.LastMove = buildMoveInfo(snap.LastMove)
	}

	return resp
}

func buildLog(entries []game.LogEntry) []core.LogEntry {
	out := make([]core.LogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, core.LogEntry{Piece: e.Piece.String(), To: e.To.Label()})
	}
	return out
}

func buildMoveInfo(r *game.MoveResult) *core.MoveInfo {
	info := &core.MoveInfo{
		Piece:       r.Piece.Kind.String(),
		PlayerColor: r.Piece.Side.Code(),
		From:        r.From.Label(),
		To:          r.To.Label(),
		Promoted:    r.Promoted,
		Check:       r.Check,
	}
	if r.Captured != nil {
		info.Captured = r.Captured.Kind.String()
	}
	for _, ref := range r.CapturableBy {
		info.CapturableBy = append(info.CapturableBy, ref.String())
	}
	for _, ev := range r.Events {
		info.Events = append(info.Events, core.EventInfo{
			Kind:    string(ev.Kind),
			Side:    ev.Side.Code(),
			Piece:   ev.Piece.String(),
			Square:  ev.Square.Label(),
			Message: ev.Message(),
		})
	}
	return info
}
