// Package processor turns transport-neutral commands into service calls and
// maps domain errors onto API error codes.
package processor

import (
	"errors"
	"regexp"
	"unicode"

	"chessplay/internal/board"
	"chessplay/internal/core"
	"chessplay/internal/game"
	"chessplay/internal/service"
)

// FEN shape check ahead of the full parse
var fenPattern = regexp.MustCompile(`^[rnbqkpRNBQKP1-8/]+ [wb] [KQkq-]+ [a-h1-8-]+ \d+ \d+$`)

// Processor handles command execution against the service
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdGetMoves:
		return p.handleGetMoves(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetLog:
		return p.handleGetLog(cmd)
	case CmdGetPiece:
		return p.handleGetPiece(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// isFENSafe rejects control characters and anything not shaped like a FEN
func (p *Processor) isFENSafe(fen string) bool {
	for _, r := range fen {
		if unicode.IsControl(r) {
			return false
		}
	}
	return fenPattern.MatchString(fen)
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	if args.FEN != "" && !p.isFENSafe(args.FEN) {
		return p.errorResponse("invalid FEN format or characters", core.ErrInvalidFEN)
	}

	params := service.NewGameParams{
		White:  args.White,
		Black:  args.Black,
		FEN:    args.FEN,
		UserID: cmd.UserID,
	}
	if args.PlayAs != "" {
		side, ok := core.ParseSide(args.PlayAs)
		if !ok {
			return p.errorResponse("playAs must be 'w' or 'b'", core.ErrInvalidRequest)
		}
		params.PlayAs = side
	}

	gameID, snap, err := p.svc.CreateGame(params)
	if err != nil {
		if args.FEN != "" && !errors.Is(err, service.ErrGameLimit) {
			return p.errorResponse(err.Error(), core.ErrInvalidFEN)
		}
		return p.domainError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(gameID, snap),
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.domainError(err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(cmd.GameID, snap),
	}
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	from, err := core.ParseLabel(args.From)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}
	to, err := core.ParseLabel(args.To)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	result, snap, err := p.svc.MakeMove(cmd.GameID, cmd.UserID, from, to)
	if err != nil {
		return p.domainError(err)
	}

	resp := buildGameResponse(cmd.GameID, snap)
	resp.LastMove = buildMoveInfo(result)
	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

func (p *Processor) handleGetMoves(cmd Command) ProcessorResponse {
	label, _ := cmd.Args.(string)
	sq, err := core.ParseLabel(label)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	sel, err := p.svc.PossibleMoves(cmd.GameID, sq)
	if err != nil {
		return p.domainError(err)
	}

	moves := make([]string, 0, len(sel.Moves))
	for _, m := range sel.Moves {
		moves = append(moves, m.Label())
	}
	return ProcessorResponse{
		Success: true,
		Data: core.PossibleMovesResponse{
			From:  sq.Label(),
			Piece: sel.Piece.Kind.String(),
			Side:  sel.Piece.Side.Code(),
			Moves: moves,
		},
	}
}

func (p *Processor) handleGetPiece(cmd Command) ProcessorResponse {
	pieceID, _ := cmd.Args.(string)
	detail, err := p.svc.Piece(cmd.GameID, pieceID)
	if err != nil {
		return p.domainError(err)
	}

	pc := detail.Piece
	resp := core.PieceResponse{
		PieceInfo: core.PieceInfo{
			ID:      pc.ID,
			Kind:    pc.Kind.String(),
			Side:    pc.Side.Code(),
			Moved:   pc.Moved,
			InCheck: pc.InCheck,
			Icon:    IconPath(pc.Kind, pc.Side),
		},
		Captured: pc.Captured,
		Moves:    make([]string, 0, len(detail.Moves)),
	}
	if pc.Alive() {
		resp.Square = pc.Position.Label()
	}
	for _, m := range detail.Moves {
		resp.Moves = append(resp.Moves, m.Label())
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.domainError(err)
	}
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	ascii, fen, err := p.svc.Board(cmd.GameID)
	if err != nil {
		return p.domainError(err)
	}
	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			FEN:   fen,
			Board: ascii,
		},
	}
}

func (p *Processor) handleGetLog(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.domainError(err)
	}
	return ProcessorResponse{
		Success: true,
		Data: core.LogResponse{
			GameID: cmd.GameID,
			Log:    buildLog(snap.Log),
		},
	}
}

// ErrorCode maps a domain error onto its API error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return core.ErrGameNotFound
	case errors.Is(err, service.ErrForbidden):
		return core.ErrForbidden
	case errors.Is(err, service.ErrGameLimit):
		return core.ErrResourceLimit
	case errors.Is(err, service.ErrPieceUnknown):
		return core.ErrPieceNotFound
	case errors.Is(err, game.ErrNoPiece):
		return core.ErrNoPiece
	case errors.Is(err, game.ErrNotYourTurn):
		return core.ErrNotYourTurn
	case errors.Is(err, game.ErrGameOver):
		return core.ErrGameOver
	case errors.Is(err, board.ErrIllegalMove), errors.Is(err, board.ErrCaptured):
		return core.ErrInvalidMove
	default:
		return core.ErrInternalError
	}
}

func (p *Processor) domainError(err error) ProcessorResponse {
	code := ErrorCode(err)
	msg := err.Error()
	if code == core.ErrInternalError {
		msg = "internal error"
	}
	resp := p.errorResponse(msg, code)
	if code == core.ErrInternalError {
		resp.Error.Details = err.Error()
	}
	return resp
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
