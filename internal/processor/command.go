package processor

import (
	"chessplay/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdDeleteGame
	CmdMakeMove
	CmdGetMoves
	CmdGetBoard
	CmdGetLog
	CmdGetPiece
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	UserID string
	GameID string // For game-specific commands
	Args   any    // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(userID string, req core.CreateGameRequest) Command {
	return Command{
		Type:   CmdCreateGame,
		UserID: userID,
		Args:   req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewMakeMoveCommand(gameID, userID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		UserID: userID,
		GameID: gameID,
		Args:   req,
	}
}

// NewGetMovesCommand asks for the possible moves of the piece on a labelled square
func NewGetMovesCommand(gameID, from string) Command {
	return Command{
		Type:   CmdGetMoves,
		GameID: gameID,
		Args:   from,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewGetLogCommand(gameID string) Command {
	return Command{
		Type:   CmdGetLog,
		GameID: gameID,
	}
}

// NewGetPieceCommand looks a piece up by its stable ID
func NewGetPieceCommand(gameID, pieceID string) Command {
	return Command{
		Type:   CmdGetPiece,
		GameID: gameID,
		Args:   pieceID,
	}
}
