package core

import "time"

// Request types

type CreateGameRequest struct {
	White PlayerConfig `json:"white"`
	Black PlayerConfig `json:"black"`
	FEN   string       `json:"fen,omitempty" validate:"omitempty,max=100"`
	// PlayAs claims a seat for the authenticated caller
	PlayAs string `json:"playAs,omitempty" validate:"omitempty,oneof=w b"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,square"`
	To   string `json:"to" validate:"required,square"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=40"`
	Password string `json:"password" validate:"required,max=128"`
}

// Response types

type AuthResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"` // "ok", "degraded" or "disabled"
	Games   int    `json:"games"`
}

type GameResponse struct {
	GameID    string          `json:"gameId"`
	FEN       string          `json:"fen"`
	Turn      string          `json:"turn"`  // "w" or "b"
	State     string          `json:"state"` // "ongoing", "white wins", "black wins"
	MoveCount int             `json:"moveCount"`
	Log       []LogEntry      `json:"log"`
	Players   PlayersResponse `json:"players"`
	Pieces    []PieceInfo     `json:"pieces"`
	LastMove  *MoveInfo       `json:"lastMove,omitempty"`
}

// LogEntry is one line of the move log: the piece kind and its destination label
type LogEntry struct {
	Piece string `json:"piece"`
	To    string `json:"to"`
}

type PieceInfo struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Side    string `json:"side"`
	Square  string `json:"square"`
	Moved   bool   `json:"moved"`
	InCheck bool   `json:"inCheck"`
	Icon    string `json:"icon"`
}

type MoveInfo struct {
	Piece        string      `json:"piece"`
	PlayerColor  string      `json:"playerColor"` // "w" or "b"
	From         string      `json:"from"`
	To           string      `json:"to"`
	Captured     string      `json:"captured,omitempty"`
	Promoted     bool        `json:"promoted,omitempty"`
	Check        bool        `json:"check"`
	CapturableBy []string    `json:"capturableBy,omitempty"`
	Events       []EventInfo `json:"events,omitempty"`
}

type EventInfo struct {
	Kind    string `json:"kind"`
	Side    string `json:"side"`
	Piece   string `json:"piece"`
	Square  string `json:"square"`
	Message string `json:"message"`
}

type PossibleMovesResponse struct {
	From  string   `json:"from"`
	Piece string   `json:"piece"`
	Side  string   `json:"side"`
	Moves []string `json:"moves"`
}

// PieceResponse describes one piece looked up by ID; Square is empty once captured
type PieceResponse struct {
	PieceInfo
	Captured bool     `json:"captured"`
	Moves    []string `json:"moves"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type LogResponse struct {
	GameID string     `json:"gameId"`
	Log    []LogEntry `json:"log"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
