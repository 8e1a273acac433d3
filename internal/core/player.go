package core

import (
	"github.com/google/uuid"
)

// Player is one seat of a game. UserID is set when an authenticated user owns
// the seat; anyone may move for an unowned seat.
type Player struct {
	ID     string `json:"id"`
	Side   Side   `json:"-"`
	Name   string `json:"name,omitempty"`
	UserID string `json:"-"`
}

// PlayerConfig for API requests and configuration
type PlayerConfig struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=40"`
}

// PlayerInfo is the public view of a seat; the owner's user ID stays private
type PlayerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Claimed bool   `json:"claimed"`
}

// PlayersResponse for API responses
type PlayersResponse struct {
	White *PlayerInfo `json:"white"`
	Black *PlayerInfo `json:"black"`
}

// Info returns the public view of the seat
func (p *Player) Info() *PlayerInfo {
	return &PlayerInfo{ID: p.ID, Name: p.Name, Claimed: p.UserID != ""}
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, side Side) *Player {
	name := config.Name
	if name == "" {
		name = side.String()
	}
	return &Player{
		ID:   uuid.New().String(),
		Side: side,
		Name: name,
	}
}

// CanMove reports whether userID may move for this seat
func (p *Player) CanMove(userID string) bool {
	return p.UserID == "" || p.UserID == userID
}
