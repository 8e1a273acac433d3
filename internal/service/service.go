// Package service owns the registry of live games, the long-poll wait
// registry and user accounts, and hands finished writes to storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"chessplay/internal/board"
	"chessplay/internal/core"
	"chessplay/internal/game"
	"chessplay/internal/piece"
	"chessplay/internal/storage"

	"github.com/google/uuid"
)

const (
	MaxGames = 1000
	TokenTTL = 7 * 24 * time.Hour
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrForbidden    = errors.New("seat belongs to another user")
	ErrGameLimit    = errors.New("game limit reached")
	ErrPieceUnknown = errors.New("piece not found")
)

type Option func(*Service)

// WithCheckDetection sets the check scan for games created by the service
func WithCheckDetection(enabled bool) Option {
	return func(s *Service) {
		s.checkDetection = enabled
	}
}

// WithWaitTimeout overrides the long-poll timeout
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.waitTimeout = d
	}
}

// Service coordinates game state, user management, and storage
type Service struct {
	games          map[string]*game.Game
	mu             sync.RWMutex
	store          *storage.Store // nil disables persistence
	jwtSecret      []byte
	waiter         *WaitRegistry
	checkDetection bool
	waitTimeout    time.Duration
}

// New creates a service; a nil store runs without persistence or accounts
func New(store *storage.Store, jwtSecret []byte, opts ...Option) *Service {
	s := &Service{
		games:          make(map[string]*game.Game),
		store:          store,
		jwtSecret:      jwtSecret,
		checkDetection: true,
		waitTimeout:    WaitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.waiter = NewWaitRegistry(s.waitTimeout)
	return s
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// NewGameParams describes a game to create. UserID, when set, claims the
// PlayAs seat, or both seats when PlayAs is zero.
type NewGameParams struct {
	White  core.PlayerConfig
	Black  core.PlayerConfig
	FEN    string
	UserID string
	PlayAs core.Side
}

// CreateGame builds and registers a new game, returning its ID
func (s *Service) CreateGame(params NewGameParams) (string, game.Snapshot, error) {
	white := core.NewPlayer(params.White, core.SideWhite)
	black := core.NewPlayer(params.Black, core.SideBlack)
	if params.UserID != "" {
		if params.PlayAs != core.SideBlack {
			white.UserID = params.UserID
		}
		if params.PlayAs != core.SideWhite {
			black.UserID = params.UserID
		}
	}

	opt := board.WithCheckDetection(s.checkDetection)
	var g *game.Game
	if params.FEN != "" {
		var err error
		if g, err = game.FromFEN(params.FEN, white, black, opt); err != nil {
			return "", game.Snapshot{}, err
		}
	} else {
		g = game.NewStandard(white, black, opt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.games) >= MaxGames {
		return "", game.Snapshot{}, ErrGameLimit
	}

	var id string
	for {
		id = uuid.New().String()
		if _, exists := s.games[id]; !exists {
			break
		}
	}
	s.games[id] = g

	if s.store != nil {
		s.persisted(s.store.RecordNewGame(storage.GameRecord{
			GameID:         id,
			InitialFEN:     g.InitialFEN(),
			WhitePlayerID:  white.ID,
			WhiteName:      white.Name,
			WhiteUserID:    white.UserID,
			BlackPlayerID:  black.ID,
			BlackName:      black.Name,
			BlackUserID:    black.UserID,
			CheckDetection: g.Board().CheckDetection(),
			StartTimeUTC:   time.Now().UTC(),
		}))
	}

	return id, g.Snapshot(), nil
}

func (s *Service) lookup(gameID string) (*game.Game, error) {
	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

// GetGame returns an immutable snapshot of a game
func (s *Service) GetGame(gameID string) (game.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return g.Snapshot(), nil
}

// Selection is a value copy of a selected piece and its possible moves
type Selection struct {
	Piece game.PieceRef
	Moves []core.Square
}

// PossibleMoves selects the piece on sq for the side to move
func (s *Service) PossibleMoves(gameID string, sq core.Square) (Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return Selection{}, err
	}
	p, moves, err := g.Select(sq)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Piece: game.PieceRef{ID: p.ID, Kind: p.Kind, Side: p.Side, Square: p.Position},
		Moves: moves,
	}, nil
}

// PieceDetail is a value copy of a piece found by ID. Moves are its possible
// destinations regardless of whose turn it is, and empty once captured.
type PieceDetail struct {
	Piece piece.Piece
	Moves []core.Square
}

// Piece looks a piece up by its stable ID
func (s *Service) Piece(gameID, pieceID string) (PieceDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return PieceDetail{}, err
	}
	b := g.Board()
	p := b.PieceByID(pieceID)
	if p == nil {
		return PieceDetail{}, fmt.Errorf("%w: %s", ErrPieceUnknown, pieceID)
	}
	detail := PieceDetail{Piece: *p.Clone()}
	if p.Alive() {
		detail.Moves = b.PossibleMoves(p)
	}
	return detail, nil
}

// MakeMove plays from → to on behalf of userID and records the move
func (s *Service) MakeMove(gameID, userID string, from, to core.Square) (*game.MoveResult, game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, game.Snapshot{}, err
	}
	if p := g.NextPlayer(); p != nil && !p.CanMove(userID) {
		return nil, game.Snapshot{}, fmt.Errorf("%w: %s to move", ErrForbidden, g.Turn())
	}

	mover := g.Turn()
	result, err := g.Play(from, to)
	if err != nil {
		return nil, game.Snapshot{}, err
	}
	snap := g.Snapshot()

	s.waiter.NotifyGame(gameID, result.MoveCount)

	if s.store != nil {
		record := storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   result.MoveCount,
			Piece:        result.Piece.Kind.String(),
			FromSquare:   from.Label(),
			ToSquare:     to.Label(),
			Promoted:     result.Promoted,
			Check:        result.Check,
			FENAfterMove: snap.FEN,
			PlayerColor:  mover.Code(),
			MoveTimeUTC:  time.Now().UTC(),
		}
		if result.Captured != nil {
			record.Captured = result.Captured.Kind.String()
		}
		s.persisted(s.store.RecordMove(record))
		if result.State.IsOver() {
			s.persisted(s.store.RecordResult(gameID, result.State.String()))
		}
	}

	return result, snap, nil
}

// Board returns the ASCII rendering and FEN of a game
func (s *Service) Board(gameID string) (ascii, fen string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return "", "", err
	}
	return g.Board().ToASCII(), g.FEN(), nil
}

// DeleteGame removes a game, waking any long-poll waiters
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(gameID); err != nil {
		return err
	}
	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)

	if s.store != nil {
		s.persisted(s.store.DeleteGame(gameID))
	}
	return nil
}

// persisted logs a write the store refused; gameplay continues in memory
func (s *Service) persisted(err error) {
	if err != nil {
		log.Printf("Storage write skipped: %v", err)
	}
}

// RegisterWait returns a channel closed when the game's move count differs
// from moveCount, on timeout, or on deletion. It is closed immediately when
// the count already differs or the game is over.
func (s *Service) RegisterWait(ctx context.Context, gameID string, moveCount int) (<-chan struct{}, error) {
	// Registration under the read lock cannot miss a notify from MakeMove
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	if g.MoveCount() != moveCount || g.State().IsOver() {
		ch := make(chan struct{})
		close(ch)
		return ch, nil
	}
	return s.waiter.RegisterWait(ctx, gameID, moveCount), nil
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("Discarding %d live games", len(s.games))
	s.games = make(map[string]*game.Game)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}
