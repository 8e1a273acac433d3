package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chess.db")
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func syncStore(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}

func TestGameAndMoveRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	start := time.Now().UTC().Truncate(time.Second)

	game := GameRecord{
		GameID:         "g1",
		InitialFEN:     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		WhitePlayerID:  "pw",
		WhiteName:      "White",
		WhiteUserID:    "u1",
		BlackPlayerID:  "pb",
		BlackName:      "Black",
		CheckDetection: true,
		StartTimeUTC:   start,
	}
	if err := s.RecordNewGame(game); err != nil {
		t.Fatal(err)
	}
	for i, to := range []string{"D5", "E4"} {
		err := s.RecordMove(MoveRecord{
			GameID:       "g1",
			MoveNumber:   i + 1,
			Piece:        "Pawn",
			FromSquare:   "D7",
			ToSquare:     to,
			FENAfterMove: "fen",
			PlayerColor:  []string{"w", "b"}[i],
			MoveTimeUTC:  start,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordResult("g1", "white wins"); err != nil {
		t.Fatal(err)
	}
	syncStore(t, s)

	games, err := s.QueryGames("*", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].Result != "white wins" || !games[0].CheckDetection || games[0].WhiteName != "White" {
		t.Fatalf("games = %+v", games)
	}

	moves, err := s.QueryMoves("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 || moves[0].ToSquare != "D5" || moves[1].PlayerColor != "b" {
		t.Fatalf("moves = %+v", moves)
	}

	if err := s.DeleteGame("g1"); err != nil {
		t.Fatal(err)
	}
	syncStore(t, s)
	if games, _ := s.QueryGames("g1", ""); len(games) != 0 {
		t.Errorf("game not deleted: %+v", games)
	}
	if moves, _ := s.QueryMoves("g1"); len(moves) != 0 {
		t.Errorf("moves not deleted: %+v", moves)
	}
	if !s.IsHealthy() {
		t.Error("store degraded after valid writes")
	}
}

func TestWriteFailureDegrades(t *testing.T) {
	s, _ := newTestStore(t)

	// Violates the player_color check constraint
	err := s.RecordMove(MoveRecord{GameID: "missing", MoveNumber: 1, Piece: "Pawn", FENAfterMove: "fen", PlayerColor: "x"})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Sync(ctx); !errors.Is(err, ErrDegraded) {
		t.Fatalf("Sync after failed write = %v, want ErrDegraded", err)
	}
	if s.IsHealthy() {
		t.Fatal("store should degrade after a failed write")
	}
	if err := s.Sync(context.Background()); !errors.Is(err, ErrDegraded) {
		t.Errorf("Sync on degraded store = %v", err)
	}
	if err := s.RecordNewGame(GameRecord{GameID: "dropped"}); !errors.Is(err, ErrDegraded) {
		t.Errorf("write while degraded = %v, want ErrDegraded", err)
	}
	if err := s.DeleteGame("dropped"); !errors.Is(err, ErrDegraded) {
		t.Errorf("delete while degraded = %v, want ErrDegraded", err)
	}
}

func TestFullQueueRejectsWrites(t *testing.T) {
	// An unbuffered queue with no writer behind it is always full
	s := &Store{writeChan: make(chan writeOp)}
	s.healthStatus.Store(true)

	if err := s.RecordResult("g1", "white wins"); !errors.Is(err, ErrQueueFull) {
		t.Errorf("RecordResult on full queue = %v, want ErrQueueFull", err)
	}
	if !s.IsHealthy() {
		t.Error("a full queue should not degrade the store")
	}
}

func TestUsers(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	if err := s.CreateUser(UserRecord{UserID: "u1", Username: "Alice", PasswordHash: "h", CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser(UserRecord{UserID: "u2", Username: "alice", PasswordHash: "h", CreatedAt: now}); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate username err = %v", err)
	}

	u, err := s.GetUserByUsername("ALICE")
	if err != nil || u.UserID != "u1" {
		t.Fatalf("GetUserByUsername = %+v, %v", u, err)
	}
	if u.LastLoginAt != nil {
		t.Error("new user has last login")
	}
	if err := s.UpdateUserLastLoginSync("u1", now); err != nil {
		t.Fatal(err)
	}
	if u, _ := s.GetUserByID("u1"); u == nil || u.LastLoginAt == nil {
		t.Errorf("last login not stored: %+v", u)
	}

	users, err := s.GetAllUsers()
	if err != nil || len(users) != 1 {
		t.Fatalf("GetAllUsers = %v, %v", users, err)
	}

	if err := s.DeleteUserByID("u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetUserByID("u1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("deleted user lookup err = %v", err)
	}
}

func TestDeleteDB(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.DeleteDB(); err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(path)
	if len(matches) != 0 {
		t.Errorf("database file still present: %v", matches)
	}
}
