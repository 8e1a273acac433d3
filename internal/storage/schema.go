package storage

import "time"

// UserRecord represents a user account in the database
type UserRecord struct {
	UserID       string     `db:"user_id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID         string    `db:"game_id"`
	InitialFEN     string    `db:"initial_fen"`
	WhitePlayerID  string    `db:"white_player_id"`
	WhiteName      string    `db:"white_name"`
	WhiteUserID    string    `db:"white_user_id"`
	BlackPlayerID  string    `db:"black_player_id"`
	BlackName      string    `db:"black_name"`
	BlackUserID    string    `db:"black_user_id"`
	CheckDetection bool      `db:"check_detection"`
	Result         string    `db:"result"`
	StartTimeUTC   time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table. Squares are stored as
// display labels.
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	GameID       string    `db:"game_id"`
	MoveNumber   int       `db:"move_number"`
	Piece        string    `db:"piece"`
	FromSquare   string    `db:"from_square"`
	ToSquare     string    `db:"to_square"`
	Captured     string    `db:"captured"` // empty when nothing was taken
	Promoted     bool      `db:"promoted"`
	Check        bool      `db:"check_given"`
	FENAfterMove string    `db:"fen_after_move"`
	PlayerColor  string    `db:"player_color"`
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_login_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_fen TEXT NOT NULL,
	white_player_id TEXT NOT NULL,
	white_name TEXT NOT NULL,
	white_user_id TEXT NOT NULL DEFAULT '',
	black_player_id TEXT NOT NULL,
	black_name TEXT NOT NULL,
	black_user_id TEXT NOT NULL DEFAULT '',
	check_detection INTEGER NOT NULL DEFAULT 1,
	result TEXT NOT NULL DEFAULT 'ongoing',
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	piece TEXT NOT NULL,
	from_square TEXT NOT NULL,
	to_square TEXT NOT NULL,
	captured TEXT NOT NULL DEFAULT '',
	promoted INTEGER NOT NULL DEFAULT 0,
	check_given INTEGER NOT NULL DEFAULT 0,
	fen_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_white_player ON games(white_user_id);
CREATE INDEX IF NOT EXISTS idx_games_black_player ON games(black_user_id);
`
