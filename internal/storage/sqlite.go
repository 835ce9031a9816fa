// Package storage provides SQLite-based persistence for finished lobby sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-bomber/internal/game"
)

// Store manages the SQLite database connection for the session ledger.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished session.
type SessionRecord struct {
	ID            int64
	SessionID     string
	UserID        uint64
	Name          string
	StartedAt     time.Time
	EndedAt       time.Time
	FinalX        int
	FinalY        int
	BombsPlaced   int
	BombsRejected int
	Messages      int
	Frames        int // Sprite frame advances
}

// Duration returns how long the session lasted.
func (r SessionRecord) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// PlayerTotals aggregates every stored session of one user.
type PlayerTotals struct {
	UserID        uint64
	Sessions      int
	BombsPlaced   int
	BombsRejected int
	Messages      int
	PlayTime      time.Duration
	LastPlayed    time.Time
}

// RecordFromSession captures the final state of a session ended at ended.
func RecordFromSession(s *game.Session, ended time.Time) SessionRecord {
	placed, rejected := s.Gate.Counts()
	return SessionRecord{
		SessionID:     s.ID,
		UserID:        s.User.UserID,
		Name:          s.User.Name,
		StartedAt:     s.ConnectionStarted,
		EndedAt:       ended,
		FinalX:        s.Bomber.PositionX,
		FinalY:        s.Bomber.PositionY,
		BombsPlaced:   placed,
		BombsRejected: rejected,
		Messages:      s.Pacer.Messages(),
		Frames:        s.Pacer.Advances(),
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are stored as unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			final_x INTEGER NOT NULL DEFAULT 0,
			final_y INTEGER NOT NULL DEFAULT 0,
			bombs_placed INTEGER NOT NULL DEFAULT 0,
			bombs_rejected INTEGER NOT NULL DEFAULT 0,
			messages INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(r SessionRecord) (int64, error) {
	if r.SessionID == "" {
		return 0, errors.New("storage: session id must not be empty")
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, user_id, name, started_at, ended_at, final_x, final_y,
		  bombs_placed, bombs_rejected, messages, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		int64(r.UserID),
		r.Name,
		r.StartedAt.UnixMilli(),
		r.EndedAt.UnixMilli(),
		r.FinalX,
		r.FinalY,
		r.BombsPlaced,
		r.BombsRejected,
		r.Messages,
		r.Frames,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recently ended sessions.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, user_id, name, started_at, ended_at, final_x, final_y,
		        bombs_placed, bombs_rejected, messages, frames
		 FROM sessions
		 ORDER BY ended_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var userID, started, ended int64
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&userID,
			&r.Name,
			&started,
			&ended,
			&r.FinalX,
			&r.FinalY,
			&r.BombsPlaced,
			&r.BombsRejected,
			&r.Messages,
			&r.Frames,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.UserID = uint64(userID)
		r.StartedAt = time.UnixMilli(started)
		r.EndedAt = time.UnixMilli(ended)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// PlayerTotals aggregates the stored sessions of a user.
// A user without sessions yields zero totals.
func (s *Store) PlayerTotals(userID uint64) (*PlayerTotals, error) {
	totals := &PlayerTotals{UserID: userID}

	var playMS int64
	var last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(bombs_placed), 0), COALESCE(SUM(bombs_rejected), 0),
		        COALESCE(SUM(messages), 0), COALESCE(SUM(ended_at - started_at), 0), MAX(ended_at)
		 FROM sessions WHERE user_id = ?`,
		int64(userID),
	).Scan(&totals.Sessions, &totals.BombsPlaced, &totals.BombsRejected, &totals.Messages, &playMS, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player totals: %w", err)
	}

	totals.PlayTime = time.Duration(playMS) * time.Millisecond
	if last.Valid {
		totals.LastPlayed = time.UnixMilli(last.Int64)
	}
	return totals, nil
}
