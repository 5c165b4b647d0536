// Package storage provides the SQLite match-history ledger.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The ledger is written after a match finishes and only read by the
// history command. Nothing in it is ever loaded back into a running game.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dodgeball/internal/config"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one node's view of a finished match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Node      string // Player or session that ran the node
	Role      string // Role held when the match ended
	RoundOne  int64  // Round one duration in master ticks
	RoundTwo  int64  // Round two duration in master ticks
	TickRate  int    // Master ticks per second, to turn durations into time
	Won       bool
	CreatedAt time.Time
}

// Seconds converts a duration in master ticks to seconds.
func (r MatchRecord) Seconds(ticks int64) float64 {
	if r.TickRate <= 0 {
		return 0
	}
	return float64(ticks) / float64(r.TickRate)
}

// Stats summarises the ledger.
type Stats struct {
	Played     int
	Won        int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			node TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			round_one INTEGER NOT NULL DEFAULT 0,
			round_two INTEGER NOT NULL DEFAULT 0,
			tick_rate INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (match_id, node, role)
		);
		CREATE INDEX IF NOT EXISTS idx_matches_match_id ON matches(match_id);
		CREATE INDEX IF NOT EXISTS idx_matches_node ON matches(node);
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

// SaveResult records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches (match_id, node, role, round_one, round_two, tick_rate, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.Node, r.Role, r.RoundOne, r.RoundTwo, r.TickRate, r.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectMatches = `SELECT id, match_id, node, role, round_one, round_two, tick_rate, won, created_at FROM matches`

// RecentResults retrieves the most recent records, newest first.
func (s *Store) RecentResults(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectMatches+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return scanRecords(rows)
}

// ResultsByMatch retrieves every record of one match (one per node that saved it).
func (s *Store) ResultsByMatch(matchID string) ([]MatchRecord, error) {
	rows, err := s.db.Query(selectMatches+` WHERE match_id = ? ORDER BY id`, matchID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match %s: %w", matchID, err)
	}
	return scanRecords(rows)
}

// NodeStats returns how many matches node played and won.
// An empty node aggregates the whole ledger.
func (s *Store) NodeStats(node string) (*Stats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(won), 0), MAX(created_at) FROM matches`
	args := []any{}
	if node != "" {
		query += ` WHERE node = ?`
		args = append(args, node)
	}

	var stats Stats
	var lastPlayed any
	if err := s.db.QueryRow(query, args...).Scan(&stats.Played, &stats.Won, &lastPlayed); err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return &stats, nil
}

func scanRecords(rows *sql.Rows) ([]MatchRecord, error) {
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.MatchID, &r.Node, &r.Role, &r.RoundOne, &r.RoundTwo, &r.TickRate, &r.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
