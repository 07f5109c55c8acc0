// Package storage provides SQLite-based persistence for level completions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only finished levels are recorded; game state is never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for completion records.
type Store struct {
	db *sql.DB
}

// Completion is one solved level.
type Completion struct {
	ID        int64
	PackID    string
	LevelID   string
	Player    string
	Moves     int
	Duration  time.Duration
	CreatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(pack_id, level_id);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(pack_id, level_id, moves ASC);
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

// SaveCompletion records a solved level.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	if c.PackID == "" || c.LevelID == "" {
		return 0, errors.New("storage: completion needs pack and level IDs")
	}
	if c.Moves < 0 {
		return 0, fmt.Errorf("storage: negative move count %d", c.Moves)
	}

	result, err := s.db.Exec(
		"INSERT INTO completions (pack_id, level_id, player, moves, duration_ms) VALUES (?, ?, ?, ?, ?)",
		c.PackID, c.LevelID, c.Player, c.Moves, c.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopCompletions retrieves the best N completions for a level.
// Results are ordered by moves ascending, then by time taken, then oldest first.
func (s *Store) TopCompletions(packID, levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pack_id, level_id, player, moves, duration_ms, created_at
		 FROM completions
		 WHERE pack_id = ? AND level_id = ?
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		packID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var c Completion
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.PackID, &c.LevelID, &c.Player, &c.Moves, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestMoves returns the lowest move count recorded for a level.
// ok is false when the level has never been solved.
func (s *Store) BestMoves(packID, levelID string) (moves int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(moves) FROM completions WHERE pack_id = ? AND level_id = ?",
		packID, levelID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot get best moves: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// PackProgress returns the best move count of every solved level in a pack.
func (s *Store) PackProgress(packID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(moves)
		 FROM completions
		 WHERE pack_id = ?
		 GROUP BY level_id`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]int)
	for rows.Next() {
		var id string
		var best int
		if err := rows.Scan(&id, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		progress[id] = best
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return progress, nil
}

// ClearCompletions removes all records for a level.
func (s *Store) ClearCompletions(packID, levelID string) error {
	_, err := s.db.Exec(
		"DELETE FROM completions WHERE pack_id = ? AND level_id = ?",
		packID, levelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	PackID     string
	LevelID    string
	Solves     int
	BestMoves  int
	AvgMoves   float64
	Players    int
	LastSolved time.Time
}

// GetLevelStats retrieves aggregated statistics for a level.
func (s *Store) GetLevelStats(packID, levelID string) (*LevelStats, error) {
	stats := &LevelStats{PackID: packID, LevelID: levelID}

	var lastSolved any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(moves), 0), COALESCE(AVG(moves), 0),
		        COUNT(DISTINCT player), MAX(created_at)
		 FROM completions WHERE pack_id = ? AND level_id = ?`,
		packID, levelID,
	).Scan(&stats.Solves, &stats.BestMoves, &stats.AvgMoves, &stats.Players, &lastSolved)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastSolved = parseTime(lastSolved)

	return stats, nil
}

// parseTime handles the datetime forms the driver returns.
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
