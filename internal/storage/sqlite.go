// Package storage provides the history backends: SQLite, a JSON file and an
// in-memory list. Each registers itself with the registry under its name.
// SQLite uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/history"
)

// timeLayout is fixed-width UTC so text comparison orders timestamps.
const timeLayout = "2006-01-02 15:04:05.000000"

// SQLiteStore keeps the ranked list in history_entries and every recorded
// game in the games journal.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ history.Backend = (*SQLiteStore)(nil)
	_ history.Journal = (*SQLiteStore)(nil)
)

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := expandPath(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// A single connection serialises writers from concurrent SSH sessions.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS history_entries (
			rank INTEGER PRIMARY KEY,
			entry_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_difficulty ON games(difficulty);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the ranked list in rank order.
func (s *SQLiteStore) Load(ctx context.Context) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, score, difficulty, recorded_at
		 FROM history_entries
		 ORDER BY rank`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		var recordedAt string
		if err := rows.Scan(&e.ID, &e.Score, &e.Difficulty, &recordedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.RecordedAt = parseTime(recordedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Save replaces the ranked list atomically.
func (s *SQLiteStore) Save(ctx context.Context, entries []history.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM history_entries"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO history_entries (rank, entry_id, score, difficulty, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i+1, e.ID, e.Score, e.Difficulty, formatTime(e.RecordedAt)); err != nil {
			return fmt.Errorf("storage: cannot save entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit history: %w", err)
	}
	return nil
}

// Append adds a finished game to the journal. Appending the same entry
// twice is a no-op.
func (s *SQLiteStore) Append(ctx context.Context, e history.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO games (entry_id, score, difficulty, recorded_at)
		 VALUES (?, ?, ?, ?)`,
		e.ID, e.Score, e.Difficulty, formatTime(e.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append game: %w", err)
	}
	return nil
}

// Stats aggregates the journal per difficulty, most played first.
func (s *SQLiteStore) Stats(ctx context.Context) ([]history.DifficultyStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT difficulty, COUNT(*), MAX(score), SUM(score), MAX(recorded_at)
		 FROM games
		 GROUP BY difficulty
		 ORDER BY COUNT(*) DESC, difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []history.DifficultyStats
	for rows.Next() {
		var st history.DifficultyStats
		var lastPlayed string
		if err := rows.Scan(&st.Difficulty, &st.Games, &st.Best, &st.Total, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime returns the zero time for unparsable input.
func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
