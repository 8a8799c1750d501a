package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a SQLite table of episode outcomes, one row per saved run.
type Index struct {
	db *sql.DB
}

type EpisodeEntry struct {
	RunID      string
	Policy     string
	Seed       int64
	Steps      int
	Return     float64
	Terminated bool
	Truncated  bool
	CreatedAt  time.Time
}

// OpenIndex creates or opens the index database, creating parent directories.
func OpenIndex(dbPath string) (*Index, error) {
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

	idx := &Index{db: db}
	if err := idx.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return idx, nil
}

func (x *Index) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			policy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			total_return REAL NOT NULL,
			terminated INTEGER NOT NULL DEFAULT 0,
			truncated INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(policy, total_return DESC);
	`
	_, err := x.db.Exec(schema)
	return err
}

func (x *Index) Close() error {
	if x.db != nil {
		return x.db.Close()
	}
	return nil
}

// Record inserts the outcome of a saved run.
func (x *Index) Record(meta RunMetadata) error {
	_, err := x.db.Exec(
		`INSERT INTO episodes (run_id, policy, seed, steps, total_return, terminated, truncated)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Policy, meta.Seed, meta.Steps, meta.Return, meta.Terminated, meta.Truncated,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record episode %s: %w", meta.ID, err)
	}
	return nil
}

// Top returns the highest-return episodes, longest first on ties.
// An empty policy matches every policy.
func (x *Index) Top(policy string, limit int) ([]EpisodeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := x.db.Query(
		`SELECT run_id, policy, seed, steps, total_return, terminated, truncated, created_at
		 FROM episodes
		 WHERE ? = '' OR policy = ?
		 ORDER BY total_return DESC, steps DESC
		 LIMIT ?`,
		policy, policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var entries []EpisodeEntry
	for rows.Next() {
		var e EpisodeEntry
		var createdAt any
		if err := rows.Scan(&e.RunID, &e.Policy, &e.Seed, &e.Steps, &e.Return,
			&e.Terminated, &e.Truncated, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
