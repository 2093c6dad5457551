// Package manifest records which images went into each dataset build.
package manifest

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/b0tShaman/xray-prep/data"
	_ "github.com/mattn/go-sqlite3"
)

// Sample is one image of a recorded build.
type Sample struct {
	Split    string
	Position int
	Path     string
	Label    uint8
}

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// New opens (creating if needed) the manifest database at dbPath.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate manifest: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		output_path TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		split TEXT NOT NULL,
		position INTEGER NOT NULL,
		path TEXT NOT NULL,
		label INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE,
		UNIQUE (run_id, split, position)
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run_split ON samples(run_id, split);
	`

	_, err := db.conn.Exec(schema)
	return err
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Record stores one row per sampled image of bundle under runID, in a
// single transaction.
func (db *DB) Record(runID, outputPath string, bundle data.Bundle) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, output_path, created_at) VALUES (?, ?, ?)`,
		runID, outputPath, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, split, position, path, label) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	splits := make([]string, 0, len(bundle))
	for split := range bundle {
		splits = append(splits, split)
	}
	sort.Strings(splits)

	for _, split := range splits {
		res := bundle[split]
		if len(res.Paths) != len(res.Labels) {
			return fmt.Errorf("split %q has %d paths for %d labels", split, len(res.Paths), len(res.Labels))
		}
		for i, path := range res.Paths {
			if _, err := stmt.Exec(runID, split, i, path, res.Labels[i]); err != nil {
				return fmt.Errorf("failed to insert sample %s: %w", path, err)
			}
		}
	}

	return tx.Commit()
}

// Samples returns the recorded images of one split ordered by position.
func (db *DB) Samples(runID, split string) ([]Sample, error) {
	rows, err := db.conn.Query(
		`SELECT split, position, path, label FROM samples WHERE run_id = ? AND split = ? ORDER BY position`,
		runID, split,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.Split, &s.Position, &s.Path, &s.Label); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// Runs returns the IDs of all recorded builds, oldest first.
func (db *DB) Runs() ([]string, error) {
	rows, err := db.conn.Query(`SELECT id FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
