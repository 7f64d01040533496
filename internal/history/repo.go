package history

import (
	"fmt"
	"time"

	"github.com/starford/raido/internal/organizer"
)

// RunRow represents a row in the runs table.
type RunRow struct {
	ID           int64     `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	MovedCount   int       `json:"moved_count"`
	SkippedCount int       `json:"skipped_count"`
}

// MoveRow represents one executed move within a run.
type MoveRow struct {
	RunID       int64  `json:"run_id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	RuleFolder  string `json:"rule_folder"`
	Checksum    string `json:"checksum,omitempty"`
}

// RecordRun inserts a run and its executed moves within a transaction and
// returns the new run id.
func (db *DB) RecordRun(res *organizer.RunResult) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("history: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	r, err := tx.Exec(`
		INSERT INTO runs (started_at, finished_at, moved_count, skipped_count)
		VALUES (?, ?, ?, ?)
	`, res.StartedAt, res.FinishedAt, res.MovedCount, len(res.Skips))
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: run id: %w", err)
	}

	if len(res.Moves) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO moves (run_id, source, destination, rule_folder, checksum) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("history: prepare move insert: %w", err)
		}
		defer stmt.Close()
		for _, m := range res.Moves {
			if _, err := stmt.Exec(id, m.Source, m.Destination, m.RuleFolder, m.Checksum); err != nil {
				return 0, fmt.Errorf("history: insert move: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("history: commit: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, started_at, finished_at, moved_count, skipped_count
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.MovedCount, &r.SkippedCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunMoves returns the executed moves of one run, grouped by destination
// folder then source (stable for display and logging).
func (db *DB) RunMoves(runID int64) ([]MoveRow, error) {
	rows, err := db.conn.Query(`
		SELECT run_id, source, destination, rule_folder, checksum
		FROM moves WHERE run_id = ? ORDER BY rule_folder, source
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("history: run moves: %w", err)
	}
	defer rows.Close()

	var out []MoveRow
	for rows.Next() {
		var m MoveRow
		if err := rows.Scan(&m.RunID, &m.Source, &m.Destination, &m.RuleFolder, &m.Checksum); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LastRunAt returns the finish time of the most recent run, or the zero
// time when no run has been recorded yet.
func (db *DB) LastRunAt() (time.Time, error) {
	var ts time.Time
	err := db.conn.QueryRow(`SELECT finished_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&ts)
	if err != nil {
		return time.Time{}, nil // no runs yet
	}
	return ts, nil
}
