// Package store persists scoring results to SQLite and CSV.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/vantage-bio/cellsig/internal/scoring"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	method     TEXT NOT NULL,
	ranked     INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS scores (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	barcode TEXT NOT NULL,
	geneset TEXT NOT NULL,
	mode    TEXT NOT NULL,
	score   REAL NOT NULL,
	var     REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scores_run ON scores(run_id);
`

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite results database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path not specified")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("results database ready")
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one scoring run and its results in a single transaction,
// returning the generated run ID.
func (s *Store) SaveRun(ctx context.Context, method scoring.Method, ranked bool, results []scoring.ScoreResult) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, method, ranked, created_at) VALUES (?, ?, ?, ?)",
		runID, string(method), ranked, time.Now().UTC(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO scores (run_id, barcode, geneset, mode, score, var) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("prepare scores insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, runID, r.Barcode, r.Name, string(r.Mode), r.Score, r.Var); err != nil {
			return "", fmt.Errorf("insert score for %s/%s: %w", r.Barcode, r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	log.Info().Str("run_id", runID).Int("scores", len(results)).Msg("saved scoring run")
	return runID, nil
}

// RunResults loads every score of one run in insertion order.
func (s *Store) RunResults(ctx context.Context, runID string) ([]scoring.ScoreResult, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT barcode, geneset, mode, score, var FROM scores WHERE run_id = ? ORDER BY rowid", runID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var results []scoring.ScoreResult
	for rows.Next() {
		var r scoring.ScoreResult
		var mode string
		if err := rows.Scan(&r.Barcode, &r.Name, &mode, &r.Score, &r.Var); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		r.Mode = scoring.Mode(mode)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return results, nil
}
