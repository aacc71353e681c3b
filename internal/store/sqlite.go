// Package store persists run history and the time-boxed library cache in a
// local SQLite database. Match decisions are never stored; each enrichment
// run recomputes everything from its inputs.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/lead-enricher/internal/model"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database at path and configures
// WAL mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id                   TEXT PRIMARY KEY,
	lead_file            TEXT NOT NULL,
	email_column         TEXT NOT NULL,
	lead_count           INTEGER NOT NULL,
	matched_count        INTEGER NOT NULL,
	ambiguous_count      INTEGER NOT NULL,
	unmatched_count      INTEGER NOT NULL,
	duplicate_count      INTEGER NOT NULL,
	collapse_subdomains  INTEGER NOT NULL,
	treat_personal       INTEGER NOT NULL,
	output_dir           TEXT NOT NULL DEFAULT '',
	created_at           DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS library_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_library_cache_expires_at ON library_cache(expires_at);
`

// Migrate creates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts one run summary, assigning its ID and timestamp.
func (s *Store) RecordRun(ctx context.Context, run model.RunSummary) (model.RunSummary, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
			id, lead_file, email_column, lead_count,
			matched_count, ambiguous_count, unmatched_count, duplicate_count,
			collapse_subdomains, treat_personal, output_dir, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.LeadFile, run.EmailColumn, run.LeadCount,
		run.MatchedCount, run.AmbiguousCount, run.UnmatchedCount, run.DuplicateCount,
		run.CollapseSubdomains, run.TreatPersonalAsUnmatched, run.OutputDir, run.CreatedAt,
	)
	if err != nil {
		return model.RunSummary{}, eris.Wrap(err, "store: insert run")
	}
	return run, nil
}

// ListRuns returns run summaries newest first, up to limit (0 = all).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	query := `SELECT id, lead_file, email_column, lead_count,
		matched_count, ambiguous_count, unmatched_count, duplicate_count,
		collapse_subdomains, treat_personal, output_dir, created_at
		FROM runs ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(
			&r.ID, &r.LeadFile, &r.EmailColumn, &r.LeadCount,
			&r.MatchedCount, &r.AmbiguousCount, &r.UnmatchedCount, &r.DuplicateCount,
			&r.CollapseSubdomains, &r.TreatPersonalAsUnmatched, &r.OutputDir, &r.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "store: iterate runs")
}

// GetCache returns the cached payload for key when present and not expired.
func (s *Store) GetCache(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM library_cache WHERE key = ? AND expires_at > ?`,
		key, time.Now().UTC(),
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrapf(err, "store: get cache %s", key)
	}
	return payload, true, nil
}

// SetCache stores a payload under key with the given time-to-live,
// replacing any previous entry.
func (s *Store) SetCache(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO library_cache (key, payload, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`,
		key, payload, now, now.Add(ttl),
	)
	return eris.Wrapf(err, "store: set cache %s", key)
}

// ClearCache drops every cached library payload. Used by explicit refresh.
func (s *Store) ClearCache(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM library_cache`)
	return eris.Wrap(err, "store: clear cache")
}
