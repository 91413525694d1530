// Package store persists transaction candidates in a local SQLite database.
// The hash primary key makes ingestion idempotent: re-running the pipeline
// over the same statements inserts nothing new.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/parsererror"
)

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	hash        TEXT PRIMARY KEY,
	date        TEXT NOT NULL,
	amount      TEXT NOT NULL,
	text        TEXT NOT NULL,
	type        TEXT NOT NULL,
	batch_id    TEXT NOT NULL,
	ingested_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_candidates_date ON candidates(date);
`

// IngestResult reports what one ingestion batch did.
type IngestResult struct {
	BatchID  string
	Inserted int
	Skipped  int
}

// Store wraps the SQLite database holding ingested candidates.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	logger.WithField(logging.FieldFile, path).Debug("Candidate store opened")
	return &Store{db: db, log: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ingest inserts the candidates under a fresh batch ID. Hashes already
// present are left untouched and counted as skipped; the whole batch commits
// or rolls back as one.
func (s *Store) Ingest(ctx context.Context, candidates []models.TransactionCandidate) (IngestResult, error) {
	result := IngestResult{BatchID: uuid.NewString()}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO candidates (hash, date, amount, text, type, batch_id, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return result, fmt.Errorf("error preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range candidates {
		res, err := stmt.ExecContext(ctx, c.Hash, c.Date, c.Amount.String(), c.Text, c.Type, result.BatchID, now)
		if err != nil {
			return result, fmt.Errorf("error inserting candidate %s: %w", c.Hash, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return result, fmt.Errorf("error reading insert result: %w", err)
		}
		if affected > 0 {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("error committing batch: %w", err)
	}

	s.log.WithFields(
		logging.Field{Key: "batch_id", Value: result.BatchID},
		logging.Field{Key: "inserted", Value: result.Inserted},
		logging.Field{Key: "skipped", Value: result.Skipped},
	).Info("Candidates ingested")
	return result, nil
}

// Candidates returns every stored candidate ordered by date, then hash.
func (s *Store) Candidates(ctx context.Context) ([]models.TransactionCandidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, date, amount, text, type
		FROM candidates ORDER BY date, hash`)
	if err != nil {
		return nil, fmt.Errorf("error querying candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.TransactionCandidate
	for rows.Next() {
		var (
			c      models.TransactionCandidate
			amount string
		)
		if err := rows.Scan(&c.Hash, &c.Date, &amount, &c.Text, &c.Type); err != nil {
			return nil, fmt.Errorf("error scanning candidate: %w", err)
		}
		if c.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, &parsererror.ParseError{Parser: "store", Field: "amount", Value: amount, Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the number of stored candidates.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting candidates: %w", err)
	}
	return n, nil
}
