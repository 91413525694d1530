package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintastic/extract/internal/dedup"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/parsererror"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testCandidate(date, text string, amount int64) models.TransactionCandidate {
	a := decimal.NewFromInt(amount)
	return models.TransactionCandidate{
		Hash:   dedup.Hash(date, text, a),
		Date:   date,
		Amount: a,
		Text:   text,
		Type:   models.TypeExpense,
	}
}

func TestIngestAndRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	candidates := []models.TransactionCandidate{
		testCandidate("2024-01-02", "upi payment", 100),
		testCandidate("2024-01-01", "atm withdrawal", 500),
	}

	result, err := s.Ingest(ctx, candidates)
	require.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	stored, err := s.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	// Ordered by date.
	assert.Equal(t, "2024-01-01", stored[0].Date)
	assert.Equal(t, "atm withdrawal", stored[0].Text)
	assert.True(t, stored[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "2024-01-02", stored[1].Date)
}

func TestIngestIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	candidates := []models.TransactionCandidate{
		testCandidate("2024-01-01", "upi payment", 100),
	}

	first, err := s.Ingest(ctx, candidates)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Inserted)

	second, err := s.Ingest(ctx, candidates)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 1, second.Skipped)
	assert.NotEqual(t, first.BatchID, second.BatchID)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestEmptyBatch(t *testing.T) {
	s := newTestStore(t)

	result, err := s.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
}

func TestCandidatesCorruptStoredAmount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Ingest(ctx, []models.TransactionCandidate{
		testCandidate("2024-01-01", "upi payment", 100),
	})
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE candidates SET amount = 'garbage'`)
	require.NoError(t, err)

	_, err = s.Candidates(ctx)
	require.Error(t, err)

	var parseErr *parsererror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "amount", parseErr.Field)
	assert.Equal(t, "garbage", parseErr.Value)
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing-dir", "nested", "test.db"), nil)
	assert.Error(t, err)
}
