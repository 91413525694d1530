package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintastic/extract/internal/models"
	"fintastic/extract/internal/statement"
)

func candidate(hash, date string, amount int64) models.TransactionCandidate {
	return models.TransactionCandidate{
		Hash:   hash,
		Date:   date,
		Amount: decimal.NewFromInt(amount),
		Text:   "tx " + hash,
		Type:   models.TypeExpense,
	}
}

func TestMergeDeduplicatesByHash(t *testing.T) {
	a := []models.TransactionCandidate{
		candidate("h1", "2024-01-01", 100),
		candidate("h2", "2024-01-02", 200),
	}
	b := []models.TransactionCandidate{
		candidate("h2", "2024-01-02", 200),
		candidate("h3", "2024-01-03", 300),
	}

	merged := Merge(a, b)
	require.Len(t, merged, 3)
	assert.Equal(t, "h1", merged[0].Hash)
	assert.Equal(t, "h2", merged[1].Hash)
	assert.Equal(t, "h3", merged[2].Hash)
}

func TestMergeSortsByDateThenHash(t *testing.T) {
	merged := Merge([]models.TransactionCandidate{
		candidate("zz", "2024-02-01", 1),
		candidate("aa", "2024-01-01", 1),
		candidate("bb", "2024-02-01", 1),
	})

	require.Len(t, merged, 3)
	assert.Equal(t, "aa", merged[0].Hash)
	assert.Equal(t, "bb", merged[1].Hash)
	assert.Equal(t, "zz", merged[2].Hash)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, nil))
}

func TestProcessDirectorySkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()

	// Not a real PDF; the processor must log and move on, not fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0600))
	// Non-PDF files are ignored entirely.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0600))

	parser := statement.NewParser(nil, statement.Options{}, nil)
	p := NewProcessor(parser, nil)

	candidates, err := p.ProcessDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestProcessDirectoryMissing(t *testing.T) {
	parser := statement.NewParser(nil, statement.Options{}, nil)
	p := NewProcessor(parser, nil)

	_, err := p.ProcessDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
