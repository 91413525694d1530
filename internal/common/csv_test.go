package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintastic/extract/internal/models"
	"fintastic/extract/internal/parsererror"
)

func TestWriteAndReadCandidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.csv")

	candidates := []models.TransactionCandidate{
		{Hash: "h1", Date: "2024-01-01", Amount: decimal.RequireFromString("100.50"), Text: "upi payment", Type: models.TypeExpense},
		{Hash: "h2", Date: "2024-01-02", Amount: decimal.NewFromInt(42000), Text: "salary, december", Type: models.TypeIncome},
	}

	require.NoError(t, WriteCandidatesToCSV(candidates, path, ',', true))

	read, err := ReadCandidatesCSV(path, ',')
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "h1", read[0].Hash)
	assert.True(t, read[0].Amount.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, "salary, december", read[1].Text)
	assert.Equal(t, models.TypeIncome, read[1].Type)
}

func TestWriteCandidatesCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.csv")

	candidates := []models.TransactionCandidate{
		{Hash: "h1", Date: "2024-01-01", Amount: decimal.NewFromInt(100), Text: "payment", Type: models.TypeExpense},
	}

	require.NoError(t, WriteCandidatesToCSV(candidates, path, ';', true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hash;Date;Amount;Text;Type")

	read, err := ReadCandidatesCSV(path, ';')
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, "payment", read[0].Text)
}

func TestWriteCandidatesWithoutHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.csv")

	candidates := []models.TransactionCandidate{
		{Hash: "h1", Date: "2024-01-01", Amount: decimal.NewFromInt(100), Text: "payment", Type: models.TypeExpense},
	}

	require.NoError(t, WriteCandidatesToCSV(candidates, path, ',', false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Hash")
	assert.Contains(t, string(data), "h1")
}

func TestReadTransactionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	content := "Date,Type,Category,Note,Amount\n" +
		"2024-01-05,income,Freelance,logo design,5000\n" +
		"2024-01-06,expense,Food,lunch,250.75\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	txs, err := ReadTransactionsCSV(path, ',')
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Freelance", txs[0].Category)
	assert.Equal(t, models.TypeIncome, txs[0].Type)
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("250.75")))
}

func TestReadCandidatesMissingFile(t *testing.T) {
	_, err := ReadCandidatesCSV(filepath.Join(t.TempDir(), "nope.csv"), ',')
	assert.Error(t, err)
}

func TestReadCandidatesMalformedAmount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "Hash,Date,Amount,Text,Type\n" +
		"h1,2024-01-01,notanumber,payment,expense\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := ReadCandidatesCSV(path, ',')
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, path, formatErr.FilePath)
}

func TestReadTransactionsMalformedAmount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "Date,Type,Category,Note,Amount\n" +
		"2024-01-05,income,Freelance,logo design,not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := ReadTransactionsCSV(path, ',')
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.ExpectedFormat, "transaction CSV")
}
