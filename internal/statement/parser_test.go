package statement

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintastic/extract/internal/dedup"
	"fintastic/extract/internal/extract"
	"fintastic/extract/internal/models"
)

func tablePage(rows ...[]string) MemoryPage {
	var lines []string
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " "))
	}
	return MemoryPage{Rows: rows, Text: strings.Join(lines, "\n")}
}

func TestParseTableWithHeaders(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	page := tablePage(
		[]string{"Txn Date", "Narration", "Debit", "Credit", "Balance"},
		[]string{"05-Dec-19", "UPI Payment to Grocery Store", "1,200.50", "", "45,000.00"},
		[]string{"06-Dec-19", "NEFT Salary Credit", "", "42,000.00", "87,000.00"},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 2)

	assert.Equal(t, "2019-12-05", candidates[0].Date)
	assert.Equal(t, "UPI Payment to Grocery Store", candidates[0].Text)
	assert.Equal(t, models.TypeExpense, candidates[0].Type)
	assert.True(t, candidates[0].Amount.Equal(decimal.RequireFromString("1200.50")))
	assert.Equal(t, dedup.Hash("2019-12-05", "UPI Payment to Grocery Store", candidates[0].Amount), candidates[0].Hash)

	assert.Equal(t, "2019-12-06", candidates[1].Date)
	assert.Equal(t, models.TypeIncome, candidates[1].Type)
	assert.True(t, candidates[1].Amount.Equal(decimal.NewFromInt(42000)))
}

func TestParseTablePositionalFallback(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	// Header names nothing recognizable, so columns fall back to the
	// conventional date/narration/debit/credit order.
	page := tablePage(
		[]string{"Col A", "Col B", "Col C", "Col D"},
		[]string{"05-Dec-19", "ATM Withdrawal", "500.00", ""},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, models.TypeExpense, candidates[0].Type)
	assert.True(t, candidates[0].Amount.Equal(decimal.NewFromInt(500)))
}

func TestParseTablePartialHeaderKeepsNamedColumns(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	// Only the missing role (credit) defaults positionally; the date,
	// narration and debit columns named by the header must keep their
	// positions even though the first column is a reference number.
	page := tablePage(
		[]string{"Ref No", "Txn Date", "Particulars", "Debit"},
		[]string{"123", "05-Dec-19", "Card Purchase", "250.00"},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, "2019-12-05", candidates[0].Date)
	assert.Equal(t, "Card Purchase", candidates[0].Text)
	assert.Equal(t, models.TypeExpense, candidates[0].Type)
	assert.True(t, candidates[0].Amount.Equal(decimal.RequireFromString("250.00")))
}

func TestParseTableRejectsNegativeAmounts(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	// A negative cell is bad source data, not an expense to sign-flip.
	page := tablePage(
		[]string{"Date", "Narration", "Debit", "Credit"},
		[]string{"05-Dec-19", "Reversal adjustment", "-500.00", ""},
		[]string{"06-Dec-19", "Negative credit", "", "-750.00"},
		[]string{"07-Dec-19", "Valid Payment", "100.00", ""},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, "Valid Payment", candidates[0].Text)
}

func TestParseTableDebitWinsOverCredit(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	// A zero debit cell is not a debit; the credit column decides.
	page := tablePage(
		[]string{"Date", "Description", "Debit", "Credit"},
		[]string{"05-Dec-19", "Refund from Merchant", "0.00", "750.00"},
		[]string{"06-Dec-19", "Card Purchase", "250.00", "0.00"},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 2)
	assert.Equal(t, models.TypeIncome, candidates[0].Type)
	assert.Equal(t, models.TypeExpense, candidates[1].Type)
}

func TestParseTableEmptyDateCellUsesRow(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	page := tablePage(
		[]string{"Date", "Particulars", "Debit", "Credit"},
		[]string{"", "05-Dec-19 UPI Payment", "300.00", ""},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, "2019-12-05", candidates[0].Date)
}

func TestParseTableShortNarrationJoinsCells(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	// The cell splitter sometimes tears the narration apart; a fragment
	// shorter than three runes pulls in the cells up to the debit column.
	page := tablePage(
		[]string{"Date", "Narration", "xx", "Debit", "Credit"},
		[]string{"05-Dec-19", "UP", "I Payment to Store", "450.00", ""},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, "UP I Payment to Store", candidates[0].Text)
}

func TestParseTableSkipsUnusableRows(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	page := tablePage(
		[]string{"Date", "Narration", "Debit", "Credit"},
		[]string{"no date here", "Opening Balance", "", ""},
		[]string{"05-Dec-19", "Valid Payment", "100.00", ""},
		[]string{"06-Dec-19", "No amounts at all", "", ""},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, "Valid Payment", candidates[0].Text)
}

func TestParseTableTruncatesTextButHashesFullNarration(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	narration := "UPI Payment " + strings.Repeat("x", 300)
	page := tablePage(
		[]string{"Date", "Narration", "Debit", "Credit"},
		[]string{"05-Dec-19", narration, "100.00", ""},
	)

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Len(t, []rune(candidates[0].Text), models.MaxCandidateTextLength)
	// The hash covers the narration before truncation, so two rows differing
	// only past the cap stay distinct.
	assert.Equal(t, dedup.Hash("2019-12-05", narration, candidates[0].Amount), candidates[0].Hash)
}

func TestParseTextFallback(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	page := MemoryPage{Text: strings.Join([]string{
		"Statement of account",
		"05-Dec-19 NEFT Salary Credit 42,000.00",
		"06-Dec-19 ATM Withdrawal debited 500.00",
		"some footer line without numbers",
	}, "\n")}

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 2)

	// No expense keyword on the line: income by default.
	assert.Equal(t, models.TypeIncome, candidates[0].Type)
	assert.True(t, candidates[0].Amount.Equal(decimal.NewFromInt(42000)))
	assert.Equal(t, "2019-12-05", candidates[0].Date)
	assert.Equal(t, "-Dec- NEFT Salary Credit", candidates[0].Text)

	// "debited" flips the line to expense.
	assert.Equal(t, models.TypeExpense, candidates[1].Type)
	assert.True(t, candidates[1].Amount.Equal(decimal.NewFromInt(500)))
}

func TestParseTextFirstStrategy(t *testing.T) {
	parser := NewParser(nil, Options{AmountStrategy: extract.StrategyFirst}, nil)

	page := MemoryPage{Text: "05/12/2019 card payment 500.00 12,345.67"}

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	// First strategy grabs the leading date digits on lines like this one;
	// that is why last is the default.
	assert.True(t, candidates[0].Amount.Equal(decimal.NewFromInt(5)))
}

func TestParsePagesMalformedPageDoesNotAbortDocument(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	good := MemoryPage{Text: "05-Dec-19 upi payment 100.00"}
	garbage := MemoryPage{Text: "%%%% \x00\x01 binary noise %%%%"}
	alsoGood := MemoryPage{Text: "06-Dec-19 upi payment 200.00"}

	candidates := parser.ParsePages([]Page{good, garbage, alsoGood})
	require.Len(t, candidates, 2)
	assert.Equal(t, "2019-12-05", candidates[0].Date)
	assert.Equal(t, "2019-12-06", candidates[1].Date)
}

func TestParsePagesMaxPages(t *testing.T) {
	parser := NewParser(nil, Options{MaxPages: 1}, nil)

	first := MemoryPage{Text: "05-Dec-19 payment 100.00"}
	second := MemoryPage{Text: "06-Dec-19 payment 200.00"}

	candidates := parser.ParsePages([]Page{first, second})
	require.Len(t, candidates, 1)
	assert.Equal(t, "2019-12-05", candidates[0].Date)
}

func TestParsePagesPreferTableOverText(t *testing.T) {
	parser := NewParser(nil, Options{}, nil)

	page := MemoryPage{
		Rows: [][]string{
			{"Date", "Narration", "Debit", "Credit"},
			{"05-Dec-19", "Card Purchase", "100.00", ""},
		},
		Text: "05-Dec-19 Card Purchase 100.00\n06-Dec-19 stray text line 999.00",
	}

	candidates := parser.ParsePages([]Page{page})
	require.Len(t, candidates, 1)
	assert.Equal(t, "Card Purchase", candidates[0].Text)
}

func TestOpenPDFRejectsGarbage(t *testing.T) {
	_, err := OpenPDF(strings.NewReader(""))
	assert.Error(t, err)

	_, err = OpenPDF(strings.NewReader("this is not a pdf"))
	assert.Error(t, err)
}
