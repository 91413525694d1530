package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction represents a stored transaction as the downstream system keeps
// it: classified with a category and a free-form note. The gig detector and
// the insights heuristics consume these, they never produce them.
type Transaction struct {
	Date     string          `csv:"Date" json:"date"` // ISO YYYY-MM-DD
	Type     string          `csv:"Type" json:"type"`
	Category string          `csv:"Category" json:"category"`
	Note     string          `csv:"Note" json:"note"`
	Amount   decimal.Decimal `csv:"Amount" json:"amount"`
}

// AbsAmount returns the transaction amount with the sign stripped. Stored
// transactions may carry signed amounts depending on the upstream system.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// MatchesKeyword reports whether any of the given keywords occurs in the
// transaction's category or note, case-insensitive substring match.
func (t Transaction) MatchesKeyword(keywords []string) (string, bool) {
	category := strings.ToLower(t.Category)
	note := strings.ToLower(t.Note)
	for _, k := range keywords {
		if strings.Contains(category, k) || strings.Contains(note, k) {
			return k, true
		}
	}
	return "", false
}

// Goal is a savings target consumed by the income alert heuristic.
type Goal struct {
	Name          string          `json:"name" yaml:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	CurrentAmount decimal.Decimal `json:"currentAmount" yaml:"current_amount"`
}

// Remaining returns how much is still missing to reach the goal target.
func (g Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
