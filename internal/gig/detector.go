// Package gig detects irregular-income earners from their transaction
// history. Detection is purely lexical: income transactions whose category or
// note mention a gig keyword, plus an optional self-reported occupation.
package gig

import (
	"strings"

	"github.com/shopspring/decimal"

	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/vocab"
)

// Result summarizes a detection pass over one user's transactions.
type Result struct {
	IsGigWorker     bool            `json:"isGigWorker" yaml:"is_gig_worker"`
	MatchedKeywords []string        `json:"matchedKeywords" yaml:"matched_keywords"`
	GigIncome       decimal.Decimal `json:"gigIncome" yaml:"gig_income"`
	GigTransactions int             `json:"gigTransactions" yaml:"gig_transactions"`
}

// Detector flags gig workers using the vocabulary's gig categories.
type Detector struct {
	vocab *vocab.Vocabulary
	log   logging.Logger
}

// NewDetector creates a Detector. A nil vocabulary uses the built-in
// defaults.
func NewDetector(v *vocab.Vocabulary, logger logging.Logger) *Detector {
	if v == nil {
		v = vocab.Default()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Detector{vocab: v, log: logger}
}

// Detect scans income transactions for gig keywords in category or note and
// checks the occupation string against the same list. Expense transactions
// never contribute, whatever their wording.
func (d *Detector) Detect(txs []models.Transaction, occupation string) Result {
	var res Result
	seen := make(map[string]bool)

	if occupation != "" {
		lower := strings.ToLower(occupation)
		for _, kw := range d.vocab.GigCategories {
			if strings.Contains(lower, kw) {
				res.IsGigWorker = true
				if !seen[kw] {
					seen[kw] = true
					res.MatchedKeywords = append(res.MatchedKeywords, kw)
				}
			}
		}
	}

	for _, tx := range txs {
		if tx.Type != models.TypeIncome {
			continue
		}
		kw, ok := tx.MatchesKeyword(d.vocab.GigCategories)
		if !ok {
			continue
		}
		res.IsGigWorker = true
		res.GigIncome = res.GigIncome.Add(tx.AbsAmount())
		res.GigTransactions++
		if !seen[kw] {
			seen[kw] = true
			res.MatchedKeywords = append(res.MatchedKeywords, kw)
		}
	}

	d.log.WithFields(
		logging.Field{Key: "gig_worker", Value: res.IsGigWorker},
		logging.Field{Key: logging.FieldCount, Value: res.GigTransactions},
		logging.Field{Key: logging.FieldAmount, Value: res.GigIncome.String()},
	).Debug("Gig detection complete")
	return res
}

// GigPercentage returns gig income as a percentage of monthly income. The
// second return value is false when monthly income is not positive, in which
// case callers substitute their own default share.
func GigPercentage(gigIncome, monthlyIncome decimal.Decimal) (decimal.Decimal, bool) {
	if !monthlyIncome.IsPositive() {
		return decimal.Zero, false
	}
	return gigIncome.Div(monthlyIncome).Mul(decimal.NewFromInt(100)), true
}
