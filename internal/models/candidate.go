// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"

	"fintastic/extract/internal/parsererror"
)

// TransactionCandidate is the central entity produced by the statement parser
// and the email classifier. A candidate is created transiently during a single
// parse pass, never mutated after creation, and handed to the ingestion
// collaborator keyed by Hash.
type TransactionCandidate struct {
	Hash   string          `csv:"Hash" json:"hash"`
	Date   string          `csv:"Date" json:"date"` // ISO YYYY-MM-DD
	Amount decimal.Decimal `csv:"Amount" json:"amount"`
	Text   string          `csv:"Text" json:"text"`
	Type   string          `csv:"Type" json:"type"` // income or expense
}

// Validate checks the candidate invariants: positive amount, non-empty text,
// ISO date, a known type and a hash.
func (c TransactionCandidate) Validate() error {
	if c.Hash == "" {
		return &parsererror.ValidationError{Field: "hash", Reason: "empty"}
	}
	if c.Date == "" {
		return &parsererror.ValidationError{Field: "date", Reason: "empty"}
	}
	if !c.Amount.IsPositive() {
		return &parsererror.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if c.Text == "" {
		return &parsererror.ValidationError{Field: "text", Reason: "empty"}
	}
	if c.Type != TypeIncome && c.Type != TypeExpense {
		return &parsererror.ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	return nil
}

// EmailTransaction is the classification result for a single email. The
// GmailMessageID is attached by the caller that fetched the message; the
// classifier itself only fills Amount, Text and Type.
type EmailTransaction struct {
	GmailMessageID string          `json:"gmailMessageId"`
	Amount         decimal.Decimal `json:"amount"`
	Text           string          `json:"text"`
	Type           string          `json:"type"`
}
