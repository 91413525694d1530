// Package dedup derives the stable content fingerprint used for idempotent
// ingestion. The pipeline itself never deduplicates across invocations; it
// only produces the key that the storage collaborator rejects duplicates on.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeText trims the text, collapses internal whitespace runs to single
// spaces and lower-cases the result. Cosmetic whitespace differences must not
// change the hash.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Hash returns the SHA-256 hex digest of "{date}-{normalized_text}-{amount}".
// Identical (date, text, amount) triples always produce the same digest; the
// amount is rendered in its minimal decimal form so 1200, 1200.0 and 1200.00
// hash identically.
func Hash(date, text string, amount decimal.Decimal) string {
	raw := fmt.Sprintf("%s-%s-%s", date, NormalizeText(text), amount.String())
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
