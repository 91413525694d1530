// Package extract provides the pure text-extraction primitives of the
// pipeline: pulling a monetary amount or a calendar date out of unstructured
// statement or email text. Both extractors are side-effect free and hold only
// immutable compiled pattern lists, so concurrent use needs no coordination.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Strategy selects which regex match wins when a statement line contains more
// than one numeric token. Statements often print the running balance next to
// the transaction amount, so the text-fallback parser favours the last token.
type Strategy string

const (
	// StrategyFirst takes the first numeric match in the line.
	StrategyFirst Strategy = "first"
	// StrategyLast takes the last numeric match in the line.
	StrategyLast Strategy = "last"
)

// DefaultAmountPatterns returns the ordered pattern list used for amount
// extraction from email and combined-cell text. Explicit currency markers come
// before generic "by/for" phrases so that a reference number trailing the real
// amount is never picked up. Each pattern must have exactly one capture group.
func DefaultAmountPatterns() []string {
	return []string{
		`₹\s*([\d,]+\.?\d*)`,
		`rs\.?\s*([\d,]+\.?\d*)`,
		`inr\s*([\d,]+\.?\d*)`,
		`amount(?:\s*of)?\s*₹?\s*([\d,]+\.?\d*)`,
		`by\s*₹?\s*([\d,]+\.?\d*)`,
		`for\s*₹?\s*([\d,]+\.?\d*)`,
		`paid\s*₹?\s*([\d,]+\.?\d*)`,
		`payment\s*of\s*₹?\s*([\d,]+\.?\d*)`,
		`debited\s*(?:by)?\s*₹?\s*([\d,]+\.?\d*)`,
		`credited\s*(?:by)?\s*₹?\s*([\d,]+\.?\d*)`,
		`([\d,]+\.?\d*)\s*₹`,
		`([\d,]+\.?\d*)\s*rs`,
	}
}

// linePattern matches a numeric token in a raw statement line, optionally
// preceded by a currency marker. Used only by the text-fallback path.
var linePattern = regexp.MustCompile(`[₹Rs\. ]?([\d,]+\.\d{1,2}|[\d,]+)`)

// AmountExtractor extracts the first positive monetary value from lower-cased
// text using an ordered, immutable list of patterns.
type AmountExtractor struct {
	patterns []*regexp.Regexp
}

// NewAmountExtractor compiles the given ordered pattern list. Patterns are
// matched case-insensitively. A nil or empty list falls back to
// DefaultAmountPatterns.
func NewAmountExtractor(patterns []string) (*AmountExtractor, error) {
	if len(patterns) == 0 {
		patterns = DefaultAmountPatterns()
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("invalid amount pattern %q: %w", p, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("amount pattern %q must have exactly one capture group", p)
		}
		compiled = append(compiled, re)
	}
	return &AmountExtractor{patterns: compiled}, nil
}

// Extract returns the first positive amount matched by the pattern list, in
// priority order. A pattern that matches but fails to parse, or parses to a
// value <= 0, does not win; the next pattern is tried. The second return value
// is false when no pattern yields a positive amount.
func (e *AmountExtractor) Extract(text string) (decimal.Decimal, bool) {
	for _, re := range e.patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, ok := CleanAmount(m[1])
		if ok && amount.IsPositive() {
			return amount, true
		}
	}
	return decimal.Zero, false
}

// ExtractFromLine applies the generic line pattern to a raw statement line and
// returns the match selected by the strategy. Only the selected match is
// parsed; if it does not clean up to a number the line yields nothing, there
// is no retry with another match.
func ExtractFromLine(line string, strategy Strategy) (decimal.Decimal, bool) {
	matches := linePattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}
	var token string
	if strategy == StrategyFirst {
		token = matches[0][1]
	} else {
		token = matches[len(matches)-1][1]
	}
	return CleanAmount(token)
}

// CleanAmount strips thousands separators and whitespace from a cell value and
// parses it as a decimal. A bare trailing decimal point is tolerated, matching
// the loose numeric formats seen in statement exports.
func CleanAmount(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	value = strings.TrimSuffix(value, ".")
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
