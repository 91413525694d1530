package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// isoDateFormat is the normalized output form for all extracted dates.
const isoDateFormat = "2006-01-02"

// valueDatePattern finds a DD-MMM-YY[YY] token anywhere in the text. Some
// statements print two dates, the booking date and a parenthesized value date;
// matching this pattern first means the unparenthesized date always wins.
var valueDatePattern = regexp.MustCompile(`\d{1,2}-[A-Za-z]{3}-\d{2,4}`)

// DefaultDatePatterns returns the ordered generic patterns tried when the
// value-date pattern finds nothing.
func DefaultDatePatterns() []string {
	return []string{
		`\d{2}-[A-Za-z]{3}-\d{2,4}`,
		`\d{2}/\d{2}/\d{4}`,
		`\d{4}-\d{2}-\d{2}`,
	}
}

// DefaultDateLayouts returns the ordered strict parse layouts applied to a
// candidate substring. The first layout that parses wins; none parsing means
// no date. Day-first ordering: 05/12/2019 is the 5th of December.
func DefaultDateLayouts() []string {
	return []string{
		"2-Jan-06",
		"2-Jan-2006",
		"02/01/2006",
		"2006-01-02",
	}
}

var monthToken = regexp.MustCompile(`[A-Za-z]+`)

// DateExtractor finds a date substring in free text and normalizes it to ISO
// YYYY-MM-DD form through an ordered (pattern, layout) fallback: patterns
// locate a candidate, layouts are then tried in fixed order and the first
// successful parse short-circuits.
type DateExtractor struct {
	patterns []*regexp.Regexp
	layouts  []string
}

// NewDateExtractor creates an extractor with the default patterns and layouts.
func NewDateExtractor() *DateExtractor {
	e, _ := NewDateExtractorWith(DefaultDatePatterns(), DefaultDateLayouts())
	return e
}

// NewDateExtractorWith creates an extractor with custom ordered patterns and
// parse layouts, for locales whose statements use other date forms.
func NewDateExtractorWith(patterns, layouts []string) (*DateExtractor, error) {
	if len(patterns) == 0 || len(layouts) == 0 {
		return nil, fmt.Errorf("date extractor needs at least one pattern and one layout")
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid date pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &DateExtractor{patterns: compiled, layouts: layouts}, nil
}

// Extract returns the ISO form of the first date found in the text, or false
// when no substring both matches a pattern and parses under a layout. A row
// with no extractable date must be rejected by the caller, never defaulted.
func (e *DateExtractor) Extract(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	candidate := valueDatePattern.FindString(text)
	if candidate == "" {
		for _, re := range e.patterns {
			if m := re.FindString(text); m != "" {
				candidate = m
				break
			}
		}
	}
	if candidate == "" {
		return "", false
	}

	// Month abbreviations arrive in any case ("DEC", "dec"); time.Parse
	// wants "Dec".
	candidate = monthToken.ReplaceAllStringFunc(candidate, titleCase)

	for _, layout := range e.layouts {
		if parsed, err := time.Parse(layout, candidate); err == nil {
			return parsed.Format(isoDateFormat), true
		}
	}
	return "", false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
