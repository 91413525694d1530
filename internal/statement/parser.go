package statement

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"fintastic/extract/internal/dedup"
	"fintastic/extract/internal/extract"
	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/vocab"
)

// descStripPattern removes currency markers, digits and punctuation from a
// text-fallback line so only the narrative words remain for the candidate
// text.
var descStripPattern = regexp.MustCompile(`[₹Rs\.,0-9 ]`)

// Options tune the parser; zero values select sensible defaults.
type Options struct {
	// AmountStrategy picks the numeric token on text-fallback lines.
	// Defaults to StrategyLast, which skips past running balances.
	AmountStrategy extract.Strategy

	// MaxTextLength caps the candidate text. Defaults to
	// models.MaxCandidateTextLength.
	MaxTextLength int

	// MaxPages bounds how many pages are parsed per document. Zero means
	// unbounded.
	MaxPages int
}

// Parser turns statement pages into transaction candidates. Each page takes
// the table path when a table was detected and the text-fallback path
// otherwise; malformed rows and lines are skipped with a log line, never
// fatal.
type Parser struct {
	dates *extract.DateExtractor
	vocab *vocab.Vocabulary
	opts  Options
	log   logging.Logger
}

// NewParser creates a Parser. A nil vocabulary uses the built-in defaults.
func NewParser(v *vocab.Vocabulary, opts Options, logger logging.Logger) *Parser {
	if v == nil {
		v = vocab.Default()
	}
	if opts.AmountStrategy == "" {
		opts.AmountStrategy = extract.StrategyLast
	}
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = models.MaxCandidateTextLength
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{
		dates: extract.NewDateExtractor(),
		vocab: v,
		opts:  opts,
		log:   logger,
	}
}

// Parse reads a PDF statement and returns its transaction candidates. The
// only hard failure is an unreadable document; everything page- or row-level
// degrades to a skip.
func (p *Parser) Parse(r io.Reader) ([]models.TransactionCandidate, error) {
	pages, err := OpenPDF(r)
	if err != nil {
		return nil, err
	}
	return p.ParsePages(pages), nil
}

// ParsePages extracts candidates from already-materialized pages.
func (p *Parser) ParsePages(pages []Page) []models.TransactionCandidate {
	if p.opts.MaxPages > 0 && len(pages) > p.opts.MaxPages {
		pages = pages[:p.opts.MaxPages]
	}

	var candidates []models.TransactionCandidate
	for i, page := range pages {
		pageLog := p.log.WithField(logging.FieldPage, i+1)

		table := page.Table()
		if len(table) >= 2 {
			candidates = append(candidates, p.parseTable(table, pageLog)...)
			continue
		}

		pageLog.Debug("No table detected, falling back to text extraction")
		candidates = append(candidates, p.parseText(page.RawText(), pageLog)...)
	}

	p.log.WithField(logging.FieldCount, len(candidates)).Info("Statement parsed")
	return candidates
}

// columnLayout maps the semantic columns of a statement table to indices.
type columnLayout struct {
	date      int
	narration int
	debit     int
	credit    int
}

// resolveColumns inspects the header row for known column names. Substring
// matching, last occurrence wins. Each role missing from the header falls
// back to its conventional position (date/narration/debit/credit at 0/1/2/3)
// independently, so a header naming only some columns keeps the ones it
// names.
func resolveColumns(header []string) columnLayout {
	layout := columnLayout{date: -1, narration: -1, debit: -1, credit: -1}
	for i, cell := range header {
		lower := strings.ToLower(cell)
		switch {
		case strings.Contains(lower, "date"):
			layout.date = i
		case strings.Contains(lower, "narration"),
			strings.Contains(lower, "description"),
			strings.Contains(lower, "particulars"):
			layout.narration = i
		case strings.Contains(lower, "debit"):
			layout.debit = i
		case strings.Contains(lower, "credit"):
			layout.credit = i
		}
	}
	if layout.date < 0 {
		layout.date = 0
	}
	if layout.narration < 0 {
		layout.narration = 1
	}
	if layout.debit < 0 {
		layout.debit = 2
	}
	if layout.credit < 0 {
		layout.credit = 3
	}
	return layout
}

// parseTable walks the data rows of a detected table. Row order is preserved
// in the returned slice.
func (p *Parser) parseTable(table [][]string, pageLog logging.Logger) []models.TransactionCandidate {
	layout := resolveColumns(table[0])

	var candidates []models.TransactionCandidate
	for rowNum, row := range table[1:] {
		rowLog := pageLog.WithField(logging.FieldLine, rowNum+2)

		date, ok := p.rowDate(row, layout)
		if !ok {
			rowLog.WithField(logging.FieldReason, "no parseable date").Debug("Skipping table row")
			continue
		}

		narration := p.rowNarration(row, layout)
		if narration == "" {
			rowLog.WithField(logging.FieldReason, "empty narration").Debug("Skipping table row")
			continue
		}

		amount, txType, ok := rowAmount(row, layout)
		if !ok {
			rowLog.WithField(logging.FieldReason, "no debit or credit value").Debug("Skipping table row")
			continue
		}

		candidate := models.TransactionCandidate{
			Hash:   dedup.Hash(date, narration, amount),
			Date:   date,
			Amount: amount,
			Text:   truncate(narration, p.opts.MaxTextLength),
			Type:   txType,
		}
		if err := candidate.Validate(); err != nil {
			rowLog.WithError(err).Warn("Discarding invalid candidate")
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// rowDate extracts the ISO date for a table row. A non-empty date cell is
// authoritative: only that cell is tried. An empty or missing cell falls back
// to the joined row text, which covers layouts where the date landed in a
// merged cell.
func (p *Parser) rowDate(row []string, layout columnLayout) (string, bool) {
	if layout.date < len(row) {
		if cell := strings.TrimSpace(row[layout.date]); cell != "" {
			return p.dates.Extract(cell)
		}
	}
	return p.dates.Extract(strings.Join(row, " "))
}

// rowNarration returns the row's narrative text. A narration cell shorter
// than three runes is treated as truncated by the cell splitter, and the
// cells up to the debit column are rejoined.
func (p *Parser) rowNarration(row []string, layout columnLayout) string {
	var narration string
	if layout.narration < len(row) {
		narration = strings.TrimSpace(row[layout.narration])
	}
	if utf8.RuneCountInString(narration) < 3 {
		from, to := layout.narration, layout.debit
		if from < 0 || from >= len(row) {
			return narration
		}
		if to > len(row) || to <= from {
			to = len(row)
		}
		narration = strings.TrimSpace(strings.Join(row[from:to], " "))
	}
	return narration
}

// rowAmount reads the debit and credit cells. A debit that parses to a
// non-zero value marks the row an expense; otherwise a non-zero credit marks
// it income. A populated cell that is not strictly positive rejects the row:
// negative amounts are never propagated, not sign-flipped. Rows with neither
// cell populated carry no transaction.
func rowAmount(row []string, layout columnLayout) (decimal.Decimal, string, bool) {
	if layout.debit < len(row) {
		if amount, ok := extract.CleanAmount(row[layout.debit]); ok && !amount.IsZero() {
			if !amount.IsPositive() {
				return decimal.Zero, "", false
			}
			return amount, models.TypeExpense, true
		}
	}
	if layout.credit < len(row) {
		if amount, ok := extract.CleanAmount(row[layout.credit]); ok && !amount.IsZero() {
			if !amount.IsPositive() {
				return decimal.Zero, "", false
			}
			return amount, models.TypeIncome, true
		}
	}
	return decimal.Zero, "", false
}

// parseText is the line-by-line fallback for pages without a usable table.
func (p *Parser) parseText(text string, pageLog logging.Logger) []models.TransactionCandidate {
	var candidates []models.TransactionCandidate
	for lineNum, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineLog := pageLog.WithField(logging.FieldLine, lineNum+1)

		date, ok := p.dates.Extract(line)
		if !ok {
			continue
		}

		amount, ok := extract.ExtractFromLine(line, p.opts.AmountStrategy)
		if !ok || !amount.IsPositive() {
			lineLog.WithField(logging.FieldReason, "no amount token").Debug("Skipping statement line")
			continue
		}

		description := strings.TrimSpace(descStripPattern.ReplaceAllString(line, " "))
		description = strings.Join(strings.Fields(description), " ")
		if description == "" {
			description = line
		}

		txType := models.TypeIncome
		if keyword, ok := containsAny(line, p.vocab.ExpenseLineKeywords); ok {
			lineLog.WithField(logging.FieldKeyword, keyword).Debug("Expense keyword matched")
			txType = models.TypeExpense
		}

		candidate := models.TransactionCandidate{
			Hash:   dedup.Hash(date, description, amount),
			Date:   date,
			Amount: amount,
			Text:   truncate(description, p.opts.MaxTextLength),
			Type:   txType,
		}
		if err := candidate.Validate(); err != nil {
			lineLog.WithError(err).Warn("Discarding invalid candidate")
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// containsAny reports the first keyword appearing in the text,
// case-insensitively.
func containsAny(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// truncate cuts the text to at most max runes.
func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}
