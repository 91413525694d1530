// Package statement converts bank-statement documents into transaction
// candidates. A document is a sequence of pages; each page exposes either a
// detected table of cells or its raw text, and the parser picks the richer
// path per page.
package statement

// Page is one page of a statement document.
type Page interface {
	// Table returns the page's rows-of-cells when a table was detected,
	// header row first. It returns nil when the page has no usable table and
	// the text-fallback path should run instead.
	Table() [][]string

	// RawText returns the page's extracted text, one statement line per
	// newline-separated row.
	RawText() string
}

// MemoryPage is an in-memory Page used by tests and by sources that already
// have structured rows (CSV exports, pre-extracted tables).
type MemoryPage struct {
	Rows [][]string
	Text string
}

// Table returns the in-memory rows.
func (p MemoryPage) Table() [][]string { return p.Rows }

// RawText returns the in-memory text.
func (p MemoryPage) RawText() string { return p.Text }
