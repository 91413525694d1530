package statement

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"fintastic/extract/internal/parsererror"
)

// cellGap is the horizontal gap, in PDF points, that separates two text runs
// into different table cells.
const cellGap = 15.0

// pdfPage holds the reconstructed content of one PDF page.
type pdfPage struct {
	rows [][]string
	text string
}

func (p *pdfPage) Table() [][]string { return p.rows }
func (p *pdfPage) RawText() string   { return p.text }

// OpenPDF reads a PDF byte stream and reconstructs its pages. Corrupt or
// empty input is the one hard failure of the statement pipeline and returns
// an UnreadableDocumentError; a single bad page only loses that page.
func OpenPDF(r io.Reader) ([]Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.UnreadableDocumentError{Source: "pdf", Err: err}
	}
	if len(data) == 0 {
		return nil, &parsererror.UnreadableDocumentError{Source: "pdf", Err: fmt.Errorf("empty document")}
	}

	reader, err := openReader(data)
	if err != nil {
		return nil, &parsererror.UnreadableDocumentError{Source: "pdf", Err: err}
	}

	var pages []Page
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if p := buildPage(page); p != nil {
			pages = append(pages, p)
		}
	}

	if len(pages) == 0 {
		return nil, &parsererror.UnreadableDocumentError{Source: "pdf", Err: fmt.Errorf("no readable pages")}
	}
	return pages, nil
}

// openReader wraps pdf.NewReader; the library panics on some malformed
// documents, which must surface as an ordinary error.
func openReader(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader crashed: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// buildPage reconstructs rows of cells from the page's positioned text. Text
// runs are grouped into lines by Y coordinate, ordered left to right, and
// split into cells wherever a horizontal gap exceeds cellGap. Returns nil for
// pages with no text at all.
func buildPage(page pdf.Page) *pdfPage {
	defer func() {
		// A torn content stream on one page must not abort the document.
		_ = recover()
	}()

	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	type run struct {
		x float64
		s string
	}
	lineMap := make(map[int][]run)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		lineMap[yKey] = append(lineMap[yKey], run{x: t.X, s: t.S})
	}

	yKeys := make([]int, 0, len(lineMap))
	for y := range lineMap {
		yKeys = append(yKeys, y)
	}
	// PDF Y grows bottom-to-top
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var (
		rows  [][]string
		lines []string
	)
	for _, y := range yKeys {
		runs := lineMap[y]
		sort.Slice(runs, func(a, b int) bool { return runs[a].x < runs[b].x })

		var (
			cells []string
			cell  strings.Builder
			prevX float64
		)
		for i, r := range runs {
			if i > 0 && r.x-prevX > cellGap {
				if s := strings.TrimSpace(cell.String()); s != "" {
					cells = append(cells, s)
				}
				cell.Reset()
			}
			cell.WriteString(r.s)
			prevX = r.x
		}
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, cells)
		lines = append(lines, strings.Join(cells, " "))
	}

	if len(rows) == 0 {
		return nil
	}

	p := &pdfPage{text: strings.Join(lines, "\n")}
	if looksTabular(rows) {
		p.rows = rows
	}
	return p
}

// looksTabular reports whether the reconstructed rows form a usable table:
// at least two rows with three or more cells each. Anything less goes through
// the text-fallback path, which copes with free-form layouts.
func looksTabular(rows [][]string) bool {
	wide := 0
	for _, row := range rows {
		if len(row) >= 3 {
			wide++
		}
	}
	return wide >= 2
}
