// Package batch processes whole directories of statement documents and
// merges their candidates into one deduplicated stream.
package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/statement"
)

// Merge combines candidate slices into one, dropping hash duplicates. The
// first occurrence of a hash wins; output is ordered by date, then hash, so
// repeated runs over the same inputs produce identical files.
func Merge(batches ...[]models.TransactionCandidate) []models.TransactionCandidate {
	seen := make(map[string]bool)
	var merged []models.TransactionCandidate
	for _, batch := range batches {
		for _, c := range batch {
			if seen[c.Hash] {
				continue
			}
			seen[c.Hash] = true
			merged = append(merged, c)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Date != merged[j].Date {
			return merged[i].Date < merged[j].Date
		}
		return merged[i].Hash < merged[j].Hash
	})
	return merged
}

// Processor runs the statement parser over every PDF in a directory. One
// unreadable file is logged and skipped; the batch carries on.
type Processor struct {
	parser *statement.Parser
	log    logging.Logger
}

// NewProcessor creates a Processor around an existing parser.
func NewProcessor(parser *statement.Parser, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Processor{parser: parser, log: logger}
}

// ProcessDirectory parses every .pdf file directly under dir and returns the
// merged, deduplicated candidates. The error is non-nil only when the
// directory itself cannot be read.
func (p *Processor) ProcessDirectory(dir string) ([]models.TransactionCandidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var batches [][]models.TransactionCandidate
	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fileLog := p.log.WithField(logging.FieldFile, path)

		candidates, err := p.processFile(path)
		if err != nil {
			fileLog.WithError(err).Warn("Skipping unreadable statement")
			continue
		}
		fileLog.WithField(logging.FieldCount, len(candidates)).Info("Statement processed")
		batches = append(batches, candidates)
		processed++
	}

	merged := Merge(batches...)
	p.log.WithFields(
		logging.Field{Key: "files", Value: processed},
		logging.Field{Key: logging.FieldCount, Value: len(merged)},
	).Info("Batch complete")
	return merged, nil
}

func (p *Processor) processFile(path string) ([]models.TransactionCandidate, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the scanned directory
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.log.WithError(cerr).WithField(logging.FieldFile, path).Warn("Error closing file")
		}
	}()
	return p.parser.Parse(f)
}
