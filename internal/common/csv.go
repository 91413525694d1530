// Package common holds shared CSV reading and writing helpers used by the
// cobra commands.
package common

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteCandidatesToCSV writes candidates to path with the given delimiter.
// An empty candidate slice still produces a file, with headers only when
// includeHeaders is set.
func WriteCandidatesToCSV(candidates []models.TransactionCandidate, path string, delimiter rune, includeHeaders bool) error {
	f, err := os.Create(path) // #nosec G304 -- output path comes from the CLI user
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).WithField(logging.FieldFile, path).Warn("Error closing output file")
		}
	}()

	writer := csv.NewWriter(f)
	writer.Comma = delimiter
	safe := gocsv.NewSafeCSVWriter(writer)

	if includeHeaders {
		err = gocsv.MarshalCSV(&candidates, safe)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(&candidates, safe)
	}
	if err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	).Info("Candidates written")
	return nil
}

// ReadCandidatesCSV reads a candidate CSV previously written by this tool.
func ReadCandidatesCSV(path string, delimiter rune) ([]models.TransactionCandidate, error) {
	f, err := os.Open(path) // #nosec G304 -- input path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("error opening input file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).WithField(logging.FieldFile, path).Warn("Error closing input file")
		}
	}()

	reader := csv.NewReader(f)
	reader.Comma = delimiter

	var candidates []models.TransactionCandidate
	if err := gocsv.UnmarshalCSV(reader, &candidates); err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "candidate CSV (Hash,Date,Amount,Text,Type)",
			Msg:            err.Error(),
		}
	}
	return candidates, nil
}

// ReadTransactionsCSV reads categorized transactions exported by a budgeting
// app, the input to gig detection and insights.
func ReadTransactionsCSV(path string, delimiter rune) ([]models.Transaction, error) {
	f, err := os.Open(path) // #nosec G304 -- input path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("error opening input file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).WithField(logging.FieldFile, path).Warn("Error closing input file")
		}
	}()

	reader := csv.NewReader(f)
	reader.Comma = delimiter

	var txs []models.Transaction
	if err := gocsv.UnmarshalCSV(reader, &txs); err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "transaction CSV (Date,Type,Category,Note,Amount)",
			Msg:            err.Error(),
		}
	}
	return txs, nil
}
