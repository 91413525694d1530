// Package ingest handles idempotent loading of candidates into the store
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fintastic/extract/cmd/root"
	"fintastic/extract/internal/common"
	"fintastic/extract/internal/models"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a statement PDF or candidate CSV into the local store",
	Long: `Insert candidates into the SQLite store configured by store.path. A .pdf
input is parsed first; anything else is read as a candidate CSV.

Ingestion is idempotent: candidates whose hash is already stored are skipped,
so the same statement can be re-processed without creating duplicates.

Example:
  fintastic-extract ingest -i statement.pdf
  fintastic-extract ingest -i candidates.csv`,
	Run: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Ingest command called")

	inputFile := root.SharedFlags.Input
	root.Log.Infof("Input file: %s", inputFile)

	if inputFile == "" {
		root.Log.Fatal("Input file must be specified")
	}

	candidates, err := readCandidates(inputFile)
	if err != nil {
		root.Log.Fatalf("Error reading candidates: %v", err)
	}

	db, err := root.GetContainer().OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			root.Log.Warnf("Error closing store: %v", cerr)
		}
	}()

	result, err := db.Ingest(context.Background(), candidates)
	if err != nil {
		root.Log.Fatalf("Error ingesting candidates: %v", err)
	}

	total, err := db.Count(context.Background())
	if err != nil {
		root.Log.Fatalf("Error counting candidates: %v", err)
	}
	root.Log.Infof("Ingestion completed successfully! Batch %s: %d inserted, %d duplicates skipped, %d total stored.",
		result.BatchID, result.Inserted, result.Skipped, total)
}

func readCandidates(path string) ([]models.TransactionCandidate, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return common.ReadCandidatesCSV(path, root.Delimiter())
	}

	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			root.Log.Warnf("Error closing statement file: %v", cerr)
		}
	}()
	return root.GetContainer().GetParser().Parse(f)
}
