// Package statement handles single statement conversion
package statement

import (
	"os"

	"github.com/spf13/cobra"

	"fintastic/extract/cmd/root"
	"fintastic/extract/internal/common"
)

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Convert a bank statement PDF to a candidate CSV",
	Long: `Parse a bank statement PDF into transaction candidates and write them as CSV.

Tabular pages are read column-wise; pages without a detectable table fall back
to line-by-line text extraction.

Example:
  fintastic-extract statement -i statement.pdf -o candidates.csv`,
	Run: statementFunc,
}

func statementFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Statement command called")

	inputFile := root.SharedFlags.Input
	outputFile := root.SharedFlags.Output
	root.Log.Infof("Input file: %s", inputFile)
	root.Log.Infof("Output file: %s", outputFile)

	if inputFile == "" || outputFile == "" {
		root.Log.Fatal("Input and output files must be specified")
	}

	f, err := os.Open(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		root.Log.Fatalf("Error opening statement: %v", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			root.Log.Warnf("Error closing statement file: %v", cerr)
		}
	}()

	candidates, err := root.GetContainer().GetParser().Parse(f)
	if err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}

	if err := common.WriteCandidatesToCSV(candidates, outputFile, root.Delimiter(), root.IncludeHeaders()); err != nil {
		root.Log.Fatalf("Error writing candidates: %v", err)
	}
	root.Log.Infof("Statement conversion completed successfully! Extracted %d candidates.", len(candidates))
}
