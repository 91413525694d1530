// Package batch handles batch processing of statement directories
package batch

import (
	"github.com/spf13/cobra"

	"fintastic/extract/cmd/root"
	"fintastic/extract/internal/common"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every statement PDF in a directory into one CSV",
	Long: `Parse all statement PDFs in a directory, merge their candidates and write one
deduplicated CSV. Files that cannot be read are skipped with a warning; the
rest of the batch still completes.

Example:
  fintastic-extract batch -i statements/ -o candidates.csv`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputFile := root.SharedFlags.Output
	root.Log.Infof("Input directory: %s", inputDir)
	root.Log.Infof("Output file: %s", outputFile)

	if inputDir == "" || outputFile == "" {
		root.Log.Fatal("Input directory and output file must be specified")
	}

	candidates, err := root.GetContainer().GetProcessor().ProcessDirectory(inputDir)
	if err != nil {
		root.Log.Fatalf("Error during batch processing: %v", err)
	}

	if err := common.WriteCandidatesToCSV(candidates, outputFile, root.Delimiter(), root.IncludeHeaders()); err != nil {
		root.Log.Fatalf("Error writing candidates: %v", err)
	}
	root.Log.Infof("Batch processing completed successfully! %d unique candidates.", len(candidates))
}
