// Package email handles classification of exported notification emails
package email

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"fintastic/extract/cmd/root"
	"fintastic/extract/internal/email"
	"fintastic/extract/internal/models"
)

// Cmd represents the email command
var Cmd = &cobra.Command{
	Use:   "email",
	Short: "Classify exported bank notification emails",
	Long: `Classify a JSON export of emails into transactions.

The input is a JSON array of messages with "id", "subject" and "body" fields.
Emails without an extractable amount, or with an amount but no transaction
wording, are dropped. The output is a JSON array of classified transactions.

Example:
  fintastic-extract email -i messages.json -o transactions.json`,
	Run: emailFunc,
}

func emailFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Email command called")

	inputFile := root.SharedFlags.Input
	outputFile := root.SharedFlags.Output
	root.Log.Infof("Input file: %s", inputFile)
	root.Log.Infof("Output file: %s", outputFile)

	if inputFile == "" || outputFile == "" {
		root.Log.Fatal("Input and output files must be specified")
	}

	data, err := os.ReadFile(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		root.Log.Fatalf("Error reading messages file: %v", err)
	}

	var messages []email.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		root.Log.Fatalf("Error parsing messages file: %v", err)
	}

	transactions := root.GetContainer().GetClassifier().ClassifyAll(messages)
	if transactions == nil {
		transactions = []models.EmailTransaction{}
	}

	out, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error marshaling transactions: %v", err)
	}
	if err := os.WriteFile(outputFile, out, models.PermissionReportFile); err != nil {
		root.Log.Fatalf("Error writing output file: %v", err)
	}
	root.Log.Infof("Email classification completed successfully! %d of %d emails were transactions.", len(transactions), len(messages))
}
