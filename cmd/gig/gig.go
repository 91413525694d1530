// Package gig handles gig-worker analysis of categorized transactions
package gig

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fintastic/extract/cmd/root"
	"fintastic/extract/internal/common"
	"fintastic/extract/internal/gig"
	"fintastic/extract/internal/insights"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/report"
)

var (
	occupation    string
	monthlyIncome string
	summaryDate   string
)

// Cmd represents the gig command
var Cmd = &cobra.Command{
	Use:   "gig",
	Short: "Detect gig income in a transaction history",
	Long: `Scan a categorized transaction CSV for gig income and write a YAML report.

Income transactions whose category or note mention freelance, contract or
similar wording are counted as gig income. An occupation string is checked
against the same vocabulary. With --date the report also carries that day's
cash-flow summary and income alerts.

Example:
  fintastic-extract gig -i transactions.csv -o report.yaml --occupation "freelance designer"`,
	Run: gigFunc,
}

func init() {
	Cmd.Flags().StringVar(&occupation, "occupation", "", "Self-reported occupation to check against the gig vocabulary")
	Cmd.Flags().StringVar(&monthlyIncome, "monthly-income", "", "Declared monthly income, for the gig share percentage")
	Cmd.Flags().StringVar(&summaryDate, "date", "", "Add a daily summary for this date (YYYY-MM-DD) to the report")
}

func gigFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Gig command called")

	inputFile := root.SharedFlags.Input
	outputFile := root.SharedFlags.Output
	root.Log.Infof("Input file: %s", inputFile)

	if inputFile == "" {
		root.Log.Fatal("Input transactions file must be specified")
	}

	transactions, err := common.ReadTransactionsCSV(inputFile, root.Delimiter())
	if err != nil {
		root.Log.Fatalf("Error reading transactions: %v", err)
	}

	result := root.GetContainer().GetDetector().Detect(transactions, occupation)
	root.Log.Infof("Gig worker: %t (%d gig transactions, total %s)",
		result.IsGigWorker, result.GigTransactions, result.GigIncome.StringFixed(2))

	if monthlyIncome != "" {
		income, err := decimal.NewFromString(monthlyIncome)
		if err != nil {
			root.Log.Fatalf("Invalid monthly income %q: %v", monthlyIncome, err)
		}
		if share, ok := gig.GigPercentage(result.GigIncome, income); ok {
			root.Log.Infof("Gig income share: %s%% of monthly income", share.Round(1))
		} else {
			root.Log.Warn("Monthly income must be positive to compute the gig share")
		}
	}

	if outputFile == "" {
		return
	}

	rep := report.New()
	rep.Gig = &result
	if summaryDate != "" {
		rep.Daily = append(rep.Daily, insights.SummarizeDay(transactions, summaryDate))
		if latest, ok := latestIncomeOn(transactions, summaryDate); ok {
			rep.Alerts = insights.EvaluateIncome(latest, transactions, nil)
			root.Log.Infof("Income alert level for %s: %s", summaryDate, insights.RiskScore(rep.Alerts))
		}
	}
	if err := rep.Write(outputFile, root.GetLogger()); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
	root.Log.Infof("Report written to %s", outputFile)
}

// latestIncomeOn returns the last income transaction dated date.
func latestIncomeOn(txs []models.Transaction, date string) (models.Transaction, bool) {
	for i := len(txs) - 1; i >= 0; i-- {
		if txs[i].Date == date && txs[i].Type == models.TypeIncome {
			return txs[i], true
		}
	}
	return models.Transaction{}, false
}
