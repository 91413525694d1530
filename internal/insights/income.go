package insights

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fintastic/extract/internal/models"
)

// Alert is one income observation worth surfacing to the user.
type Alert struct {
	Level   string `json:"level" yaml:"level"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
}

// Thresholds for the income alert heuristics, as fractions of the historical
// average.
var (
	routineBand    = decimal.NewFromFloat(0.10)
	bonusThreshold = decimal.NewFromFloat(1.30)
	dropThreshold  = decimal.NewFromFloat(0.70)
)

// EvaluateIncome inspects a newly recorded income transaction against the
// prior history and active goals, and returns zero or more alerts. A deposit
// within 10% of the historical average is routine and produces nothing on its
// own.
func EvaluateIncome(tx models.Transaction, history []models.Transaction, goals []models.Goal) []Alert {
	var alerts []Alert
	amount := tx.AbsAmount()

	avg, sources := incomeProfile(history)

	if tx.Category != "" && !sources[strings.ToLower(tx.Category)] {
		alerts = append(alerts, Alert{
			Level:   models.AlertLevelPositive,
			Title:   "New income source",
			Message: fmt.Sprintf("First income recorded from %q", tx.Category),
		})
	}

	if avg.IsPositive() {
		ratio := amount.Div(avg)
		diff := ratio.Sub(decimal.NewFromInt(1)).Abs()
		switch {
		case diff.LessThanOrEqual(routineBand):
			// Routine deposit, nothing to say.
		case ratio.GreaterThanOrEqual(bonusThreshold):
			alerts = append(alerts, Alert{
				Level:   models.AlertLevelPositive,
				Title:   "Higher than usual income",
				Message: fmt.Sprintf("Received %s, %s%% of your average income", amount.StringFixed(2), ratio.Mul(decimal.NewFromInt(100)).Round(0)),
			})
		case ratio.LessThanOrEqual(dropThreshold):
			alerts = append(alerts, Alert{
				Level:   models.AlertLevelHigh,
				Title:   "Income drop",
				Message: fmt.Sprintf("Received %s, well below your average of %s", amount.StringFixed(2), avg.StringFixed(2)),
			})
		}
	}

	for _, goal := range goals {
		if goal.Remaining().IsPositive() && goal.CurrentAmount.Add(amount).GreaterThanOrEqual(goal.TargetAmount) {
			alerts = append(alerts, Alert{
				Level:   models.AlertLevelPositive,
				Title:   "Goal within reach",
				Message: fmt.Sprintf("This income completes your %q goal", goal.Name),
			})
		}
	}

	return alerts
}

// RiskScore condenses a set of alerts into a single level for callers that
// want one headline: any high alert dominates, positives alone read as
// positive, and an empty set is low.
func RiskScore(alerts []Alert) string {
	level := models.AlertLevelLow
	for _, a := range alerts {
		switch a.Level {
		case models.AlertLevelHigh:
			return models.AlertLevelHigh
		case models.AlertLevelPositive:
			level = models.AlertLevelPositive
		}
	}
	return level
}

// incomeProfile computes the average income amount and the set of lower-cased
// income categories seen in the history.
func incomeProfile(history []models.Transaction) (decimal.Decimal, map[string]bool) {
	sources := make(map[string]bool)
	var (
		total decimal.Decimal
		count int64
	)
	for _, tx := range history {
		if tx.Type != models.TypeIncome {
			continue
		}
		total = total.Add(tx.AbsAmount())
		count++
		if tx.Category != "" {
			sources[strings.ToLower(tx.Category)] = true
		}
	}
	if count == 0 {
		return decimal.Zero, sources
	}
	return total.Div(decimal.NewFromInt(count)), sources
}
