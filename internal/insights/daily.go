// Package insights derives read-only analytics from stored transactions:
// daily cash-flow summaries and income alerts. Nothing here mutates the
// transaction history.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintastic/extract/internal/models"
)

// CategorySpend is one category's aggregate within a summary window.
type CategorySpend struct {
	Category string          `json:"category" yaml:"category"`
	Total    decimal.Decimal `json:"total" yaml:"total"`
	Count    int             `json:"count" yaml:"count"`
}

// DailySummary aggregates a single day's transactions.
type DailySummary struct {
	Date           string          `json:"date" yaml:"date"`
	TotalIncome    decimal.Decimal `json:"totalIncome" yaml:"total_income"`
	TotalExpense   decimal.Decimal `json:"totalExpense" yaml:"total_expense"`
	NetFlow        decimal.Decimal `json:"netFlow" yaml:"net_flow"`
	IncomeCount    int             `json:"incomeCount" yaml:"income_count"`
	ExpenseCount   int             `json:"expenseCount" yaml:"expense_count"`
	AverageExpense decimal.Decimal `json:"averageExpense" yaml:"average_expense"`
	TopCategories  []CategorySpend `json:"topCategories" yaml:"top_categories"`
}

// topCategoryLimit bounds the category ranking in a daily summary.
const topCategoryLimit = 5

// SummarizeDay aggregates the transactions dated date (ISO form). Other dates
// in the slice are ignored, so callers can pass an unfiltered history.
func SummarizeDay(txs []models.Transaction, date string) DailySummary {
	summary := DailySummary{Date: date}
	byCategory := make(map[string]*CategorySpend)

	for _, tx := range txs {
		if tx.Date != date {
			continue
		}
		amount := tx.AbsAmount()
		switch tx.Type {
		case models.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(amount)
			summary.IncomeCount++
		case models.TypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(amount)
			summary.ExpenseCount++

			category := tx.Category
			if category == "" {
				category = "uncategorized"
			}
			spend, ok := byCategory[category]
			if !ok {
				spend = &CategorySpend{Category: category}
				byCategory[category] = spend
			}
			spend.Total = spend.Total.Add(amount)
			spend.Count++
		}
	}

	summary.NetFlow = summary.TotalIncome.Sub(summary.TotalExpense)
	if summary.ExpenseCount > 0 {
		summary.AverageExpense = summary.TotalExpense.
			Div(decimal.NewFromInt(int64(summary.ExpenseCount))).
			Round(2)
	}

	for _, spend := range byCategory {
		summary.TopCategories = append(summary.TopCategories, *spend)
	}
	sort.Slice(summary.TopCategories, func(i, j int) bool {
		a, b := summary.TopCategories[i], summary.TopCategories[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})
	if len(summary.TopCategories) > topCategoryLimit {
		summary.TopCategories = summary.TopCategories[:topCategoryLimit]
	}

	return summary
}
