// Package report computes the derived aggregates the dashboard displays.
// Every calculator is a pure function over normalized collections: nothing is
// mutated, nothing errors, and recomputing on every render is safe. Missing
// or malformed inputs degrade to zero or empty values.
package report

import (
	"time"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// TotalBalance sums the signed balances of all accounts. Liabilities carry
// their stored sign; there is no special-casing.
func TotalBalance(accounts []model.Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

// MonthlySummary holds the income and expense totals for one calendar month.
type MonthlySummary struct {
	Income   float64
	Expenses float64
}

// Net returns income minus expenses, the "available budget" figure.
func (m MonthlySummary) Net() float64 {
	return m.Income - m.Expenses
}

// Monthly computes income and expense totals over transactions dated in the
// same calendar month and year as now. Undated transactions never contribute.
// Sums use absolute amounts; the sign convention lives in the type.
func Monthly(transactions []model.Transaction, now time.Time) MonthlySummary {
	var summary MonthlySummary
	for _, tx := range transactions {
		if !tx.InMonth(now) {
			continue
		}
		switch tx.Type {
		case model.TransactionTypeIncome:
			summary.Income += tx.Amount
		case model.TransactionTypeExpense:
			summary.Expenses += tx.Amount
		}
	}
	return summary
}

// IsNewUser reports whether the user has neither accounts nor transactions
// after normalization. The dashboard switches to an onboarding state rather
// than an empty-data state when this is true.
func IsNewUser(accounts []model.Account, transactions []model.Transaction) bool {
	return len(accounts) == 0 && len(transactions) == 0
}

// Recent returns up to n transactions from the head of the collection, which
// the backend orders newest first.
func Recent(transactions []model.Transaction, n int) []model.Transaction {
	if n <= 0 || len(transactions) == 0 {
		return nil
	}
	if n > len(transactions) {
		n = len(transactions)
	}
	out := make([]model.Transaction, n)
	copy(out, transactions[:n])
	return out
}

// Summary bundles every dashboard aggregate for one render pass.
type Summary struct {
	GeneratedAt  time.Time
	Recent       []model.Transaction
	Categories   []CategorySlice
	Trend        []TrendPoint
	Budgets      []BudgetStatus
	Monthly      MonthlySummary
	TotalBalance float64
	NewUser      bool
}

// Build runs the full aggregation pipeline over normalized collections.
func Build(accounts []model.Account, transactions []model.Transaction, budgets []model.Budget, now time.Time) Summary {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, Progress(b, now))
	}
	return Summary{
		GeneratedAt:  now,
		TotalBalance: TotalBalance(accounts),
		Monthly:      Monthly(transactions, now),
		Categories:   CategoryBreakdown(transactions),
		Trend:        SpendingTrend(transactions, now),
		Budgets:      statuses,
		Recent:       Recent(transactions, 5),
		NewUser:      IsNewUser(accounts, transactions),
	}
}
