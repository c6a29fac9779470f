package report

import (
	"time"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// trendMonths is the fixed length of the spending trend series.
const trendMonths = 6

// TrendPoint is one month's total expense spending.
type TrendPoint struct {
	Month  time.Month
	Year   int
	Amount float64
}

// Label returns the short month name for chart axes.
func (p TrendPoint) Label() string {
	return p.Month.String()[:3]
}

// SpendingTrend builds the six-month expense series ending at now's calendar
// month, oldest first. Every bucket exists even when empty, so the series
// always has exactly six points. Expense transactions dated outside the
// window, or with no parseable date, are ignored.
func SpendingTrend(transactions []model.Transaction, now time.Time) []TrendPoint {
	// Anchor at the first of the month so subtracting months never
	// normalizes across a boundary (e.g. July 31 minus five months).
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]TrendPoint, trendMonths)
	for i := 0; i < trendMonths; i++ {
		m := anchor.AddDate(0, i-(trendMonths-1), 0)
		points[i] = TrendPoint{Month: m.Month(), Year: m.Year()}
	}

	for _, tx := range transactions {
		if tx.Type != model.TransactionTypeExpense || !tx.HasDate() {
			continue
		}
		for i := range points {
			if tx.Date.Month() == points[i].Month && tx.Date.Year() == points[i].Year {
				points[i].Amount += tx.Amount
				break
			}
		}
	}
	return points
}
