package report

import (
	"time"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// Severity tiers drive progress bar coloring only; nothing is ever blocked
// because a budget is over.
type Severity int

const (
	// SeverityOK means spending is comfortably under the limit.
	SeverityOK Severity = iota
	// SeverityWarn means 75% or more of the limit is used.
	SeverityWarn
	// SeverityCritical means 90% or more of the limit is used, or the
	// budget is over its limit outright.
	SeverityCritical
)

// BudgetStatus is the display-ready progress of one budget.
type BudgetStatus struct {
	Budget      model.Budget
	PercentUsed float64
	Severity    Severity
	OverBudget  bool
	Active      bool
}

// Progress derives the display state for one budget. PercentUsed is 0, never
// NaN or Inf, when the limit is zero or negative.
func Progress(b model.Budget, now time.Time) BudgetStatus {
	percent := b.PercentUsed()
	severity := SeverityOK
	switch {
	case percent >= 90 || b.OverBudget():
		severity = SeverityCritical
	case percent >= 75:
		severity = SeverityWarn
	}
	return BudgetStatus{
		Budget:      b,
		PercentUsed: percent,
		Severity:    severity,
		OverBudget:  b.OverBudget(),
		Active:      b.Active(now),
	}
}

// Alerts returns the active budgets that deserve a notification on load:
// over-budget first, then those past 90% of their limit. This mirrors the
// toasts the web dashboard raised.
func Alerts(statuses []BudgetStatus) []BudgetStatus {
	var alerts []BudgetStatus
	for _, s := range statuses {
		if !s.Active {
			continue
		}
		if s.OverBudget || s.PercentUsed >= 90 {
			alerts = append(alerts, s)
		}
	}
	return alerts
}
