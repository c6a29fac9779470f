package model

import "time"

// Budget represents a spending budget over a date range. Budget periods may
// overlap freely; there is no uniqueness constraint across budgets.
type Budget struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	Limit     float64   `json:"totalLimit"`
	Spent     float64   `json:"totalSpent"`
}

// PercentUsed returns spent/limit as a percentage. A limit of zero or less
// yields 0 rather than NaN or Inf.
func (b Budget) PercentUsed() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return b.Spent / b.Limit * 100
}

// OverBudget reports whether spending has exceeded the limit.
func (b Budget) OverBudget() bool {
	return b.Spent > b.Limit
}

// Remaining returns the unspent portion of the limit; negative when over.
func (b Budget) Remaining() float64 {
	return b.Limit - b.Spent
}

// Active reports whether now falls within the budget's period, inclusive on
// both ends.
func (b Budget) Active(now time.Time) bool {
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return false
	}
	day := now.Truncate(24 * time.Hour)
	return !day.Before(b.StartDate.Truncate(24*time.Hour)) && !day.After(b.EndDate.Truncate(24*time.Hour))
}
