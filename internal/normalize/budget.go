package normalize

import "github.com/vijaysanthoshp/fintrack/internal/model"

// Budget normalizes a single raw budget record. Spent defaults to 0 when the
// backend omits it; the derived percent/over-budget values live on the model.
func Budget(raw map[string]any) model.Budget {
	limit, _ := pickNumber(raw, "total_limit", "totalLimit", "limit")
	spent, _ := pickNumber(raw, "total_spent", "totalSpent", "spent")
	if limit < 0 {
		limit = -limit
	}
	if spent < 0 {
		spent = -spent
	}
	return model.Budget{
		ID:        pickString(raw, "budget_id", "budgetId", "id"),
		Name:      pickString(raw, "budget_name", "budgetName", "name"),
		StartDate: pickDate(raw, "start_date", "startDate"),
		EndDate:   pickDate(raw, "end_date", "endDate"),
		Limit:     limit,
		Spent:     spent,
		Notes:     pickString(raw, "notes"),
	}
}

// Budgets normalizes a list of extracted budget records.
func Budgets(records []any) []model.Budget {
	budgets := make([]model.Budget, 0, len(records))
	for _, rec := range records {
		raw, ok := asRecord(rec)
		if !ok {
			continue
		}
		budgets = append(budgets, Budget(raw))
	}
	return budgets
}
