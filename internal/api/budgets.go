package api

import (
	"context"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
)

// BudgetParams carries the fields for creating or updating a budget.
type BudgetParams struct {
	Name       string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	Limit      float64
	Notes      string
	Categories []string
}

func (p BudgetParams) payload() map[string]any {
	payload := map[string]any{
		"budgetName": p.Name,
		"startDate":  p.StartDate,
		"endDate":    p.EndDate,
		"totalLimit": p.Limit,
	}
	if p.Notes != "" {
		payload["notes"] = p.Notes
	}
	if len(p.Categories) > 0 {
		payload["categories"] = p.Categories
	}
	return payload
}

// Budgets fetches and normalizes all budgets.
func (c *Client) Budgets(ctx context.Context) ([]model.Budget, error) {
	decoded, err := c.get(ctx, "/budgets")
	if err != nil {
		return nil, err
	}
	return normalize.Budgets(envelope.Extract(decoded, "budgets")), nil
}

// CreateBudget creates a new budget.
func (c *Client) CreateBudget(ctx context.Context, params BudgetParams) error {
	_, err := c.post(ctx, "/budgets", params.payload())
	return err
}

// UpdateBudget updates an existing budget.
func (c *Client) UpdateBudget(ctx context.Context, id string, params BudgetParams) error {
	_, err := c.put(ctx, "/budgets/"+id, params.payload())
	return err
}

// DeleteBudget removes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.delete(ctx, "/budgets/"+id)
}
