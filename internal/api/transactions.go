package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
)

// TransactionParams carries the fields for creating or updating a
// transaction. The backend wants the type upper-cased and the amount
// unsigned; Payload takes care of both.
type TransactionParams struct {
	AccountID   string
	CategoryID  string
	Type        model.TransactionType
	Amount      float64
	Description string
	Date        string // YYYY-MM-DD
	Notes       string
}

// Payload converts the params to the backend's wire shape.
func (p TransactionParams) Payload() map[string]any {
	amount := p.Amount
	if amount < 0 {
		amount = -amount
	}
	payload := map[string]any{
		"accountId":       p.AccountID,
		"categoryId":      p.CategoryID,
		"transactionType": strings.ToUpper(string(p.Type)),
		"amount":          amount,
		"description":     p.Description,
		"transactionDate": p.Date,
	}
	if p.Notes != "" {
		payload["notes"] = p.Notes
	}
	return payload
}

// Transactions fetches and normalizes all transactions, resolving account
// and category references against lookups.
func (c *Client) Transactions(ctx context.Context, lookups normalize.Lookups) ([]model.Transaction, error) {
	decoded, err := c.get(ctx, "/transactions")
	if err != nil {
		return nil, err
	}
	return normalize.Transactions(envelope.Extract(decoded, "transactions"), lookups), nil
}

// SearchTransactions runs a server-side search.
func (c *Client) SearchTransactions(ctx context.Context, query string, lookups normalize.Lookups) ([]model.Transaction, error) {
	decoded, err := c.get(ctx, "/transactions/search?query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	return normalize.Transactions(envelope.Extract(decoded, "transactions"), lookups), nil
}

// Categories fetches the transaction categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	decoded, err := c.get(ctx, "/transactions/categories")
	if err != nil {
		return nil, err
	}
	return normalize.Categories(envelope.Extract(decoded, "categories")), nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, params TransactionParams) error {
	_, err := c.post(ctx, "/transactions", params.Payload())
	return err
}

// UpdateTransaction updates an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, params TransactionParams) error {
	_, err := c.put(ctx, "/transactions/"+id, params.Payload())
	return err
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.delete(ctx, "/transactions/"+id)
}
