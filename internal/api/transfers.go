package api

import (
	"context"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
)

// TransferParams carries the fields for creating or updating a transfer.
type TransferParams struct {
	FromAccountID string
	ToUserID      string
	Amount        float64
	Fee           float64
	Description   string
	Date          string // YYYY-MM-DD
	Notes         string
}

func (p TransferParams) payload() map[string]any {
	payload := map[string]any{
		"fromAccountId": p.FromAccountID,
		"toUserId":      p.ToUserID,
		"amount":        p.Amount,
		"description":   p.Description,
		"transferDate":  p.Date,
	}
	if p.Fee > 0 {
		payload["feeAmount"] = p.Fee
	}
	if p.Notes != "" {
		payload["notes"] = p.Notes
	}
	return payload
}

// Transfers fetches and normalizes the transfer history.
func (c *Client) Transfers(ctx context.Context) ([]model.Transfer, error) {
	decoded, err := c.get(ctx, "/transfers")
	if err != nil {
		return nil, err
	}
	return normalize.Transfers(envelope.Extract(decoded, "transfers")), nil
}

// CreateTransfer initiates a transfer to another user.
func (c *Client) CreateTransfer(ctx context.Context, params TransferParams) error {
	_, err := c.post(ctx, "/transfers", params.payload())
	return err
}

// UpdateTransfer updates a pending transfer.
func (c *Client) UpdateTransfer(ctx context.Context, id string, params TransferParams) error {
	_, err := c.put(ctx, "/transfers/"+id, params.payload())
	return err
}

// DeleteTransfer cancels a transfer.
func (c *Client) DeleteTransfer(ctx context.Context, id string) error {
	return c.delete(ctx, "/transfers/"+id)
}
