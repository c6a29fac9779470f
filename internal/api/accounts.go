package api

import (
	"context"
	"fmt"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
)

// AccountTypeOption is one entry of the backend's account-type list, used to
// populate the type choice when creating an account.
type AccountTypeOption struct {
	ID   string
	Name string
}

// CreateAccountParams carries the fields for a new account. Field names in
// the wire payload follow the backend's camelCase convention.
type CreateAccountParams struct {
	Name           string  `json:"accountName"`
	TypeID         string  `json:"accountTypeId"`
	InitialBalance float64 `json:"initialBalance"`
	Number         string  `json:"accountNumber,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// UpdateAccountParams carries the mutable fields of an account.
type UpdateAccountParams struct {
	Name        string `json:"accountName"`
	Description string `json:"description,omitempty"`
}

// Accounts fetches and normalizes all of the user's accounts.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	decoded, err := c.get(ctx, "/accounts")
	if err != nil {
		return nil, err
	}
	return normalize.Accounts(envelope.Extract(decoded, "accounts")), nil
}

// AccountTypes fetches the account types the backend accepts.
func (c *Client) AccountTypes(ctx context.Context) ([]AccountTypeOption, error) {
	decoded, err := c.get(ctx, "/accounts/types")
	if err != nil {
		return nil, err
	}

	records := envelope.Extract(decoded, "types")
	options := make([]AccountTypeOption, 0, len(records))
	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		normalized := normalize.Category(obj) // same id/name field shapes
		options = append(options, AccountTypeOption{ID: normalized.ID, Name: normalized.Name})
	}
	return options, nil
}

// CreateAccount creates a new account.
func (c *Client) CreateAccount(ctx context.Context, params CreateAccountParams) error {
	_, err := c.post(ctx, "/accounts", params)
	return err
}

// UpdateAccount updates an existing account's name and description.
func (c *Client) UpdateAccount(ctx context.Context, id string, params UpdateAccountParams) error {
	_, err := c.put(ctx, "/accounts/"+id, params)
	return err
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.delete(ctx, "/accounts/"+id)
}

// AccountBalance fetches the current balance for one account.
func (c *Client) AccountBalance(ctx context.Context, id string) (float64, error) {
	decoded, err := c.get(ctx, fmt.Sprintf("/accounts/%s/balance", id))
	if err != nil {
		return 0, err
	}
	payload := envelope.ExtractObject(decoded)
	if payload == nil {
		return 0, nil
	}
	return normalize.Account(payload).Balance, nil
}
