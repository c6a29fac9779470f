package api

import (
	"context"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
)

// Users fetches the users available as transfer destinations.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	decoded, err := c.get(ctx, "/users")
	if err != nil {
		return nil, err
	}
	return normalize.Users(envelope.Extract(decoded, "users")), nil
}
