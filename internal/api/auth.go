package api

import (
	"context"
	"fmt"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
)

// Credentials carries a login request. UsernameOrEmail matches the backend's
// field of the same name.
type Credentials struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// Registration carries a register request.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Login authenticates and establishes the session on success.
func (c *Client) Login(ctx context.Context, creds Credentials) (model.User, error) {
	decoded, err := c.post(ctx, "/auth/login", creds)
	if err != nil {
		return model.User{}, err
	}
	return c.establishFrom(decoded, "login")
}

// Register creates a new user and establishes the session on success.
func (c *Client) Register(ctx context.Context, reg Registration) (model.User, error) {
	decoded, err := c.post(ctx, "/auth/register", reg)
	if err != nil {
		return model.User{}, err
	}
	return c.establishFrom(decoded, "register")
}

// Verify asks the backend whether the current token is still good and
// returns the user it belongs to.
func (c *Client) Verify(ctx context.Context) (model.User, error) {
	decoded, err := c.get(ctx, "/auth/verify")
	if err != nil {
		return model.User{}, err
	}
	payload := envelope.ExtractObject(decoded)
	if userObj, ok := payload["user"].(map[string]any); ok {
		return normalize.User(userObj), nil
	}
	return normalize.User(payload), nil
}

// Refresh exchanges the current token for a fresh one.
func (c *Client) Refresh(ctx context.Context) (model.User, error) {
	decoded, err := c.post(ctx, "/auth/refresh", nil)
	if err != nil {
		return model.User{}, err
	}
	return c.establishFrom(decoded, "refresh")
}

// Logout tells the backend to revoke the token, then invalidates the
// session locally regardless of what the backend said.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "/auth/logout", nil)
	c.session.Invalidate()
	return err
}

// establishFrom pulls {user, token} out of an auth response payload and
// stores them in the session.
func (c *Client) establishFrom(decoded any, op string) (model.User, error) {
	payload := envelope.ExtractObject(decoded)
	token, _ := payload["token"].(string)
	if token == "" {
		return model.User{}, fmt.Errorf("%s response carried no token", op)
	}

	var user model.User
	if userObj, ok := payload["user"].(map[string]any); ok {
		user = normalize.User(userObj)
	}

	c.session.Establish(token, user)
	return user, nil
}
