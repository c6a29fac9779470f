package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewUserError("Could not reach the server", inner)

	assert.Equal(t, "Could not reach the server: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Could not reach the server", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("Nothing to import", nil)
	assert.Equal(t, "Nothing to import", err.Error())
}

func TestFormatUserError(t *testing.T) {
	wrapped := fmt.Errorf("command failed: %w", NewUserError("Please login first", ErrNotAuthenticated))
	assert.Equal(t, "Please login first", FormatUserError(wrapped))

	plain := errors.New("plain failure")
	assert.Equal(t, "plain failure", FormatUserError(plain))
}
