package model

import (
	"errors"
	"fmt"
	"time"
)

// Transfer represents money moved from one of the user's accounts to another
// account or user.
type Transfer struct {
	Date          time.Time `json:"date"`
	ID            string    `json:"id"`
	FromAccountID string    `json:"fromAccountId"`
	ToUserID      string    `json:"toUserId"`
	Description   string    `json:"description"`
	Notes         string    `json:"notes,omitempty"`
	Amount        float64   `json:"amount"`
	Fee           float64   `json:"feeAmount"`
}

// Transfer validation errors.
var (
	ErrSameAccount       = errors.New("source and destination accounts must be different")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Total returns the amount plus fee debited from the source account.
func (t Transfer) Total() float64 {
	return t.Amount + t.Fee
}

// Validate applies the client-side usability guard before submission. The
// backend remains the source of truth; this only catches the obvious cases
// early. available is the source account's current balance.
func (t Transfer) Validate(available float64) error {
	if t.FromAccountID != "" && t.FromAccountID == t.ToUserID {
		return ErrSameAccount
	}
	if t.Total() > available {
		return fmt.Errorf("%w: available balance %.2f, transfer total %.2f", ErrInsufficientFunds, available, t.Total())
	}
	return nil
}
