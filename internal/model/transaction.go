package model

import (
	"strings"
	"time"
)

// TransactionType indicates whether a transaction adds or removes money.
type TransactionType string

const (
	// TransactionTypeIncome represents money coming in.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense represents money going out.
	TransactionTypeExpense TransactionType = "expense"
	// TransactionTypeTransfer represents money moving between accounts.
	TransactionTypeTransfer TransactionType = "transfer"
)

// ParseTransactionType maps a raw backend type string (any casing) to a
// TransactionType. Unknown values default to expense, which is what the
// backend sends for the overwhelming majority of records.
func ParseTransactionType(raw string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "income":
		return TransactionTypeIncome
	case "transfer":
		return TransactionTypeTransfer
	default:
		return TransactionTypeExpense
	}
}

// Transaction represents a single financial transaction.
//
// Amount is stored unsigned; the sign for display and aggregation is derived
// from Type. A zero Date means the backend value could not be parsed as a
// calendar date; such transactions are excluded from date-windowed aggregates
// but still participate in totals that are not time-scoped.
type Transaction struct {
	Date         time.Time       `json:"date"`
	ID           string          `json:"id"`
	AccountID    string          `json:"accountId"`
	AccountName  string          `json:"accountName,omitempty"`
	CategoryID   string          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes,omitempty"`
	RawAmount    string          `json:"rawAmount,omitempty"`
	Amount       float64         `json:"amount"`
}

// SignedAmount returns the amount with the sign implied by the transaction
// type: positive for income, negative for expenses and transfers out.
func (t Transaction) SignedAmount() float64 {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return -t.Amount
}

// HasDate reports whether the transaction carries a parseable calendar date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// InMonth reports whether the transaction is dated in the same calendar month
// and year as ref. Undated transactions are never in any month.
func (t Transaction) InMonth(ref time.Time) bool {
	return t.HasDate() && t.Date.Month() == ref.Month() && t.Date.Year() == ref.Year()
}
