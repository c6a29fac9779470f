// Package model defines the canonical entities the client works with after
// backend responses have been normalized.
package model

import "strings"

// AccountType classifies an account for display and asset/liability handling.
type AccountType string

const (
	// AccountTypeChecking is a standard checking account.
	AccountTypeChecking AccountType = "checking"
	// AccountTypeSavings is a savings account.
	AccountTypeSavings AccountType = "savings"
	// AccountTypeCredit is a credit card or similar liability account.
	AccountTypeCredit AccountType = "credit"
	// AccountTypeInvestment is a brokerage or retirement account.
	AccountTypeInvestment AccountType = "investment"
	// AccountTypeOther covers anything the backend reports that we don't know.
	AccountTypeOther AccountType = "other"
)

// ParseAccountType maps a raw backend type string to an AccountType.
// "credit card" and "credit" both map to AccountTypeCredit.
func ParseAccountType(raw string) AccountType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "checking":
		return AccountTypeChecking
	case "savings":
		return AccountTypeSavings
	case "credit", "credit card":
		return AccountTypeCredit
	case "investment":
		return AccountTypeInvestment
	default:
		return AccountTypeOther
	}
}

// Account represents a single financial account.
//
// Balance is always signed: a liability account that carries debt has a
// negative balance. IsAsset only affects how the balance is colored in the
// UI, never arithmetic.
type Account struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Balance     float64     `json:"balance"`
	RawBalance  string      `json:"rawBalance,omitempty"`
	IsAsset     bool        `json:"isAsset"`
	Number      string      `json:"accountNumber,omitempty"`
	Description string      `json:"description,omitempty"`
}

// IsAssetType reports whether accounts of the given type hold money owned
// rather than money owed.
func IsAssetType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment:
		return true
	default:
		return false
	}
}
