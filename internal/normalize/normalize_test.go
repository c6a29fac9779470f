package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

func TestAccountFieldSynonyms(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want model.Account
	}{
		{
			name: "snake_case backend shape",
			raw: map[string]any{
				"account_id":      float64(7),
				"account_name":    "Everyday Checking",
				"account_type":    "CHECKING",
				"current_balance": "1200.50",
			},
			want: model.Account{
				ID:      "7",
				Name:    "Everyday Checking",
				Type:    model.AccountTypeChecking,
				Balance: 1200.50,
				IsAsset: true,
			},
		},
		{
			name: "camelCase backend shape",
			raw: map[string]any{
				"accountId":   "acc-1",
				"accountName": "Travel Card",
				"accountType": "credit card",
				"balance":     float64(-320.25),
			},
			want: model.Account{
				ID:      "acc-1",
				Name:    "Travel Card",
				Type:    model.AccountTypeCredit,
				Balance: -320.25,
				IsAsset: false,
			},
		},
		{
			name: "explicit asset flag wins over type",
			raw: map[string]any{
				"id":       "x",
				"name":     "Weird",
				"type":     "credit",
				"balance":  float64(10),
				"is_asset": true,
			},
			want: model.Account{
				ID:      "x",
				Name:    "Weird",
				Type:    model.AccountTypeCredit,
				Balance: 10,
				IsAsset: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Account(tt.raw))
		})
	}
}

func TestAccountUnparsableBalance(t *testing.T) {
	got := Account(map[string]any{
		"id":      "1",
		"name":    "Broken",
		"type":    "savings",
		"balance": "N/A",
	})
	assert.Zero(t, got.Balance)
	assert.Equal(t, "N/A", got.RawBalance)
}

func TestTransactionNormalization(t *testing.T) {
	lookups := NewLookups(
		[]model.Account{{ID: "9", Name: "Everyday Checking"}},
		[]model.Category{{ID: "3", Name: "Groceries", Type: model.CategoryTypeExpense}},
	)

	tx := Transaction(map[string]any{
		"transaction_id":   float64(42),
		"account_id":       float64(9),
		"category_id":      float64(3),
		"transaction_type": "EXPENSE",
		"amount":           "-85.50",
		"transaction_date": "2026-08-14",
		"description":      "Grocery Shopping",
	}, lookups)

	assert.Equal(t, "42", tx.ID)
	assert.Equal(t, model.TransactionTypeExpense, tx.Type)
	assert.Equal(t, 85.50, tx.Amount, "amount is stored unsigned")
	assert.Equal(t, -85.50, tx.SignedAmount())
	assert.Equal(t, "Groceries", tx.CategoryName)
	assert.Equal(t, "Everyday Checking", tx.AccountName)
	assert.True(t, tx.InMonth(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, tx.InMonth(time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC)))
}

func TestTransactionPlaceholders(t *testing.T) {
	tx := Transaction(map[string]any{
		"id":     "1",
		"type":   "expense",
		"amount": float64(5),
	}, Lookups{})
	assert.Equal(t, model.UncategorizedName, tx.CategoryName)
	assert.Equal(t, model.UnknownAccountName, tx.AccountName)
}

func TestTransactionInlineCategoryShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"category_name field", map[string]any{"category_name": "Dining"}, "Dining"},
		{"plain category string", map[string]any{"category": "Fuel"}, "Fuel"},
		{"embedded category object", map[string]any{"category": map[string]any{"name": "Rent"}}, "Rent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transaction(tt.raw, Lookups{}).CategoryName)
		})
	}
}

func TestTransactionInvalidDateKeptOutOfWindow(t *testing.T) {
	tx := Transaction(map[string]any{
		"id":     "1",
		"type":   "expense",
		"amount": float64(12),
		"date":   "not-a-date",
	}, Lookups{})
	// The record survives normalization but never matches a month window.
	assert.False(t, tx.HasDate())
	assert.False(t, tx.InMonth(time.Now()))
	assert.Equal(t, 12.0, tx.Amount)
}

func TestBudgetNormalization(t *testing.T) {
	b := Budget(map[string]any{
		"budget_id":   float64(5),
		"budget_name": "Monthly Food",
		"start_date":  "2026-08-01",
		"end_date":    "2026-08-31",
		"total_limit": float64(300),
		"total_spent": "120.75",
	})
	assert.Equal(t, "5", b.ID)
	assert.Equal(t, "Monthly Food", b.Name)
	assert.Equal(t, 300.0, b.Limit)
	assert.Equal(t, 120.75, b.Spent)
	assert.True(t, b.Active(time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, b.Active(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBudgetMissingSpentDefaultsToZero(t *testing.T) {
	b := Budget(map[string]any{"id": "1", "name": "Sparse", "totalLimit": float64(100)})
	assert.Zero(t, b.Spent)
	assert.Zero(t, b.PercentUsed())
	assert.False(t, b.OverBudget())
}

func TestTransferNormalization(t *testing.T) {
	tr := Transfer(map[string]any{
		"transfer_id": "t-1",
		"fromAccount": map[string]any{"id": float64(2)},
		"toAccount":   map[string]any{"id": float64(4)},
		"amount":      float64(50),
		"fee_amount":  "1.25",
		"date":        "2026-08-20",
		"description": "Rent share",
	})
	assert.Equal(t, "2", tr.FromAccountID)
	assert.Equal(t, "4", tr.ToUserID)
	assert.Equal(t, 51.25, tr.Total())
}

func TestSkipsNonObjectRecords(t *testing.T) {
	records := []any{"garbage", float64(3), map[string]any{"id": "1", "name": "Real"}}
	assert.Len(t, Accounts(records), 1)
	assert.Len(t, Categories(records), 1)
	assert.Len(t, Budgets(records), 1)
	assert.Len(t, Transfers(records), 1)
	assert.Len(t, Users(records), 1)
	assert.Len(t, Transactions(records, Lookups{}), 1)
}

// Normalizing the canonical encoding of an already-normalized record must be
// a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	roundTrip := func(t *testing.T, v any) map[string]any {
		t.Helper()
		data, err := json.Marshal(v)
		require.NoError(t, err)
		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		return raw
	}

	t.Run("account", func(t *testing.T) {
		first := Account(map[string]any{
			"account_id":      "11",
			"account_name":    "Savings",
			"account_type":    "savings",
			"current_balance": "999.99",
		})
		assert.Equal(t, first, Account(roundTrip(t, first)))
	})

	t.Run("transaction", func(t *testing.T) {
		first := Transaction(map[string]any{
			"transaction_id":   "t9",
			"account_id":       "11",
			"transaction_type": "INCOME",
			"amount":           float64(3200),
			"transaction_date": "2026-08-01",
			"description":      "Salary Deposit",
		}, Lookups{})
		assert.Equal(t, first, Transaction(roundTrip(t, first), Lookups{}))
	})

	t.Run("transaction with unparsable amount", func(t *testing.T) {
		first := Transaction(map[string]any{
			"id":     "t10",
			"type":   "expense",
			"amount": "twelve",
		}, Lookups{})
		require.Equal(t, "twelve", first.RawAmount)
		assert.Equal(t, first, Transaction(roundTrip(t, first), Lookups{}))
	})

	t.Run("budget", func(t *testing.T) {
		first := Budget(map[string]any{
			"budget_name": "Quarterly Travel",
			"id":          "b2",
			"start_date":  "2026-07-01",
			"end_date":    "2026-09-30",
			"total_limit": float64(1200),
			"total_spent": float64(450),
		})
		assert.Equal(t, first, Budget(roundTrip(t, first)))
	})

	t.Run("transfer", func(t *testing.T) {
		first := Transfer(map[string]any{
			"transfer_id":     "tr1",
			"from_account_id": "2",
			"to_user_id":      "8",
			"amount":          float64(75),
			"transfer_date":   "2026-08-10",
			"description":     "Shared bill",
		})
		assert.Equal(t, first, Transfer(roundTrip(t, first)))
	})
}
