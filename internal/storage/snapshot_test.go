package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestOpenCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "snapshot.db")
	cache, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, cache.Close())
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestAccountsRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	accounts := []model.Account{
		{ID: "a1", Name: "Everyday Checking", Type: model.AccountTypeChecking, Balance: 1200.50, IsAsset: true},
		{ID: "a2", Name: "Travel Card", Type: model.AccountTypeCredit, Balance: -350, RawBalance: "-350", IsAsset: false},
	}
	fetchedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, cache.SaveAccounts(ctx, accounts, fetchedAt))

	got, err := cache.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// loaded in name order
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, model.AccountTypeChecking, got[0].Type)
	assert.InDelta(t, 1200.50, got[0].Balance, 0.001)
	assert.Equal(t, "a2", got[1].ID)
	assert.False(t, got[1].IsAsset)
	assert.InDelta(t, -350.0, got[1].Balance, 0.001)

	stamp, err := cache.FetchedAt(ctx, EntityAccounts)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(fetchedAt))
}

func TestSaveAccountsReplacesWholesale(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveAccounts(ctx, []model.Account{
		{ID: "a1", Name: "Old Checking", Type: model.AccountTypeChecking},
		{ID: "a2", Name: "Old Savings", Type: model.AccountTypeSavings},
	}, time.Now()))

	require.NoError(t, cache.SaveAccounts(ctx, []model.Account{
		{ID: "a3", Name: "New Checking", Type: model.AccountTypeChecking},
	}, time.Now()))

	got, err := cache.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a3", got[0].ID)
}

func TestTransactionsRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	transactions := []model.Transaction{
		{
			ID:           "t1",
			AccountID:    "a1",
			AccountName:  "Everyday Checking",
			CategoryName: "Groceries",
			Type:         model.TransactionTypeExpense,
			Description:  "Market run",
			Amount:       42.10,
			Date:         time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "t2",
			AccountName:  model.UnknownAccountName,
			CategoryName: model.UncategorizedName,
			Type:         model.TransactionTypeIncome,
			Amount:       2500,
			Date:         time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, cache.SaveTransactions(ctx, transactions, time.Now()))

	got, err := cache.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest first
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, model.TransactionTypeIncome, got[0].Type)
	assert.Equal(t, "t1", got[1].ID)
	assert.Equal(t, "Groceries", got[1].CategoryName)
	assert.True(t, got[1].HasDate())
}

func TestTransactionWithoutDateSurvives(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveTransactions(ctx, []model.Transaction{
		{ID: "t1", AccountName: "X", CategoryName: "Y", Type: model.TransactionTypeExpense, Amount: 5},
	}, time.Now()))

	got, err := cache.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].HasDate())
}

func TestBudgetsRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	budgets := []model.Budget{
		{
			ID:        "b1",
			Name:      "Food",
			Limit:     600,
			Spent:     450,
			StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{ID: "b2", Name: "Fun", Limit: 200, Spent: 10},
	}
	require.NoError(t, cache.SaveBudgets(ctx, budgets, time.Now()))

	got, err := cache.LoadBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.InDelta(t, 600.0, got[0].Limit, 0.001)
	assert.False(t, got[0].StartDate.IsZero())
	assert.True(t, got[1].StartDate.IsZero(), "missing dates stay zero")
}

func TestFetchedAtUnknownEntity(t *testing.T) {
	cache := newTestCache(t)

	stamp, err := cache.FetchedAt(context.Background(), EntityBudgets)
	require.NoError(t, err)
	assert.True(t, stamp.IsZero())
}

func TestEmptySnapshotOverwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveBudgets(ctx, []model.Budget{{ID: "b1", Name: "Food", Limit: 100}}, time.Now()))
	require.NoError(t, cache.SaveBudgets(ctx, nil, time.Now()))

	got, err := cache.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	cache, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, cache.SaveAccounts(ctx, []model.Account{
		{ID: "a1", Name: "Checking", Type: model.AccountTypeChecking, Balance: 10},
	}, time.Now()))
	require.NoError(t, cache.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}
