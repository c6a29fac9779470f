package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vijaysanthoshp/fintrack/internal/api"
	"github.com/vijaysanthoshp/fintrack/internal/common"
	"github.com/vijaysanthoshp/fintrack/internal/config"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
	"github.com/vijaysanthoshp/fintrack/internal/report"
	"github.com/vijaysanthoshp/fintrack/internal/session"
	"github.com/vijaysanthoshp/fintrack/internal/storage"
)

// openSession loads the persisted session, anonymous when none exists.
func openSession() (*session.Store, *session.Session, error) {
	path := config.ExpandPath(viper.GetString("session.path"))
	store, err := session.NewStore(path)
	if err != nil {
		return nil, nil, err
	}

	sess, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, sess, nil
}

// newClient builds an API client for the given session from config.
func newClient(sess *session.Session) *api.Client {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8000/api/v1"
	}
	return api.NewClient(baseURL, viper.GetDuration("api.timeout"), sess)
}

// newAuthedClient wires up a client backed by the stored session and fails
// early when no one is logged in. A 401 from the backend invalidates the
// session, which clears the stored state so the next command starts clean.
func newAuthedClient() (*api.Client, *session.Store, error) {
	store, sess, err := openSession()
	if err != nil {
		return nil, nil, err
	}

	if !sess.Authenticated() {
		return nil, nil, common.NewUserError("Not logged in. Run 'fintrack login' first.", common.ErrNotAuthenticated)
	}

	sess.OnInvalidate(func() {
		if clearErr := store.Clear(); clearErr != nil {
			slog.Warn("Failed to clear stored session", "error", clearErr)
		}
	})

	return newClient(sess), store, nil
}

// openCache opens the local snapshot cache, creating it on first use.
func openCache() (*storage.Cache, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/fintrack/fintrack.db"
	}
	return storage.Open(config.ExpandPath(dbPath))
}

// loadLookups fetches the reference data transactions resolve against.
func loadLookups(ctx context.Context, client *api.Client) (normalize.Lookups, error) {
	accounts, err := client.Accounts(ctx)
	if err != nil {
		return normalize.Lookups{}, err
	}
	categories, err := client.Categories(ctx)
	if err != nil {
		return normalize.Lookups{}, err
	}
	return normalize.NewLookups(accounts, categories), nil
}

// remoteData bundles one consistent fetch of everything the dashboard needs.
type remoteData struct {
	accounts     []model.Account
	transactions []model.Transaction
	budgets      []model.Budget
}

// fetchRemote pulls accounts, transactions, and budgets in one pass. The
// account list doubles as the lookup source for transaction normalization.
func fetchRemote(ctx context.Context, client *api.Client) (remoteData, error) {
	accounts, err := client.Accounts(ctx)
	if err != nil {
		return remoteData{}, err
	}
	categories, err := client.Categories(ctx)
	if err != nil {
		return remoteData{}, err
	}
	transactions, err := client.Transactions(ctx, normalize.NewLookups(accounts, categories))
	if err != nil {
		return remoteData{}, err
	}
	budgets, err := client.Budgets(ctx)
	if err != nil {
		return remoteData{}, err
	}
	return remoteData{accounts: accounts, transactions: transactions, budgets: budgets}, nil
}

// summary runs the aggregation pipeline over the fetched data.
func (d remoteData) summary(now time.Time) report.Summary {
	return report.Build(d.accounts, d.transactions, d.budgets, now)
}

// saveSnapshot persists the fetched data as the new last-good snapshot.
// Failures only warn; the cache is never authoritative.
func saveSnapshot(ctx context.Context, cache *storage.Cache, d remoteData) {
	now := time.Now()
	if err := cache.SaveAccounts(ctx, d.accounts, now); err != nil {
		slog.Warn("Failed to cache accounts", "error", err)
	}
	if err := cache.SaveTransactions(ctx, d.transactions, now); err != nil {
		slog.Warn("Failed to cache transactions", "error", err)
	}
	if err := cache.SaveBudgets(ctx, d.budgets, now); err != nil {
		slog.Warn("Failed to cache budgets", "error", err)
	}
}

// todayStamp returns today's date in the backend's wire format.
func todayStamp() string {
	return time.Now().Format("2006-01-02")
}

// confirm prompts for a yes/no answer on stdin. Anything other than y/yes
// counts as no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
