package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// Snapshot entity names recorded in snapshot_meta.
const (
	EntityAccounts     = "accounts"
	EntityTransactions = "transactions"
	EntityBudgets      = "budgets"
)

// SaveAccounts replaces the cached account snapshot wholesale.
func (c *Cache) SaveAccounts(ctx context.Context, accounts []model.Account, fetchedAt time.Time) error {
	return c.replace(ctx, EntityAccounts, fetchedAt, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO accounts (id, name, type, balance, raw_balance, is_asset, number, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, a := range accounts {
			if _, err := stmt.ExecContext(ctx,
				a.ID, a.Name, string(a.Type), a.Balance, a.RawBalance, a.IsAsset, a.Number, a.Description); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadAccounts returns the cached account snapshot.
func (c *Cache) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, type, balance, raw_balance, is_asset, number, description
		FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var accountType string
		if err := rows.Scan(&a.ID, &a.Name, &accountType, &a.Balance, &a.RawBalance, &a.IsAsset, &a.Number, &a.Description); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Type = model.AccountType(accountType)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SaveTransactions replaces the cached transaction snapshot wholesale.
func (c *Cache) SaveTransactions(ctx context.Context, transactions []model.Transaction, fetchedAt time.Time) error {
	return c.replace(ctx, EntityTransactions, fetchedAt, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO transactions (id, account_id, account_name, category_id, category_name,
				type, description, notes, amount, raw_amount, date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, t := range transactions {
			var date any
			if t.HasDate() {
				date = t.Date
			}
			if _, err := stmt.ExecContext(ctx,
				t.ID, t.AccountID, t.AccountName, t.CategoryID, t.CategoryName,
				string(t.Type), t.Description, t.Notes, t.Amount, t.RawAmount, date); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadTransactions returns the cached transaction snapshot, newest first.
func (c *Cache) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, account_id, account_name, category_id, category_name,
			type, description, notes, amount, raw_amount, date
		FROM transactions ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var transactionType string
		var date sql.NullTime
		if err := rows.Scan(&t.ID, &t.AccountID, &t.AccountName, &t.CategoryID, &t.CategoryName,
			&transactionType, &t.Description, &t.Notes, &t.Amount, &t.RawAmount, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = model.TransactionType(transactionType)
		if date.Valid {
			t.Date = date.Time
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// SaveBudgets replaces the cached budget snapshot wholesale.
func (c *Cache) SaveBudgets(ctx context.Context, budgets []model.Budget, fetchedAt time.Time) error {
	return c.replace(ctx, EntityBudgets, fetchedAt, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO budgets (id, name, notes, limit_amount, spent, start_date, end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, b := range budgets {
			if _, err := stmt.ExecContext(ctx,
				b.ID, b.Name, b.Notes, b.Limit, b.Spent, nullTime(b.StartDate), nullTime(b.EndDate)); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadBudgets returns the cached budget snapshot.
func (c *Cache) LoadBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, notes, limit_amount, spent, start_date, end_date
		FROM budgets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var start, end sql.NullTime
		if err := rows.Scan(&b.ID, &b.Name, &b.Notes, &b.Limit, &b.Spent, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		if start.Valid {
			b.StartDate = start.Time
		}
		if end.Valid {
			b.EndDate = end.Time
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// FetchedAt returns when the named entity snapshot was last written, or the
// zero time if it never was.
func (c *Cache) FetchedAt(ctx context.Context, entity string) (time.Time, error) {
	var fetchedAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM snapshot_meta WHERE entity = ?`, entity).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query snapshot meta: %w", err)
	}
	return fetchedAt, nil
}

// replace runs fn and the snapshot_meta bookkeeping in one transaction, so a
// failed write leaves the previous snapshot untouched.
func (c *Cache) replace(ctx context.Context, entity string, fetchedAt time.Time, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to replace %s snapshot: %w", entity, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (entity, fetched_at) VALUES (?, ?)
		ON CONFLICT(entity) DO UPDATE SET fetched_at = excluded.fetched_at`,
		entity, fetchedAt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record snapshot time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s snapshot: %w", entity, err)
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
