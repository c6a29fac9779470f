package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// expectedSchemaVersion is the latest schema version the application expects.
const expectedSchemaVersion = 1

type migration struct {
	up          func(*sql.Tx) error
	description string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "Initial snapshot schema",
		up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					balance REAL NOT NULL,
					raw_balance TEXT,
					is_asset INTEGER NOT NULL DEFAULT 1,
					number TEXT,
					description TEXT
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					account_id TEXT,
					account_name TEXT NOT NULL,
					category_id TEXT,
					category_name TEXT NOT NULL,
					type TEXT NOT NULL,
					description TEXT,
					notes TEXT,
					amount REAL NOT NULL,
					raw_amount TEXT,
					date DATETIME
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,

				`CREATE TABLE IF NOT EXISTS budgets (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					notes TEXT,
					limit_amount REAL NOT NULL,
					spent REAL NOT NULL,
					start_date DATETIME,
					end_date DATETIME
				)`,

				`CREATE TABLE IF NOT EXISTS snapshot_meta (
					entity TEXT PRIMARY KEY,
					fetched_at DATETIME NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

func (c *Cache) migrate() error {
	var currentVersion int
	if err := c.db.QueryRow("PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := c.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := m.up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		slog.Info("Applied migration",
			"version", m.version,
			"description", m.description)
	}

	var finalVersion int
	if err := c.db.QueryRow("PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != expectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", expectedSchemaVersion, finalVersion)
	}
	return nil
}
