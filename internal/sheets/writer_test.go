package sheets

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/report"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:     "test-client",
				ClientSecret: "test-secret",
				RefreshToken: "test-token",
				BatchSize:    100,
			},
			wantErr: false,
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: false,
		},
		{
			name: "missing auth",
			config: Config{
				BatchSize: 100,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:     "test-client",
				RefreshToken: "test-token",
				BatchSize:    100,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "zero batch size",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrepareReportData(t *testing.T) {
	w := &Writer{
		config: DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	summary := report.Summary{
		GeneratedAt:  now,
		TotalBalance: 1500,
		Monthly:      report.MonthlySummary{Income: 3000, Expenses: 1200},
		Categories: []report.CategorySlice{
			{Name: "Groceries", Amount: 800, Color: "#FF6B6B"},
		},
		Trend: []report.TrendPoint{
			{Month: time.July, Year: 2026, Amount: 900},
			{Month: time.August, Year: 2026, Amount: 1200},
		},
		Budgets: []report.BudgetStatus{
			{
				Budget:      model.Budget{Name: "Food", Limit: 600, Spent: 450},
				PercentUsed: 75,
				Severity:    report.SeverityWarn,
			},
		},
		Recent: []model.Transaction{
			{
				Description:  "Market run",
				Amount:       42.10,
				Type:         model.TransactionTypeExpense,
				CategoryName: "Groceries",
				AccountName:  "Everyday Checking",
				Date:         time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	values := w.prepareReportData(summary)
	require.NotEmpty(t, values)

	assert.Equal(t, []any{"Finance Tracker Dashboard", "Aug 31, 2026"}, values[0])
	assert.Contains(t, values, []any{"Total Balance", 1500.0})
	assert.Contains(t, values, []any{"Available Budget", 1800.0})
	assert.Contains(t, values, []any{"Groceries", "", 800.0})
	assert.Contains(t, values, []any{"Jul 2026", "", 900.0})
	assert.Contains(t, values, []any{"Food", "75%", 600.0})

	// Expenses are exported signed
	assert.Contains(t, values, []any{"2026-08-10", "Market run", -42.10, "Groceries", "Everyday Checking"})
}

func TestPrepareReportDataUndatedTransaction(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}

	summary := report.Summary{
		GeneratedAt: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Recent: []model.Transaction{
			{Description: "Mystery charge", Amount: 10, Type: model.TransactionTypeExpense},
		},
	}

	values := w.prepareReportData(summary)
	assert.Contains(t, values, []any{"", "Mystery charge", -10.0, "", ""})
}
