package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/report"
	"github.com/vijaysanthoshp/fintrack/internal/storage"
	"github.com/vijaysanthoshp/fintrack/internal/tui"
)

func dashboardCmd() *cobra.Command {
	var (
		offline     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the financial dashboard",
		Long: `Fetch accounts, transactions, and budgets, and render balance,
monthly totals, spending breakdown, trend, budget progress, and recent
activity. Use --tui for a live view with refresh, or --offline to render
from the last cached snapshot without touching the network.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cache, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			if offline {
				return runOfflineDashboard(ctx, cache)
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			fetch := func(ctx context.Context) (report.Summary, error) {
				data, err := fetchRemote(ctx, client)
				if err != nil {
					return report.Summary{}, err
				}
				saveSnapshot(ctx, cache, data)
				return data.summary(time.Now()), nil
			}

			if interactive {
				return tui.Run(ctx, tui.Config{Fetch: fetch})
			}

			summary, err := fetch(ctx)
			if err != nil {
				return err
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Render from the cached snapshot without fetching")
	cmd.Flags().BoolVar(&interactive, "tui", false, "Launch the interactive dashboard")

	return cmd
}

func runOfflineDashboard(ctx context.Context, cache *storage.Cache) error {
	accounts, err := cache.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	transactions, err := cache.LoadTransactions(ctx)
	if err != nil {
		return err
	}
	budgets, err := cache.LoadBudgets(ctx)
	if err != nil {
		return err
	}

	fetchedAt, err := cache.FetchedAt(ctx, storage.EntityAccounts)
	if err != nil {
		return err
	}
	if fetchedAt.IsZero() {
		fmt.Println(cli.InfoStyle.Render("No cached snapshot yet. Run 'fintrack dashboard' online first."))
		return nil
	}

	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Offline snapshot from %s", fetchedAt.Format("2006-01-02 15:04"))))
	printSummary(report.Build(accounts, transactions, budgets, time.Now()))
	return nil
}

func printSummary(summary report.Summary) {
	if summary.NewUser {
		content := fmt.Sprintf(`No accounts or transactions yet. Get started:

  %s  add your first account
  %s  record a transaction
  %s  set a spending budget`,
			cli.BoldStyle.Render("fintrack accounts create"),
			cli.BoldStyle.Render("fintrack transactions create"),
			cli.BoldStyle.Render("fintrack budgets create"))
		fmt.Println(cli.RenderBox("Welcome to Finance Tracker", content))
		return
	}

	fmt.Println(cli.RenderBox(cli.MoneyIcon+" Overview", overviewLines(summary)))

	if len(summary.Budgets) > 0 {
		var lines []string
		for _, s := range summary.Budgets {
			lines = append(lines, renderBudgetLine(s))
		}
		fmt.Println(cli.RenderBox("Budgets", strings.Join(lines, "\n")))
	}

	if len(summary.Categories) > 0 {
		fmt.Println(cli.RenderBox(cli.ChartIcon+" Spending by Category", breakdownLines(summary.Categories)))
	}

	if len(summary.Trend) > 0 {
		fmt.Println(cli.RenderBox("6-Month Spending", trendLines(summary.Trend)))
	}

	if len(summary.Recent) > 0 {
		var lines []string
		for _, tx := range summary.Recent {
			date := "          "
			if tx.HasDate() {
				date = tx.Date.Format("2006-01-02")
			}
			lines = append(lines, fmt.Sprintf("%s  %-28s %s",
				cli.SubtleStyle.Render(date), tx.Description, cli.FormatMoney(tx.SignedAmount())))
		}
		fmt.Println(cli.RenderBox("Recent Transactions", strings.Join(lines, "\n")))
	}

	for _, alert := range report.Alerts(summary.Budgets) {
		if alert.OverBudget {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%q is over budget by $%.2f", alert.Budget.Name, -alert.Budget.Remaining())))
		} else {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%q has used %.0f%% of its limit", alert.Budget.Name, alert.PercentUsed)))
		}
	}
}

func overviewLines(summary report.Summary) string {
	net := summary.Monthly.Net()
	return strings.Join([]string{
		fmt.Sprintf("%-18s %s", "Total Balance", cli.FormatMoney(summary.TotalBalance)),
		fmt.Sprintf("%-18s %s", "Monthly Income", cli.SuccessStyle.Render(fmt.Sprintf("$%.2f", summary.Monthly.Income))),
		fmt.Sprintf("%-18s %s", "Monthly Expenses", cli.ErrorStyle.Render(fmt.Sprintf("$%.2f", summary.Monthly.Expenses))),
		fmt.Sprintf("%-18s %s", "Available Budget", cli.FormatMoney(net)),
	}, "\n")
}

func breakdownLines(slices []report.CategorySlice) string {
	var total float64
	for _, s := range slices {
		total += s.Amount
	}

	var lines []string
	for _, s := range slices {
		share := 0.0
		if total > 0 {
			share = s.Amount / total * 100
		}
		swatch := cli.ColorSwatch(s.Color)
		lines = append(lines, fmt.Sprintf("%s %-20s $%.2f (%.0f%%)", swatch, s.Name, s.Amount, share))
	}
	return strings.Join(lines, "\n")
}

func trendLines(points []report.TrendPoint) string {
	const barWidth = 20

	var peak float64
	for _, p := range points {
		if p.Amount > peak {
			peak = p.Amount
		}
	}

	var lines []string
	for _, p := range points {
		filled := 0
		if peak > 0 {
			filled = int(p.Amount / peak * barWidth)
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		lines = append(lines, fmt.Sprintf("%s %s $%.2f", cli.BoldStyle.Render(p.Label()), bar, p.Amount))
	}
	return strings.Join(lines, "\n")
}
