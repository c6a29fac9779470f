package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/report"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	summary, ok := m.resource.Data()
	if !ok {
		return m.renderLoading()
	}

	var sections []string

	if m.lastError != nil {
		sections = append(sections, cli.FormatWarning(
			"Refresh failed, showing last loaded data: "+m.lastError.Error()))
	}

	if summary.NewUser {
		sections = append(sections, m.renderOnboarding())
	} else {
		sections = append(sections,
			m.renderOverview(summary),
			m.renderBudgets(summary),
			m.renderBreakdown(summary),
			m.renderTrend(summary),
			m.renderRecent(summary),
		)
	}

	sections = append(sections, m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		cli.TitleStyle.Render("Loading your dashboard..."),
		"",
		m.spinner.View(),
	)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderOnboarding() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		"Welcome! You don't have any accounts or transactions yet.",
		"",
		"Get started:",
		"  fintrack accounts create --name \"Checking\" --type checking",
		"  fintrack tx create --account <id> --amount 12.50 --description \"Lunch\"",
	)
	return cli.RenderBox("Welcome to Finance Tracker", content)
}

func (m Model) renderOverview(summary report.Summary) string {
	rows := []string{
		fmt.Sprintf("%-18s %s", "Total Balance", cli.FormatMoney(summary.TotalBalance)),
		fmt.Sprintf("%-18s %s", "Monthly Income", cli.FormatMoney(summary.Monthly.Income)),
		fmt.Sprintf("%-18s %s", "Monthly Expenses", cli.FormatMoney(-summary.Monthly.Expenses)),
		fmt.Sprintf("%-18s %s", "Available Budget", cli.FormatMoney(summary.Monthly.Net())),
	}
	return cli.RenderBox("Overview", strings.Join(rows, "\n"))
}

func (m Model) renderBudgets(summary report.Summary) string {
	if len(summary.Budgets) == 0 {
		return cli.RenderBox("Budgets", cli.SubtleStyle.Render("No budgets yet."))
	}

	var rows []string
	for _, status := range summary.Budgets {
		bar := m.bar.ViewAs(status.PercentUsed / 100)
		label := fmt.Sprintf("%-14s %3.0f%%", status.Budget.Name, status.PercentUsed)
		switch status.Severity {
		case report.SeverityCritical:
			label = cli.StyleError(label)
		case report.SeverityWarn:
			label = cli.StyleWarning(label)
		default:
			label = cli.StyleSuccess(label)
		}
		rows = append(rows, label+" "+bar)
		if status.OverBudget {
			rows = append(rows, cli.FormatWarning(fmt.Sprintf(
				"%s is over budget by %s",
				status.Budget.Name, cli.FormatMoney(status.Budget.Spent-status.Budget.Limit))))
		}
	}
	return cli.RenderBox("Budgets", strings.Join(rows, "\n"))
}

func (m Model) renderBreakdown(summary report.Summary) string {
	if len(summary.Categories) == 0 {
		return cli.RenderBox("Top Spending", cli.SubtleStyle.Render("No expenses recorded."))
	}

	var rows []string
	for _, slice := range summary.Categories {
		rows = append(rows, fmt.Sprintf("%s %-16s $%.2f", cli.ColorSwatch(slice.Color), slice.Name, slice.Amount))
	}
	return cli.RenderBox("Top Spending", strings.Join(rows, "\n"))
}

func (m Model) renderTrend(summary report.Summary) string {
	if len(summary.Trend) == 0 {
		return ""
	}

	peak := 0.0
	for _, point := range summary.Trend {
		if point.Amount > peak {
			peak = point.Amount
		}
	}

	const barWidth = 24
	var rows []string
	for _, point := range summary.Trend {
		filled := 0
		if peak > 0 {
			filled = int(point.Amount / peak * barWidth)
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		rows = append(rows, fmt.Sprintf("%s %s $%.2f",
			cli.SubtleStyle.Render(point.Label()),
			lipgloss.NewStyle().Foreground(cli.PrimaryColor).Render(bar),
			point.Amount))
	}
	return cli.RenderBox("Spending Trend", strings.Join(rows, "\n"))
}

func (m Model) renderRecent(summary report.Summary) string {
	if len(summary.Recent) == 0 {
		return cli.RenderBox("Recent Transactions", cli.SubtleStyle.Render("No transactions yet."))
	}

	var rows []string
	for _, tx := range summary.Recent {
		date := "          "
		if tx.HasDate() {
			date = tx.Date.Format("2006-01-02")
		}
		rows = append(rows, fmt.Sprintf("%s  %-24s %10s  %s",
			cli.SubtleStyle.Render(date),
			truncate(tx.Description, 24),
			cli.FormatMoney(tx.SignedAmount()),
			cli.SubtleStyle.Render(tx.CategoryName)))
	}
	return cli.RenderBox("Recent Transactions", strings.Join(rows, "\n"))
}

func (m Model) renderStatusLine() string {
	if m.resource.Loading() {
		return m.spinner.View() + cli.SubtleStyle.Render(" refreshing...")
	}
	return cli.SubtleStyle.Render("r refresh · q quit")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
