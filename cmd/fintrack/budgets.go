package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vijaysanthoshp/fintrack/internal/api"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/report"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage spending budgets",
		Long:  `List, create, update, and delete budgets, with progress toward each limit.`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(createBudgetCmd())
	cmd.AddCommand(updateBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			budgets, err := client.Budgets(ctx)
			if err != nil {
				return err
			}

			if len(budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets found. Use 'fintrack budgets create' to add one."))
				return nil
			}

			now := time.Now()
			statuses := make([]report.BudgetStatus, 0, len(budgets))
			for _, b := range budgets {
				statuses = append(statuses, report.Progress(b, now))
			}

			for _, s := range statuses {
				fmt.Println(renderBudgetLine(s))
			}

			for _, alert := range report.Alerts(statuses) {
				if alert.OverBudget {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("%q is over budget by $%.2f", alert.Budget.Name, -alert.Budget.Remaining())))
				} else {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("%q has used %.0f%% of its limit", alert.Budget.Name, alert.PercentUsed)))
				}
			}
			return nil
		},
	}
}

// renderBudgetLine renders one budget as a fixed-width text bar colored by
// severity.
func renderBudgetLine(s report.BudgetStatus) string {
	const barWidth = 24

	filled := int(s.PercentUsed / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	switch s.Severity {
	case report.SeverityCritical:
		bar = cli.ErrorStyle.Render(bar)
	case report.SeverityWarn:
		bar = cli.WarningStyle.Render(bar)
	default:
		bar = cli.SuccessStyle.Render(bar)
	}

	label := fmt.Sprintf("%-20s", s.Budget.Name)
	amounts := fmt.Sprintf("$%.2f / $%.2f (%.0f%%)", s.Budget.Spent, s.Budget.Limit, s.PercentUsed)
	if !s.Active {
		amounts += " " + cli.SubtleStyle.Render("inactive")
	}
	return fmt.Sprintf("%s %s %s", cli.BoldStyle.Render(label), bar, amounts)
}

func createBudgetCmd() *cobra.Command {
	var params budgetFlags

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p := params.toParams(args[0])
			if p.StartDate == "" || p.EndDate == "" {
				return fmt.Errorf("--start and --end are required")
			}
			if p.Limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.CreateBudget(ctx, p); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created budget %q", args[0])))
			return nil
		},
	}

	params.register(cmd)

	return cmd
}

func updateBudgetCmd() *cobra.Command {
	var (
		params budgetFlags
		name   string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.UpdateBudget(ctx, args[0], params.toParams(name)); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Budget updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New budget name")
	params.register(cmd)

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !yes && !confirm(fmt.Sprintf("Delete budget %s?", args[0])) {
				fmt.Println(cli.InfoStyle.Render("Aborted."))
				return nil
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.DeleteBudget(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Budget deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

// budgetFlags holds the shared create/update flag set.
type budgetFlags struct {
	start      string
	end        string
	notes      string
	categories []string
	limit      float64
}

func (f *budgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Period end (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.limit, "limit", 0, "Spending limit")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "Category IDs covered by the budget (repeatable)")
}

func (f *budgetFlags) toParams(name string) api.BudgetParams {
	return api.BudgetParams{
		Name:       name,
		StartDate:  f.start,
		EndDate:    f.end,
		Limit:      f.limit,
		Notes:      f.notes,
		Categories: f.categories,
	}
}
