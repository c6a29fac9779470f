package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vijaysanthoshp/fintrack/internal/api"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/model"
)

func transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Manage transfers between accounts and users",
	}

	cmd.AddCommand(listTransfersCmd())
	cmd.AddCommand(createTransferCmd())
	cmd.AddCommand(updateTransferCmd())
	cmd.AddCommand(deleteTransferCmd())
	cmd.AddCommand(listUsersCmd())

	return cmd
}

func listTransfersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transfer history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			transfers, err := client.Transfers(ctx)
			if err != nil {
				return err
			}

			if len(transfers) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transfers found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Date"),
				headerStyle.Render("Description"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Fee"),
				headerStyle.Render("To"),
				headerStyle.Render("ID"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 24),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8),
				strings.Repeat("-", 12),
				strings.Repeat("-", 8))

			for _, t := range transfers {
				date := cli.SubtleStyle.Render("-")
				if !t.Date.IsZero() {
					date = t.Date.Format("2006-01-02")
				}
				fee := ""
				if t.Fee > 0 {
					fee = fmt.Sprintf("$%.2f", t.Fee)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					date, t.Description, cli.FormatMoney(-t.Amount), fee, t.ToUserID, cli.SubtleStyle.Render(t.ID))
			}
			return nil
		},
	}
}

func createTransferCmd() *cobra.Command {
	var (
		from        string
		to          string
		description string
		date        string
		notes       string
		amount      float64
		fee         float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transfer",
		Long:  `Send money from one of your accounts to another user. The source account balance is checked before anything is submitted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}
			if date == "" {
				date = todayStamp()
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			// Cheap client-side sanity check; the backend is still the
			// source of truth.
			available, err := client.AccountBalance(ctx, from)
			if err != nil {
				return err
			}
			transfer := model.Transfer{
				FromAccountID: from,
				ToUserID:      to,
				Amount:        amount,
				Fee:           fee,
			}
			if err := transfer.Validate(available); err != nil {
				return err
			}

			err = client.CreateTransfer(ctx, api.TransferParams{
				FromAccountID: from,
				ToUserID:      to,
				Amount:        amount,
				Fee:           fee,
				Description:   description,
				Date:          date,
				Notes:         notes,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred $%.2f", amount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source account ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination user ID (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to transfer")
	cmd.Flags().Float64Var(&fee, "fee", 0, "Transfer fee")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func updateTransferCmd() *cobra.Command {
	var (
		description string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transfer's description or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			err = client.UpdateTransfer(ctx, args[0], api.TransferParams{
				Description: description,
				Notes:       notes,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transfer updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func deleteTransferCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transfer record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !yes && !confirm(fmt.Sprintf("Delete transfer %s?", args[0])) {
				fmt.Println(cli.InfoStyle.Render("Aborted."))
				return nil
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.DeleteTransfer(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transfer deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users who can receive transfers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			users, err := client.Users(ctx)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println(cli.InfoStyle.Render("No other users found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Email"))
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.DisplayName(), u.Email)
			}
			return nil
		},
	}
}
