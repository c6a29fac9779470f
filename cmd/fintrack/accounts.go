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
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage financial accounts",
		Long:  `List, create, update, and delete the accounts tracked by the backend.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(accountTypesCmd())
	cmd.AddCommand(createAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(deleteAccountCmd())
	cmd.AddCommand(accountBalanceCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			accounts, err := client.Accounts(ctx)
			if err != nil {
				return err
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'fintrack accounts create' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Type"),
				headerStyle.Render("Balance"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 24),
				strings.Repeat("-", 12),
				strings.Repeat("-", 12))

			var total float64
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, cli.FormatMoney(a.Balance))
				total += a.Balance
			}

			fmt.Fprintf(w, "\t%s\t\t%s\n", cli.BoldStyle.Render("Total"), cli.FormatMoney(total))
			return nil
		},
	}
}

func accountTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the account types the backend accepts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			types, err := client.AccountTypes(ctx)
			if err != nil {
				return err
			}

			if len(types) == 0 {
				fmt.Println(cli.InfoStyle.Render("The backend reported no account types."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("ID"), headerStyle.Render("Name"))
			for _, t := range types {
				fmt.Fprintf(w, "%s\t%s\n", t.ID, t.Name)
			}
			return nil
		},
	}
}

func createAccountCmd() *cobra.Command {
	var (
		typeID      string
		number      string
		description string
		balance     float64
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if typeID == "" {
				return fmt.Errorf("--type is required; see 'fintrack accounts types'")
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			err = client.CreateAccount(ctx, api.CreateAccountParams{
				Name:           args[0],
				TypeID:         typeID,
				InitialBalance: balance,
				Number:         number,
				Description:    description,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created account %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeID, "type", "", "Account type ID (required)")
	cmd.Flags().Float64Var(&balance, "balance", 0, "Initial balance")
	cmd.Flags().StringVar(&number, "number", "", "Account number")
	cmd.Flags().StringVar(&description, "description", "", "Account description")

	return cmd
}

func updateAccountCmd() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if name == "" && description == "" {
				return fmt.Errorf("nothing to update; provide --name or --description")
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			err = client.UpdateAccount(ctx, args[0], api.UpdateAccountParams{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New account name")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !yes && !confirm(fmt.Sprintf("Delete account %s and its transactions?", args[0])) {
				fmt.Println(cli.InfoStyle.Render("Aborted."))
				return nil
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.DeleteAccount(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func accountBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <id>",
		Short: "Show an account's current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			balance, err := client.AccountBalance(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", cli.BankIcon, cli.FormatMoney(balance))
			return nil
		},
	}
}
