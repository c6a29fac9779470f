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

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    `List, search, create, update, and delete transactions.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(createTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())
	cmd.AddCommand(listCategoriesCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			lookups, err := loadLookups(ctx, client)
			if err != nil {
				return err
			}

			var transactions []model.Transaction
			if search != "" {
				transactions, err = client.SearchTransactions(ctx, search, lookups)
			} else {
				transactions, err = client.Transactions(ctx, lookups)
			}
			if err != nil {
				return err
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			printTransactionTable(transactions)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by description, category, or account")

	return cmd
}

func printTransactionTable(transactions []model.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("Date"),
		headerStyle.Render("Description"),
		headerStyle.Render("Category"),
		headerStyle.Render("Account"),
		headerStyle.Render("Amount"),
		headerStyle.Render("ID"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 28),
		strings.Repeat("-", 16),
		strings.Repeat("-", 16),
		strings.Repeat("-", 10),
		strings.Repeat("-", 8))

	for _, tx := range transactions {
		date := cli.SubtleStyle.Render("-")
		if tx.HasDate() {
			date = tx.Date.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			date, tx.Description, tx.CategoryName, tx.AccountName,
			cli.FormatMoney(tx.SignedAmount()), cli.SubtleStyle.Render(tx.ID))
	}
}

func createTransactionCmd() *cobra.Command {
	var params transactionFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			p, err := params.toParams()
			if err != nil {
				return err
			}
			if p.AccountID == "" {
				return fmt.Errorf("--account is required")
			}
			if p.Description == "" {
				return fmt.Errorf("--description is required")
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.CreateTransaction(ctx, p); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction created"))
			return nil
		},
	}

	params.register(cmd)

	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var params transactionFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := params.toParams()
			if err != nil {
				return err
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.UpdateTransaction(ctx, args[0], p); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction updated"))
			return nil
		},
	}

	params.register(cmd)

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !yes && !confirm(fmt.Sprintf("Delete transaction %s?", args[0])) {
				fmt.Println(cli.InfoStyle.Render("Aborted."))
				return nil
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if err := client.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List transaction categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			categories, err := client.Categories(ctx)
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Type"))
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Type)
			}
			return nil
		},
	}
}

// transactionFlags holds the shared create/update flag set.
type transactionFlags struct {
	account     string
	category    string
	txType      string
	description string
	date        string
	notes       string
	amount      float64
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.account, "account", "", "Account ID")
	cmd.Flags().StringVar(&f.category, "category", "", "Category ID")
	cmd.Flags().StringVar(&f.txType, "type", "expense", "Transaction type (income, expense)")
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "Amount (always positive; type carries the sign)")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *transactionFlags) toParams() (api.TransactionParams, error) {
	txType := model.ParseTransactionType(f.txType)
	if txType == model.TransactionTypeTransfer {
		return api.TransactionParams{}, fmt.Errorf("transfers are created with 'fintrack transfers create'")
	}

	date := f.date
	if date == "" {
		date = todayStamp()
	}

	return api.TransactionParams{
		AccountID:   f.account,
		CategoryID:  f.category,
		Type:        txType,
		Amount:      f.amount,
		Description: f.description,
		Date:        date,
		Notes:       f.notes,
	}, nil
}
