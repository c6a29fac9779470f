package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vijaysanthoshp/fintrack/internal/api"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/model"
)

func receiptCmd() *cobra.Command {
	var (
		create   bool
		account  string
		category string
	)

	cmd := &cobra.Command{
		Use:   "receipt <image>",
		Short: "Upload a receipt for recognition",
		Long: `Upload a receipt image to the backend's mock OCR endpoint and print the
recognized merchant, amount, and line items. With --create, the result
pre-fills a new expense transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if create && account == "" {
				return fmt.Errorf("--account is required with --create")
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			receipt, err := client.UploadReceipt(ctx, args[0], os.Stderr)
			if err != nil {
				return err
			}

			printReceipt(receipt)

			if !create {
				return nil
			}

			params := receiptTransaction(receipt, account, category)
			if err := client.CreateTransaction(ctx, params); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created transaction %q for $%.2f", params.Description, params.Amount)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "Create a transaction from the recognized fields")
	cmd.Flags().StringVar(&account, "account", "", "Account ID for the created transaction")
	cmd.Flags().StringVar(&category, "category", "", "Category ID for the created transaction")

	return cmd
}

func printReceipt(receipt model.Receipt) {
	fmt.Printf("%s %s\n", cli.ReceiptIcon, cli.BoldStyle.Render(merchantOrDefault(receipt)))
	fmt.Printf("  Amount:     %s\n", cli.FormatMoney(-receipt.Amount))
	if receipt.TransactionDate != "" {
		fmt.Printf("  Date:       %s\n", receipt.TransactionDate)
	}
	if receipt.ConfidenceScore > 0 {
		fmt.Printf("  Confidence: %.0f%%\n", receipt.ConfidenceScore*100)
	}
	for _, item := range receipt.Items {
		fmt.Printf("    %-24s $%.2f\n", item.Name, item.Price)
	}
}

// receiptTransaction maps recognized receipt fields onto a new expense.
func receiptTransaction(receipt model.Receipt, accountID, categoryID string) api.TransactionParams {
	date := receipt.TransactionDate
	if date == "" {
		date = todayStamp()
	}

	notes := ""
	if text := extractedText(receipt); text != "" {
		notes = "Scanned receipt:\n" + text
	}

	return api.TransactionParams{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        model.TransactionTypeExpense,
		Amount:      receipt.Amount,
		Description: merchantOrDefault(receipt),
		Date:        date,
		Notes:       notes,
	}
}

func merchantOrDefault(receipt model.Receipt) string {
	if receipt.MerchantName != "" {
		return receipt.MerchantName
	}
	return "Receipt"
}

// extractedText returns the OCR text under whichever alias the backend used.
func extractedText(receipt model.Receipt) string {
	for _, text := range []string{receipt.Text, receipt.ExtractedText, receipt.RawText} {
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}
