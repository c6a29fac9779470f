package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/vijaysanthoshp/fintrack/internal/api"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/common"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var (
		dryRun   bool
		account  string
		category string
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Parsed transactions are created through the backend API against the account
given with --account. Statements with negative amounts import as expenses,
positive amounts as income.

Examples:
  # Import a single file
  fintrack import-ofx --account acc-1 ~/Downloads/chase_jan.qfx

  # Import everything in a directory
  fintrack import-ofx --account acc-1 ~/Downloads/*.qfx

  # Preview without creating anything
  fintrack import-ofx --dry-run ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := expandFileArgs(args)
			if err != nil {
				return err
			}

			drafts, err := parseStatements(files)
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				return common.ErrNoTransactions
			}

			if dryRun {
				printStatementAccounts(files)
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(drafts))))
				for _, d := range drafts {
					fmt.Printf("  %s  %-28s %s\n",
						d.Date.Format("2006-01-02"), d.Description, cli.FormatMoney(signedDraftAmount(d)))
				}
				return nil
			}

			if account == "" {
				return fmt.Errorf("--account is required; see 'fintrack accounts list'")
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(drafts),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}))

			imported := 0
			for _, d := range drafts {
				err := client.CreateTransaction(ctx, api.TransactionParams{
					AccountID:   account,
					CategoryID:  category,
					Type:        d.Type,
					Amount:      d.Amount,
					Description: d.Description,
					Date:        d.Date.Format("2006-01-02"),
				})
				if err != nil {
					// One bad record should not abort the rest of the
					// statement.
					common.LogError(err, "Failed to import transaction", common.Fields{
						"description": d.Description,
						"date":        d.Date.Format("2006-01-02"),
					})
				} else {
					imported++
				}
				_ = bar.Add(1)
			}
			fmt.Fprintln(os.Stderr)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d of %d transactions", imported, len(drafts))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without creating anything")
	cmd.Flags().StringVar(&account, "account", "", "Backend account ID to import into")
	cmd.Flags().StringVar(&category, "category", "", "Category ID applied to every imported transaction")

	return cmd
}

// expandFileArgs resolves glob patterns and plain paths into a file list.
func expandFileArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// parseStatements parses every file and dedupes drafts across files by hash.
func parseStatements(files []string) ([]ofx.Draft, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var drafts []ofx.Draft
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}

		parsed, err := parser.ParseFile(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, d := range parsed {
			if seen[d.Hash] {
				continue
			}
			seen[d.Hash] = true
			drafts = append(drafts, d)
			added++
		}
		slog.Info("Processed file",
			"file", filepath.Base(path),
			"transactions_found", len(parsed),
			"added", added,
			"duplicates", len(parsed)-added)
	}
	return drafts, nil
}

// printStatementAccounts lists the bank account IDs present in the files so
// the user can pick the right --account target.
func printStatementAccounts(files []string) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var accounts []string
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		ids, err := parser.GetAccounts(f)
		_ = f.Close()
		if err != nil {
			continue
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				accounts = append(accounts, id)
			}
		}
	}

	if len(accounts) > 0 {
		fmt.Printf("%s Statement accounts: %s\n", cli.BankIcon, strings.Join(accounts, ", "))
	}
}

func signedDraftAmount(d ofx.Draft) float64 {
	if d.Type == model.TransactionTypeIncome {
		return d.Amount
	}
	return -d.Amount
}
