package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/common"
	"github.com/vijaysanthoshp/fintrack/internal/config"
	"github.com/vijaysanthoshp/fintrack/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports to external services",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var authorize bool

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Export the dashboard report to Google Sheets",
		Long: `Write the full dashboard summary (overview, category breakdown, spending
trend, budgets, and recent transactions) to a Google Sheet.

Authentication uses either a service account file or OAuth2 credentials,
configured under the 'sheets' config section or GOOGLE_SHEETS_* environment
variables. Run with --authorize once to obtain a refresh token through the
browser consent flow.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if authorize {
				return runSheetsAuthorize(cmd)
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return err
			}

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			data, err := fetchRemote(ctx, client)
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, sheetsConfig, slog.Default())
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, data.summary(time.Now())); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Report written to spreadsheet %q", sheetsConfig.SpreadsheetName)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&authorize, "authorize", false, "Run the browser consent flow and cache a token")

	return cmd
}

func runSheetsAuthorize(cmd *cobra.Command) error {
	clientID := viper.GetString("sheets.client_id")
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	clientSecret := viper.GetString("sheets.client_secret")
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"Set sheets.client_id and sheets.client_secret (or GOOGLE_SHEETS_CLIENT_ID / GOOGLE_SHEETS_CLIENT_SECRET) before authorizing.",
			common.ErrMissingConfig)
	}

	auth := sheets.Authorizer{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenPath:    sheetsTokenPath(),
	}

	// Reuses or refreshes a cached token; falls back to the browser flow.
	token, err := auth.Token(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Google Sheets authorized"))
	if token.RefreshToken != "" {
		fmt.Printf("  Refresh token (set as GOOGLE_SHEETS_REFRESH_TOKEN or sheets.refresh_token):\n  %s\n", token.RefreshToken)
	}
	return nil
}

func sheetsTokenPath() string {
	path := viper.GetString("sheets.token_file")
	if path == "" {
		path = "~/.config/fintrack/sheets-token.json"
	}
	return config.ExpandPath(path)
}
