package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ronaldlvm7/finance-app/internal/service"
	"github.com/ronaldlvm7/finance-app/internal/sheets"
)

func exportCmd() *cobra.Command {
	var spreadsheetID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to a Google Sheets workbook",
		Long: `Export transactions, debts and accounts to a three-tab Google Sheets
workbook. Existing tab contents are replaced.

Authentication comes from FINZ_SHEETS_* environment variables: either
FINZ_SHEETS_SERVICE_ACCOUNT_PATH, or the FINZ_SHEETS_CLIENT_ID /
FINZ_SHEETS_CLIENT_SECRET / FINZ_SHEETS_REFRESH_TOKEN trio.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cfg := sheets.DefaultConfig()
			if err := cfg.LoadFromEnv(); err != nil {
				return err
			}
			if spreadsheetID != "" {
				cfg.SpreadsheetID = spreadsheetID
			} else if id := viper.GetString("sheets.spreadsheet_id"); id != "" && cfg.SpreadsheetID == "" {
				cfg.SpreadsheetID = id
			}

			transactions, err := store.GetTransactions(ctx, service.TransactionFilter{})
			if err != nil {
				return err
			}
			debts, err := store.GetDebts(ctx, true)
			if err != nil {
				return err
			}
			accounts, err := store.GetAccounts(ctx, true)
			if err != nil {
				return err
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}

			wb := sheets.BuildWorkbook(transactions, debts, accounts, categories)

			writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}

			id, err := writer.Export(ctx, wb)
			if err != nil {
				return err
			}

			fmt.Println(successStyle.Render("✓ Export complete"))
			fmt.Printf("  https://docs.google.com/spreadsheets/d/%s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "existing spreadsheet to write into (creates a new one when omitted)")

	return cmd
}
