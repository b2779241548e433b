package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Long: `Run pending database migrations.

Every command migrates on startup, so this is only needed to prepare a
database ahead of time or to verify the schema version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Database schema is at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
