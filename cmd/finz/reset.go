package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		Long:  `Delete every account, transaction, debt, category, goal and budget. This cannot be undone.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Print(warnStyle.Render("This deletes ALL data and cannot be undone. Type 'yes' to continue: "))
				reader := bufio.NewReader(os.Stdin)
				answer, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				if strings.TrimSpace(answer) != "yes" {
					fmt.Println(mutedStyle.Render("Aborted."))
					return nil
				}
			}

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := engine.ClearAllData(ctx); err != nil {
				return err
			}

			fmt.Println(successStyle.Render("✓ All data deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
