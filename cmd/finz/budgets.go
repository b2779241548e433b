package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/metrics"
	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Set and check monthly category budgets",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the spending ceiling for a category and month",
		Long: `Set the spending ceiling for one category in one month.

Setting a budget for a (category, month) pair that already has one
replaces the old amount.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			month, err := parseMonthFlag(monthFlag)
			if err != nil {
				return err
			}

			budget := &model.Budget{
				CategoryID: category.ID,
				Amount:     amount,
				Month:      month,
			}
			if err := engine.SetBudget(ctx, budget); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Budget for %q in %s set to %s",
				category.Name, month, amount.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month (YYYY-MM, default current)")

	return cmd
}

func budgetStatusCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare each budget against actual spend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			month, err := parseMonthFlag(monthFlag)
			if err != nil {
				return err
			}

			budgets, err := store.GetBudgets(ctx, month)
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Println(mutedStyle.Render(fmt.Sprintf("No budgets set for %s.", month)))
				return nil
			}

			transactions, err := store.GetTransactions(ctx, service.TransactionFilter{Month: &month})
			if err != nil {
				return err
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}
			categoryNames := make(map[string]string, len(categories))
			for _, c := range categories {
				categoryNames[c.ID] = c.Name
			}

			statuses := metrics.BudgetStatuses(transactions, budgets, month)

			fmt.Println(titleStyle.Render(fmt.Sprintf("Budgets for %s", month)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("CATEGORY\tLIMIT\tSPENT\tREMAINING"))
			for _, s := range statuses {
				remaining := s.Remaining.StringFixed(2)
				if s.Over {
					remaining = errorStyle.Render(remaining + " OVER")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					categoryNames[s.CategoryID], s.Limit.StringFixed(2), s.Spent.StringFixed(2), remaining)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month (YYYY-MM, default current)")

	return cmd
}
