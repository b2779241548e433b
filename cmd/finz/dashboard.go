package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/metrics"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

func dashboardCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Monthly summary: consumption, cash flow and liabilities",
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

			transactions, err := store.GetTransactions(ctx, service.TransactionFilter{Month: &month})
			if err != nil {
				return err
			}
			debts, err := store.GetDebts(ctx, false)
			if err != nil {
				return err
			}
			accounts, err := store.GetAccounts(ctx, false)
			if err != nil {
				return err
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}

			m := metrics.ComputeMonthly(transactions, debts, month)

			fmt.Println(titleStyle.Render(fmt.Sprintf("── %s ──", month)))

			fmt.Println(headerStyle.Render("\nConsumption"))
			fmt.Printf("  Total spent:        %s\n", m.TotalConsumption.StringFixed(2))
			if len(m.ConsumptionByCategory) > 0 {
				categoryNames := make(map[string]string, len(categories))
				for _, c := range categories {
					categoryNames[c.ID] = c.Name
				}
				type row struct {
					name   string
					amount string
				}
				rows := make([]row, 0, len(m.ConsumptionByCategory))
				for id, amount := range m.ConsumptionByCategory {
					name := categoryNames[id]
					if name == "" {
						name = "Otros"
					}
					rows = append(rows, row{name, amount.StringFixed(2)})
				}
				sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, r := range rows {
					fmt.Fprintf(w, "    %s\t%s\n", r.name, r.amount)
				}
				w.Flush()
			}

			fmt.Println(headerStyle.Render("\nCash flow"))
			fmt.Printf("  Cash in:            %s\n", m.TotalCashIn.StringFixed(2))
			fmt.Printf("  Cash out:           %s\n", m.TotalCashOut.StringFixed(2))
			net := m.NetCashFlow.StringFixed(2)
			if m.NetCashFlow.Sign() < 0 {
				net = errorStyle.Render(net)
			} else {
				net = successStyle.Render(net)
			}
			fmt.Printf("  Net:                %s\n", net)

			fmt.Println(headerStyle.Render("\nLiabilities"))
			fmt.Printf("  Credit card debt:   %s\n", m.CreditCardDebt.StringFixed(2))
			fmt.Printf("  Other debt:         %s\n", m.OtherDebt.StringFixed(2))
			fmt.Printf("  Total owed:         %s\n", m.TotalDebt.StringFixed(2))

			fmt.Println(headerStyle.Render("\nAccounts"))
			fmt.Printf("  Liquid balance:     %s\n", metrics.TotalBalance(accounts).StringFixed(2))

			return nil
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month (YYYY-MM, default current)")

	return cmd
}
