package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/metrics"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

func debtsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "debts",
		Aliases: []string{"debt"},
		Short:   "Manage debts",
	}

	cmd.AddCommand(debtsAddCmd())
	cmd.AddCommand(debtsListCmd())
	cmd.AddCommand(debtsUpcomingCmd())
	cmd.AddCommand(debtsCancelCmd())

	return cmd
}

func debtsAddCmd() *cobra.Command {
	var (
		debtType     string
		total        string
		balance      string
		account      string
		dueDay       int
		installments int
		interest     string
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Track a new debt",
		Long: `Track a new debt by hand.

Credit card debts normally come into existence automatically when you
record a credit expense; this command is for bank loans, money owed to
friends, installment plans and subscriptions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			totalAmount, err := parseAmount(total)
			if err != nil {
				return err
			}
			current := totalAmount
			if balance != "" {
				current, err = parseAmount(balance)
				if err != nil {
					return err
				}
			}

			debt := &model.Debt{
				Name:           args[0],
				Type:           model.DebtType(debtType),
				TotalAmount:    totalAmount,
				CurrentBalance: current,
				Status:         model.DebtActive,
				StartDate:      time.Now().UTC(),
				DueDate:        dueDay,
				Installments:   installments,
				Notes:          notes,
			}
			if interest != "" {
				rate, err := decimal.NewFromString(interest)
				if err != nil {
					return fmt.Errorf("invalid interest rate %q: %w", interest, err)
				}
				debt.InterestRate = rate
			}
			if account != "" {
				a, err := resolveAccount(ctx, store, account)
				if err != nil {
					return err
				}
				debt.AccountID = a.ID
			}

			if err := engine.AddDebt(ctx, debt); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Tracking debt %q (%s outstanding)", debt.Name, debt.CurrentBalance.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&debtType, "type", "t", "bank", "debt type (bank, friend, installments, subscription, credit_card)")
	cmd.Flags().StringVar(&total, "total", "", "total amount of the debt (required)")
	cmd.Flags().StringVar(&balance, "balance", "", "outstanding balance (defaults to total)")
	cmd.Flags().StringVar(&account, "account", "", "linked account")
	cmd.Flags().IntVar(&dueDay, "due-day", 0, "day of month the payment is due (1-31)")
	cmd.Flags().IntVar(&installments, "installments", 0, "number of installments")
	cmd.Flags().StringVar(&interest, "interest", "", "annual interest rate, e.g. 12.5")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func debtsListCmd() *cobra.Command {
	var includeSettled bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List debts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			debts, err := store.GetDebts(ctx, includeSettled)
			if err != nil {
				return err
			}
			if len(debts) == 0 {
				fmt.Println(mutedStyle.Render("No debts. Enjoy it."))
				return nil
			}

			accounts, err := store.GetAccounts(ctx, true)
			if err != nil {
				return err
			}
			accountNames := make(map[string]string, len(accounts))
			for _, a := range accounts {
				accountNames[a.ID] = a.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("ID\tNAME\tTYPE\tOUTSTANDING\tTOTAL\tSTATUS\tDUE\tINSTALLMENTS\tACCOUNT"))
			totalOutstanding := decimal.Zero
			for i := range debts {
				d := &debts[i]
				if d.IsActive() {
					totalOutstanding = totalOutstanding.Add(d.CurrentBalance)
				}
				due := ""
				if d.DueDate > 0 {
					due = fmt.Sprintf("day %d", d.DueDate)
				}
				installments := ""
				if d.Installments > 0 {
					installments = fmt.Sprintf("%d/%d", d.InstallmentsPaid, d.Installments)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(d.ID), d.Name, d.Type,
					d.CurrentBalance.StringFixed(2), d.TotalAmount.StringFixed(2),
					d.Status, due, installments, accountNames[d.AccountID])
			}
			w.Flush()

			fmt.Printf("\n%s %s\n", headerStyle.Render("Total outstanding:"), totalOutstanding.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeSettled, "all", "a", false, "include paid debts")

	return cmd
}

func debtsUpcomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show active debts ordered by next due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			debts, err := store.GetDebts(ctx, false)
			if err != nil {
				return err
			}

			upcoming := metrics.UpcomingDebts(debts, time.Now())
			if len(upcoming) == 0 {
				fmt.Println(mutedStyle.Render("No upcoming due dates."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("NAME\tOUTSTANDING\tDUE DAY"))
			for i := range upcoming {
				d := &upcoming[i]
				fmt.Fprintf(w, "%s\t%s\tday %d\n", d.Name, d.CurrentBalance.StringFixed(2), d.DueDate)
			}
			return w.Flush()
		},
	}
}

func debtsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <name>",
		Short: "Mark a debt cancelled without paying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			debt, err := resolveDebt(ctx, store, args[0])
			if err != nil {
				return err
			}

			debt.Status = model.DebtCancelled
			if err := engine.UpdateDebt(ctx, debt); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Cancelled debt %q", debt.Name)))
			return nil
		},
	}
}
