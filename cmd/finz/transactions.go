package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions", "transaction"},
		Short:   "Record and inspect transactions",
	}

	cmd.AddCommand(txIncomeCmd())
	cmd.AddCommand(txExpenseCmd())
	cmd.AddCommand(txTransferCmd())
	cmd.AddCommand(txPayDebtCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txDeleteCmd())

	return cmd
}

func txIncomeCmd() *cobra.Command {
	var (
		to       string
		category string
		date     string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "income <amount> <concept>",
		Short: "Record income into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}
			account, err := resolveAccount(ctx, store, to)
			if err != nil {
				return err
			}
			cat, err := resolveCategory(ctx, store, category)
			if err != nil {
				return err
			}

			txn := &model.Transaction{
				Type:        model.TxIncome,
				Amount:      amount,
				Concept:     args[1],
				Description: note,
				Date:        when,
				CategoryID:  cat.ID,
				ToAccountID: account.ID,
			}
			if _, err := engine.RecordTransaction(ctx, txn); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Income of %s into %q", amount.StringFixed(2), account.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination account (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-form description")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func txExpenseCmd() *cobra.Command {
	var (
		from     string
		category string
		method   string
		date     string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "expense <amount> <concept>",
		Short: "Record an expense",
		Long: `Record an expense against an account.

Cash and debit expenses reduce the account balance immediately. Credit
expenses grow the card's outstanding debt instead: a "Deuda <card>" debt
is created on first use and accumulated afterwards.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}
			account, err := resolveAccount(ctx, store, from)
			if err != nil {
				return err
			}
			cat, err := resolveCategory(ctx, store, category)
			if err != nil {
				return err
			}

			paymentMethod := model.PaymentMethod(method)
			if method == "" {
				paymentMethod = model.PayCash
				if account.IsCreditCard() {
					paymentMethod = model.PayCredit
				}
			}

			txn := &model.Transaction{
				Type:          model.TxExpense,
				Amount:        amount,
				Concept:       args[1],
				Description:   note,
				Date:          when,
				CategoryID:    cat.ID,
				FromAccountID: account.ID,
				PaymentMethod: paymentMethod,
			}
			changes, err := engine.RecordTransaction(ctx, txn)
			if err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Expense of %s from %q (%s)", amount.StringFixed(2), account.Name, paymentMethod)))
			if changes.NewDebt != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("  Opened credit card debt %q", changes.NewDebt.Name)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source account (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (required)")
	cmd.Flags().StringVarP(&method, "method", "m", "", "payment method (cash, debit, credit; inferred from account type when omitted)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-form description")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func txTransferCmd() *cobra.Command {
	var (
		from string
		to   string
		date string
		note string
	)

	cmd := &cobra.Command{
		Use:   "transfer <amount> <concept>",
		Short: "Move money between accounts",
		Long: `Move money between two accounts.

Transferring to a credit card pays the card: besides raising the card's
balance, the card's outstanding debt is reduced by the same amount.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}
			source, err := resolveAccount(ctx, store, from)
			if err != nil {
				return err
			}
			dest, err := resolveAccount(ctx, store, to)
			if err != nil {
				return err
			}

			txn := &model.Transaction{
				Type:          model.TxTransfer,
				Amount:        amount,
				Concept:       args[1],
				Description:   note,
				Date:          when,
				FromAccountID: source.ID,
				ToAccountID:   dest.ID,
			}
			if _, err := engine.RecordTransaction(ctx, txn); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Transferred %s from %q to %q", amount.StringFixed(2), source.Name, dest.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source account (required)")
	cmd.Flags().StringVar(&to, "to", "", "destination account (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-form description")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func txPayDebtCmd() *cobra.Command {
	var (
		debtRef string
		from    string
		date    string
		note    string
	)

	cmd := &cobra.Command{
		Use:   "pay-debt <amount> <concept>",
		Short: "Record a payment against a tracked debt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}
			debt, err := resolveDebt(ctx, store, debtRef)
			if err != nil {
				return err
			}

			txn := &model.Transaction{
				Type:        model.TxDebtPayment,
				Amount:      amount,
				Concept:     args[1],
				Description: note,
				Date:        when,
				DebtID:      debt.ID,
			}
			if from != "" {
				source, err := resolveAccount(ctx, store, from)
				if err != nil {
					return err
				}
				txn.FromAccountID = source.ID
			}

			if _, err := engine.RecordTransaction(ctx, txn); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Paid %s toward %q", amount.StringFixed(2), debt.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&debtRef, "debt", "", "debt name or id (required)")
	cmd.Flags().StringVar(&from, "from", "", "account the payment comes out of")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-form description")
	_ = cmd.MarkFlagRequired("debt")

	return cmd
}

func txListCmd() *cobra.Command {
	var (
		monthFlag string
		typeFlag  string
		account   string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := service.TransactionFilter{Limit: limit}
			if monthFlag != "" {
				month, err := parseMonthFlag(monthFlag)
				if err != nil {
					return err
				}
				filter.Month = &month
			}
			if typeFlag != "" {
				filter.Type = model.TransactionType(typeFlag)
			}
			if account != "" {
				a, err := resolveAccount(ctx, store, account)
				if err != nil {
					return err
				}
				filter.AccountID = a.ID
			}

			transactions, err := store.GetTransactions(ctx, filter)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println(mutedStyle.Render("No transactions match."))
				return nil
			}

			accounts, err := store.GetAccounts(ctx, true)
			if err != nil {
				return err
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}
			accountNames := make(map[string]string, len(accounts))
			for _, a := range accounts {
				accountNames[a.ID] = a.Name
			}
			categoryNames := make(map[string]string, len(categories))
			for _, c := range categories {
				categoryNames[c.ID] = c.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("ID\tDATE\tTYPE\tCONCEPT\tAMOUNT\tCATEGORY\tFROM\tTO"))
			for i := range transactions {
				t := &transactions[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(t.ID),
					t.Date.Format("2006-01-02"),
					t.Type,
					t.Concept,
					t.Amount.StringFixed(2),
					categoryNames[t.CategoryID],
					accountNames[t.FromAccountID],
					accountNames[t.ToAccountID])
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "filter by month (YYYY-MM)")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "filter by type (income, expense, transfer, debt_payment)")
	cmd.Flags().StringVar(&account, "account", "", "filter by account")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows")

	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction, reversing its balance effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := resolveTransactionID(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := engine.DeleteTransaction(ctx, id); err != nil {
				return err
			}

			fmt.Println(successStyle.Render("✓ Transaction deleted, balances reversed"))
			return nil
		},
	}
}
