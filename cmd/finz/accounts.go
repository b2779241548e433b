package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/metrics"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage accounts",
	}

	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsUpdateCmd())
	cmd.AddCommand(accountsArchiveCmd())

	return cmd
}

func accountsAddCmd() *cobra.Command {
	var (
		accountType string
		balance     string
		creditLimit string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			account := &model.Account{
				Name:    args[0],
				Type:    model.AccountType(accountType),
				Balance: decimal.Zero,
			}
			if balance != "" {
				account.Balance, err = parseAmount(balance)
				if err != nil {
					return err
				}
			}
			if creditLimit != "" {
				account.CreditLimit, err = parseAmount(creditLimit)
				if err != nil {
					return err
				}
			}

			if err := engine.AddAccount(ctx, account); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created account %q (%s)", account.Name, account.Type)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountType, "type", "t", "cash", "account type (cash, bank, debit, credit_card, savings)")
	cmd.Flags().StringVarP(&balance, "balance", "b", "", "opening balance")
	cmd.Flags().StringVarP(&creditLimit, "limit", "l", "", "credit limit (credit cards only)")

	return cmd
}

func accountsListCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts and balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			accounts, err := store.GetAccounts(ctx, includeArchived)
			if err != nil {
				return err
			}
			debts, err := store.GetDebts(ctx, false)
			if err != nil {
				return err
			}

			if len(accounts) == 0 {
				fmt.Println(mutedStyle.Render("No accounts yet. Create one with: finz accounts add"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("ID\tNAME\tTYPE\tBALANCE\tAVAILABLE CREDIT"))
			for i := range accounts {
				a := &accounts[i]
				available := ""
				if a.IsCreditCard() {
					available = metrics.AvailableCredit(*a, debts).StringFixed(2)
				}
				name := a.Name
				if a.IsArchived {
					name = mutedStyle.Render(name + " (archived)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(a.ID), name, a.Type, a.Balance.StringFixed(2), available)
			}
			w.Flush()

			fmt.Printf("\n%s %s\n",
				headerStyle.Render("Total liquid balance:"),
				metrics.TotalBalance(accounts).StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeArchived, "all", "a", false, "include archived accounts")

	return cmd
}

func accountsUpdateCmd() *cobra.Command {
	var (
		newName     string
		balance     string
		creditLimit string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Rename an account or correct its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			account, err := resolveAccount(ctx, store, args[0])
			if err != nil {
				return err
			}

			if newName != "" {
				account.Name = newName
			}
			if balance != "" {
				account.Balance, err = parseAmount(balance)
				if err != nil {
					return err
				}
			}
			if creditLimit != "" {
				account.CreditLimit, err = parseAmount(creditLimit)
				if err != nil {
					return err
				}
			}

			if err := engine.UpdateAccount(ctx, account); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Updated account %q", account.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new account name")
	cmd.Flags().StringVarP(&balance, "balance", "b", "", "corrected balance")
	cmd.Flags().StringVarP(&creditLimit, "limit", "l", "", "corrected credit limit")

	return cmd
}

func accountsArchiveCmd() *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "archive <name>",
		Short: "Archive an account (keeps its history)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			account, err := resolveAccount(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := engine.ArchiveAccount(ctx, account.ID, !restore); err != nil {
				return err
			}

			if restore {
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ Restored account %q", account.Name)))
			} else {
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ Archived account %q", account.Name)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "unarchive instead")

	return cmd
}
