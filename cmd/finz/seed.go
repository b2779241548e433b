package main

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/ledger"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			existing, err := store.GetAccounts(ctx, true)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return fmt.Errorf("database is not empty; run 'finz reset' first if you want demo data")
			}

			if err := seedDemoData(ctx, engine); err != nil {
				return err
			}

			fmt.Println(successStyle.Render("✓ Demo data loaded"))
			return nil
		},
	}
}

type seedTxn struct {
	daysAgo  int
	txnType  model.TransactionType
	amount   string
	concept  string
	category string
	from     string
	to       string
	method   model.PaymentMethod
}

func seedDemoData(ctx context.Context, engine *ledger.Engine) error {
	accounts := []model.Account{
		{Name: "Efectivo", Type: model.AccountCash, Balance: decimal.NewFromInt(1500)},
		{Name: "BBVA Débito", Type: model.AccountDebit, Balance: decimal.NewFromInt(12000)},
		{Name: "BBVA Crédito", Type: model.AccountCreditCard, CreditLimit: decimal.NewFromInt(20000)},
		{Name: "Ahorros", Type: model.AccountSavings, Balance: decimal.NewFromInt(8000)},
	}
	categories := []model.Category{
		{Name: "Comida"},
		{Name: "Transporte"},
		{Name: "Renta", IsFixed: true},
		{Name: "Entretenimiento"},
		{Name: "Servicios", IsFixed: true},
		{Name: "Salario"},
	}
	transactions := []seedTxn{
		{28, model.TxIncome, "25000", "Quincena", "Salario", "", "BBVA Débito", ""},
		{27, model.TxExpense, "7500", "Renta depto", "Renta", "BBVA Débito", "", model.PayDebit},
		{25, model.TxExpense, "820.50", "Súper semanal", "Comida", "BBVA Débito", "", model.PayDebit},
		{22, model.TxExpense, "1340", "Cena aniversario", "Entretenimiento", "BBVA Crédito", "", model.PayCredit},
		{20, model.TxExpense, "350", "Gasolina", "Transporte", "Efectivo", "", model.PayCash},
		{18, model.TxExpense, "2199", "Audífonos", "Entretenimiento", "BBVA Crédito", "", model.PayCredit},
		{15, model.TxExpense, "640", "Luz y agua", "Servicios", "BBVA Débito", "", model.PayDebit},
		{12, model.TxIncome, "25000", "Quincena", "Salario", "", "BBVA Débito", ""},
		{10, model.TxExpense, "910.25", "Súper semanal", "Comida", "BBVA Débito", "", model.PayDebit},
		{7, model.TxTransfer, "2000", "Ahorro mensual", "", "BBVA Débito", "Ahorros", ""},
		{5, model.TxTransfer, "1500", "Pago tarjeta", "", "BBVA Débito", "BBVA Crédito", ""},
		{2, model.TxExpense, "430", "Tacos con amigos", "Comida", "Efectivo", "", model.PayCash},
	}

	steps := len(accounts) + len(categories) + len(transactions) + 2
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetDescription("seeding"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	accountIDs := make(map[string]string, len(accounts))
	for i := range accounts {
		a := accounts[i]
		if err := engine.AddAccount(ctx, &a); err != nil {
			return fmt.Errorf("failed to seed account %q: %w", a.Name, err)
		}
		accountIDs[a.Name] = a.ID
		_ = bar.Add(1)
	}

	categoryIDs := make(map[string]string, len(categories))
	for i := range categories {
		c := categories[i]
		if err := engine.AddCategory(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
		categoryIDs[c.Name] = c.ID
		_ = bar.Add(1)
	}

	now := time.Now().UTC()
	for _, s := range transactions {
		amount, err := decimal.NewFromString(s.amount)
		if err != nil {
			return err
		}
		txn := &model.Transaction{
			Type:          s.txnType,
			Amount:        amount,
			Concept:       s.concept,
			Date:          now.AddDate(0, 0, -s.daysAgo),
			CategoryID:    categoryIDs[s.category],
			FromAccountID: accountIDs[s.from],
			ToAccountID:   accountIDs[s.to],
			PaymentMethod: s.method,
		}
		if _, err := engine.RecordTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to seed transaction %q: %w", s.concept, err)
		}
		_ = bar.Add(1)
	}

	carLoan := &model.Debt{
		Name:             "Crédito automotriz",
		Type:             model.DebtBank,
		TotalAmount:      decimal.NewFromInt(180000),
		CurrentBalance:   decimal.NewFromInt(94000),
		Status:           model.DebtActive,
		StartDate:        now.AddDate(-2, 0, 0),
		DueDate:          5,
		Installments:     48,
		InstallmentsPaid: 23,
		InterestRate:     decimal.NewFromFloat(11.9),
	}
	if err := engine.AddDebt(ctx, carLoan); err != nil {
		return fmt.Errorf("failed to seed debt %q: %w", carLoan.Name, err)
	}
	_ = bar.Add(1)

	month := model.MonthOf(now)
	budget := &model.Budget{
		CategoryID: categoryIDs["Comida"],
		Amount:     decimal.NewFromInt(4000),
		Month:      month,
	}
	if err := engine.SetBudget(ctx, budget); err != nil {
		return fmt.Errorf("failed to seed budget: %w", err)
	}
	_ = bar.Add(1)

	common.LogInfo("demo data seeded", common.Fields{
		"accounts":     len(accounts),
		"categories":   len(categories),
		"transactions": len(transactions),
	})
	return bar.Finish()
}
