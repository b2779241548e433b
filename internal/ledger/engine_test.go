package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
	"github.com/ronaldlvm7/finance-app/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	engine, err := New(store, Options{})
	require.NoError(t, err)
	return engine, store
}

func seedBasics(t *testing.T, engine *Engine) (cash, card, food string) {
	t.Helper()
	ctx := context.Background()

	cashAccount := &model.Account{Name: "Efectivo", Type: model.AccountCash, Balance: dec("500")}
	require.NoError(t, engine.AddAccount(ctx, cashAccount))

	cardAccount := &model.Account{Name: "Tarjeta", Type: model.AccountCreditCard, CreditLimit: dec("1000")}
	require.NoError(t, engine.AddAccount(ctx, cardAccount))

	category := &model.Category{Name: "Comida"}
	require.NoError(t, engine.AddCategory(ctx, category))

	return cashAccount.ID, cardAccount.ID, category.ID
}

func TestEngineCreditCardRoundTrip(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	cash, card, food := seedBasics(t, engine)

	charge := &model.Transaction{
		Type:          model.TxExpense,
		Amount:        dec("200"),
		Concept:       "Cena",
		Date:          testDate(),
		CategoryID:    food,
		FromAccountID: card,
		PaymentMethod: model.PayCredit,
	}
	changes, err := engine.RecordTransaction(ctx, charge)
	require.NoError(t, err)
	require.NotNil(t, changes.NewDebt)

	debt, err := store.GetActiveCreditCardDebt(ctx, card)
	require.NoError(t, err)
	require.NotNil(t, debt)
	assert.Equal(t, "Deuda Tarjeta", debt.Name)
	assert.True(t, debt.CurrentBalance.Equal(dec("200")))

	payment := &model.Transaction{
		Type:          model.TxTransfer,
		Amount:        dec("200"),
		Concept:       "Pago tarjeta",
		Date:          testDate(),
		FromAccountID: cash,
		ToAccountID:   card,
	}
	_, err = engine.RecordTransaction(ctx, payment)
	require.NoError(t, err)

	cashAccount, err := store.GetAccountByID(ctx, cash)
	require.NoError(t, err)
	assert.True(t, cashAccount.Balance.Equal(dec("300")))

	settled, err := store.GetDebtByID(ctx, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DebtPaid, settled.Status)
	assert.True(t, settled.CurrentBalance.Equal(dec("0")))
}

func TestEngineRejectionLeavesNoTrace(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	cash, _, food := seedBasics(t, engine)

	overdraw := &model.Transaction{
		Type:          model.TxExpense,
		Amount:        dec("9999"),
		Concept:       "Imposible",
		Date:          testDate(),
		CategoryID:    food,
		FromAccountID: cash,
		PaymentMethod: model.PayCash,
	}
	_, err := engine.RecordTransaction(ctx, overdraw)
	require.Error(t, err)
	assert.True(t, common.IsRejection(err))

	account, err := store.GetAccountByID(ctx, cash)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("500")))

	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestEngineDeleteRestoresBalances(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	cash, _, food := seedBasics(t, engine)

	expense := &model.Transaction{
		Type:          model.TxExpense,
		Amount:        dec("120"),
		Concept:       "Tacos",
		Date:          testDate(),
		CategoryID:    food,
		FromAccountID: cash,
		PaymentMethod: model.PayCash,
	}
	_, err := engine.RecordTransaction(ctx, expense)
	require.NoError(t, err)

	require.NoError(t, engine.DeleteTransaction(ctx, expense.ID))

	account, err := store.GetAccountByID(ctx, cash)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("500")))

	gone, err := store.GetTransactionByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestEngineDeleteCreditExpenseShrinksDebt(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	_, card, food := seedBasics(t, engine)

	charge := &model.Transaction{
		Type:          model.TxExpense,
		Amount:        dec("300"),
		Concept:       "Compra",
		Date:          testDate(),
		CategoryID:    food,
		FromAccountID: card,
		PaymentMethod: model.PayCredit,
	}
	changes, err := engine.RecordTransaction(ctx, charge)
	require.NoError(t, err)
	debtID := changes.NewDebt.ID

	require.NoError(t, engine.DeleteTransaction(ctx, charge.ID))

	debt, err := store.GetDebtByID(ctx, debtID)
	require.NoError(t, err)
	assert.True(t, debt.CurrentBalance.Equal(dec("0")))
	assert.Equal(t, model.DebtPaid, debt.Status)
}

func TestEngineAddAccountValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	err := engine.AddAccount(ctx, &model.Account{Type: model.AccountCash})
	require.Error(t, err)

	err = engine.AddAccount(ctx, &model.Account{Name: "x", Type: "checking"})
	require.Error(t, err)

	// Credit cards need a limit for available-credit checks to mean anything.
	err = engine.AddAccount(ctx, &model.Account{Name: "Tarjeta", Type: model.AccountCreditCard})
	require.Error(t, err)
}

func TestEngineSetBudgetRequiresCategory(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	err := engine.SetBudget(ctx, &model.Budget{
		CategoryID: "missing",
		Amount:     dec("1000"),
		Month:      model.Month("2025-06"),
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEngineGoalProgress(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	goal := &model.Goal{Name: "Viaje", TargetAmount: dec("10000")}
	require.NoError(t, engine.AddGoal(ctx, goal))

	require.NoError(t, engine.AddGoalProgress(ctx, goal.ID, dec("2500")))

	got, err := store.GetGoalByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentAmount.Equal(dec("2500")))
	assert.InDelta(t, 0.25, got.Progress().InexactFloat64(), 0.001)

	err = engine.AddGoalProgress(ctx, goal.ID, dec("-5000"))
	require.Error(t, err)
}
