package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

// newTestStorage opens a migrated throwaway database for one test.
func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAccount(id, name string, accountType model.AccountType, balance string) *model.Account {
	return &model.Account{
		ID:        id,
		Name:      name,
		Type:      accountType,
		Balance:   dec(balance),
		CreatedAt: time.Now().UTC(),
	}
}

func testTransaction(id string) *model.Transaction {
	return &model.Transaction{
		ID:        id,
		Type:      model.TxExpense,
		Amount:    dec("100"),
		Concept:   "test expense",
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Running migrations again must be a no-op.
	require.NoError(t, store.Migrate(ctx))

	var version int
	err := store.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	require.NoError(t, err)
	require.Equal(t, ExpectedSchemaVersion, version)
}

func TestClearAllData(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("a1", "Cash", model.AccountCash, "500")))
	require.NoError(t, store.CreateCategory(ctx, &model.Category{ID: "c1", Name: "Comida"}))

	txn := testTransaction("t1")
	txn.FromAccountID = "a1"
	txn.CategoryID = "c1"
	txn.PaymentMethod = model.PayCash
	changes := &model.ChangeSet{}
	changes.AddAccountDelta("a1", dec("-100"))
	require.NoError(t, store.ApplyTransaction(ctx, txn, changes))

	require.NoError(t, store.ClearAllData(ctx))

	accounts, err := store.GetAccounts(ctx, true)
	require.NoError(t, err)
	require.Empty(t, accounts)

	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Empty(t, transactions)
}
