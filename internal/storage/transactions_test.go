package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

func TestApplyTransactionMutatesBalances(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("a1", "Efectivo", model.AccountCash, "500")))

	txn := testTransaction("t1")
	txn.FromAccountID = "a1"
	txn.PaymentMethod = model.PayCash
	changes := &model.ChangeSet{}
	changes.AddAccountDelta("a1", dec("-100"))

	require.NoError(t, store.ApplyTransaction(ctx, txn, changes))

	account, err := store.GetAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("400")))

	got, err := store.GetTransactionByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.TxExpense, got.Type)
	assert.True(t, got.Amount.Equal(dec("100")))
	assert.Equal(t, "a1", got.FromAccountID)
}

// A change set that fails half way must not leave the transaction row behind.
func TestApplyTransactionIsAtomic(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("a1", "Efectivo", model.AccountCash, "500")))

	txn := testTransaction("t1")
	changes := &model.ChangeSet{}
	changes.AddAccountDelta("a1", dec("-100"))
	changes.DebtUpdates = append(changes.DebtUpdates, model.DebtUpdate{
		DebtID:         "missing",
		CurrentBalance: dec("0"),
		TotalAmount:    dec("0"),
		Status:         model.DebtPaid,
	})

	err := store.ApplyTransaction(ctx, txn, changes)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Nothing was committed: the balance and the transaction table are untouched.
	account, getErr := store.GetAccountByID(ctx, "a1")
	require.NoError(t, getErr)
	assert.True(t, account.Balance.Equal(dec("500")))

	got, getErr := store.GetTransactionByID(ctx, "t1")
	require.NoError(t, getErr)
	assert.Nil(t, got)
}

func TestApplyTransactionInsertsNewDebt(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("cc", "Tarjeta", model.AccountCreditCard, "0")))

	txn := testTransaction("t1")
	txn.FromAccountID = "cc"
	txn.PaymentMethod = model.PayCredit
	changes := &model.ChangeSet{
		NewDebt: &model.Debt{
			ID:             "d1",
			Name:           "Deuda Tarjeta",
			Type:           model.DebtCreditCard,
			TotalAmount:    dec("100"),
			CurrentBalance: dec("100"),
			Status:         model.DebtActive,
			AccountID:      "cc",
			StartDate:      txn.Date,
		},
	}
	changes.AddAccountDelta("cc", dec("-100"))

	require.NoError(t, store.ApplyTransaction(ctx, txn, changes))

	debt, err := store.GetDebtByID(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, debt)
	assert.Equal(t, "Deuda Tarjeta", debt.Name)
	assert.True(t, debt.CurrentBalance.Equal(dec("100")))
}

func TestDeleteTransactionAppliesReversal(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("a1", "Efectivo", model.AccountCash, "500")))

	txn := testTransaction("t1")
	changes := &model.ChangeSet{}
	changes.AddAccountDelta("a1", dec("-100"))
	require.NoError(t, store.ApplyTransaction(ctx, txn, changes))

	reversal := &model.ChangeSet{}
	reversal.AddAccountDelta("a1", dec("100"))
	require.NoError(t, store.DeleteTransaction(ctx, txn, reversal))

	account, err := store.GetAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("500")))

	got, err := store.GetTransactionByID(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteTransactionMissing(t *testing.T) {
	store := newTestStorage(t)

	err := store.DeleteTransaction(context.Background(), testTransaction("nope"), &model.ChangeSet{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetTransactionsFilters(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	mkTxn := func(id string, txnType model.TransactionType, date time.Time, from, to string) *model.Transaction {
		return &model.Transaction{
			ID:            id,
			Type:          txnType,
			Amount:        dec("10"),
			Concept:       "c " + id,
			Date:          date,
			FromAccountID: from,
			ToAccountID:   to,
			CreatedAt:     time.Now().UTC(),
		}
	}

	june := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.ApplyTransaction(ctx, mkTxn("t1", model.TxExpense, june, "a1", ""), &model.ChangeSet{}))
	require.NoError(t, store.ApplyTransaction(ctx, mkTxn("t2", model.TxIncome, june, "", "a1"), &model.ChangeSet{}))
	require.NoError(t, store.ApplyTransaction(ctx, mkTxn("t3", model.TxExpense, july, "a2", ""), &model.ChangeSet{}))

	month := model.Month("2025-06")
	byMonth, err := store.GetTransactions(ctx, service.TransactionFilter{Month: &month})
	require.NoError(t, err)
	assert.Len(t, byMonth, 2)

	byType, err := store.GetTransactions(ctx, service.TransactionFilter{Type: model.TxExpense})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byAccount, err := store.GetTransactions(ctx, service.TransactionFilter{AccountID: "a1"})
	require.NoError(t, err)
	assert.Len(t, byAccount, 2)

	limited, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	// Newest first.
	assert.Equal(t, "t3", limited[0].ID)
}
