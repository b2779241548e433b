package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

func TestAccountRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	account := testAccount("a1", "BBVA Crédito", model.AccountCreditCard, "0")
	account.CreditLimit = dec("20000")
	require.NoError(t, store.CreateAccount(ctx, account))

	got, err := store.GetAccountByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "BBVA Crédito", got.Name)
	assert.Equal(t, model.AccountCreditCard, got.Type)
	assert.True(t, got.Balance.Equal(dec("0")))
	assert.True(t, got.CreditLimit.Equal(dec("20000")))
	assert.False(t, got.IsArchived)
}

func TestGetAccountByIDMissing(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetAccountByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateAccount(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	account := testAccount("a1", "Efectivo", model.AccountCash, "500")
	require.NoError(t, store.CreateAccount(ctx, account))

	account.Name = "Cartera"
	account.Balance = dec("750.25")
	require.NoError(t, store.UpdateAccount(ctx, account))

	got, err := store.GetAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Cartera", got.Name)
	assert.True(t, got.Balance.Equal(dec("750.25")))
}

func TestUpdateAccountMissing(t *testing.T) {
	store := newTestStorage(t)

	account := testAccount("nope", "Ghost", model.AccountCash, "0")
	err := store.UpdateAccount(context.Background(), account)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestArchivedAccountsAreFiltered(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("a1", "Activa", model.AccountCash, "100")))
	require.NoError(t, store.CreateAccount(ctx, testAccount("a2", "Vieja", model.AccountBank, "0")))
	require.NoError(t, store.SetAccountArchived(ctx, "a2", true))

	active, err := store.GetAccounts(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Activa", active[0].Name)

	all, err := store.GetAccounts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Archived account history is intact, not deleted.
	require.NoError(t, store.SetAccountArchived(ctx, "a2", false))
	active, err = store.GetAccounts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestCreateAccountDuplicateID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, testAccount("a1", "Uno", model.AccountCash, "0")))
	err := store.CreateAccount(ctx, testAccount("a1", "Dos", model.AccountCash, "0"))
	require.Error(t, err)
}
