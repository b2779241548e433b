// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Month     *model.Month
	Type      model.TransactionType
	AccountID string
	Limit     int
	Offset    int
}

// Storage defines the contract for the persistence adapter. The ledger engine
// issues intents against it and always re-reads state after a write: the
// adapter is the single source of truth and any in-memory copy is a
// disposable cache.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccounts(ctx context.Context, includeArchived bool) ([]model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	UpdateAccount(ctx context.Context, account *model.Account) error
	SetAccountArchived(ctx context.Context, id string, archived bool) error

	// Transaction operations. ApplyTransaction persists the transaction row
	// together with every mutation in the change set, atomically.
	// DeleteTransaction removes the row and applies the compensating reversal
	// in the same storage transaction.
	ApplyTransaction(ctx context.Context, txn *model.Transaction, changes *model.ChangeSet) error
	DeleteTransaction(ctx context.Context, txn *model.Transaction, reversal *model.ChangeSet) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)

	// Debt operations
	CreateDebt(ctx context.Context, debt *model.Debt) error
	GetDebts(ctx context.Context, includeSettled bool) ([]model.Debt, error)
	GetDebtByID(ctx context.Context, id string) (*model.Debt, error)
	GetActiveCreditCardDebt(ctx context.Context, accountID string) (*model.Debt, error)
	UpdateDebt(ctx context.Context, debt *model.Debt) error

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoals(ctx context.Context) ([]model.Goal, error)
	GetGoalByID(ctx context.Context, id string) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error

	// Budget operations. SetBudget upserts on (CategoryID, Month).
	SetBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, month model.Month) ([]model.Budget, error)

	// Database management
	ClearAllData(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
