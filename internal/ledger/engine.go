package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

// Engine applies ledger operations against storage. All writers go through a
// single mutex so operations are strictly sequential, and every multi-step
// mutation is handed to storage as one atomic change set. The engine keeps no
// state between operations: each one re-reads the current snapshot.
type Engine struct {
	storage service.Storage
	opts    Options
	mu      sync.Mutex
}

// New creates a ledger engine backed by the given storage.
func New(storage service.Storage, opts Options) (*Engine, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	return &Engine{storage: storage, opts: opts}, nil
}

// loadState reads the full evaluation snapshot from storage. Archived accounts
// are included: they are excluded from aggregation, not from history.
func (e *Engine) loadState(ctx context.Context) (*State, error) {
	accounts, err := e.storage.GetAccounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	debts, err := e.storage.GetDebts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}
	categories, err := e.storage.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return &State{Accounts: accounts, Debts: debts, Categories: categories}, nil
}

// RecordTransaction validates the transaction, computes its effect, and
// persists the row together with all balance mutations atomically. On any
// rejection no state changes.
func (e *Engine) RecordTransaction(ctx context.Context, txn *model.Transaction) (*model.ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.loadState(ctx)
	if err != nil {
		return nil, err
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	txn.Date = truncateToDay(txn.Date)

	changes, err := Apply(txn, st, e.opts)
	if err != nil {
		return nil, err
	}

	if err := e.storage.ApplyTransaction(ctx, txn, changes); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	slog.Info("recorded transaction",
		"id", txn.ID,
		"type", txn.Type,
		"amount", txn.Amount.StringFixed(2),
		"new_debt", changes.NewDebt != nil)
	return changes, nil
}

// DeleteTransaction removes a transaction and applies its compensating
// reversal in the same storage transaction, so account and debt balances stay
// equal to the sum of surviving transactions.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn, err := e.storage.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	st, err := e.loadState(ctx)
	if err != nil {
		return err
	}

	reversal, err := Reverse(txn, st)
	if err != nil {
		return err
	}

	if err := e.storage.DeleteTransaction(ctx, txn, reversal); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	slog.Info("deleted transaction", "id", id, "type", txn.Type)
	return nil
}

// AddAccount validates and persists a new account.
func (e *Engine) AddAccount(ctx context.Context, account *model.Account) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if account.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if !model.ValidAccountType(account.Type) {
		return common.NewValidationError("type", fmt.Sprintf("unknown account type %q", account.Type))
	}
	if account.IsCreditCard() && account.CreditLimit.Sign() <= 0 {
		return common.NewValidationError("creditLimit", "credit cards need a positive credit limit")
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	return e.storage.CreateAccount(ctx, account)
}

// UpdateAccount renames an account or corrects its balance by hand.
func (e *Engine) UpdateAccount(ctx context.Context, account *model.Account) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if account.ID == "" {
		return common.NewValidationError("id", "is required")
	}
	if account.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	return e.storage.UpdateAccount(ctx, account)
}

// ArchiveAccount hides an account from balance aggregation while keeping its
// history.
func (e *Engine) ArchiveAccount(ctx context.Context, id string, archived bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.storage.SetAccountArchived(ctx, id, archived)
}

// AddDebt validates and persists a manually tracked debt.
func (e *Engine) AddDebt(ctx context.Context, debt *model.Debt) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if debt.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if !model.ValidDebtType(debt.Type) {
		return common.NewValidationError("type", fmt.Sprintf("unknown debt type %q", debt.Type))
	}
	if debt.TotalAmount.Sign() < 0 || debt.CurrentBalance.Sign() < 0 {
		return common.NewValidationError("amount", "must not be negative")
	}
	if debt.DueDate < 0 || debt.DueDate > 31 {
		return common.NewValidationError("dueDate", "must be a day of month between 1 and 31")
	}
	if debt.Status == "" {
		debt.Status = model.DebtActive
	}
	if !model.ValidDebtStatus(debt.Status) {
		return common.NewValidationError("status", fmt.Sprintf("unknown debt status %q", debt.Status))
	}
	if debt.AccountID != "" {
		account, err := e.storage.GetAccountByID(ctx, debt.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: account %s", common.ErrNotFound, debt.AccountID)
		}
	}

	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}
	return e.storage.CreateDebt(ctx, debt)
}

// UpdateDebt persists user edits to a debt (status, balance corrections).
func (e *Engine) UpdateDebt(ctx context.Context, debt *model.Debt) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if debt.ID == "" {
		return common.NewValidationError("id", "is required")
	}
	if !model.ValidDebtStatus(debt.Status) {
		return common.NewValidationError("status", fmt.Sprintf("unknown debt status %q", debt.Status))
	}
	return e.storage.UpdateDebt(ctx, debt)
}

// AddCategory creates a category. Parent references must point at an existing
// top-level category.
func (e *Engine) AddCategory(ctx context.Context, category *model.Category) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if category.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if category.ParentID != "" {
		parent, err := e.storage.GetCategoryByID(ctx, category.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("%w: category %s", common.ErrNotFound, category.ParentID)
		}
		if parent.ParentID != "" {
			return common.NewValidationError("parentId", "categories nest one level deep")
		}
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	return e.storage.CreateCategory(ctx, category)
}

// AddGoal creates a savings goal.
func (e *Engine) AddGoal(ctx context.Context, goal *model.Goal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if goal.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if goal.TargetAmount.Sign() <= 0 {
		return common.NewValidationError("targetAmount", "must be a positive amount")
	}
	if goal.CurrentAmount.Sign() < 0 {
		return common.NewValidationError("currentAmount", "must not be negative")
	}

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	return e.storage.CreateGoal(ctx, goal)
}

// AddGoalProgress moves a goal's saved amount by the given delta.
func (e *Engine) AddGoalProgress(ctx context.Context, id string, amount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	goal, err := e.storage.GetGoalByID(ctx, id)
	if err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal %s", common.ErrNotFound, id)
	}

	updated := goal.CurrentAmount.Add(amount)
	if updated.Sign() < 0 {
		return common.NewValidationError("amount", "would make the saved amount negative")
	}
	goal.CurrentAmount = updated
	return e.storage.UpdateGoal(ctx, goal)
}

// SetBudget upserts the spending ceiling for one category and month.
func (e *Engine) SetBudget(ctx context.Context, budget *model.Budget) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if budget.CategoryID == "" {
		return common.NewValidationError("categoryId", "is required")
	}
	if budget.Amount.Sign() <= 0 {
		return common.NewValidationError("amount", "must be a positive amount")
	}
	if _, err := model.ParseMonth(budget.Month.String()); err != nil {
		return common.NewValidationError("month", err.Error())
	}
	category, err := e.storage.GetCategoryByID(ctx, budget.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, budget.CategoryID)
	}

	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	return e.storage.SetBudget(ctx, budget)
}

// ClearAllData irreversibly deletes every row for this user.
func (e *Engine) ClearAllData(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.storage.ClearAllData(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	slog.Warn("cleared all user data")
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
