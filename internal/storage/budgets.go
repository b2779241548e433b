package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

// SetBudget upserts the budget for (category, month). The unique index on the
// pair makes "at most one budget per category per month" a hard guarantee.
func (s *SQLiteStorage) SetBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if err := validateString(budget.ID, "budget.ID"); err != nil {
		return err
	}

	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, category_id, amount, month, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(category_id, month) DO UPDATE SET amount = excluded.amount`,
		budget.ID,
		budget.CategoryID,
		decimalToDB(budget.Amount),
		budget.Month.String(),
		budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}

	slog.Debug("set budget", "category_id", budget.CategoryID, "month", budget.Month)
	return nil
}

// GetBudgets returns the budgets for one month.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, month model.Month) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, amount, month, created_at
		FROM budgets
		WHERE month = ?
		ORDER BY category_id`, month.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func scanBudget(row rowScanner) (*model.Budget, error) {
	var budget model.Budget
	var amount, month string

	if err := row.Scan(
		&budget.ID,
		&budget.CategoryID,
		&amount,
		&month,
		&budget.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan budget: %w", err)
	}

	budget.Month = model.Month(month)

	var err error
	if budget.Amount, err = decimalFromDB(amount); err != nil {
		return nil, err
	}
	return &budget, nil
}
