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

// CreateGoal inserts a new savings goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateString(goal.ID, "goal.ID"); err != nil {
		return err
	}

	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount, current_amount, deadline, icon, target_account_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.Name,
		decimalToDB(goal.TargetAmount),
		decimalToDB(goal.CurrentAmount),
		nullableTime(goal.Deadline),
		nullableString(goal.Icon),
		nullableString(goal.TargetAccountID),
		goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	slog.Debug("created goal", "id", goal.ID, "name", goal.Name)
	return nil
}

// GetGoals returns all savings goals ordered by creation.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline, icon, target_account_id, created_at
		FROM goals
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// GetGoalByID returns one goal, or nil if it does not exist.
func (s *SQLiteStorage) GetGoalByID(ctx context.Context, id string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline, icon, target_account_id, created_at
		FROM goals
		WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateGoal persists progress and edits to a goal.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateString(goal.ID, "goal.ID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, icon = ?, target_account_id = ?
		WHERE id = ?`,
		goal.Name,
		decimalToDB(goal.TargetAmount),
		decimalToDB(goal.CurrentAmount),
		nullableTime(goal.Deadline),
		nullableString(goal.Icon),
		nullableString(goal.TargetAccountID),
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireRowAffected(result, "goal", goal.ID)
}

func scanGoal(row rowScanner) (*model.Goal, error) {
	var goal model.Goal
	var targetAmount, currentAmount string
	var icon, targetAccountID sql.NullString
	var deadline sql.NullTime

	if err := row.Scan(
		&goal.ID,
		&goal.Name,
		&targetAmount,
		&currentAmount,
		&deadline,
		&icon,
		&targetAccountID,
		&goal.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	goal.Deadline = deadline.Time
	goal.Icon = icon.String
	goal.TargetAccountID = targetAccountID.String

	var err error
	if goal.TargetAmount, err = decimalFromDB(targetAmount); err != nil {
		return nil, err
	}
	if goal.CurrentAmount, err = decimalFromDB(currentAmount); err != nil {
		return nil, err
	}
	return &goal, nil
}
