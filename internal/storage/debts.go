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

// CreateDebt inserts a new debt.
func (s *SQLiteStorage) CreateDebt(ctx context.Context, debt *model.Debt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if debt == nil {
		return fmt.Errorf("%w: debt", ErrNilParameter)
	}
	if err := validateString(debt.ID, "debt.ID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.insertDebtTx(ctx, tx, debt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit debt: %w", err)
	}

	slog.Debug("created debt", "id", debt.ID, "name", debt.Name, "type", debt.Type)
	return nil
}

func (s *SQLiteStorage) insertDebtTx(ctx context.Context, tx *sql.Tx, debt *model.Debt) error {
	if debt.CreatedAt.IsZero() {
		debt.CreatedAt = time.Now().UTC()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO debts
			(id, name, type, total_amount, current_balance, status, interest_rate,
			 due_date, installments, installments_paid, notes, start_date, account_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID,
		debt.Name,
		string(debt.Type),
		decimalToDB(debt.TotalAmount),
		decimalToDB(debt.CurrentBalance),
		string(debt.Status),
		nullableDecimalToDB(debt.InterestRate),
		nullableInt(debt.DueDate),
		nullableInt(debt.Installments),
		nullableInt(debt.InstallmentsPaid),
		nullableString(debt.Notes),
		nullableTime(debt.StartDate),
		nullableString(debt.AccountID),
		debt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

// GetDebts returns debts, excluding cancelled ones unless includeSettled is
// set (which also keeps paid debts in the result either way; only cancelled
// records are hidden from the default view).
func (s *SQLiteStorage) GetDebts(ctx context.Context, includeSettled bool) ([]model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, total_amount, current_balance, status, interest_rate,
		       due_date, installments, installments_paid, notes, start_date, account_id, created_at
		FROM debts`
	if !includeSettled {
		query += ` WHERE status = 'active'`
	} else {
		query += ` WHERE status != 'cancelled'`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var debts []model.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *debt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

// GetDebtByID returns one debt, or nil if it does not exist.
func (s *SQLiteStorage) GetDebtByID(ctx context.Context, id string) (*model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, total_amount, current_balance, status, interest_rate,
		       due_date, installments, installments_paid, notes, start_date, account_id, created_at
		FROM debts
		WHERE id = ?`, id)

	debt, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// GetActiveCreditCardDebt resolves the active credit card debt linked to an
// account, or nil if the card carries none. Looked up fresh on every call: the
// link is (account, type, status), never a stored 1:1 reference.
func (s *SQLiteStorage) GetActiveCreditCardDebt(ctx context.Context, accountID string) (*model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, total_amount, current_balance, status, interest_rate,
		       due_date, installments, installments_paid, notes, start_date, account_id, created_at
		FROM debts
		WHERE account_id = ? AND type = 'credit_card' AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1`, accountID)

	debt, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// UpdateDebt persists edits to a debt.
func (s *SQLiteStorage) UpdateDebt(ctx context.Context, debt *model.Debt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if debt == nil {
		return fmt.Errorf("%w: debt", ErrNilParameter)
	}
	if err := validateString(debt.ID, "debt.ID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE debts
		SET name = ?, total_amount = ?, current_balance = ?, status = ?,
		    due_date = ?, installments = ?, installments_paid = ?, notes = ?
		WHERE id = ?`,
		debt.Name,
		decimalToDB(debt.TotalAmount),
		decimalToDB(debt.CurrentBalance),
		string(debt.Status),
		nullableInt(debt.DueDate),
		nullableInt(debt.Installments),
		nullableInt(debt.InstallmentsPaid),
		nullableString(debt.Notes),
		debt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	return requireRowAffected(result, "debt", debt.ID)
}

func scanDebt(row rowScanner) (*model.Debt, error) {
	var debt model.Debt
	var debtType, status, totalAmount, currentBalance string
	var interestRate, notes, accountID sql.NullString
	var dueDate, installments, installmentsPaid sql.NullInt64
	var startDate sql.NullTime

	if err := row.Scan(
		&debt.ID,
		&debt.Name,
		&debtType,
		&totalAmount,
		&currentBalance,
		&status,
		&interestRate,
		&dueDate,
		&installments,
		&installmentsPaid,
		&notes,
		&startDate,
		&accountID,
		&debt.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan debt: %w", err)
	}

	debt.Type = model.DebtType(debtType)
	debt.Status = model.DebtStatus(status)
	debt.Notes = notes.String
	debt.AccountID = accountID.String
	debt.DueDate = int(dueDate.Int64)
	debt.Installments = int(installments.Int64)
	debt.InstallmentsPaid = int(installmentsPaid.Int64)
	debt.StartDate = startDate.Time

	var err error
	if debt.TotalAmount, err = decimalFromDB(totalAmount); err != nil {
		return nil, err
	}
	if debt.CurrentBalance, err = decimalFromDB(currentBalance); err != nil {
		return nil, err
	}
	if debt.InterestRate, err = decimalFromDB(interestRate.String); err != nil {
		return nil, err
	}
	return &debt, nil
}
