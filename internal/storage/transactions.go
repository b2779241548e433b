package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
)

// ApplyTransaction persists the transaction row together with every mutation
// in the change set inside one SQL transaction. Either all of it lands or
// none of it does: a failed debt update cannot leave a half-applied expense.
func (s *SQLiteStorage) ApplyTransaction(ctx context.Context, txn *model.Transaction, changes *model.ChangeSet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if changes == nil {
		return fmt.Errorf("%w: changes", ErrNilParameter)
	}
	if err := validateString(txn.ID, "transaction.ID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO transactions
			(id, date, type, amount, concept, description, category_id,
			 from_account_id, to_account_id, payment_method, debt_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		txn.Date,
		string(txn.Type),
		decimalToDB(txn.Amount),
		txn.Concept,
		nullableString(txn.Description),
		nullableString(txn.CategoryID),
		nullableString(txn.FromAccountID),
		nullableString(txn.ToAccountID),
		nullableString(string(txn.PaymentMethod)),
		nullableString(txn.DebtID),
		txn.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := s.applyChangeSetTx(ctx, tx, changes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("applied transaction", "id", txn.ID,
		"account_deltas", len(changes.AccountDeltas),
		"debt_updates", len(changes.DebtUpdates))
	return nil
}

// DeleteTransaction removes the row and applies the compensating reversal in
// the same SQL transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, txn *model.Transaction, reversal *model.ChangeSet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if reversal == nil {
		return fmt.Errorf("%w: reversal", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := requireRowAffected(result, "transaction", txn.ID); err != nil {
		return err
	}

	if err := s.applyChangeSetTx(ctx, tx, reversal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	slog.Debug("deleted transaction", "id", txn.ID)
	return nil
}

// applyChangeSetTx applies account deltas, debt updates and any new debt
// inside an open SQL transaction. Balance updates are read-modify-write, which
// is safe here: the caller holds the only write path and the surrounding SQL
// transaction makes the sequence atomic.
func (s *SQLiteStorage) applyChangeSetTx(ctx context.Context, tx *sql.Tx, changes *model.ChangeSet) error {
	for _, delta := range changes.AccountDeltas {
		var balance string
		err := tx.QueryRowContext(ctx,
			`SELECT balance FROM accounts WHERE id = ?`, delta.AccountID).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: account %s", common.ErrNotFound, delta.AccountID)
		}
		if err != nil {
			return fmt.Errorf("failed to read account balance: %w", err)
		}

		current, err := decimalFromDB(balance)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET balance = ? WHERE id = ?`,
			decimalToDB(current.Add(delta.Delta)), delta.AccountID); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}
	}

	for _, update := range changes.DebtUpdates {
		result, err := tx.ExecContext(ctx, `
			UPDATE debts
			SET current_balance = ?, total_amount = ?, status = ?, installments_paid = ?
			WHERE id = ?`,
			decimalToDB(update.CurrentBalance),
			decimalToDB(update.TotalAmount),
			string(update.Status),
			nullableInt(update.InstallmentsPaid),
			update.DebtID,
		)
		if err != nil {
			return fmt.Errorf("failed to update debt: %w", err)
		}
		if err := requireRowAffected(result, "debt", update.DebtID); err != nil {
			return err
		}
	}

	if changes.NewDebt != nil {
		if err := s.insertDebtTx(ctx, tx, changes.NewDebt); err != nil {
			return err
		}
	}

	return nil
}

// GetTransactions returns transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, type, amount, concept, description, category_id,
		       from_account_id, to_account_id, payment_method, debt_id, created_at
		FROM transactions
		WHERE 1=1`
	var args []any

	if filter.Month != nil {
		start := filter.Month.Start()
		end := filter.Month.Next().Start()
		query += ` AND date >= ? AND date < ?`
		args = append(args, start, end)
	}
	if filter.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND date < ?`
		args = append(args, *filter.EndDate)
	}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filter.Type))
	}
	if filter.AccountID != "" {
		query += ` AND (from_account_id = ? OR to_account_id = ?)`
		args = append(args, filter.AccountID, filter.AccountID)
	}

	query += ` ORDER BY date DESC, created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// GetTransactionByID returns one transaction, or nil if it does not exist.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, type, amount, concept, description, category_id,
		       from_account_id, to_account_id, payment_method, debt_id, created_at
		FROM transactions
		WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType, amount string
	var description, categoryID, fromAccountID, toAccountID, paymentMethod, debtID sql.NullString

	if err := row.Scan(
		&txn.ID,
		&txn.Date,
		&txnType,
		&amount,
		&txn.Concept,
		&description,
		&categoryID,
		&fromAccountID,
		&toAccountID,
		&paymentMethod,
		&debtID,
		&txn.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = model.TransactionType(txnType)
	txn.Description = description.String
	txn.CategoryID = categoryID.String
	txn.FromAccountID = fromAccountID.String
	txn.ToAccountID = toAccountID.String
	txn.PaymentMethod = model.PaymentMethod(paymentMethod.String)
	txn.DebtID = debtID.String

	var err error
	if txn.Amount, err = decimalFromDB(amount); err != nil {
		return nil, err
	}
	return &txn, nil
}
