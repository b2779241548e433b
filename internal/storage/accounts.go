package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

// CreateAccount inserts a new account.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if err := validateString(account.ID, "account.ID"); err != nil {
		return err
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, balance, credit_limit, is_archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Name,
		string(account.Type),
		decimalToDB(account.Balance),
		nullableDecimalToDB(account.CreditLimit),
		account.IsArchived,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	slog.Debug("created account", "id", account.ID, "name", account.Name, "type", account.Type)
	return nil
}

// GetAccounts returns all accounts, newest last. Archived accounts are
// included only when asked for.
func (s *SQLiteStorage) GetAccounts(ctx context.Context, includeArchived bool) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, balance, credit_limit, is_archived, created_at
		FROM accounts`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountByID returns one account, or nil if it does not exist.
func (s *SQLiteStorage) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, balance, credit_limit, is_archived, created_at
		FROM accounts
		WHERE id = ?`, id)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccount persists name, balance and credit limit edits.
func (s *SQLiteStorage) UpdateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if err := validateString(account.ID, "account.ID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, balance = ?, credit_limit = ?
		WHERE id = ?`,
		account.Name,
		decimalToDB(account.Balance),
		nullableDecimalToDB(account.CreditLimit),
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireRowAffected(result, "account", account.ID)
}

// SetAccountArchived toggles the archive flag. Archived accounts keep their
// history and stay addressable by the engine.
func (s *SQLiteStorage) SetAccountArchived(ctx context.Context, id string, archived bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET is_archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return fmt.Errorf("failed to archive account: %w", err)
	}
	return requireRowAffected(result, "account", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var account model.Account
	var balance string
	var creditLimit sql.NullString
	var accountType string

	if err := row.Scan(
		&account.ID,
		&account.Name,
		&accountType,
		&balance,
		&creditLimit,
		&account.IsArchived,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	account.Type = model.AccountType(accountType)

	var err error
	if account.Balance, err = decimalFromDB(balance); err != nil {
		return nil, err
	}
	if account.CreditLimit, err = decimalFromDB(creditLimit.String); err != nil {
		return nil, err
	}
	return &account, nil
}

func requireRowAffected(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", common.ErrNotFound, entity, id)
	}
	return nil
}
