package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ronaldlvm7/finance-app/internal/config"
	"github.com/ronaldlvm7/finance-app/internal/ledger"
	"github.com/ronaldlvm7/finance-app/internal/model"
	"github.com/ronaldlvm7/finance-app/internal/service"
	"github.com/ronaldlvm7/finance-app/internal/storage"
)

const defaultDatabasePath = "~/.local/share/finz/finz.db"

// initStorage opens the SQLite database and runs pending migrations.
// Callers own the returned storage and must Close it.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = defaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine wires a ledger engine on top of freshly opened storage.
func initEngine(ctx context.Context) (*ledger.Engine, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	engine, err := ledger.New(store, ledger.Options{
		StrictOverdraft: viper.GetBool("ledger.strict_overdraft"),
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return engine, store, nil
}

// parseAmount parses a positive decimal money amount from a CLI argument.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// parseDate accepts YYYY-MM-DD, defaulting to today when empty.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", raw, err)
	}
	return t, nil
}

// parseMonthFlag accepts YYYY-MM, defaulting to the current month when empty.
func parseMonthFlag(raw string) (model.Month, error) {
	if raw == "" {
		return model.MonthOf(time.Now().UTC()), nil
	}
	return model.ParseMonth(raw)
}

// resolveAccount finds an account by exact name (case-insensitive) or by id.
func resolveAccount(ctx context.Context, store service.Storage, ref string) (*model.Account, error) {
	if ref == "" {
		return nil, fmt.Errorf("account is required")
	}

	accounts, err := store.GetAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		a := &accounts[i]
		if a.ID == ref || strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no account named %q", ref)
}

// resolveCategory finds a category by exact name (case-insensitive) or by id.
func resolveCategory(ctx context.Context, store service.Storage, ref string) (*model.Category, error) {
	if ref == "" {
		return nil, fmt.Errorf("category is required")
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		c := &categories[i]
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no category named %q", ref)
}

// resolveDebt finds a debt by exact name (case-insensitive) or by id.
func resolveDebt(ctx context.Context, store service.Storage, ref string) (*model.Debt, error) {
	if ref == "" {
		return nil, fmt.Errorf("debt is required")
	}

	debts, err := store.GetDebts(ctx, true)
	if err != nil {
		return nil, err
	}

	for i := range debts {
		d := &debts[i]
		if d.ID == ref || strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no debt named %q", ref)
}

// resolveTransactionID accepts a full transaction id or the unambiguous
// prefix printed by the list command.
func resolveTransactionID(ctx context.Context, store service.Storage, ref string) (string, error) {
	if txn, err := store.GetTransactionByID(ctx, ref); err != nil {
		return "", err
	} else if txn != nil {
		return txn.ID, nil
	}

	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return "", err
	}

	var match string
	for i := range transactions {
		if strings.HasPrefix(transactions[i].ID, ref) {
			if match != "" {
				return "", fmt.Errorf("transaction id prefix %q is ambiguous", ref)
			}
			match = transactions[i].ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no transaction with id %q", ref)
	}
	return match, nil
}

// shortID renders the first 8 chars of a uuid for list output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
