// Package model defines the core domain types for the finance ledger.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of account.
type AccountType string

const (
	// AccountCash represents physical cash on hand.
	AccountCash AccountType = "cash"
	// AccountBank represents a checking account.
	AccountBank AccountType = "bank"
	// AccountDebit represents a debit card account.
	AccountDebit AccountType = "debit"
	// AccountCreditCard represents a credit card. Balance tracks available
	// credit, not a debt figure; the outstanding debt lives in a Debt record.
	AccountCreditCard AccountType = "credit_card"
	// AccountSavings represents a savings account.
	AccountSavings AccountType = "savings"
)

// Account represents a place money lives (or, for credit cards, a credit line).
// Balances are mutated only by the ledger engine in response to transactions.
type Account struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Type        AccountType
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal // credit_card only; zero means no limit configured
	IsArchived  bool
}

// IsCreditCard reports whether the account is a credit card.
func (a *Account) IsCreditCard() bool {
	return a.Type == AccountCreditCard
}

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountCash, AccountBank, AccountDebit, AccountCreditCard, AccountSavings:
		return true
	default:
		return false
	}
}
