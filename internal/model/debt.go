package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtType identifies who or what the money is owed to.
type DebtType string

const (
	// DebtBank is a bank loan.
	DebtBank DebtType = "bank"
	// DebtFriend is an informal loan from a person.
	DebtFriend DebtType = "friend"
	// DebtInstallments is a purchase paid off in fixed installments.
	DebtInstallments DebtType = "installments"
	// DebtSubscription is a recurring charge; TotalAmount holds the recurring
	// amount and CurrentBalance stays at zero (subscriptions are not amortized).
	DebtSubscription DebtType = "subscription"
	// DebtCreditCard is the outstanding balance of a linked credit card account.
	DebtCreditCard DebtType = "credit_card"
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	// DebtActive means the debt still has an outstanding balance.
	DebtActive DebtStatus = "active"
	// DebtPaid means the balance reached zero (or went below; overpayment is
	// preserved rather than clamped).
	DebtPaid DebtStatus = "paid"
	// DebtCancelled means the debt was written off by the user.
	DebtCancelled DebtStatus = "cancelled"
)

// Debt represents money owed. A credit card account has at most one active
// linked Debt at a time, looked up by (AccountID, type, status), never assumed
// to be a static 1:1 relationship.
type Debt struct {
	CreatedAt        time.Time
	StartDate        time.Time // zero if unknown
	ID               string
	Name             string
	Type             DebtType
	TotalAmount      decimal.Decimal // original principal, or recurring charge for subscriptions
	CurrentBalance   decimal.Decimal // outstanding amount
	Status           DebtStatus
	InterestRate     decimal.Decimal // informational only, no accrual
	Notes            string
	AccountID        string // linked credit card account for credit_card debts
	DueDate          int    // day of month 1-31, 0 if unset
	Installments     int    // 0 if not an installment plan
	InstallmentsPaid int
}

// IsActive reports whether the debt still counts toward liabilities.
func (d *Debt) IsActive() bool {
	return d.Status == DebtActive
}

// ValidDebtType reports whether t is a known debt type.
func ValidDebtType(t DebtType) bool {
	switch t {
	case DebtBank, DebtFriend, DebtInstallments, DebtSubscription, DebtCreditCard:
		return true
	default:
		return false
	}
}

// ValidDebtStatus reports whether s is a known debt status.
func ValidDebtStatus(s DebtStatus) bool {
	switch s {
	case DebtActive, DebtPaid, DebtCancelled:
		return true
	default:
		return false
	}
}
