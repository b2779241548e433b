package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies how a transaction moves money.
type TransactionType string

const (
	// TxIncome credits a destination account.
	TxIncome TransactionType = "income"
	// TxExpense debits a source account (or a credit line).
	TxExpense TransactionType = "expense"
	// TxTransfer moves money between two accounts.
	TxTransfer TransactionType = "transfer"
	// TxDebtPayment pays down a tracked debt.
	TxDebtPayment TransactionType = "debt_payment"
)

// PaymentMethod identifies how an expense was paid.
type PaymentMethod string

const (
	// PayCash is an expense paid with physical cash.
	PayCash PaymentMethod = "cash"
	// PayDebit is an expense paid with a debit card.
	PayDebit PaymentMethod = "debit"
	// PayCredit is an expense charged to a credit card.
	PayCredit PaymentMethod = "credit"
)

// Transaction is a single recorded money movement. Amount is always a positive
// magnitude; direction comes from Type. Transactions are immutable once
// recorded; deleting one applies a compensating reversal.
type Transaction struct {
	Date          time.Time // calendar day, no time component
	CreatedAt     time.Time
	ID            string
	Type          TransactionType
	Amount        decimal.Decimal
	Concept       string
	Description   string
	CategoryID    string        // required for income/expense
	FromAccountID string        // source of funds, or the card account for credit expenses
	ToAccountID   string        // destination for transfers/income
	PaymentMethod PaymentMethod // expense only
	DebtID        string        // debt_payment only
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer, TxDebtPayment:
		return true
	default:
		return false
	}
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayDebit, PayCredit:
		return true
	default:
		return false
	}
}
