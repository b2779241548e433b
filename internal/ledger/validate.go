package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

// Validate runs every pre-commit check for a proposed transaction. A non-nil
// error means the transaction must be rejected with no state change.
func Validate(txn *model.Transaction, st *State, opts Options) error {
	if txn == nil {
		return common.NewValidationError("transaction", "must not be nil")
	}
	if !model.ValidTransactionType(txn.Type) {
		return common.NewValidationError("type", fmt.Sprintf("unknown transaction type %q", txn.Type))
	}
	if txn.Amount.Sign() <= 0 {
		return common.NewValidationError("amount", "must be a positive amount")
	}
	if txn.Date.IsZero() {
		return common.NewValidationError("date", "is required")
	}
	if txn.Concept == "" {
		return common.NewValidationError("concept", "is required")
	}

	switch txn.Type {
	case model.TxIncome:
		return validateIncome(txn, st)
	case model.TxExpense:
		return validateExpense(txn, st)
	case model.TxTransfer:
		return validateTransfer(txn, st, opts)
	case model.TxDebtPayment:
		return validateDebtPayment(txn, st, opts)
	}
	return nil
}

func validateIncome(txn *model.Transaction, st *State) error {
	if err := requireCategory(txn, st); err != nil {
		return err
	}
	if txn.ToAccountID == "" {
		return common.NewValidationError("toAccountId", "is required for income")
	}
	if st.Account(txn.ToAccountID) == nil {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, txn.ToAccountID)
	}
	return nil
}

func validateExpense(txn *model.Transaction, st *State) error {
	if err := requireCategory(txn, st); err != nil {
		return err
	}
	if txn.FromAccountID == "" {
		return common.NewValidationError("fromAccountId", "is required for expenses")
	}
	if !model.ValidPaymentMethod(txn.PaymentMethod) {
		return common.NewValidationError("paymentMethod", fmt.Sprintf("unknown payment method %q", txn.PaymentMethod))
	}

	account := st.Account(txn.FromAccountID)
	if account == nil {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, txn.FromAccountID)
	}

	if account.IsCreditCard() {
		available := availableCredit(account, st)
		if txn.Amount.GreaterThan(available) {
			return &common.InsufficientCreditError{
				AccountName: account.Name,
				Available:   available,
				Requested:   txn.Amount,
			}
		}
		return nil
	}

	if txn.Amount.GreaterThan(account.Balance) {
		return &common.InsufficientFundsError{
			AccountName: account.Name,
			Available:   account.Balance,
			Requested:   txn.Amount,
		}
	}
	return nil
}

func validateTransfer(txn *model.Transaction, st *State, opts Options) error {
	if txn.FromAccountID == "" || txn.ToAccountID == "" {
		return common.NewValidationError("accounts", "transfers need both a source and a destination account")
	}
	if txn.FromAccountID == txn.ToAccountID {
		return common.NewValidationError("accounts", "cannot transfer an account to itself")
	}

	source := st.Account(txn.FromAccountID)
	if source == nil {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, txn.FromAccountID)
	}
	if st.Account(txn.ToAccountID) == nil {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, txn.ToAccountID)
	}

	if opts.StrictOverdraft && !source.IsCreditCard() && txn.Amount.GreaterThan(source.Balance) {
		return &common.InsufficientFundsError{
			AccountName: source.Name,
			Available:   source.Balance,
			Requested:   txn.Amount,
		}
	}
	return nil
}

func validateDebtPayment(txn *model.Transaction, st *State, opts Options) error {
	if txn.DebtID == "" {
		return common.NewValidationError("debtId", "is required for debt payments")
	}
	if st.Debt(txn.DebtID) == nil {
		return fmt.Errorf("%w: debt %s", common.ErrNotFound, txn.DebtID)
	}

	if txn.FromAccountID == "" {
		return nil
	}
	source := st.Account(txn.FromAccountID)
	if source == nil {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, txn.FromAccountID)
	}
	if opts.StrictOverdraft && !source.IsCreditCard() && txn.Amount.GreaterThan(source.Balance) {
		return &common.InsufficientFundsError{
			AccountName: source.Name,
			Available:   source.Balance,
			Requested:   txn.Amount,
		}
	}
	return nil
}

func requireCategory(txn *model.Transaction, st *State) error {
	if txn.CategoryID == "" {
		return common.NewValidationError("categoryId", fmt.Sprintf("is required for %s transactions", txn.Type))
	}
	if st.Category(txn.CategoryID) == nil {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, txn.CategoryID)
	}
	return nil
}

// availableCredit is the card's limit minus the sum of its active credit card
// debt balances.
func availableCredit(account *model.Account, st *State) decimal.Decimal {
	used := decimal.Zero
	for i := range st.Debts {
		d := &st.Debts[i]
		if d.AccountID == account.ID && d.Type == model.DebtCreditCard && d.Status == model.DebtActive {
			used = used.Add(d.CurrentBalance)
		}
	}
	return account.CreditLimit.Sub(used)
}
