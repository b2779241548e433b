// Package ledger implements the engine that translates transactions into
// account and debt balance mutations.
package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

// State is the snapshot of user data a ledger operation is evaluated against.
// It is loaded from storage immediately before each operation and discarded
// afterwards.
type State struct {
	Accounts   []model.Account
	Debts      []model.Debt
	Categories []model.Category
}

// Account returns the account with the given id, or nil.
func (s *State) Account(id string) *model.Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// Debt returns the debt with the given id, or nil.
func (s *State) Debt(id string) *model.Debt {
	for i := range s.Debts {
		if s.Debts[i].ID == id {
			return &s.Debts[i]
		}
	}
	return nil
}

// Category returns the category with the given id, or nil.
func (s *State) Category(id string) *model.Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// ActiveCreditCardDebt returns the active credit card debt linked to the
// account, or nil. The link is resolved by (accountID, type, status) on every
// call; a card that was paid off and charged again gets a fresh debt record.
func (s *State) ActiveCreditCardDebt(accountID string) *model.Debt {
	for i := range s.Debts {
		d := &s.Debts[i]
		if d.AccountID == accountID && d.Type == model.DebtCreditCard && d.Status == model.DebtActive {
			return d
		}
	}
	return nil
}

// latestCreditCardDebt returns the most recently created credit card debt for
// the account regardless of status. Used when reversing a payment that already
// settled the debt.
func (s *State) latestCreditCardDebt(accountID string) *model.Debt {
	var latest *model.Debt
	for i := range s.Debts {
		d := &s.Debts[i]
		if d.AccountID != accountID || d.Type != model.DebtCreditCard {
			continue
		}
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	return latest
}

// Options tunes engine behavior.
type Options struct {
	// StrictOverdraft rejects transfers and debt payments that would drive the
	// source account balance negative. Off by default: the historical behavior
	// allows them through.
	StrictOverdraft bool
}

// Apply computes the authoritative set of mutations for one transaction
// against the given state. It is pure apart from id generation for a newly
// created debt: nothing is persisted, and a returned error means nothing
// should be.
func Apply(txn *model.Transaction, st *State, opts Options) (*model.ChangeSet, error) {
	if err := Validate(txn, st, opts); err != nil {
		return nil, err
	}

	cs := &model.ChangeSet{}

	switch txn.Type {
	case model.TxIncome:
		cs.AddAccountDelta(txn.ToAccountID, txn.Amount)

	case model.TxExpense:
		cs.AddAccountDelta(txn.FromAccountID, txn.Amount.Neg())
		if txn.PaymentMethod == model.PayCredit {
			applyCreditCharge(txn, st, cs)
		}

	case model.TxTransfer:
		cs.AddAccountDelta(txn.FromAccountID, txn.Amount.Neg())
		cs.AddAccountDelta(txn.ToAccountID, txn.Amount)
		if dest := st.Account(txn.ToAccountID); dest.IsCreditCard() {
			// Paying a card is also a debt payment against its active debt.
			if debt := st.ActiveCreditCardDebt(txn.ToAccountID); debt != nil {
				cs.DebtUpdates = append(cs.DebtUpdates, payDownDebt(debt, txn))
			}
		}

	case model.TxDebtPayment:
		debt := st.Debt(txn.DebtID)
		cs.DebtUpdates = append(cs.DebtUpdates, payDownDebt(debt, txn))
		if txn.FromAccountID != "" {
			// Double effect: cash leaves the paying account and the debt shrinks.
			cs.AddAccountDelta(txn.FromAccountID, txn.Amount.Neg())
		}

	default:
		return nil, fmt.Errorf("unhandled transaction type %q", txn.Type)
	}

	return cs, nil
}

// applyCreditCharge records the debt side of a credit card expense: the active
// linked debt grows, or a fresh one is opened if the card carries none.
func applyCreditCharge(txn *model.Transaction, st *State, cs *model.ChangeSet) {
	if debt := st.ActiveCreditCardDebt(txn.FromAccountID); debt != nil {
		cs.DebtUpdates = append(cs.DebtUpdates, model.DebtUpdate{
			DebtID:           debt.ID,
			CurrentBalance:   debt.CurrentBalance.Add(txn.Amount),
			TotalAmount:      debt.TotalAmount.Add(txn.Amount),
			Status:           model.DebtActive,
			InstallmentsPaid: debt.InstallmentsPaid,
		})
		return
	}

	account := st.Account(txn.FromAccountID)
	cs.NewDebt = &model.Debt{
		ID:             uuid.NewString(),
		Name:           "Deuda " + account.Name,
		Type:           model.DebtCreditCard,
		TotalAmount:    txn.Amount,
		CurrentBalance: txn.Amount,
		Status:         model.DebtActive,
		AccountID:      txn.FromAccountID,
		StartDate:      txn.Date,
	}
}

// payDownDebt reduces a debt by the transaction amount. A balance at or below
// zero flips the debt to paid; a negative remainder is preserved, not clamped.
func payDownDebt(debt *model.Debt, txn *model.Transaction) model.DebtUpdate {
	balance := debt.CurrentBalance.Sub(txn.Amount)
	status := model.DebtActive
	if balance.Sign() <= 0 {
		status = model.DebtPaid
	}

	paid := debt.InstallmentsPaid
	if txn.Type == model.TxDebtPayment && debt.Installments > 0 && paid < debt.Installments {
		paid++
	}

	return model.DebtUpdate{
		DebtID:           debt.ID,
		CurrentBalance:   balance,
		TotalAmount:      debt.TotalAmount,
		Status:           status,
		InstallmentsPaid: paid,
	}
}

// Reverse computes the compensating change set for a previously applied
// transaction. Deleting a transaction applies its reversal so balances never
// drift from the sum of surviving transactions.
func Reverse(txn *model.Transaction, st *State) (*model.ChangeSet, error) {
	cs := &model.ChangeSet{}

	switch txn.Type {
	case model.TxIncome:
		if st.Account(txn.ToAccountID) == nil {
			return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, txn.ToAccountID)
		}
		cs.AddAccountDelta(txn.ToAccountID, txn.Amount.Neg())

	case model.TxExpense:
		if st.Account(txn.FromAccountID) == nil {
			return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, txn.FromAccountID)
		}
		cs.AddAccountDelta(txn.FromAccountID, txn.Amount)
		if txn.PaymentMethod == model.PayCredit {
			if debt := creditDebtForReversal(txn.FromAccountID, st); debt != nil {
				cs.DebtUpdates = append(cs.DebtUpdates, reverseCharge(debt, txn))
			}
		}

	case model.TxTransfer:
		if st.Account(txn.FromAccountID) == nil {
			return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, txn.FromAccountID)
		}
		dest := st.Account(txn.ToAccountID)
		if dest == nil {
			return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, txn.ToAccountID)
		}
		cs.AddAccountDelta(txn.FromAccountID, txn.Amount)
		cs.AddAccountDelta(txn.ToAccountID, txn.Amount.Neg())
		if dest.IsCreditCard() {
			if debt := creditDebtForReversal(txn.ToAccountID, st); debt != nil {
				cs.DebtUpdates = append(cs.DebtUpdates, reversePayment(debt, txn))
			}
		}

	case model.TxDebtPayment:
		debt := st.Debt(txn.DebtID)
		if debt == nil {
			return nil, fmt.Errorf("%w: debt %s", common.ErrNotFound, txn.DebtID)
		}
		cs.DebtUpdates = append(cs.DebtUpdates, reversePayment(debt, txn))
		if txn.FromAccountID != "" {
			if st.Account(txn.FromAccountID) == nil {
				return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, txn.FromAccountID)
			}
			cs.AddAccountDelta(txn.FromAccountID, txn.Amount)
		}

	default:
		return nil, fmt.Errorf("unhandled transaction type %q", txn.Type)
	}

	return cs, nil
}

// creditDebtForReversal picks the debt a reversal should touch: the active one
// if the card still carries debt, otherwise the most recent record (the
// payment being reversed may have flipped it to paid).
func creditDebtForReversal(accountID string, st *State) *model.Debt {
	if debt := st.ActiveCreditCardDebt(accountID); debt != nil {
		return debt
	}
	return st.latestCreditCardDebt(accountID)
}

// reverseCharge undoes a credit expense on a debt: both balance and total
// shrink by the charged amount.
func reverseCharge(debt *model.Debt, txn *model.Transaction) model.DebtUpdate {
	balance := debt.CurrentBalance.Sub(txn.Amount)
	status := model.DebtActive
	if balance.Sign() <= 0 {
		status = model.DebtPaid
	}
	return model.DebtUpdate{
		DebtID:           debt.ID,
		CurrentBalance:   balance,
		TotalAmount:      debt.TotalAmount.Sub(txn.Amount),
		Status:           status,
		InstallmentsPaid: debt.InstallmentsPaid,
	}
}

// reversePayment undoes a payment on a debt: the balance grows back and a
// settled debt reopens if anything is outstanding again.
func reversePayment(debt *model.Debt, txn *model.Transaction) model.DebtUpdate {
	balance := debt.CurrentBalance.Add(txn.Amount)
	status := debt.Status
	if status != model.DebtCancelled {
		if balance.Sign() > 0 {
			status = model.DebtActive
		} else {
			status = model.DebtPaid
		}
	}

	paid := debt.InstallmentsPaid
	if txn.Type == model.TxDebtPayment && debt.Installments > 0 && paid > 0 {
		paid--
	}

	return model.DebtUpdate{
		DebtID:           debt.ID,
		CurrentBalance:   balance,
		TotalAmount:      debt.TotalAmount,
		Status:           status,
		InstallmentsPaid: paid,
	}
}
