package model

import "github.com/shopspring/decimal"

// AccountDelta is a signed balance adjustment for a single account.
type AccountDelta struct {
	AccountID string
	Delta     decimal.Decimal
}

// DebtUpdate carries the post-operation state of an existing debt.
type DebtUpdate struct {
	DebtID           string
	CurrentBalance   decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           DebtStatus
	InstallmentsPaid int
}

// ChangeSet is the complete effect of one ledger operation: balance deltas,
// debt mutations, and at most one debt created as a side effect (the first
// credit charge against a card with no active debt). The persistence adapter
// applies a ChangeSet atomically or not at all.
type ChangeSet struct {
	NewDebt       *Debt
	AccountDeltas []AccountDelta
	DebtUpdates   []DebtUpdate
}

// AddAccountDelta accumulates a delta, merging with any existing delta for the
// same account.
func (c *ChangeSet) AddAccountDelta(accountID string, delta decimal.Decimal) {
	for i := range c.AccountDeltas {
		if c.AccountDeltas[i].AccountID == accountID {
			c.AccountDeltas[i].Delta = c.AccountDeltas[i].Delta.Add(delta)
			return
		}
	}
	c.AccountDeltas = append(c.AccountDeltas, AccountDelta{AccountID: accountID, Delta: delta})
}

// IsEmpty reports whether the change set mutates nothing.
func (c *ChangeSet) IsEmpty() bool {
	return c.NewDebt == nil && len(c.AccountDeltas) == 0 && len(c.DebtUpdates) == 0
}
