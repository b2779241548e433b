// Package metrics derives read-only aggregates from the transaction and debt
// collections. Everything here is pure and fully re-derivable; presentation
// components call these functions and never recompute the arithmetic
// themselves.
package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

// Monthly is the three-layer dashboard summary for one calendar month.
//
// Layer 1 (consumption) answers "what was actually spent", layer 2 (cash
// flow) "what money really moved", layer 3 (liabilities) "what remains owed".
// Liabilities are current totals, never filtered by month.
type Monthly struct {
	ConsumptionByCategory map[string]decimal.Decimal
	Month                 model.Month

	TotalConsumption decimal.Decimal

	TotalCashIn  decimal.Decimal
	TotalCashOut decimal.Decimal
	NetCashFlow  decimal.Decimal

	TotalDebt      decimal.Decimal
	CreditCardDebt decimal.Decimal
	OtherDebt      decimal.Decimal
}

// ComputeMonthly aggregates the given collections for one month.
//
// Credit-card expenses count toward consumption but not cash out: the cash
// impact happens later, when the card is paid via a transfer or debt payment.
// Counting both would double-count the same pesos.
func ComputeMonthly(transactions []model.Transaction, debts []model.Debt, month model.Month) Monthly {
	m := Monthly{
		Month:                 month,
		ConsumptionByCategory: make(map[string]decimal.Decimal),
		TotalConsumption:      decimal.Zero,
		TotalCashIn:           decimal.Zero,
		TotalCashOut:          decimal.Zero,
		TotalDebt:             decimal.Zero,
		CreditCardDebt:        decimal.Zero,
	}

	for i := range transactions {
		t := &transactions[i]
		if !month.Contains(t.Date) {
			continue
		}

		switch t.Type {
		case model.TxExpense:
			m.TotalConsumption = m.TotalConsumption.Add(t.Amount)
			if t.CategoryID != "" {
				// Uncategorized spend stays out of the breakdown; callers
				// default an "Otros" bucket at presentation time.
				m.ConsumptionByCategory[t.CategoryID] = m.ConsumptionByCategory[t.CategoryID].Add(t.Amount)
			}
			if t.PaymentMethod != model.PayCredit {
				m.TotalCashOut = m.TotalCashOut.Add(t.Amount)
			}
		case model.TxIncome:
			m.TotalCashIn = m.TotalCashIn.Add(t.Amount)
		case model.TxTransfer, model.TxDebtPayment:
			m.TotalCashOut = m.TotalCashOut.Add(t.Amount)
		}
	}
	m.NetCashFlow = m.TotalCashIn.Sub(m.TotalCashOut)

	for i := range debts {
		d := &debts[i]
		if !d.IsActive() {
			continue
		}
		m.TotalDebt = m.TotalDebt.Add(d.CurrentBalance)
		if d.Type == model.DebtCreditCard {
			m.CreditCardDebt = m.CreditCardDebt.Add(d.CurrentBalance)
		}
	}
	m.OtherDebt = m.TotalDebt.Sub(m.CreditCardDebt)

	return m
}

// CreditCardDebt returns the outstanding active debt balance for one card.
func CreditCardDebt(accountID string, debts []model.Debt) decimal.Decimal {
	total := decimal.Zero
	for i := range debts {
		d := &debts[i]
		if d.AccountID == accountID && d.Type == model.DebtCreditCard && d.Status == model.DebtActive {
			total = total.Add(d.CurrentBalance)
		}
	}
	return total
}

// AvailableCredit is the card's limit minus its active debt.
func AvailableCredit(account model.Account, debts []model.Debt) decimal.Decimal {
	return account.CreditLimit.Sub(CreditCardDebt(account.ID, debts))
}

// TotalBalance sums balances across non-archived, non-credit-card accounts.
// Credit card balances track available credit and are not liquid funds.
func TotalBalance(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for i := range accounts {
		a := &accounts[i]
		if a.IsArchived || a.IsCreditCard() {
			continue
		}
		total = total.Add(a.Balance)
	}
	return total
}

// BudgetStatus compares one month's spend in a category against its ceiling.
type BudgetStatus struct {
	CategoryID string
	Limit      decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Over       bool
}

// BudgetStatuses evaluates every budget of the month against actual
// consumption, ordered by category id for stable output.
func BudgetStatuses(transactions []model.Transaction, budgets []model.Budget, month model.Month) []BudgetStatus {
	monthly := ComputeMonthly(transactions, nil, month)

	statuses := make([]BudgetStatus, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		if b.Month != month {
			continue
		}
		spent := monthly.ConsumptionByCategory[b.CategoryID]
		remaining := b.Amount.Sub(spent)
		statuses = append(statuses, BudgetStatus{
			CategoryID: b.CategoryID,
			Limit:      b.Amount,
			Spent:      spent,
			Remaining:  remaining,
			Over:       remaining.Sign() < 0,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].CategoryID < statuses[j].CategoryID })
	return statuses
}

// UpcomingDebts returns active debts with a due day, ordered by how soon they
// fall due counted from the given day.
func UpcomingDebts(debts []model.Debt, from time.Time) []model.Debt {
	upcoming := make([]model.Debt, 0, len(debts))
	for i := range debts {
		d := debts[i]
		if d.IsActive() && d.DueDate > 0 {
			upcoming = append(upcoming, d)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return daysUntilDue(upcoming[i].DueDate, from) < daysUntilDue(upcoming[j].DueDate, from)
	})
	return upcoming
}

// daysUntilDue counts days until the next occurrence of a day-of-month due
// date. Due days past the end of a short month roll into the following one.
func daysUntilDue(dueDay int, from time.Time) int {
	day := from.Day()
	if dueDay >= day {
		return dueDay - day
	}
	next := time.Date(from.Year(), from.Month(), dueDay, 0, 0, 0, 0, from.Location()).AddDate(0, 1, 0)
	return int(next.Sub(truncate(from)).Hours() / 24)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
