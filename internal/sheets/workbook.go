package sheets

import (
	"fmt"
	"sort"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

// Tab titles of the exported workbook.
const (
	TabTransactions = "Transactions"
	TabDebts        = "Debts"
	TabAccounts     = "Accounts"
)

// Workbook is the fully rendered three-tab export: transactions enriched with
// resolved category and account names, plus the debt and account registers.
type Workbook struct {
	Transactions [][]any
	Debts        [][]any
	Accounts     [][]any
}

// Tabs returns the workbook contents keyed by tab title, in export order.
func (w *Workbook) Tabs() []struct {
	Title  string
	Values [][]any
} {
	return []struct {
		Title  string
		Values [][]any
	}{
		{TabTransactions, w.Transactions},
		{TabDebts, w.Debts},
		{TabAccounts, w.Accounts},
	}
}

// BuildWorkbook resolves ids to display names and lays out the three tabs.
// Unresolvable references render as empty cells rather than failing the
// export.
func BuildWorkbook(
	transactions []model.Transaction,
	debts []model.Debt,
	accounts []model.Account,
	categories []model.Category,
) *Workbook {
	accountNames := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	wb := &Workbook{}

	// Newest first, matching the on-screen transaction list.
	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	wb.Transactions = append(wb.Transactions, []any{
		"Date", "Type", "Concept", "Amount", "Category", "From", "To", "Method",
	})
	for _, t := range sorted {
		wb.Transactions = append(wb.Transactions, []any{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			t.Concept,
			t.Amount.StringFixed(2),
			categoryNames[t.CategoryID],
			accountNames[t.FromAccountID],
			accountNames[t.ToAccountID],
			string(t.PaymentMethod),
		})
	}

	wb.Debts = append(wb.Debts, []any{
		"Name", "Type", "Total", "Outstanding", "Status", "Due Day", "Installments Paid", "Linked Account",
	})
	for _, d := range debts {
		installments := ""
		if d.Installments > 0 {
			installments = fmt.Sprintf("%d/%d", d.InstallmentsPaid, d.Installments)
		}
		dueDay := any("")
		if d.DueDate > 0 {
			dueDay = d.DueDate
		}
		wb.Debts = append(wb.Debts, []any{
			d.Name,
			string(d.Type),
			d.TotalAmount.StringFixed(2),
			d.CurrentBalance.StringFixed(2),
			string(d.Status),
			dueDay,
			installments,
			accountNames[d.AccountID],
		})
	}

	wb.Accounts = append(wb.Accounts, []any{
		"Name", "Type", "Balance", "Credit Limit", "Archived",
	})
	for _, a := range accounts {
		limit := ""
		if a.IsCreditCard() {
			limit = a.CreditLimit.StringFixed(2)
		}
		wb.Accounts = append(wb.Accounts, []any{
			a.Name,
			string(a.Type),
			a.Balance.StringFixed(2),
			limit,
			a.IsArchived,
		})
	}

	return wb
}
