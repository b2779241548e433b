package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildWorkbook(t *testing.T) {
	accounts := []model.Account{
		{ID: "cash", Name: "Efectivo", Type: model.AccountCash, Balance: dec("300")},
		{ID: "cc", Name: "Tarjeta", Type: model.AccountCreditCard, Balance: dec("0"), CreditLimit: dec("1000")},
	}
	categories := []model.Category{
		{ID: "food", Name: "Comida"},
	}
	transactions := []model.Transaction{
		{
			ID: "t1", Type: model.TxExpense, Amount: dec("120.5"), Concept: "Tacos",
			Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			CategoryID: "food", FromAccountID: "cash", PaymentMethod: model.PayCash,
		},
		{
			ID: "t2", Type: model.TxIncome, Amount: dec("1000"), Concept: "Quincena",
			Date:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			CategoryID: "food", ToAccountID: "cash",
		},
	}
	debts := []model.Debt{
		{
			ID: "d1", Name: "Deuda Tarjeta", Type: model.DebtCreditCard,
			TotalAmount: dec("450"), CurrentBalance: dec("200"),
			Status: model.DebtActive, AccountID: "cc", DueDate: 17,
			Installments: 6, InstallmentsPaid: 2,
		},
	}

	wb := BuildWorkbook(transactions, debts, accounts, categories)

	// Header plus one row per transaction, newest first.
	require.Len(t, wb.Transactions, 3)
	assert.Equal(t, "Date", wb.Transactions[0][0])
	newest := wb.Transactions[1]
	assert.Equal(t, "2025-06-15", newest[0])
	assert.Equal(t, "income", newest[1])
	assert.Equal(t, "Quincena", newest[2])
	assert.Equal(t, "1000.00", newest[3])
	assert.Equal(t, "Comida", newest[4])
	assert.Equal(t, "", newest[5])
	assert.Equal(t, "Efectivo", newest[6])

	require.Len(t, wb.Debts, 2)
	debtRow := wb.Debts[1]
	assert.Equal(t, "Deuda Tarjeta", debtRow[0])
	assert.Equal(t, "450.00", debtRow[2])
	assert.Equal(t, "200.00", debtRow[3])
	assert.Equal(t, "active", debtRow[4])
	assert.Equal(t, 17, debtRow[5])
	assert.Equal(t, "2/6", debtRow[6])
	assert.Equal(t, "Tarjeta", debtRow[7])

	require.Len(t, wb.Accounts, 3)
	cardRow := wb.Accounts[2]
	assert.Equal(t, "Tarjeta", cardRow[0])
	assert.Equal(t, "credit_card", cardRow[1])
	assert.Equal(t, "1000.00", cardRow[3])
}

func TestBuildWorkbookUnresolvedReferences(t *testing.T) {
	transactions := []model.Transaction{
		{
			ID: "t1", Type: model.TxExpense, Amount: dec("10"), Concept: "x",
			Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			CategoryID: "gone", FromAccountID: "gone", PaymentMethod: model.PayCash,
		},
	}

	wb := BuildWorkbook(transactions, nil, nil, nil)

	require.Len(t, wb.Transactions, 2)
	row := wb.Transactions[1]
	assert.Equal(t, "", row[4])
	assert.Equal(t, "", row[5])
}

func TestWorkbookTabsOrder(t *testing.T) {
	wb := &Workbook{}
	tabs := wb.Tabs()
	require.Len(t, tabs, 3)
	assert.Equal(t, TabTransactions, tabs[0].Title)
	assert.Equal(t, TabDebts, tabs[1].Title)
	assert.Equal(t, TabAccounts, tabs[2].Title)
}
