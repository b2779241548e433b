package metrics

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

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeMonthlyLayers(t *testing.T) {
	transactions := []model.Transaction{
		{Type: model.TxIncome, Amount: dec("25000"), Date: day(time.June, 1), CategoryID: "salary"},
		{Type: model.TxExpense, Amount: dec("800"), Date: day(time.June, 3), CategoryID: "food", PaymentMethod: model.PayDebit},
		{Type: model.TxExpense, Amount: dec("1200"), Date: day(time.June, 5), CategoryID: "fun", PaymentMethod: model.PayCredit},
		{Type: model.TxExpense, Amount: dec("300"), Date: day(time.June, 8), CategoryID: "food", PaymentMethod: model.PayCash},
		{Type: model.TxTransfer, Amount: dec("2000"), Date: day(time.June, 10)},
		{Type: model.TxDebtPayment, Amount: dec("1500"), Date: day(time.June, 12)},
		// Out of month, must not count anywhere.
		{Type: model.TxExpense, Amount: dec("9999"), Date: day(time.July, 1), CategoryID: "food", PaymentMethod: model.PayCash},
	}
	debts := []model.Debt{
		{Type: model.DebtCreditCard, Status: model.DebtActive, CurrentBalance: dec("1200")},
		{Type: model.DebtBank, Status: model.DebtActive, CurrentBalance: dec("94000")},
		{Type: model.DebtFriend, Status: model.DebtPaid, CurrentBalance: dec("0")},
	}

	m := ComputeMonthly(transactions, debts, model.Month("2025-06"))

	// Layer 1: every expense counts, whatever the payment method.
	assert.True(t, m.TotalConsumption.Equal(dec("2300")))
	assert.True(t, m.ConsumptionByCategory["food"].Equal(dec("1100")))
	assert.True(t, m.ConsumptionByCategory["fun"].Equal(dec("1200")))

	// Layer 2: credit expenses are excluded, transfers and debt payments count.
	assert.True(t, m.TotalCashIn.Equal(dec("25000")))
	assert.True(t, m.TotalCashOut.Equal(dec("4600")))
	assert.True(t, m.NetCashFlow.Equal(dec("20400")))

	// Layer 3: active debts only, never month-filtered.
	assert.True(t, m.TotalDebt.Equal(dec("95200")))
	assert.True(t, m.CreditCardDebt.Equal(dec("1200")))
	assert.True(t, m.OtherDebt.Equal(dec("94000")))
}

// A credit expense in May paid off in June shows up once in each month's
// metrics: consumption in May, cash out in June.
func TestCreditSpendIsNeverDoubleCounted(t *testing.T) {
	transactions := []model.Transaction{
		{Type: model.TxExpense, Amount: dec("500"), Date: day(time.May, 20), CategoryID: "fun", PaymentMethod: model.PayCredit},
		{Type: model.TxTransfer, Amount: dec("500"), Date: day(time.June, 5)},
	}

	may := ComputeMonthly(transactions, nil, model.Month("2025-05"))
	assert.True(t, may.TotalConsumption.Equal(dec("500")))
	assert.True(t, may.TotalCashOut.Equal(dec("0")))

	june := ComputeMonthly(transactions, nil, model.Month("2025-06"))
	assert.True(t, june.TotalConsumption.Equal(dec("0")))
	assert.True(t, june.TotalCashOut.Equal(dec("500")))
}

func TestComputeMonthlyUncategorizedExpense(t *testing.T) {
	transactions := []model.Transaction{
		{Type: model.TxExpense, Amount: dec("100"), Date: day(time.June, 1), PaymentMethod: model.PayCash},
	}

	m := ComputeMonthly(transactions, nil, model.Month("2025-06"))
	assert.True(t, m.TotalConsumption.Equal(dec("100")))
	assert.Empty(t, m.ConsumptionByCategory)
}

func TestCreditCardDebtPerAccount(t *testing.T) {
	debts := []model.Debt{
		{AccountID: "cc1", Type: model.DebtCreditCard, Status: model.DebtActive, CurrentBalance: dec("300")},
		{AccountID: "cc1", Type: model.DebtCreditCard, Status: model.DebtPaid, CurrentBalance: dec("0")},
		{AccountID: "cc2", Type: model.DebtCreditCard, Status: model.DebtActive, CurrentBalance: dec("700")},
		{AccountID: "cc1", Type: model.DebtBank, Status: model.DebtActive, CurrentBalance: dec("5000")},
	}

	assert.True(t, CreditCardDebt("cc1", debts).Equal(dec("300")))
	assert.True(t, CreditCardDebt("cc2", debts).Equal(dec("700")))
	assert.True(t, CreditCardDebt("cc3", debts).Equal(dec("0")))
}

func TestAvailableCredit(t *testing.T) {
	card := model.Account{ID: "cc1", Type: model.AccountCreditCard, CreditLimit: dec("1000")}
	debts := []model.Debt{
		{AccountID: "cc1", Type: model.DebtCreditCard, Status: model.DebtActive, CurrentBalance: dec("350")},
	}

	assert.True(t, AvailableCredit(card, debts).Equal(dec("650")))
	assert.True(t, AvailableCredit(card, nil).Equal(dec("1000")))
}

func TestTotalBalanceSkipsArchivedAndCards(t *testing.T) {
	accounts := []model.Account{
		{Type: model.AccountCash, Balance: dec("500")},
		{Type: model.AccountDebit, Balance: dec("2000")},
		{Type: model.AccountCreditCard, Balance: dec("-300"), CreditLimit: dec("1000")},
		{Type: model.AccountSavings, Balance: dec("8000"), IsArchived: true},
	}

	assert.True(t, TotalBalance(accounts).Equal(dec("2500")))
}

func TestBudgetStatuses(t *testing.T) {
	month := model.Month("2025-06")
	transactions := []model.Transaction{
		{Type: model.TxExpense, Amount: dec("3500"), Date: day(time.June, 10), CategoryID: "food", PaymentMethod: model.PayCash},
		{Type: model.TxExpense, Amount: dec("200"), Date: day(time.June, 11), CategoryID: "fun", PaymentMethod: model.PayCash},
	}
	budgets := []model.Budget{
		{CategoryID: "food", Amount: dec("3000"), Month: month},
		{CategoryID: "fun", Amount: dec("1000"), Month: month},
		{CategoryID: "fun", Amount: dec("9999"), Month: model.Month("2025-07")},
	}

	statuses := BudgetStatuses(transactions, budgets, month)
	require.Len(t, statuses, 2)

	food := statuses[0]
	assert.Equal(t, "food", food.CategoryID)
	assert.True(t, food.Spent.Equal(dec("3500")))
	assert.True(t, food.Remaining.Equal(dec("-500")))
	assert.True(t, food.Over)

	fun := statuses[1]
	assert.Equal(t, "fun", fun.CategoryID)
	assert.True(t, fun.Remaining.Equal(dec("800")))
	assert.False(t, fun.Over)
}

func TestUpcomingDebtsOrdering(t *testing.T) {
	debts := []model.Debt{
		{Name: "Fin de mes", Status: model.DebtActive, DueDate: 28, CurrentBalance: dec("1")},
		{Name: "Mañana", Status: model.DebtActive, DueDate: 16, CurrentBalance: dec("1")},
		{Name: "Ya pasó", Status: model.DebtActive, DueDate: 5, CurrentBalance: dec("1")},
		{Name: "Sin fecha", Status: model.DebtActive, DueDate: 0, CurrentBalance: dec("1")},
		{Name: "Pagada", Status: model.DebtPaid, DueDate: 16, CurrentBalance: dec("0")},
	}

	from := day(time.June, 15)
	upcoming := UpcomingDebts(debts, from)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "Mañana", upcoming[0].Name)
	assert.Equal(t, "Fin de mes", upcoming[1].Name)
	// A due day earlier in the month rolls over to July.
	assert.Equal(t, "Ya pasó", upcoming[2].Name)
}
