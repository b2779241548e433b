package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/common"
	"github.com/ronaldlvm7/finance-app/internal/model"
)

func TestValidateRejections(t *testing.T) {
	st := testState()
	st.Debts = []model.Debt{{
		ID: "d1", Name: "Deuda Tarjeta", Type: model.DebtCreditCard,
		AccountID: "cc", Status: model.DebtActive,
		TotalAmount: dec("900"), CurrentBalance: dec("900"),
	}}

	tests := []struct {
		name    string
		txn     *model.Transaction
		opts    Options
		wantErr string
	}{
		{
			name:    "nil transaction",
			txn:     nil,
			wantErr: "transaction",
		},
		{
			name: "unknown type",
			txn: &model.Transaction{
				Type: "refund", Amount: dec("10"), Concept: "x", Date: testDate(),
			},
			wantErr: "type",
		},
		{
			name: "zero amount",
			txn: &model.Transaction{
				Type: model.TxIncome, Amount: dec("0"), Concept: "x", Date: testDate(),
				CategoryID: "food", ToAccountID: "cash",
			},
			wantErr: "amount",
		},
		{
			name: "negative amount",
			txn: &model.Transaction{
				Type: model.TxIncome, Amount: dec("-5"), Concept: "x", Date: testDate(),
				CategoryID: "food", ToAccountID: "cash",
			},
			wantErr: "amount",
		},
		{
			name: "missing concept",
			txn: &model.Transaction{
				Type: model.TxIncome, Amount: dec("10"), Date: testDate(),
				CategoryID: "food", ToAccountID: "cash",
			},
			wantErr: "concept",
		},
		{
			name: "income without category",
			txn: &model.Transaction{
				Type: model.TxIncome, Amount: dec("10"), Concept: "x", Date: testDate(),
				ToAccountID: "cash",
			},
			wantErr: "categoryId",
		},
		{
			name: "expense without category",
			txn: &model.Transaction{
				Type: model.TxExpense, Amount: dec("10"), Concept: "x", Date: testDate(),
				FromAccountID: "cash", PaymentMethod: model.PayCash,
			},
			wantErr: "categoryId",
		},
		{
			name: "expense with bad payment method",
			txn: &model.Transaction{
				Type: model.TxExpense, Amount: dec("10"), Concept: "x", Date: testDate(),
				CategoryID: "food", FromAccountID: "cash", PaymentMethod: "check",
			},
			wantErr: "paymentMethod",
		},
		{
			name: "transfer to itself",
			txn: &model.Transaction{
				Type: model.TxTransfer, Amount: dec("10"), Concept: "x", Date: testDate(),
				FromAccountID: "cash", ToAccountID: "cash",
			},
			wantErr: "accounts",
		},
		{
			name: "debt payment without debt",
			txn: &model.Transaction{
				Type: model.TxDebtPayment, Amount: dec("10"), Concept: "x", Date: testDate(),
			},
			wantErr: "debtId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.txn, st, tt.opts)
			require.Error(t, err)

			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantErr, ve.Field)
		})
	}
}

func TestValidateUnknownReferences(t *testing.T) {
	st := testState()

	tests := []struct {
		name string
		txn  *model.Transaction
	}{
		{
			name: "income into unknown account",
			txn: &model.Transaction{
				Type: model.TxIncome, Amount: dec("10"), Concept: "x", Date: testDate(),
				CategoryID: "food", ToAccountID: "nope",
			},
		},
		{
			name: "expense with unknown category",
			txn: &model.Transaction{
				Type: model.TxExpense, Amount: dec("10"), Concept: "x", Date: testDate(),
				CategoryID: "nope", FromAccountID: "cash", PaymentMethod: model.PayCash,
			},
		},
		{
			name: "transfer from unknown account",
			txn: &model.Transaction{
				Type: model.TxTransfer, Amount: dec("10"), Concept: "x", Date: testDate(),
				FromAccountID: "nope", ToAccountID: "cash",
			},
		},
		{
			name: "payment on unknown debt",
			txn: &model.Transaction{
				Type: model.TxDebtPayment, Amount: dec("10"), Concept: "x", Date: testDate(),
				DebtID: "nope",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.txn, st, Options{})
			assert.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestValidateInsufficientFunds(t *testing.T) {
	st := testState()
	txn := &model.Transaction{
		Type: model.TxExpense, Amount: dec("600"), Concept: "x", Date: testDate(),
		CategoryID: "food", FromAccountID: "cash", PaymentMethod: model.PayCash,
	}

	err := Validate(txn, st, Options{})
	require.Error(t, err)

	var ife *common.InsufficientFundsError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, "Efectivo", ife.AccountName)
	assert.True(t, ife.Available.Equal(dec("500")))
	assert.True(t, ife.Requested.Equal(dec("600")))
}

func TestValidateInsufficientCredit(t *testing.T) {
	st := testState()
	st.Debts = []model.Debt{{
		ID: "d1", Name: "Deuda Tarjeta", Type: model.DebtCreditCard,
		AccountID: "cc", Status: model.DebtActive,
		TotalAmount: dec("900"), CurrentBalance: dec("900"),
	}}

	txn := &model.Transaction{
		Type: model.TxExpense, Amount: dec("200"), Concept: "x", Date: testDate(),
		CategoryID: "food", FromAccountID: "cc", PaymentMethod: model.PayCredit,
	}

	err := Validate(txn, st, Options{})
	require.Error(t, err)

	var ice *common.InsufficientCreditError
	require.ErrorAs(t, err, &ice)
	assert.True(t, ice.Available.Equal(dec("100")))
}

// Paid debts free up the card's limit again.
func TestValidateCreditIgnoresSettledDebts(t *testing.T) {
	st := testState()
	st.Debts = []model.Debt{{
		ID: "d1", Name: "Deuda Tarjeta", Type: model.DebtCreditCard,
		AccountID: "cc", Status: model.DebtPaid,
		TotalAmount: dec("900"), CurrentBalance: dec("0"),
	}}

	txn := &model.Transaction{
		Type: model.TxExpense, Amount: dec("950"), Concept: "x", Date: testDate(),
		CategoryID: "food", FromAccountID: "cc", PaymentMethod: model.PayCredit,
	}

	assert.NoError(t, Validate(txn, st, Options{}))
}

func TestValidateStrictOverdraft(t *testing.T) {
	st := testState()
	txn := &model.Transaction{
		Type: model.TxTransfer, Amount: dec("600"), Concept: "x", Date: testDate(),
		FromAccountID: "cash", ToAccountID: "debit",
	}

	// Historical behavior: transfers may overdraw the source.
	assert.NoError(t, Validate(txn, st, Options{}))

	err := Validate(txn, st, Options{StrictOverdraft: true})
	var ife *common.InsufficientFundsError
	require.ErrorAs(t, err, &ife)
}

func TestValidateStrictOverdraftDebtPayment(t *testing.T) {
	st := testState()
	st.Debts = []model.Debt{{
		ID: "loan", Name: "Préstamo", Type: model.DebtBank,
		Status:      model.DebtActive,
		TotalAmount: dec("1000"), CurrentBalance: dec("1000"),
	}}

	txn := &model.Transaction{
		Type: model.TxDebtPayment, Amount: dec("600"), Concept: "x", Date: testDate(),
		DebtID: "loan", FromAccountID: "cash",
	}

	assert.NoError(t, Validate(txn, st, Options{}))

	err := Validate(txn, st, Options{StrictOverdraft: true})
	var ife *common.InsufficientFundsError
	require.ErrorAs(t, err, &ife)
}
