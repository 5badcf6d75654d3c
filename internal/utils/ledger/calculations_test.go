package ledger_test

import (
	"testing"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func txn(t domain.TransactionType, amount string, paid bool) domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-" + amount,
		Type:          t,
		Amount:        dec(amount),
		IsPaid:        paid,
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name string
		typ  domain.TransactionType
		want string
	}{
		{"income is positive", domain.Income, "125.50"},
		{"expense is negative", domain.Expense, "-125.50"},
		{"transfer row is an outflow", domain.Transfer, "-125.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.SignedAmount(txn(tt.typ, "125.50", true))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := ledger.SignedAmount(domain.Transaction{Type: "REFUND", Amount: dec("1")})
	assert.Error(t, err)
}

func TestAccountBalance_EmptyIsInitial(t *testing.T) {
	for _, policy := range []ledger.CountPolicy{ledger.CountAll, ledger.CountSettled} {
		got, err := ledger.AccountBalance(dec("-42.17"), nil, policy)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("-42.17")), "policy %s: got %s", policy, got)
	}
}

func TestAccountBalance_Policies(t *testing.T) {
	// initial 500.00; paid income 300.00; unpaid expense 120.50
	initial := dec("500.00")
	txns := []domain.Transaction{
		txn(domain.Income, "300.00", true),
		txn(domain.Expense, "120.50", false),
	}

	all, err := ledger.AccountBalance(initial, txns, ledger.CountAll)
	require.NoError(t, err)
	assert.True(t, all.Equal(dec("679.50")), "got %s", all)

	settled, err := ledger.AccountBalance(initial, txns, ledger.CountSettled)
	require.NoError(t, err)
	assert.True(t, settled.Equal(dec("800.00")), "got %s", settled)
}

func TestAccountBalance_TransferLegsDoNotDoubleCount(t *testing.T) {
	// A 200 transfer from Checking (1000) to Savings (0): each account
	// folds only its own rows. The outgoing leg lives on the source, the
	// incoming amount shows up as the destination's own inflow history.
	source := []domain.Transaction{txn(domain.Transfer, "200", true)}
	got, err := ledger.AccountBalance(dec("1000"), source, ledger.CountAll)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("800")), "got %s", got)
}

func TestAccountBalance_NegativeRunningBalance(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.Expense, "250.75", true),
	}
	got, err := ledger.AccountBalance(dec("100"), txns, ledger.CountAll)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("-150.75")), "no clamping: got %s", got)
}

func TestSummarize_Identities(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.Income, "1000.00", true),
		txn(domain.Income, "500.00", false),
		txn(domain.Expense, "300.00", true),
		txn(domain.Expense, "450.00", false),
		txn(domain.Transfer, "9999.99", true), // excluded from totals
	}
	s := ledger.Summarize(txns)

	assert.True(t, s.TotalIncome.Equal(dec("1500.00")))
	assert.True(t, s.TotalExpense.Equal(dec("750.00")))
	assert.True(t, s.ReceivedIncome.Equal(dec("1000.00")))
	assert.True(t, s.PaidExpense.Equal(dec("300.00")))

	assert.True(t, s.PendingIncome.Add(s.ReceivedIncome).Equal(s.TotalIncome))
	assert.True(t, s.PendingExpense.Add(s.PaidExpense).Equal(s.TotalExpense))
	assert.True(t, s.ProjectedBalance.Equal(s.TotalIncome.Sub(s.TotalExpense)))
	assert.True(t, s.ActualBalance.Equal(s.ReceivedIncome.Sub(s.PaidExpense)))

	assert.False(t, s.Overspent)
	assert.True(t, s.Shortfall.IsZero())
	assert.Equal(t, 67, s.IncomeProgress) // round(100*1000/1500)
	assert.Equal(t, 40, s.ExpenseProgress)
}

func TestSummarize_Overspend(t *testing.T) {
	s := ledger.Summarize([]domain.Transaction{
		txn(domain.Income, "100.00", true),
		txn(domain.Expense, "180.00", true),
	})
	assert.True(t, s.Overspent)
	assert.True(t, s.Shortfall.Equal(dec("80.00")), "got %s", s.Shortfall)
	assert.True(t, s.ProjectedBalance.Equal(dec("-80.00")))
}

func TestSummarize_Empty(t *testing.T) {
	s := ledger.Summarize(nil)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.False(t, s.Overspent)
	assert.Equal(t, 0, s.IncomeProgress)
	assert.Equal(t, 0, s.ExpenseProgress)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, ledger.ProgressPercent(dec("50"), decimal.Zero), "zero total must not divide")
	assert.Equal(t, 100, ledger.ProgressPercent(dec("75"), dec("75")))
	assert.Equal(t, 33, ledger.ProgressPercent(dec("1"), dec("3")))
	assert.Equal(t, 67, ledger.ProgressPercent(dec("2"), dec("3")))
}

func TestInvoiceUsagePercent(t *testing.T) {
	limit := dec("2000")

	got := ledger.InvoiceUsagePercent(dec("500"), &limit)
	require.NotNil(t, got)
	assert.Equal(t, 25, *got)

	// Over-limit stays unclamped.
	got = ledger.InvoiceUsagePercent(dec("2500"), &limit)
	require.NotNil(t, got)
	assert.Equal(t, 125, *got)

	// No limit means no percentage, regardless of amount.
	assert.Nil(t, ledger.InvoiceUsagePercent(dec("99999"), nil))

	zero := decimal.Zero
	assert.Nil(t, ledger.InvoiceUsagePercent(dec("10"), &zero))
}

func TestParseCountPolicy(t *testing.T) {
	p, err := ledger.ParseCountPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ledger.CountAll, p)

	p, err = ledger.ParseCountPolicy("settled")
	require.NoError(t, err)
	assert.Equal(t, ledger.CountSettled, p)

	_, err = ledger.ParseCountPolicy("bogus")
	assert.Error(t, err)
}

func TestSumAmounts(t *testing.T) {
	total := ledger.SumAmounts([]domain.Transaction{
		txn(domain.Expense, "10.10", true),
		txn(domain.Expense, "0.90", false),
	})
	assert.True(t, total.Equal(dec("11.00")), "got %s", total)
}
