package ledger

import (
	"fmt"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CountPolicy selects which transactions participate in a balance.
type CountPolicy string

const (
	// CountAll folds every transaction, settled or not. This is the
	// "projected" view of an account.
	CountAll CountPolicy = "ALL"
	// CountSettled folds only paid transactions, the real-money view.
	CountSettled CountPolicy = "SETTLED"
)

// ParseCountPolicy maps the query-string form to a CountPolicy,
// defaulting to CountAll.
func ParseCountPolicy(s string) (CountPolicy, error) {
	switch s {
	case "", "all":
		return CountAll, nil
	case "settled", "paid":
		return CountSettled, nil
	default:
		return "", fmt.Errorf("unknown balance policy %q", s)
	}
}

// SignedAmount applies the sign convention to a transaction amount.
// Amounts are stored as unsigned magnitudes; the sign is implied by the
// type: income flows in, expenses flow out, and a transfer row attached
// to an account is always the outflow side (the offsetting inflow lives
// on the destination account's own row, so per-account folds never
// double count).
func SignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	switch txn.Type {
	case domain.Income:
		return txn.Amount, nil
	case domain.Expense, domain.Transfer:
		return txn.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type %q for transaction %s", txn.Type, txn.TransactionID)
	}
}

// AccountBalance folds a sequence of transactions into a single signed
// balance for one account: initial balance plus the signed sum of every
// transaction included under the policy. An empty sequence yields the
// initial balance unchanged; negative results are valid.
func AccountBalance(initial decimal.Decimal, txns []domain.Transaction, policy CountPolicy) (decimal.Decimal, error) {
	balance := initial
	for _, txn := range txns {
		if policy == CountSettled && !txn.IsPaid {
			continue
		}
		signed, err := SignedAmount(txn)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}

// Summarize computes the cash-flow summary for a period's transactions.
// Transfers move money between the user's own accounts and are excluded
// from income and expense totals.
func Summarize(txns []domain.Transaction) domain.CashFlowSummary {
	var s domain.CashFlowSummary
	s.TotalIncome = decimal.Zero
	s.TotalExpense = decimal.Zero
	s.ReceivedIncome = decimal.Zero
	s.PaidExpense = decimal.Zero

	for _, txn := range txns {
		switch txn.Type {
		case domain.Income:
			s.TotalIncome = s.TotalIncome.Add(txn.Amount)
			if txn.IsPaid {
				s.ReceivedIncome = s.ReceivedIncome.Add(txn.Amount)
			}
		case domain.Expense:
			s.TotalExpense = s.TotalExpense.Add(txn.Amount)
			if txn.IsPaid {
				s.PaidExpense = s.PaidExpense.Add(txn.Amount)
			}
		}
	}

	s.PendingIncome = s.TotalIncome.Sub(s.ReceivedIncome)
	s.PendingExpense = s.TotalExpense.Sub(s.PaidExpense)
	s.ProjectedBalance = s.TotalIncome.Sub(s.TotalExpense)
	s.ActualBalance = s.ReceivedIncome.Sub(s.PaidExpense)

	s.Shortfall = decimal.Zero
	if s.TotalExpense.GreaterThan(s.TotalIncome) {
		s.Overspent = true
		s.Shortfall = s.TotalExpense.Sub(s.TotalIncome)
	}

	s.IncomeProgress = ProgressPercent(s.ReceivedIncome, s.TotalIncome)
	s.ExpenseProgress = ProgressPercent(s.PaidExpense, s.TotalExpense)
	return s
}

// ProgressPercent returns round(100*part/total), or 0 when total is not
// positive. Never divides by zero.
func ProgressPercent(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(part.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart())
}

// InvoiceUsagePercent returns round(100*amount/limit) for a card with a
// limit, and nil when the card has none. The value is not clamped;
// over-limit cards legitimately report more than 100.
func InvoiceUsagePercent(amount decimal.Decimal, limit *decimal.Decimal) *int {
	if limit == nil || !limit.IsPositive() {
		return nil
	}
	pct := int(amount.Mul(decimal.NewFromInt(100)).Div(*limit).Round(0).IntPart())
	return &pct
}

// SumAmounts adds plain magnitudes, used for invoice totals where the
// sign convention does not apply (card charges are all outgoing).
func SumAmounts(txns []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount)
	}
	return total
}
