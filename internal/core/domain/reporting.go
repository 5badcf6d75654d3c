package domain

import (
	"github.com/shopspring/decimal"
)

// CashFlowSummary aggregates a user's transactions for one period,
// splitting planned totals from settled ones.
type CashFlowSummary struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	ReceivedIncome decimal.Decimal `json:"receivedIncome"` // paid income only
	PaidExpense    decimal.Decimal `json:"paidExpense"`    // paid expenses only

	PendingIncome    decimal.Decimal `json:"pendingIncome"`    // TotalIncome - ReceivedIncome
	PendingExpense   decimal.Decimal `json:"pendingExpense"`   // TotalExpense - PaidExpense
	ProjectedBalance decimal.Decimal `json:"projectedBalance"` // TotalIncome - TotalExpense
	ActualBalance    decimal.Decimal `json:"actualBalance"`    // ReceivedIncome - PaidExpense

	// Overspent is set when TotalExpense exceeds TotalIncome; Shortfall
	// carries the magnitude so callers can render a warning.
	Overspent bool            `json:"overspent"`
	Shortfall decimal.Decimal `json:"shortfall"`

	// Whole percentages, rounded; 0 when the corresponding total is zero.
	IncomeProgress  int `json:"incomeProgress"`
	ExpenseProgress int `json:"expenseProgress"`
}

// AccountBalanceRow is one account's derived balance for reports.
type AccountBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// ExpenseByCategory is one category's aggregated expense totals within
// a period.
type ExpenseByCategory struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Percent      int             `json:"percent"` // share of the period's total expense
}

// Dashboard is the aggregate payload for the landing view.
type Dashboard struct {
	Summary      CashFlowSummary     `json:"summary"`
	Accounts     []AccountBalanceRow `json:"accounts"`
	TotalBalance decimal.Decimal     `json:"totalBalance"`
	Recent       []Transaction       `json:"recent"`
}
