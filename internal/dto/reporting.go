package dto

import (
	"fmt"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashFlowParams selects the month for a cash-flow report. Both fields
// default to the current month when omitted.
type CashFlowParams struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2200"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// CashFlowResponse is the monthly cash-flow report.
type CashFlowResponse struct {
	Period           string          `json:"period"` // YYYY-MM
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	ReceivedIncome   decimal.Decimal `json:"receivedIncome"`
	PaidExpense      decimal.Decimal `json:"paidExpense"`
	PendingIncome    decimal.Decimal `json:"pendingIncome"`
	PendingExpense   decimal.Decimal `json:"pendingExpense"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
	ActualBalance    decimal.Decimal `json:"actualBalance"`
	Overspent        bool            `json:"overspent"`
	Shortfall        decimal.Decimal `json:"shortfall"`
	IncomeProgress   int             `json:"incomeProgress"`
	ExpenseProgress  int             `json:"expenseProgress"`
}

// CategoryExpenseResponse is one category's share of a period's expenses.
type CategoryExpenseResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Percent      int             `json:"percent"`
}

// DashboardResponse is the aggregate payload for the landing view.
type DashboardResponse struct {
	Summary      CashFlowResponse         `json:"summary"`
	Accounts     []AccountBalanceResponse `json:"accounts"`
	TotalBalance decimal.Decimal          `json:"totalBalance"`
	Recent       []TransactionResponse    `json:"recent"`
}

// ToCashFlowResponse converts a domain summary for one (year, month)
func ToCashFlowResponse(s domain.CashFlowSummary, year int, month int) CashFlowResponse {
	return CashFlowResponse{
		Period:           fmt.Sprintf("%04d-%02d", year, month),
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		ReceivedIncome:   s.ReceivedIncome,
		PaidExpense:      s.PaidExpense,
		PendingIncome:    s.PendingIncome,
		PendingExpense:   s.PendingExpense,
		ProjectedBalance: s.ProjectedBalance,
		ActualBalance:    s.ActualBalance,
		Overspent:        s.Overspent,
		Shortfall:        s.Shortfall,
		IncomeProgress:   s.IncomeProgress,
		ExpenseProgress:  s.ExpenseProgress,
	}
}

// ToListCategoryExpenseResponse converts category aggregates to DTOs
func ToListCategoryExpenseResponse(rows []domain.ExpenseByCategory) []CategoryExpenseResponse {
	res := make([]CategoryExpenseResponse, len(rows))
	for i, row := range rows {
		res[i] = CategoryExpenseResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Total:        row.Total,
			Paid:         row.Paid,
			Percent:      row.Percent,
		}
	}
	return res
}

// ToDashboardResponse converts a domain.Dashboard for one (year, month)
func ToDashboardResponse(d *domain.Dashboard, year int, month int) DashboardResponse {
	accounts := make([]AccountBalanceResponse, len(d.Accounts))
	for i, row := range d.Accounts {
		accounts[i] = AccountBalanceResponse{
			AccountResponse: AccountResponse{
				AccountID:   row.AccountID,
				Name:        row.Name,
				AccountType: row.AccountType,
				IsActive:    true,
			},
			Balance: row.Balance,
		}
	}
	return DashboardResponse{
		Summary:      ToCashFlowResponse(d.Summary, year, month),
		Accounts:     accounts,
		TotalBalance: d.TotalBalance,
		Recent:       ToListTransactionResponse(d.Recent),
	}
}
