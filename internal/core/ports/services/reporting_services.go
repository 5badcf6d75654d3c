package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// ReportingSvcFacade defines aggregate views over a user's ledger.
type ReportingSvcFacade interface {
	// GetMonthlyCashFlow aggregates the user's entries for one month.
	// Transfers are excluded; they move money, they are not flow.
	GetMonthlyCashFlow(ctx context.Context, userID string, year int, month int) (*domain.CashFlowSummary, error)

	// GetExpensesByCategory aggregates one month's expenses per category.
	GetExpensesByCategory(ctx context.Context, userID string, year int, month int) ([]domain.ExpenseByCategory, error)

	// GetDashboard assembles the landing view: month summary, account
	// balances and the newest entries.
	GetDashboard(ctx context.Context, userID string, year int, month int) (*domain.Dashboard, error)
}
