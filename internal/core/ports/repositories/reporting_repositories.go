package repositories

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// ReportingReader defines aggregate read operations for dashboards and
// cash-flow reports.
type ReportingReader interface {
	// ListMonthTransactions retrieves every entry of the user dated
	// within [from, to), with tags.
	ListMonthTransactions(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.Transaction, error)

	// SumExpensesByCategory aggregates settled and pending expense
	// amounts per category for entries dated within [from, to).
	SumExpensesByCategory(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.ExpenseByCategory, error)
}

// ReportingRepositoryFacade combines all reporting repository
// interfaces.
type ReportingRepositoryFacade interface {
	ReportingReader
}
