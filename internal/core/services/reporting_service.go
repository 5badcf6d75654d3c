package services

import (
	"context"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// recentEntriesLimit caps the dashboard's latest-transactions strip.
const recentEntriesLimit = 10

// reportingService implements ReportingSvcFacade. All aggregates are
// computed from the ledger on read; nothing is denormalized.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	txnRepo       portsrepo.TransactionReader
	accountSvc    portssvc.AccountCalculatorSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, txnRepo portsrepo.TransactionReader, accountSvc portssvc.AccountCalculatorSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		txnRepo:       txnRepo,
		accountSvc:    accountSvc,
	}
}

// monthWindow returns the half-open interval [first day of the month,
// first day of the next month).
func monthWindow(year int, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (s *reportingService) GetMonthlyCashFlow(ctx context.Context, userID string, year int, month int) (*domain.CashFlowSummary, error) {
	from, to := monthWindow(year, month)
	txns, err := s.reportingRepo.ListMonthTransactions(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load month entries")
		return nil, fmt.Errorf("failed to load month transactions: %w", err)
	}
	summary := ledger.Summarize(txns)
	return &summary, nil
}

// GetExpensesByCategory reports each category's share of the month's
// total expense, settled and pending split apart.
func (s *reportingService) GetExpensesByCategory(ctx context.Context, userID string, year int, month int) ([]domain.ExpenseByCategory, error) {
	from, to := monthWindow(year, month)
	rows, err := s.reportingRepo.SumExpensesByCategory(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate expenses by category")
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
	}
	for i := range rows {
		rows[i].Percent = ledger.ProgressPercent(rows[i].Total, total)
	}
	if rows == nil {
		return []domain.ExpenseByCategory{}, nil
	}
	return rows, nil
}

// GetDashboard fans out the three independent reads concurrently and
// assembles the landing payload.
func (s *reportingService) GetDashboard(ctx context.Context, userID string, year int, month int) (*domain.Dashboard, error) {
	var (
		summary  *domain.CashFlowSummary
		balances []domain.AccountWithBalance
		recent   []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.GetMonthlyCashFlow(gctx, userID, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		balances, err = s.accountSvc.ListAccountsWithBalances(gctx, userID, false, ledger.CountAll)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.txnRepo.ListRecentTransactions(gctx, userID, recentEntriesLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to assemble dashboard")
		return nil, err
	}

	dashboard := &domain.Dashboard{
		Summary:      *summary,
		Accounts:     make([]domain.AccountBalanceRow, 0, len(balances)),
		TotalBalance: decimal.Zero,
		Recent:       recent,
	}
	for _, acc := range balances {
		dashboard.Accounts = append(dashboard.Accounts, domain.AccountBalanceRow{
			AccountID:   acc.AccountID,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Balance:     acc.Balance,
		})
		dashboard.TotalBalance = dashboard.TotalBalance.Add(acc.Balance)
	}
	if dashboard.Recent == nil {
		dashboard.Recent = []domain.Transaction{}
	}
	return dashboard, nil
}
