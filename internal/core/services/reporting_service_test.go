package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockTxnRepo       *MockTransactionRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockTxnRepo, accountSvc)
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) monthTxns() []domain.Transaction {
	return []domain.Transaction{
		{Type: domain.Income, Amount: decimal.RequireFromString("1000"), IsPaid: true},
		{Type: domain.Income, Amount: decimal.RequireFromString("500"), IsPaid: false},
		{Type: domain.Expense, Amount: decimal.RequireFromString("300"), IsPaid: true},
		{Type: domain.Expense, Amount: decimal.RequireFromString("450"), IsPaid: false},
		// Transfers move money, they are not flow.
		{Type: domain.Transfer, Amount: decimal.RequireFromString("9999"), IsPaid: true},
	}
}

func (suite *ReportingServiceTestSuite) TestGetMonthlyCashFlow_Identities() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("ListMonthTransactions", ctx, suite.userID, from, to).
		Return(suite.monthTxns(), nil).Once()

	summary, err := suite.service.GetMonthlyCashFlow(ctx, suite.userID, 2026, 8)

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.Equal(decimal.RequireFromString("1500")))
	suite.True(summary.TotalExpense.Equal(decimal.RequireFromString("750")))
	suite.True(summary.ReceivedIncome.Equal(decimal.RequireFromString("1000")))
	suite.True(summary.PaidExpense.Equal(decimal.RequireFromString("300")))
	suite.True(summary.PendingIncome.Equal(decimal.RequireFromString("500")))
	suite.True(summary.PendingExpense.Equal(decimal.RequireFromString("450")))
	suite.True(summary.ProjectedBalance.Equal(decimal.RequireFromString("750")))
	suite.True(summary.ActualBalance.Equal(decimal.RequireFromString("700")))
	suite.False(summary.Overspent)
	suite.Equal(67, summary.IncomeProgress)
	suite.Equal(40, summary.ExpenseProgress)
}

func (suite *ReportingServiceTestSuite) TestGetExpensesByCategory_Shares() {
	ctx := context.Background()
	rows := []domain.ExpenseByCategory{
		{CategoryID: "c1", CategoryName: "Moradia", Total: decimal.RequireFromString("600"), Paid: decimal.RequireFromString("600")},
		{CategoryID: "c2", CategoryName: "Lazer", Total: decimal.RequireFromString("200"), Paid: decimal.RequireFromString("50")},
	}

	suite.mockReportingRepo.On("SumExpensesByCategory", ctx, suite.userID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)).Return(rows, nil).Once()

	result, err := suite.service.GetExpensesByCategory(ctx, suite.userID, 2026, 8)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(75, result[0].Percent)
	suite.Equal(25, result[1].Percent)
}

func (suite *ReportingServiceTestSuite) TestGetDashboard_AssemblesAllParts() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "a1", UserID: suite.userID, Name: "Conta", AccountType: domain.Checking,
			InitialBalance: decimal.RequireFromString("100"), IsActive: true},
	}
	accountTxns := []domain.Transaction{
		{AccountID: "a1", Type: domain.Income, Amount: decimal.RequireFromString("50"), IsPaid: true},
	}
	recent := []domain.Transaction{
		{TransactionID: uuid.NewString(), Type: domain.Expense, Amount: decimal.RequireFromString("10")},
	}

	// The fan-out derives a child context, so match any context here.
	suite.mockReportingRepo.On("ListMonthTransactions", mock.Anything, suite.userID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)).Return(suite.monthTxns(), nil).Once()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).Return(accounts, nil).Once()
	suite.mockTxnRepo.On("ListAccountTransactions", mock.Anything, suite.userID).Return(accountTxns, nil).Once()
	suite.mockTxnRepo.On("ListRecentTransactions", mock.Anything, suite.userID, 10).Return(recent, nil).Once()

	dashboard, err := suite.service.GetDashboard(ctx, suite.userID, 2026, 8)

	suite.Require().NoError(err)
	suite.True(dashboard.Summary.TotalIncome.Equal(decimal.RequireFromString("1500")))
	suite.Require().Len(dashboard.Accounts, 1)
	suite.True(dashboard.Accounts[0].Balance.Equal(decimal.RequireFromString("150")))
	suite.True(dashboard.TotalBalance.Equal(decimal.RequireFromString("150")))
	suite.Len(dashboard.Recent, 1)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
