package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CardServiceTestSuite struct {
	suite.Suite
	mockCardRepo    *MockCardRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.CardSvcFacade
	userID          string
}

func (suite *CardServiceTestSuite) SetupTest() {
	suite.mockCardRepo = new(MockCardRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewCardService(suite.mockCardRepo, suite.mockInvoiceRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func (suite *CardServiceTestSuite) TestCreateCard_WithLimit() {
	ctx := context.Background()
	limit := "2000"
	req := dto.CreateCardRequest{Name: "Visa Gold", CreditLimit: &limit, ClosingDay: 5, DueDay: 12}

	suite.mockCardRepo.On("SaveCard", ctx, mock.AnythingOfType("domain.CreditCard")).Return(nil).Once()

	created, err := suite.service.CreateCard(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created.CreditLimit)
	suite.True(created.CreditLimit.Equal(decimal.RequireFromString("2000")))
	suite.True(created.IsActive)
}

func (suite *CardServiceTestSuite) TestCreateCard_WithoutLimit() {
	ctx := context.Background()
	req := dto.CreateCardRequest{Name: "Sem Limite", ClosingDay: 5, DueDay: 12}

	suite.mockCardRepo.On("SaveCard", ctx, mock.AnythingOfType("domain.CreditCard")).Return(nil).Once()

	created, err := suite.service.CreateCard(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Nil(created.CreditLimit)
}

func (suite *CardServiceTestSuite) TestListCardsWithInvoices_RunningSum() {
	ctx := context.Background()
	cardID := uuid.NewString()
	limit := decimal.RequireFromString("2000")
	cards := []domain.CreditCard{{
		CardID:      cardID,
		UserID:      suite.userID,
		Name:        "Visa",
		CreditLimit: &limit,
		ClosingDay:  5,
		DueDay:      12,
		IsActive:    true,
	}}
	charges := []domain.Transaction{
		{TransactionID: "t1", CardID: cardID, Type: domain.Expense, Amount: decimal.RequireFromString("300")},
		{TransactionID: "t2", CardID: cardID, Type: domain.Expense, Amount: decimal.RequireFromString("200")},
	}

	// The running sum covers the current calendar month, not a
	// closing-day window.
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	suite.mockCardRepo.On("ListCards", ctx, suite.userID).Return(cards, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoice", ctx, suite.userID, cardID, now.Year(), int(now.Month())).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("ListUninvoicedCardTransactions", ctx, suite.userID, cardID,
		monthStart, monthStart.AddDate(0, 1, 0)).Return(charges, nil).Once()

	result, err := suite.service.ListCardsWithInvoices(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].InvoiceAmount.Equal(decimal.RequireFromString("500")))
	suite.False(result[0].InvoicePaid)
	suite.Require().NotNil(result[0].UsagePercent)
	suite.Equal(25, *result[0].UsagePercent)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestListCardsWithInvoices_ClosedInvoiceWins() {
	ctx := context.Background()
	cardID := uuid.NewString()
	limit := decimal.RequireFromString("400")
	cards := []domain.CreditCard{{
		CardID:      cardID,
		UserID:      suite.userID,
		Name:        "Master",
		CreditLimit: &limit,
		ClosingDay:  5,
		DueDay:      12,
		IsActive:    true,
	}}
	invoice := &domain.Invoice{
		InvoiceID:   uuid.NewString(),
		CardID:      cardID,
		TotalAmount: decimal.RequireFromString("500"),
		IsPaid:      true,
	}

	suite.mockCardRepo.On("ListCards", ctx, suite.userID).Return(cards, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoice", ctx, suite.userID, cardID, mock.AnythingOfType("int"), mock.AnythingOfType("int")).
		Return(invoice, nil).Once()

	result, err := suite.service.ListCardsWithInvoices(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].InvoiceAmount.Equal(invoice.TotalAmount))
	suite.True(result[0].InvoicePaid)
	// Over-limit usage is reported as-is, not clamped.
	suite.Require().NotNil(result[0].UsagePercent)
	suite.Equal(125, *result[0].UsagePercent)
	// The running sum must not be consulted once an invoice is closed.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListUninvoicedCardTransactions")
}

func (suite *CardServiceTestSuite) TestListCardsWithInvoices_NoLimitNoPercent() {
	ctx := context.Background()
	cardID := uuid.NewString()
	cards := []domain.CreditCard{{
		CardID:     cardID,
		UserID:     suite.userID,
		Name:       "Sem Limite",
		ClosingDay: 5,
		DueDay:     12,
		IsActive:   true,
	}}
	charges := []domain.Transaction{
		{TransactionID: "t1", CardID: cardID, Type: domain.Expense, Amount: decimal.RequireFromString("999")},
	}

	suite.mockCardRepo.On("ListCards", ctx, suite.userID).Return(cards, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoice", ctx, suite.userID, cardID, mock.AnythingOfType("int"), mock.AnythingOfType("int")).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("ListUninvoicedCardTransactions", ctx, suite.userID, cardID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(charges, nil).Once()

	result, err := suite.service.ListCardsWithInvoices(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Nil(result[0].UsagePercent)
}

func (suite *CardServiceTestSuite) TestCloseInvoice_Success() {
	ctx := context.Background()
	cardID := uuid.NewString()
	card := &domain.CreditCard{CardID: cardID, UserID: suite.userID, Name: "Visa", ClosingDay: 10, DueDay: 17, IsActive: true}
	req := dto.CloseInvoiceRequest{Year: 2026, Month: 8}

	suite.mockCardRepo.On("FindCardByID", ctx, suite.userID, cardID).Return(card, nil).Once()
	// The invoice covers the calendar month, regardless of closing day.
	suite.mockInvoiceRepo.On("CloseInvoice", ctx, mock.AnythingOfType("domain.Invoice"),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	).Return(&domain.Invoice{
		InvoiceID:   uuid.NewString(),
		CardID:      cardID,
		Year:        2026,
		Month:       8,
		TotalAmount: decimal.RequireFromString("732.40"),
	}, nil).Once()

	closed, err := suite.service.CloseInvoice(ctx, suite.userID, cardID, req)

	suite.Require().NoError(err)
	suite.Equal(2026, closed.Year)
	suite.Equal(8, closed.Month)
	suite.True(closed.TotalAmount.Equal(decimal.RequireFromString("732.40")))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestCloseInvoice_Duplicate() {
	ctx := context.Background()
	cardID := uuid.NewString()
	card := &domain.CreditCard{CardID: cardID, UserID: suite.userID, Name: "Visa", ClosingDay: 10, DueDay: 17, IsActive: true}

	suite.mockCardRepo.On("FindCardByID", ctx, suite.userID, cardID).Return(card, nil).Once()
	suite.mockInvoiceRepo.On("CloseInvoice", ctx, mock.AnythingOfType("domain.Invoice"),
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.service.CloseInvoice(ctx, suite.userID, cardID, dto.CloseInvoiceRequest{Year: 2026, Month: 8})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CardServiceTestSuite) TestSetInvoicePaid_CardNotOwned() {
	ctx := context.Background()
	cardID := uuid.NewString()
	suite.mockCardRepo.On("FindCardByID", ctx, suite.userID, cardID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.SetInvoicePaid(ctx, suite.userID, cardID, uuid.NewString(), true)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SetInvoicePaid")
}

func TestCardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CardServiceTestSuite))
}
