package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/handlers"
	"github.com/granaapp/grana_backend/internal/platform/config"
	"github.com/granaapp/grana_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) SetTransactionPaid(ctx context.Context, userID string, transactionID string, isPaid bool) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, isPaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockTxn   *MockTransactionService
	jwtSecret string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockTxn = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger registration
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Transaction: suite.mockTxn,
	})
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "grana-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransactionHandlerTestSuite) authedRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateTransactionRequest{
		Type:        domain.Expense,
		Description: "Mercado",
		Amount:      "85,90",
		Date:        "2026-08-10",
		AccountID:   uuid.NewString(),
		CategoryID:  uuid.NewString(),
	}
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Expense,
		Description:   "Mercado",
		Amount:        decimal.RequireFromString("85.90"),
		Date:          time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		IsPaid:        true,
		AccountID:     reqBody.AccountID,
		Tags:          []domain.Tag{},
	}

	suite.mockTxn.On("CreateTransaction",
		mock.Anything,
		userID,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Description == "Mercado" && r.Amount == "85,90"
		}),
	).Return(created, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions", reqBody, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("2026-08-10", resp.Date)
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationError() {
	userID := uuid.NewString()
	reqBody := dto.CreateTransactionRequest{
		Type:        domain.Expense,
		Description: "Mercado",
		Amount:      "85,90",
		Date:        "2026-08-10",
		AccountID:   uuid.NewString(),
		CardID:      uuid.NewString(),
		CategoryID:  uuid.NewString(),
	}

	suite.mockTxn.On("CreateTransaction", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions", reqBody, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_NoCategoryRejected() {
	userID := uuid.NewString()
	reqBody := dto.CreateTransactionRequest{
		Type:        domain.Expense,
		Description: "Mercado",
		Amount:      "85,90",
		Date:        "2026-08-10",
		AccountID:   uuid.NewString(),
	}

	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions", reqBody, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxn.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesCursorAndReturnsToken() {
	userID := uuid.NewString()
	txns := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          domain.Income,
			Description:   "Salário",
			Amount:        decimal.RequireFromString("5000"),
			Date:          time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
			IsPaid:        true,
			AccountID:     uuid.NewString(),
			Tags:          []domain.Tag{},
		},
	}

	suite.mockTxn.On("ListTransactions",
		mock.Anything,
		userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 10 && p.NextToken == "abc"
		}),
	).Return(txns, "next-page-token", nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions?limit=10&nextToken=abc", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal("next-page-token", resp.NextToken)
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NotFound() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockTxn.On("DeleteTransaction", mock.Anything, userID, txnID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/transactions/"+txnID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_NoToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTxn.AssertNotCalled(suite.T(), "ListTransactions")
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
