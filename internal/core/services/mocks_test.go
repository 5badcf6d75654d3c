package services_test

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
	"google.golang.org/api/idtoken"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserPassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// MockTokenService is a mock type for the TokenSvcFacade interface
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

func (m *MockTokenService) ExchangeGoogleCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, userID string, accountID string, isActive bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, accountID, isActive, updatedBy, now)
	return args.Error(0)
}

// MockCardRepository is a mock type for the CardRepositoryFacade interface
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) FindCardByID(ctx context.Context, userID string, cardID string) (*domain.CreditCard, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditCard), args.Error(1)
}

func (m *MockCardRepository) ListCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditCard), args.Error(1)
}

func (m *MockCardRepository) SaveCard(ctx context.Context, card domain.CreditCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateCard(ctx context.Context, card domain.CreditCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) SetCardActive(ctx context.Context, userID string, cardID string, isActive bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, cardID, isActive, updatedBy, now)
	return args.Error(0)
}

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoice(ctx context.Context, userID string, cardID string, year int, month int) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, cardID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, userID string, cardID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CloseInvoice(ctx context.Context, invoice domain.Invoice, from time.Time, to time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SetInvoicePaid(ctx context.Context, userID string, invoiceID string, isPaid bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, invoiceID, isPaid, updatedBy, now)
	return args.Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateCategoryWithChildren(ctx context.Context, userID string, categoryID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, categoryID, updatedBy, now)
	return args.Error(0)
}

func (m *MockCategoryRepository) ActivateCategory(ctx context.Context, userID string, categoryID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, categoryID, updatedBy, now)
	return args.Error(0)
}

// MockTagRepository is a mock type for the TagRepositoryFacade interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error) {
	args := m.Called(ctx, userID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagByName(ctx context.Context, userID string, name string) (*domain.Tag, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagsByIDs(ctx context.Context, userID string, tagIDs []string) (map[string]domain.Tag, error) {
	args := m.Called(ctx, userID, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) DeleteTag(ctx context.Context, userID string, tagID string) error {
	args := m.Called(ctx, userID, tagID)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAccountTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListUninvoicedCardTransactions(ctx context.Context, userID string, cardID string, from time.Time, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, cardID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, tagIDs []string) error {
	args := m.Called(ctx, txn, tagIDs)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransferPair(ctx context.Context, outgoing domain.Transaction, incoming domain.Transaction, tagIDs []string) error {
	args := m.Called(ctx, outgoing, incoming, tagIDs)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, tagIDs []string) error {
	args := m.Called(ctx, txn, tagIDs)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetTransactionPaid(ctx context.Context, userID string, transactionID string, isPaid bool, paidAt *time.Time, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, transactionID, isPaid, paidAt, updatedBy, now)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepositoryFacade interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListMonthTransactions(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportingRepository) SumExpensesByCategory(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.ExpenseByCategory, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseByCategory), args.Error(1)
}
