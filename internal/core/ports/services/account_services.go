package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by userID.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the user's accounts, optionally including
	// deactivated ones.
	ListAccounts(ctx context.Context, userID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// SetAccountActive toggles the soft-delete flag. Deactivated
	// accounts keep their history and stay part of balance reports.
	SetAccountActive(ctx context.Context, userID string, accountID string, isActive bool) error
}

// AccountCalculatorSvc defines balance derivation for accounts.
// Balances are never stored; they fold the account's entries over its
// initial balance under the given counting policy.
type AccountCalculatorSvc interface {
	// CalculateAccountBalance derives one account's balance.
	CalculateAccountBalance(ctx context.Context, userID string, accountID string, policy ledger.CountPolicy) (decimal.Decimal, error)

	// ListAccountsWithBalances derives balances for all the user's
	// accounts in one pass.
	ListAccountsWithBalances(ctx context.Context, userID string, includeInactive bool, policy ledger.CountPolicy) ([]domain.AccountWithBalance, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
