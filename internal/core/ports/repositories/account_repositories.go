package repositories

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// AccountReader defines read operations for account data. Every query
// is scoped by the owning user; rows belonging to other users behave as
// if they did not exist.
type AccountReader interface {
	// FindAccountByID retrieves a specific account owned by userID.
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts owned by userID.
	FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts for a user, active first.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's name and type.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive toggles the soft-delete flag.
	SetAccountActive(ctx context.Context, userID string, accountID string, isActive bool, updatedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
