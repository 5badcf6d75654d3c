package repositories

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean
// "no filter". UserID is mandatory; every query is tenant-scoped.
type TransactionFilter struct {
	UserID     string
	From       time.Time
	To         time.Time
	Type       domain.TransactionType
	CategoryID string
	AccountID  string
	CardID     string
	TagID      string
	Search     string // matches description or notes, case-insensitive

	// Cursor pagination over (date DESC, created_at DESC).
	Limit           int
	CursorDate      *time.Time
	CursorCreatedAt *time.Time
}

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID,
	// including its tags.
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves entries matching the filter, with tags,
	// ordered by (date DESC, created_at DESC).
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// ListAccountTransactions retrieves every entry attached to any of
	// the user's accounts, used to derive balances.
	ListAccountTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListUninvoicedCardTransactions retrieves a card's entries that are
	// not yet attached to an invoice, dated within [from, to).
	ListUninvoicedCardTransactions(ctx context.Context, userID string, cardID string, from time.Time, to time.Time) ([]domain.Transaction, error)

	// ListRecentTransactions retrieves the newest entries for a user.
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries.
type TransactionWriter interface {
	// SaveTransaction persists a new entry and its tag associations in
	// one database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, tagIDs []string) error

	// SaveTransferPair persists the two legs of a transfer atomically:
	// either both rows (plus the outgoing leg's tags) are created, or
	// nothing is.
	SaveTransferPair(ctx context.Context, outgoing domain.Transaction, incoming domain.Transaction, tagIDs []string) error

	// UpdateTransaction updates an entry and re-syncs its tag set
	// (delete then recreate) in one database transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, tagIDs []string) error

	// DeleteTransaction removes an entry and its tag associations.
	// Deleting one leg of a transfer removes the sibling leg too.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	// SetTransactionPaid toggles the settled flag, stamping or clearing
	// the paid timestamp.
	SetTransactionPaid(ctx context.Context, userID string, transactionID string, isPaid bool, paidAt *time.Time, updatedBy string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository
// interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
