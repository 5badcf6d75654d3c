package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger entries
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves an entry owned by userID, with tags.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, cursor-paginated page of
	// entries. The returned token is empty on the last page.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)
}

// TransactionWriterSvc defines write operations for ledger entries
type TransactionWriterSvc interface {
	// CreateTransaction persists a new income or expense entry.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// CreateTransfer materializes a transfer as two TRANSFER entries,
	// one per account, written atomically. Tags attach to the outgoing
	// leg only.
	CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (outgoing *domain.Transaction, incoming *domain.Transaction, err error)

	// UpdateTransaction updates an entry; a non-nil tag set replaces
	// the previous one atomically.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes an entry and its tag associations.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	// SetTransactionPaid toggles the settled flag, stamping the paid
	// timestamp on settle and clearing it on revert.
	SetTransactionPaid(ctx context.Context, userID string, transactionID string, isPaid bool) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
