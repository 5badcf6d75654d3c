package repositories

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CardReader defines read operations for credit card data.
type CardReader interface {
	// FindCardByID retrieves a specific card owned by userID.
	FindCardByID(ctx context.Context, userID string, cardID string) (*domain.CreditCard, error)

	// ListCards retrieves all cards for a user, active first.
	ListCards(ctx context.Context, userID string) ([]domain.CreditCard, error)
}

// CardWriter defines write operations for credit card data.
type CardWriter interface {
	// SaveCard persists a new card.
	SaveCard(ctx context.Context, card domain.CreditCard) error

	// UpdateCard updates an existing card's details.
	UpdateCard(ctx context.Context, card domain.CreditCard) error

	// SetCardActive toggles the soft-delete flag.
	SetCardActive(ctx context.Context, userID string, cardID string, isActive bool, updatedBy string, now time.Time) error
}

// CardRepositoryFacade combines all card repository interfaces.
type CardRepositoryFacade interface {
	CardReader
	CardWriter
}

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoice retrieves the invoice for (card, year, month), if any.
	FindInvoice(ctx context.Context, userID string, cardID string, year int, month int) (*domain.Invoice, error)

	// ListInvoices retrieves a card's invoices, newest first.
	ListInvoices(ctx context.Context, userID string, cardID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// CloseInvoice atomically creates the invoice from the card's
	// uninvoiced transactions dated within [from, to) and stamps their
	// invoice reference. Both writes happen in one database
	// transaction; a second close for the same (card, year, month)
	// fails with ErrDuplicate.
	CloseInvoice(ctx context.Context, invoice domain.Invoice, from time.Time, to time.Time) (*domain.Invoice, error)

	// SetInvoicePaid toggles an invoice's paid flag.
	SetInvoicePaid(ctx context.Context, userID string, invoiceID string, isPaid bool, updatedBy string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
