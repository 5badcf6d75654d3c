package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// CardReaderSvc defines read operations for credit card data
type CardReaderSvc interface {
	// GetCardByID retrieves a specific card owned by userID.
	GetCardByID(ctx context.Context, userID string, cardID string) (*domain.CreditCard, error)

	// ListCardsWithInvoices retrieves the user's cards with their
	// current billing-month amount and usage percentage.
	ListCardsWithInvoices(ctx context.Context, userID string) ([]domain.CardWithInvoice, error)
}

// CardWriterSvc defines write operations for credit card data
type CardWriterSvc interface {
	// CreateCard persists a new card.
	CreateCard(ctx context.Context, userID string, req dto.CreateCardRequest) (*domain.CreditCard, error)

	// UpdateCard updates an existing card's details.
	UpdateCard(ctx context.Context, userID string, cardID string, req dto.UpdateCardRequest) (*domain.CreditCard, error)

	// SetCardActive toggles the soft-delete flag.
	SetCardActive(ctx context.Context, userID string, cardID string, isActive bool) error
}

// InvoiceSvc defines billing cycle operations for a card.
type InvoiceSvc interface {
	// ListInvoices retrieves a card's closed invoices, newest first.
	ListInvoices(ctx context.Context, userID string, cardID string) ([]domain.Invoice, error)

	// CloseInvoice fixes the card's invoice total for one month from
	// its uninvoiced charges. Closing twice for the same month fails
	// with a duplicate error.
	CloseInvoice(ctx context.Context, userID string, cardID string, req dto.CloseInvoiceRequest) (*domain.Invoice, error)

	// SetInvoicePaid toggles an invoice's paid flag.
	SetInvoicePaid(ctx context.Context, userID string, cardID string, invoiceID string, isPaid bool) error
}

// CardSvcFacade combines all card-related service interfaces
type CardSvcFacade interface {
	CardReaderSvc
	CardWriterSvc
	InvoiceSvc
}
