package dto

import (
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCardRequest defines the data needed to create a credit card.
// CreditLimit is an optional decimal string; cards without a limit
// never report a usage percentage.
type CreateCardRequest struct {
	Name        string  `json:"name" binding:"required"`
	CreditLimit *string `json:"creditLimit" binding:"omitempty,money"`
	ClosingDay  int     `json:"closingDay" binding:"required,min=1,max=31"`
	DueDay      int     `json:"dueDay" binding:"required,min=1,max=31"`
}

// UpdateCardRequest defines the data allowed for updating a card.
type UpdateCardRequest struct {
	Name        *string `json:"name"`
	CreditLimit *string `json:"creditLimit" binding:"omitempty,money"`
	ClosingDay  *int    `json:"closingDay" binding:"omitempty,min=1,max=31"`
	DueDay      *int    `json:"dueDay" binding:"omitempty,min=1,max=31"`
}

// CardResponse defines the data returned for a card.
type CardResponse struct {
	CardID        string           `json:"cardID"`
	Name          string           `json:"name"`
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	ClosingDay    int              `json:"closingDay"`
	DueDay        int              `json:"dueDay"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// CardInvoiceResponse extends CardResponse with current billing-month
// figures. UsagePercent is null for cards without a limit and may
// exceed 100 on over-limit cards.
type CardInvoiceResponse struct {
	CardResponse
	InvoiceAmount decimal.Decimal `json:"invoiceAmount"`
	InvoicePaid   bool            `json:"invoicePaid"`
	UsagePercent  *int            `json:"usagePercent"`
}

// CloseInvoiceRequest fixes a card's invoice total for one billing month.
type CloseInvoiceRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// InvoiceResponse defines the data returned for a closed invoice.
type InvoiceResponse struct {
	InvoiceID   string          `json:"invoiceID"`
	CardID      string          `json:"cardID"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsPaid      bool            `json:"isPaid"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SetInvoicePaidRequest toggles an invoice's paid flag.
type SetInvoicePaidRequest struct {
	IsPaid *bool `json:"isPaid" binding:"required"`
}

// ToCardResponse converts a domain.CreditCard to CardResponse DTO
func ToCardResponse(card *domain.CreditCard) CardResponse {
	return CardResponse{
		CardID:        card.CardID,
		Name:          card.Name,
		CreditLimit:   card.CreditLimit,
		ClosingDay:    card.ClosingDay,
		DueDay:        card.DueDay,
		IsActive:      card.IsActive,
		CreatedAt:     card.CreatedAt,
		LastUpdatedAt: card.LastUpdatedAt,
	}
}

// ToCardInvoiceResponse converts a card with billing figures to its DTO
func ToCardInvoiceResponse(card *domain.CardWithInvoice) CardInvoiceResponse {
	return CardInvoiceResponse{
		CardResponse:  ToCardResponse(&card.CreditCard),
		InvoiceAmount: card.InvoiceAmount,
		InvoicePaid:   card.InvoicePaid,
		UsagePercent:  card.UsagePercent,
	}
}

// ToListCardInvoiceResponse converts a slice of cards with billing figures
func ToListCardInvoiceResponse(cards []domain.CardWithInvoice) []CardInvoiceResponse {
	res := make([]CardInvoiceResponse, len(cards))
	for i, card := range cards {
		res[i] = ToCardInvoiceResponse(&card)
	}
	return res
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		CardID:      inv.CardID,
		Year:        inv.Year,
		Month:       inv.Month,
		TotalAmount: inv.TotalAmount,
		IsPaid:      inv.IsPaid,
		CreatedAt:   inv.CreatedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}
