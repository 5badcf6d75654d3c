package domain

import (
	"github.com/shopspring/decimal"
)

// CreditCard represents a credit card owned by a single user.
// CreditLimit is optional; a card without a limit never reports a
// usage percentage.
type CreditCard struct {
	CardID      string           `json:"cardID"`
	UserID      string           `json:"userID"`
	Name        string           `json:"name"`
	CreditLimit *decimal.Decimal `json:"creditLimit"` // nil when the card has no limit
	ClosingDay  int              `json:"closingDay"`  // 1-31
	DueDay      int              `json:"dueDay"`      // 1-31
	IsActive    bool             `json:"isActive"`
	AuditFields
}

// Invoice is a card's closed, fixed total for a billing month.
// At most one invoice exists per (card, year, month).
type Invoice struct {
	InvoiceID   string          `json:"invoiceID"`
	CardID      string          `json:"cardID"`
	Year        int             `json:"year"`
	Month       int             `json:"month"` // 1-12
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsPaid      bool            `json:"isPaid"`
	AuditFields
}

// CardWithInvoice pairs a card with its current billing-month figures.
// InvoiceAmount comes from the closed invoice when one exists, otherwise
// from the running sum of uninvoiced charges. UsagePercent is nil for
// cards without a limit and is never clamped, over-limit cards report
// values above 100.
type CardWithInvoice struct {
	CreditCard
	InvoiceAmount decimal.Decimal `json:"invoiceAmount"`
	InvoicePaid   bool            `json:"invoicePaid"`
	UsagePercent  *int            `json:"usagePercent"`
}
