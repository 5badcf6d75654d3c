package models

import (
	"github.com/shopspring/decimal"
)

// CreditCard is the credit_cards table row.
type CreditCard struct {
	CardID      string           `db:"card_id"`
	UserID      string           `db:"user_id"`
	Name        string           `db:"name"`
	CreditLimit *decimal.Decimal `db:"credit_limit"` // nullable
	ClosingDay  int              `db:"closing_day"`
	DueDay      int              `db:"due_day"`
	IsActive    bool             `db:"is_active"`
	AuditFields
}

// Invoice is the invoices table row. Unique on (card_id, year, month).
type Invoice struct {
	InvoiceID   string          `db:"invoice_id"`
	CardID      string          `db:"card_id"`
	Year        int             `db:"year"`
	Month       int             `db:"month"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	IsPaid      bool            `db:"is_paid"`
	AuditFields
}
