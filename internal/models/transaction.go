package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the storage layer.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// Transaction is the transactions table row. account_id, card_id and
// invoice_id are nullable and carried as empty strings when NULL.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Type          TransactionType `db:"type"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Date          time.Time       `db:"date"`
	IsPaid        bool            `db:"is_paid"`
	PaidAt        *time.Time      `db:"paid_at"`
	Notes         string          `db:"notes"`
	AccountID     string          `db:"account_id"`
	CardID        string          `db:"card_id"`
	CategoryID    string          `db:"category_id"`
	InvoiceID     string          `db:"invoice_id"`

	// TransferGroupID ties the two legs of a transfer together so a
	// delete can remove both. Empty for income and expenses.
	TransferGroupID string `db:"transfer_group_id"`
	AuditFields
}
