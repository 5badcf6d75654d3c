package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger entry. The stored amount is always an
// unsigned magnitude; the sign applied at computation time follows the
// type (see ledger.SignedAmount).
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// Transaction is a single ledger entry. Exactly one of AccountID or
// CardID is set for income and expenses; transfers always reference an
// account. A logical transfer is materialized as two TRANSFER rows with
// the same amount and date, one per account.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // positive magnitude
	Date          time.Time       `json:"date"`
	IsPaid        bool            `json:"isPaid"`
	PaidAt        *time.Time      `json:"paidAt"`
	Notes         string          `json:"notes"`
	AccountID     string          `json:"accountID"` // empty when CardID is set
	CardID        string          `json:"cardID"`    // empty when AccountID is set
	CategoryID    string          `json:"categoryID"`
	InvoiceID     string          `json:"invoiceID"` // set once a card invoice closes over this entry

	// TransferGroupID ties the two legs of a transfer together. Empty
	// for income and expenses.
	TransferGroupID string `json:"transferGroupID,omitempty"`

	Tags []Tag `json:"tags"`
	AuditFields
}
