package dto

import (
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed for an income or
// expense entry. Amount is a positive decimal string; a comma decimal
// separator is accepted. Exactly one of AccountID or CardID must be set.
type CreateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Description string                 `json:"description" binding:"required"`
	Amount      string                 `json:"amount" binding:"required,money"`
	Date        string                 `json:"date" binding:"required,datetime=2006-01-02"`
	AccountID   string                 `json:"accountID"`
	CardID      string                 `json:"cardID"`
	CategoryID  string                 `json:"categoryID" binding:"required"`
	IsPaid      *bool                  `json:"isPaid"` // defaults to true
	Notes       string                 `json:"notes"`
	TagIDs      []string               `json:"tagIDs"`
}

// CreateTransferRequest defines the data needed to move money between
// two accounts. It materializes as two TRANSFER entries, one per
// account, both carrying the category; tags attach to the outgoing leg
// only.
type CreateTransferRequest struct {
	FromAccountID string   `json:"fromAccountID" binding:"required"`
	ToAccountID   string   `json:"toAccountID" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Amount        string   `json:"amount" binding:"required,money"`
	Date          string   `json:"date" binding:"required,datetime=2006-01-02"`
	CategoryID    string   `json:"categoryID" binding:"required"`
	Notes         string   `json:"notes"`
	TagIDs        []string `json:"tagIDs"`
}

// UpdateTransactionRequest defines the data allowed for updating an
// entry. The type and account/card binding are fixed at creation.
// A non-nil TagIDs replaces the entry's whole tag set.
type UpdateTransactionRequest struct {
	Description *string   `json:"description"`
	Amount      *string   `json:"amount" binding:"omitempty,money"`
	Date        *string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
	CategoryID  *string   `json:"categoryID"`
	Notes       *string   `json:"notes"`
	TagIDs      *[]string `json:"tagIDs"`
}

// SetTransactionPaidRequest toggles the settled flag.
type SetTransactionPaidRequest struct {
	IsPaid *bool `json:"isPaid" binding:"required"`
}

// ListTransactionsParams defines query parameters for listing entries.
type ListTransactionsParams struct {
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Type       string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	CategoryID string `form:"categoryID"`
	AccountID  string `form:"accountID"`
	CardID     string `form:"cardID"`
	TagID      string `form:"tagID"`
	Search     string `form:"search"`
	Limit      int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken  string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Type          domain.TransactionType `json:"type"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          string                 `json:"date"`
	IsPaid        bool                   `json:"isPaid"`
	PaidAt        *time.Time             `json:"paidAt"`
	Notes         string                 `json:"notes"`
	AccountID     string                 `json:"accountID,omitempty"`
	CardID        string                 `json:"cardID,omitempty"`
	CategoryID    string                 `json:"categoryID,omitempty"`
	InvoiceID     string                 `json:"invoiceID,omitempty"`
	Tags          []TagResponse          `json:"tags"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of entries. NextToken is empty
// on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// TransferResponse carries both legs of a materialized transfer.
type TransferResponse struct {
	Outgoing TransactionResponse `json:"outgoing"`
	Incoming TransactionResponse `json:"incoming"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		Description:   txn.Description,
		Amount:        txn.Amount,
		Date:          txn.Date.Format("2006-01-02"),
		IsPaid:        txn.IsPaid,
		PaidAt:        txn.PaidAt,
		Notes:         txn.Notes,
		AccountID:     txn.AccountID,
		CardID:        txn.CardID,
		CategoryID:    txn.CategoryID,
		InvoiceID:     txn.InvoiceID,
		Tags:          ToListTagResponse(txn.Tags),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}
