package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a money account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Investment AccountType = "INVESTMENT"
	Savings    AccountType = "SAVINGS"
	Cash       AccountType = "CASH"
)

// Account represents a money account owned by a single user.
// The current balance is never stored: it is always derived as
// InitialBalance plus the signed sum of the account's transactions
// (see the ledger package).
type Account struct {
	AccountID      string          `json:"accountID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // signed; negative is valid
	IsActive       bool            `json:"isActive"`       // soft delete flag, accounts are never removed
	AuditFields
}

// AccountWithBalance pairs an account with its derived balance.
type AccountWithBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}
