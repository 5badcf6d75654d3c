package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Investment AccountType = "INVESTMENT"
	Savings    AccountType = "SAVINGS"
	Cash       AccountType = "CASH"
)

// Account is the accounts table row.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
