package dto

import (
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// InitialBalance is a decimal string; a comma decimal separator is
// accepted and it may be negative (overdrawn accounts are valid).
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING INVESTMENT SAVINGS CASH"`
	InitialBalance string             `json:"initialBalance"` // defaults to 0 when omitted
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,oneof=CHECKING INVESTMENT SAVINGS CASH"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// AccountBalanceResponse pairs an account with its derived balance.
type AccountBalanceResponse struct {
	AccountResponse
	Balance decimal.Decimal `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool   `form:"includeInactive,default=false"`
	CountPolicy     string `form:"countPolicy" binding:"omitempty,oneof=all settled paid"`
}

// ListAccountsResponse wraps the list of accounts with balances and
// their total.
type ListAccountsResponse struct {
	Accounts     []AccountBalanceResponse `json:"accounts"`
	TotalBalance decimal.Decimal          `json:"totalBalance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		InitialBalance: acc.InitialBalance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts derived balances to the list DTO,
// summing the total across accounts.
func ToListAccountsResponse(accounts []domain.AccountWithBalance) ListAccountsResponse {
	res := ListAccountsResponse{
		Accounts:     make([]AccountBalanceResponse, len(accounts)),
		TotalBalance: decimal.Zero,
	}
	for i, acc := range accounts {
		res.Accounts[i] = AccountBalanceResponse{
			AccountResponse: ToAccountResponse(&acc.Account),
			Balance:         acc.Balance,
		}
		res.TotalBalance = res.TotalBalance.Add(acc.Balance)
	}
	return res
}
