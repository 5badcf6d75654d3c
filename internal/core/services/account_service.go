package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/utils"
	"github.com/granaapp/grana_backend/internal/utils/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements AccountSvcFacade. Balances are derived on
// read by folding the account's entries over its initial balance; no
// balance column exists to drift.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionReader
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := utils.ParseSignedAmount(req.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("%w: initialBalance: %s", apperrors.ErrValidation, err.Error())
		}
		initialBalance = parsed
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		InitialBalance: initialBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if !includeInactive {
		filtered := accounts[:0]
		for _, acc := range accounts {
			if acc.IsActive {
				filtered = append(filtered, acc)
			}
		}
		accounts = filtered
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) SetAccountActive(ctx context.Context, userID string, accountID string, isActive bool) error {
	err := s.accountRepo.SetAccountActive(ctx, userID, accountID, isActive, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account active flag set", slog.String("account_id", accountID), slog.Bool("is_active", isActive))
	return nil
}

// CalculateAccountBalance derives one account's balance under the given
// counting policy.
func (s *accountService) CalculateAccountBalance(ctx context.Context, userID string, accountID string, policy ledger.CountPolicy) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	txns, err := s.txnRepo.ListAccountTransactions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for balance", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to load transactions: %w", err)
	}

	own := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.AccountID == accountID {
			own = append(own, txn)
		}
	}

	balance, err := ledger.AccountBalance(account.InitialBalance, own, policy)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// ListAccountsWithBalances loads every account's entries once and folds
// balances per account.
func (s *accountService) ListAccountsWithBalances(ctx context.Context, userID string, includeInactive bool, policy ledger.CountPolicy) ([]domain.AccountWithBalance, error) {
	accounts, err := s.ListAccounts(ctx, userID, includeInactive)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListAccountTransactions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for balances")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	byAccount := make(map[string][]domain.Transaction, len(accounts))
	for _, txn := range txns {
		byAccount[txn.AccountID] = append(byAccount[txn.AccountID], txn)
	}

	result := make([]domain.AccountWithBalance, 0, len(accounts))
	for _, acc := range accounts {
		balance, err := ledger.AccountBalance(acc.InitialBalance, byAccount[acc.AccountID], policy)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.AccountWithBalance{Account: acc, Balance: balance})
	}
	return result, nil
}
