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
	"github.com/granaapp/grana_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Suffixes appended to the shared description on each transfer leg.
const (
	transferOutSuffix = " (saída)"
	transferInSuffix  = " (entrada)"
)

// transactionService implements TransactionSvcFacade. Amounts are
// stored as positive magnitudes; the sign is applied at computation
// time from the entry's type.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountReader
	cardRepo     portsrepo.CardReader
	categoryRepo portsrepo.CategoryReader
	tagRepo      portsrepo.TagReader
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	cardRepo portsrepo.CardReader,
	categoryRepo portsrepo.CategoryReader,
	tagRepo portsrepo.TagReader,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// resolveTags checks that every referenced tag exists and belongs to
// the user, returning them in request order.
func (s *transactionService) resolveTags(ctx context.Context, userID string, tagIDs []string) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return []domain.Tag{}, nil
	}
	found, err := s.tagRepo.FindTagsByIDs(ctx, userID, tagIDs)
	if err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: tag %s", apperrors.ErrNotFound, id)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// validateCategory checks existence, ownership and that the category's
// type matches the entry's direction.
func (s *transactionService) validateCategory(ctx context.Context, userID string, categoryID string, txnType domain.TransactionType) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !category.IsActive {
		return fmt.Errorf("%w: category %q is inactive", apperrors.ErrValidation, category.Name)
	}
	switch txnType {
	case domain.Income:
		if category.Type != domain.CategoryIncome {
			return fmt.Errorf("%w: category %q is not an income category", apperrors.ErrValidation, category.Name)
		}
	case domain.Expense:
		if category.Type != domain.CategoryExpense {
			return fmt.Errorf("%w: category %q is not an expense category", apperrors.ErrValidation, category.Name)
		}
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %s", apperrors.ErrValidation, err.Error())
	}
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %s", apperrors.ErrValidation, err.Error())
	}

	if (req.AccountID == "") == (req.CardID == "") {
		return nil, fmt.Errorf("%w: exactly one of accountID or cardID must be set", apperrors.ErrValidation)
	}

	if req.AccountID != "" {
		account, err := s.accountRepo.FindAccountByID(ctx, userID, req.AccountID)
		if err != nil {
			return nil, err
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %q is inactive", apperrors.ErrValidation, account.Name)
		}
	} else {
		if req.Type != domain.Expense {
			return nil, fmt.Errorf("%w: only expenses can target a card", apperrors.ErrValidation)
		}
		card, err := s.cardRepo.FindCardByID(ctx, userID, req.CardID)
		if err != nil {
			return nil, err
		}
		if !card.IsActive {
			return nil, fmt.Errorf("%w: card %q is inactive", apperrors.ErrValidation, card.Name)
		}
	}

	if req.CategoryID == "" {
		return nil, fmt.Errorf("%w: categoryID is required", apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, userID, req.CategoryID, req.Type); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}
	now := time.Now()
	var paidAt *time.Time
	if isPaid {
		paidAt = &now
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          req.Type,
		Description:   req.Description,
		Amount:        amount,
		Date:          date,
		IsPaid:        isPaid,
		PaidAt:        paidAt,
		Notes:         req.Notes,
		AccountID:     req.AccountID,
		CardID:        req.CardID,
		CategoryID:    req.CategoryID,
		Tags:          tags,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, req.TagIDs); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// CreateTransfer materializes a transfer as two TRANSFER entries tied
// by a group ID, persisted in one database transaction. Both legs share
// the amount, date and category; the request's tags go to the outgoing
// leg only.
func (s *transactionService) CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (*domain.Transaction, *domain.Transaction, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: amount: %s", apperrors.ErrValidation, err.Error())
	}
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: date: %s", apperrors.ErrValidation, err.Error())
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, userID, []string{req.FromAccountID, req.ToAccountID})
	if err != nil {
		return nil, nil, err
	}
	for _, id := range []string{req.FromAccountID, req.ToAccountID} {
		account, ok := accounts[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: account %q is inactive", apperrors.ErrValidation, account.Name)
		}
	}

	if req.CategoryID == "" {
		return nil, nil, fmt.Errorf("%w: categoryID is required", apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, userID, req.CategoryID, domain.Transfer); err != nil {
		return nil, nil, err
	}

	tags, err := s.resolveTags(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	groupID := uuid.NewString()
	base := domain.Transaction{
		UserID:     userID,
		Type:       domain.Transfer,
		Amount:     amount,
		Date:       date,
		IsPaid:     true,
		PaidAt:     &now,
		CategoryID: req.CategoryID,
		Notes:      req.Notes,

		TransferGroupID: groupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	outgoing := base
	outgoing.TransactionID = uuid.NewString()
	outgoing.Description = req.Description + transferOutSuffix
	outgoing.AccountID = req.FromAccountID
	outgoing.Tags = tags

	incoming := base
	incoming.TransactionID = uuid.NewString()
	incoming.Description = req.Description + transferInSuffix
	incoming.AccountID = req.ToAccountID
	incoming.Tags = []domain.Tag{}

	if err := s.txnRepo.SaveTransferPair(ctx, outgoing, incoming, req.TagIDs); err != nil {
		s.LogError(ctx, err, "Failed to save transfer",
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Transfer created",
		slog.String("transfer_group_id", groupID),
		slog.String("amount", amount.String()))
	return &outgoing, &incoming, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	filter := portsrepo.TransactionFilter{
		UserID:     userID,
		Type:       domain.TransactionType(params.Type),
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
		CardID:     params.CardID,
		TagID:      params.TagID,
		Search:     params.Search,
		Limit:      params.Limit,
	}
	if params.From != "" {
		from, err := time.ParseInLocation(dateLayout, params.From, time.UTC)
		if err != nil {
			return nil, "", fmt.Errorf("%w: from: %s", apperrors.ErrValidation, err.Error())
		}
		filter.From = from
	}
	if params.To != "" {
		to, err := time.ParseInLocation(dateLayout, params.To, time.UTC)
		if err != nil {
			return nil, "", fmt.Errorf("%w: to: %s", apperrors.ErrValidation, err.Error())
		}
		// Inclusive end date from the client becomes an exclusive bound.
		filter.To = to.AddDate(0, 0, 1)
	}
	if params.NextToken != "" {
		cursorDate, cursorCreatedAt, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: nextToken: %s", apperrors.ErrValidation, err.Error())
		}
		filter.CursorDate = &cursorDate
		filter.CursorCreatedAt = &cursorCreatedAt
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	// Fetch one extra row to know whether a next page exists.
	limit := filter.Limit
	filter.Limit = limit + 1
	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		nextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return txns, nextToken, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	// Transfer legs stay in sync by never diverging: amount, date and
	// category are frozen on TRANSFER entries.
	if txn.Type == domain.Transfer && (req.Amount != nil || req.Date != nil || req.CategoryID != nil) {
		return nil, fmt.Errorf("%w: transfer entries only allow description, notes and tag changes", apperrors.ErrValidation)
	}

	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Amount != nil {
		amount, err := utils.ParseAmount(*req.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: amount: %s", apperrors.ErrValidation, err.Error())
		}
		txn.Amount = amount
	}
	if req.Date != nil {
		date, err := time.ParseInLocation(dateLayout, *req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: date: %s", apperrors.ErrValidation, err.Error())
		}
		txn.Date = date
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			return nil, fmt.Errorf("%w: categoryID cannot be cleared", apperrors.ErrValidation)
		}
		if err := s.validateCategory(ctx, userID, *req.CategoryID, txn.Type); err != nil {
			return nil, err
		}
		txn.CategoryID = *req.CategoryID
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}

	tagIDs := make([]string, 0, len(txn.Tags))
	for _, tag := range txn.Tags {
		tagIDs = append(tagIDs, tag.TagID)
	}
	if req.TagIDs != nil {
		tags, err := s.resolveTags(ctx, userID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		txn.Tags = tags
		tagIDs = *req.TagIDs
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn, tagIDs); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) SetTransactionPaid(ctx context.Context, userID string, transactionID string, isPaid bool) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var paidAt *time.Time
	if isPaid {
		paidAt = &now
	}
	if err := s.txnRepo.SetTransactionPaid(ctx, userID, transactionID, isPaid, paidAt, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to toggle transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	txn.IsPaid = isPaid
	txn.PaidAt = paidAt
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	s.LogInfo(ctx, "Transaction paid flag set",
		slog.String("transaction_id", transactionID),
		slog.Bool("is_paid", isPaid))
	return txn, nil
}
