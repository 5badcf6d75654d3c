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

// cardService implements CardSvcFacade. A card's invoice for (year,
// month) covers charges dated in that calendar month. Once an invoice
// closes, its total is fixed; later charges stay uninvoiced until their
// own month closes.
type cardService struct {
	BaseService
	cardRepo    portsrepo.CardRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	txnRepo     portsrepo.TransactionReader
}

// NewCardService creates a new credit card service.
func NewCardService(cardRepo portsrepo.CardRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.CardSvcFacade {
	return &cardService{
		cardRepo:    cardRepo,
		invoiceRepo: invoiceRepo,
		txnRepo:     txnRepo,
	}
}

// invoiceWindow returns the half-open charge interval [from, to) for a
// card's (year, month) invoice: the calendar month in UTC. time.Date
// normalizes month 13 into January of the next year.
func invoiceWindow(year int, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return from, to
}

func (s *cardService) CreateCard(ctx context.Context, userID string, req dto.CreateCardRequest) (*domain.CreditCard, error) {
	var creditLimit *decimal.Decimal
	if req.CreditLimit != nil && *req.CreditLimit != "" {
		parsed, err := utils.ParseAmount(*req.CreditLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: creditLimit: %s", apperrors.ErrValidation, err.Error())
		}
		creditLimit = &parsed
	}

	now := time.Now()
	card := domain.CreditCard{
		CardID:      uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		CreditLimit: creditLimit,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		s.LogError(ctx, err, "Failed to save card", slog.String("card_id", card.CardID))
		return nil, err
	}

	s.LogInfo(ctx, "Card created", slog.String("card_id", card.CardID))
	return &card, nil
}

func (s *cardService) GetCardByID(ctx context.Context, userID string, cardID string) (*domain.CreditCard, error) {
	card, err := s.cardRepo.FindCardByID(ctx, userID, cardID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card", slog.String("card_id", cardID))
		}
		return nil, err
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, userID string, cardID string, req dto.UpdateCardRequest) (*domain.CreditCard, error) {
	card, err := s.cardRepo.FindCardByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		card.Name = *req.Name
	}
	if req.CreditLimit != nil {
		if *req.CreditLimit == "" {
			card.CreditLimit = nil // an empty string removes the limit
		} else {
			parsed, err := utils.ParseAmount(*req.CreditLimit)
			if err != nil {
				return nil, fmt.Errorf("%w: creditLimit: %s", apperrors.ErrValidation, err.Error())
			}
			card.CreditLimit = &parsed
		}
	}
	if req.ClosingDay != nil {
		card.ClosingDay = *req.ClosingDay
	}
	if req.DueDay != nil {
		card.DueDay = *req.DueDay
	}
	card.LastUpdatedAt = time.Now()
	card.LastUpdatedBy = userID

	if err := s.cardRepo.UpdateCard(ctx, *card); err != nil {
		s.LogError(ctx, err, "Failed to update card", slog.String("card_id", cardID))
		return nil, err
	}

	s.LogInfo(ctx, "Card updated", slog.String("card_id", cardID))
	return card, nil
}

func (s *cardService) SetCardActive(ctx context.Context, userID string, cardID string, isActive bool) error {
	err := s.cardRepo.SetCardActive(ctx, userID, cardID, isActive, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle card", slog.String("card_id", cardID))
		}
		return err
	}
	s.LogInfo(ctx, "Card active flag set", slog.String("card_id", cardID), slog.Bool("is_active", isActive))
	return nil
}

// ListCardsWithInvoices attaches the current month's invoice amount and
// usage percentage to each card. A closed invoice takes precedence over
// the running sum of uninvoiced charges dated in the month.
func (s *cardService) ListCardsWithInvoices(ctx context.Context, userID string) ([]domain.CardWithInvoice, error) {
	cards, err := s.cardRepo.ListCards(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cards")
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	result := make([]domain.CardWithInvoice, 0, len(cards))
	for _, card := range cards {
		amount := decimal.Zero
		paid := false
		invoice, err := s.invoiceRepo.FindInvoice(ctx, userID, card.CardID, year, month)
		switch {
		case err == nil:
			amount = invoice.TotalAmount
			paid = invoice.IsPaid
		case errors.Is(err, apperrors.ErrNotFound):
			from, to := invoiceWindow(year, month)
			txns, err := s.txnRepo.ListUninvoicedCardTransactions(ctx, userID, card.CardID, from, to)
			if err != nil {
				s.LogError(ctx, err, "Failed to sum card charges", slog.String("card_id", card.CardID))
				return nil, fmt.Errorf("failed to load card charges: %w", err)
			}
			amount = ledger.SumAmounts(txns)
		default:
			s.LogError(ctx, err, "Failed to find invoice", slog.String("card_id", card.CardID))
			return nil, err
		}

		result = append(result, domain.CardWithInvoice{
			CreditCard:    card,
			InvoiceAmount: amount,
			InvoicePaid:   paid,
			UsagePercent:  ledger.InvoiceUsagePercent(amount, card.CreditLimit),
		})
	}
	return result, nil
}

func (s *cardService) ListInvoices(ctx context.Context, userID string, cardID string) ([]domain.Invoice, error) {
	if _, err := s.cardRepo.FindCardByID(ctx, userID, cardID); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, userID, cardID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// CloseInvoice fixes the card's total for one calendar month. The
// repository stamps every uninvoiced charge dated in the month and
// inserts the invoice in one database transaction.
func (s *cardService) CloseInvoice(ctx context.Context, userID string, cardID string, req dto.CloseInvoiceRequest) (*domain.Invoice, error) {
	card, err := s.cardRepo.FindCardByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		CardID:    card.CardID,
		Year:      req.Year,
		Month:     req.Month,
		IsPaid:    false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	from, to := invoiceWindow(req.Year, req.Month)
	closed, err := s.invoiceRepo.CloseInvoice(ctx, invoice, from, to)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to close invoice", slog.String("card_id", cardID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Invoice closed",
		slog.String("card_id", cardID),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
		slog.String("total", closed.TotalAmount.String()))
	return closed, nil
}

func (s *cardService) SetInvoicePaid(ctx context.Context, userID string, cardID string, invoiceID string, isPaid bool) error {
	if _, err := s.cardRepo.FindCardByID(ctx, userID, cardID); err != nil {
		return err
	}
	err := s.invoiceRepo.SetInvoicePaid(ctx, userID, invoiceID, isPaid, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle invoice", slog.String("invoice_id", invoiceID))
		}
		return err
	}
	s.LogInfo(ctx, "Invoice paid flag set", slog.String("invoice_id", invoiceID), slog.Bool("is_paid", isPaid))
	return nil
}
