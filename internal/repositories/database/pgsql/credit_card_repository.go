package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/granaapp/grana_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCardRepository struct {
	BaseRepository
}

func newPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

func toDomainCard(m models.CreditCard) domain.CreditCard {
	return domain.CreditCard{
		CardID:      m.CardID,
		UserID:      m.UserID,
		Name:        m.Name,
		CreditLimit: m.CreditLimit,
		ClosingDay:  m.ClosingDay,
		DueDay:      m.DueDay,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const cardColumns = `card_id, user_id, name, credit_limit, closing_day, due_day, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCard(row pgx.Row) (*domain.CreditCard, error) {
	var m models.CreditCard
	var creditLimit *decimal.Decimal
	err := row.Scan(
		&m.CardID,
		&m.UserID,
		&m.Name,
		&creditLimit,
		&m.ClosingDay,
		&m.DueDay,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}
	m.CreditLimit = creditLimit
	card := toDomainCard(m)
	return &card, nil
}

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.CreditCard) error {
	query := `
		INSERT INTO credit_cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		card.CardID,
		card.UserID,
		card.Name,
		card.CreditLimit,
		card.ClosingDay,
		card.DueDay,
		card.IsActive,
		card.CreatedAt,
		card.CreatedBy,
		card.LastUpdatedAt,
		card.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: card %s already exists", apperrors.ErrDuplicate, card.CardID)
		}
		return fmt.Errorf("failed to save card %s: %w", card.CardID, err)
	}
	return nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, userID string, cardID string) (*domain.CreditCard, error) {
	query := `SELECT ` + cardColumns + ` FROM credit_cards WHERE user_id = $1 AND card_id = $2;`
	return scanCard(r.Pool.QueryRow(ctx, query, userID, cardID))
}

func (r *PgxCardRepository) ListCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM credit_cards
		WHERE user_id = $1
		ORDER BY is_active DESC, name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.CreditCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

func (r *PgxCardRepository) UpdateCard(ctx context.Context, card domain.CreditCard) error {
	query := `
		UPDATE credit_cards
		SET name = $3, credit_limit = $4, closing_day = $5, due_day = $6, last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1 AND card_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		card.UserID,
		card.CardID,
		card.Name,
		card.CreditLimit,
		card.ClosingDay,
		card.DueDay,
		card.LastUpdatedAt,
		card.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.CardID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCardRepository) SetCardActive(ctx context.Context, userID string, cardID string, isActive bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE credit_cards
		SET is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND card_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, cardID, isActive, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to toggle card %s: %w", cardID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
