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
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func toDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		CardID:      m.CardID,
		Year:        m.Year,
		Month:       m.Month,
		TotalAmount: m.TotalAmount,
		IsPaid:      m.IsPaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// Invoices carry no user_id column; every query joins through
// credit_cards to enforce tenant scoping.
const invoiceColumns = `i.invoice_id, i.card_id, i.year, i.month, i.total_amount, i.is_paid, i.created_at, i.created_by, i.last_updated_at, i.last_updated_by`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CardID,
		&m.Year,
		&m.Month,
		&m.TotalAmount,
		&m.IsPaid,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	invoice := toDomainInvoice(m)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) FindInvoice(ctx context.Context, userID string, cardID string, year int, month int) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN credit_cards c ON c.card_id = i.card_id
		WHERE c.user_id = $1 AND i.card_id = $2 AND i.year = $3 AND i.month = $4;
	`
	return scanInvoice(r.Pool.QueryRow(ctx, query, userID, cardID, year, month))
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, cardID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN credit_cards c ON c.card_id = i.card_id
		WHERE c.user_id = $1 AND i.card_id = $2
		ORDER BY i.year DESC, i.month DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return invoices, nil
}

// CloseInvoice sums the card's uninvoiced charges in [from, to), inserts
// the invoice row, and stamps the charges with its ID. All three steps
// run in one transaction; the invoices (card_id, year, month) unique
// index rejects a second close for the same month.
func (r *PgxInvoiceRepository) CloseInvoice(ctx context.Context, invoice domain.Invoice, from time.Time, to time.Time) (*domain.Invoice, error) {
	userID := invoice.CreatedBy

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	// Lock the card row so two concurrent closes serialize.
	var cardID string
	err = tx.QueryRow(ctx,
		`SELECT card_id FROM credit_cards WHERE user_id = $1 AND card_id = $2 FOR UPDATE;`,
		userID, invoice.CardID,
	).Scan(&cardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock card %s: %w", invoice.CardID, err)
	}

	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND card_id = $2 AND invoice_id IS NULL
		  AND date >= $3 AND date < $4;
	`, userID, invoice.CardID, from, to).Scan(&invoice.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to sum charges for card %s: %w", invoice.CardID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (invoice_id, card_id, year, month, total_amount, is_paid, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		invoice.InvoiceID,
		invoice.CardID,
		invoice.Year,
		invoice.Month,
		invoice.TotalAmount,
		invoice.IsPaid,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: invoice for %04d-%02d is already closed", apperrors.ErrDuplicate, invoice.Year, invoice.Month)
		}
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET invoice_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND card_id = $5 AND invoice_id IS NULL
		  AND date >= $6 AND date < $7;
	`, invoice.InvoiceID, invoice.LastUpdatedAt, invoice.LastUpdatedBy, userID, invoice.CardID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp invoiced charges: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *PgxInvoiceRepository) SetInvoicePaid(ctx context.Context, userID string, invoiceID string, isPaid bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE invoices i
		SET is_paid = $3, last_updated_at = $4, last_updated_by = $5
		FROM credit_cards c
		WHERE c.card_id = i.card_id AND c.user_id = $1 AND i.invoice_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, invoiceID, isPaid, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to toggle invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
