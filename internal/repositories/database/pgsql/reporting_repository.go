package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
	txnRepo *PgxTransactionRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool, txnRepo *PgxTransactionRepository) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}, txnRepo: txnRepo}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) ListMonthTransactions(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list month transactions: %w", err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	if err := r.txnRepo.loadTags(ctx, r.Pool, txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *PgxReportingRepository) SumExpensesByCategory(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.ExpenseByCategory, error) {
	query := `
		SELECT c.category_id, c.name,
		       COALESCE(SUM(t.amount), 0) AS total,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.is_paid), 0) AS paid
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1 AND t.type = 'EXPENSE' AND t.date >= $2 AND t.date < $3
		GROUP BY c.category_id, c.name
		ORDER BY total DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses by category: %w", err)
	}
	defer rows.Close()

	var results []domain.ExpenseByCategory
	for rows.Next() {
		var row domain.ExpenseByCategory
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Total, &row.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan category expense: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category expenses: %w", err)
	}
	return results, nil
}
