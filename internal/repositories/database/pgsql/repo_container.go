package pgsql

import (
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository over one
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	txnRepo := &PgxTransactionRepository{BaseRepository{Pool: pool}}
	return &portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(pool),
		AccountRepo:     newPgxAccountRepository(pool),
		CardRepo:        newPgxCardRepository(pool),
		InvoiceRepo:     newPgxInvoiceRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
		TagRepo:         newPgxTagRepository(pool),
		TransactionRepo: txnRepo,
		ReportingRepo:   newPgxReportingRepository(pool, txnRepo),
	}
}
