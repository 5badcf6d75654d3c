package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/granaapp/grana_backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// querier is the read surface shared by the pool and an open
// transaction, so tag loading works inside and outside a tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(txn domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   txn.TransactionID,
		UserID:          txn.UserID,
		Type:            models.TransactionType(txn.Type),
		Description:     txn.Description,
		Amount:          txn.Amount,
		Date:            txn.Date,
		IsPaid:          txn.IsPaid,
		PaidAt:          txn.PaidAt,
		Notes:           txn.Notes,
		AccountID:       txn.AccountID,
		CardID:          txn.CardID,
		CategoryID:      txn.CategoryID,
		InvoiceID:       txn.InvoiceID,
		TransferGroupID: txn.TransferGroupID,
		AuditFields: models.AuditFields{
			CreatedAt:     txn.CreatedAt,
			CreatedBy:     txn.CreatedBy,
			LastUpdatedAt: txn.LastUpdatedAt,
			LastUpdatedBy: txn.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		Type:            domain.TransactionType(m.Type),
		Description:     m.Description,
		Amount:          m.Amount,
		Date:            m.Date,
		IsPaid:          m.IsPaid,
		PaidAt:          m.PaidAt,
		Notes:           m.Notes,
		AccountID:       m.AccountID,
		CardID:          m.CardID,
		CategoryID:      m.CategoryID,
		InvoiceID:       m.InvoiceID,
		TransferGroupID: m.TransferGroupID,
		Tags:            []domain.Tag{},
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, user_id, type, description, amount, date, is_paid, paid_at, notes, account_id, card_id, category_id, invoice_id, transfer_group_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	var accountID, cardID, categoryID, invoiceID, transferGroupID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Type,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.IsPaid,
		&m.PaidAt,
		&m.Notes,
		&accountID,
		&cardID,
		&categoryID,
		&invoiceID,
		&transferGroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	m.AccountID = accountID.String
	m.CardID = cardID.String
	m.CategoryID = categoryID.String
	m.InvoiceID = invoiceID.String
	m.TransferGroupID = transferGroupID.String
	txn := toDomainTransaction(m)
	return &txn, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txns, nil
}

// loadTags attaches tag sets to the given transactions in one query.
func (r *PgxTransactionRepository) loadTags(ctx context.Context, q querier, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	ids := make([]string, len(txns))
	for i, txn := range txns {
		ids[i] = txn.TransactionID
	}
	rows, err := q.Query(ctx, `
		SELECT tt.transaction_id, t.tag_id, t.user_id, t.name, t.color, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM transaction_tags tt
		JOIN tags t ON t.tag_id = tt.tag_id
		WHERE tt.transaction_id = ANY($1)
		ORDER BY t.name ASC;
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load transaction tags: %w", err)
	}
	defer rows.Close()

	byTxn := make(map[string][]domain.Tag)
	for rows.Next() {
		var txnID string
		var m models.Tag
		err := rows.Scan(&txnID, &m.TagID, &m.UserID, &m.Name, &m.Color, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to scan transaction tag: %w", err)
		}
		byTxn[txnID] = append(byTxn[txnID], toDomainTag(m))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read transaction tags: %w", err)
	}

	for i := range txns {
		if tags, ok := byTxn[txns[i].TransactionID]; ok {
			txns[i].Tags = tags
		}
	}
	return nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Description,
		m.Amount,
		m.Date,
		m.IsPaid,
		m.PaidAt,
		m.Notes,
		nullIfEmpty(m.AccountID),
		nullIfEmpty(m.CardID),
		nullIfEmpty(m.CategoryID),
		nullIfEmpty(m.InvoiceID),
		nullIfEmpty(m.TransferGroupID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func insertTransactionTags(ctx context.Context, tx pgx.Tx, transactionID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2);`, transactionID, tagID)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range tagIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to attach tags to transaction %s: %w", transactionID, err)
		}
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, tagIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	if err := insertTransactionTags(ctx, tx, txn.TransactionID, tagIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// lockActiveAccounts locks the account rows for the duration of the
// transaction and re-checks they are still active, so a concurrent
// deactivation cannot interleave with the pair insert.
func lockActiveAccounts(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) error {
	query := `
		SELECT account_id, is_active
		FROM accounts
		WHERE user_id = $1 AND account_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, userID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	active := make(map[string]bool, len(accountIDs))
	for rows.Next() {
		var accountID string
		var isActive bool
		if err := rows.Scan(&accountID, &isActive); err != nil {
			return fmt.Errorf("failed to read locked account: %w", err)
		}
		active[accountID] = isActive
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read locked accounts: %w", err)
	}

	for _, id := range accountIDs {
		isActive, ok := active[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !isActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, outgoing domain.Transaction, incoming domain.Transaction, tagIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := lockActiveAccounts(ctx, tx, outgoing.UserID, []string{outgoing.AccountID, incoming.AccountID}); err != nil {
		return err
	}
	if err := insertTransaction(ctx, tx, outgoing); err != nil {
		return err
	}
	if err := insertTransaction(ctx, tx, incoming); err != nil {
		return err
	}
	// Tags live on the outgoing leg only.
	if err := insertTransactionTags(ctx, tx, outgoing.TransactionID, tagIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, tagIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE transactions
		SET description = $3, amount = $4, date = $5, is_paid = $6, paid_at = $7, notes = $8, category_id = $9, last_updated_at = $10, last_updated_by = $11
		WHERE user_id = $1 AND transaction_id = $2;
	`
	m := toModelTransaction(txn)
	ct, err := tx.Exec(ctx, query,
		m.UserID,
		m.TransactionID,
		m.Description,
		m.Amount,
		m.Date,
		m.IsPaid,
		m.PaidAt,
		m.Notes,
		nullIfEmpty(m.CategoryID),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Re-sync the tag set: drop everything, recreate from the new list.
	_, err = tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, m.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to clear tags for transaction %s: %w", m.TransactionID, err)
	}
	if err := insertTransactionTags(ctx, tx, m.TransactionID, tagIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var transferGroupID sql.NullString
	err = tx.QueryRow(ctx, `
		SELECT transfer_group_id FROM transactions
		WHERE user_id = $1 AND transaction_id = $2;
	`, userID, transactionID).Scan(&transferGroupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	// A transfer leg takes its sibling with it.
	where := `user_id = $1 AND transaction_id = $2`
	arg := transactionID
	if transferGroupID.Valid {
		where = `user_id = $1 AND transfer_group_id = $2`
		arg = transferGroupID.String
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM transaction_tags
		WHERE transaction_id IN (SELECT transaction_id FROM transactions WHERE `+where+`);
	`, userID, arg)
	if err != nil {
		return fmt.Errorf("failed to detach tags for transaction %s: %w", transactionID, err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE `+where+`;`, userID, arg)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) SetTransactionPaid(ctx context.Context, userID string, transactionID string, isPaid bool, paidAt *time.Time, updatedBy string, now time.Time) error {
	query := `
		UPDATE transactions
		SET is_paid = $3, paid_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1 AND transaction_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, userID, transactionID, isPaid, paidAt, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set paid flag on transaction %s: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND transaction_id = $2;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		return nil, err
	}
	txns := []domain.Transaction{*txn}
	if err := r.loadTags(ctx, r.Pool, txns); err != nil {
		return nil, err
	}
	return &txns[0], nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{filter.UserID}

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !filter.From.IsZero() {
		sb.WriteString(` AND date >= ` + arg(filter.From))
	}
	if !filter.To.IsZero() {
		sb.WriteString(` AND date < ` + arg(filter.To))
	}
	if filter.Type != "" {
		sb.WriteString(` AND type = ` + arg(string(filter.Type)))
	}
	if filter.CategoryID != "" {
		sb.WriteString(` AND category_id = ` + arg(filter.CategoryID))
	}
	if filter.AccountID != "" {
		sb.WriteString(` AND account_id = ` + arg(filter.AccountID))
	}
	if filter.CardID != "" {
		sb.WriteString(` AND card_id = ` + arg(filter.CardID))
	}
	if filter.TagID != "" {
		sb.WriteString(` AND EXISTS (SELECT 1 FROM transaction_tags tt WHERE tt.transaction_id = transactions.transaction_id AND tt.tag_id = ` + arg(filter.TagID) + `)`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		p := arg(pattern)
		sb.WriteString(` AND (description ILIKE ` + p + ` OR notes ILIKE ` + p + `)`)
	}
	if filter.CursorDate != nil && filter.CursorCreatedAt != nil {
		sb.WriteString(` AND (date, created_at) < (` + arg(*filter.CursorDate) + `, ` + arg(*filter.CursorCreatedAt) + `)`)
	}

	sb.WriteString(` ORDER BY date DESC, created_at DESC`)
	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ` + arg(filter.Limit))
	}
	sb.WriteString(`;`)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, r.Pool, txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *PgxTransactionRepository) ListAccountTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND account_id IS NOT NULL;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) ListUninvoicedCardTransactions(ctx context.Context, userID string, cardID string, from time.Time, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND card_id = $2 AND invoice_id IS NULL AND date >= $3 AND date < $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, cardID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list uninvoiced card transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, r.Pool, txns); err != nil {
		return nil, err
	}
	return txns, nil
}
