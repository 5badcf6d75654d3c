package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	"github.com/granaapp/grana_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTagRepository struct {
	BaseRepository
}

func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepositoryFacade {
	return &PgxTagRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TagRepositoryFacade = (*PgxTagRepository)(nil)

func toDomainTag(m models.Tag) domain.Tag {
	return domain.Tag{
		TagID:  m.TagID,
		UserID: m.UserID,
		Name:   m.Name,
		Color:  m.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const tagColumns = `tag_id, user_id, name, color, created_at, created_by, last_updated_at, last_updated_by`

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var m models.Tag
	err := row.Scan(
		&m.TagID,
		&m.UserID,
		&m.Name,
		&m.Color,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan tag: %w", err)
	}
	tag := toDomainTag(m)
	return &tag, nil
}

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `
		INSERT INTO tags (` + tagColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		tag.TagID,
		tag.UserID,
		tag.Name,
		tag.Color,
		tag.CreatedAt,
		tag.CreatedBy,
		tag.LastUpdatedAt,
		tag.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to save tag %s: %w", tag.TagID, err)
	}
	return nil
}

func (r *PgxTagRepository) FindTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND tag_id = $2;`
	return scanTag(r.Pool.QueryRow(ctx, query, userID, tagID))
}

func (r *PgxTagRepository) FindTagByName(ctx context.Context, userID string, name string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND lower(name) = lower($2);`
	return scanTag(r.Pool.QueryRow(ctx, query, userID, name))
}

func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, userID string, tagIDs []string) (map[string]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return map[string]domain.Tag{}, nil
	}
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND tag_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, userID, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string]domain.Tag, len(tagIDs))
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags[tag.TagID] = *tag
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return tags, nil
}

func (r *PgxTagRepository) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return tags, nil
}

func (r *PgxTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	query := `
		UPDATE tags
		SET name = $3, color = $4, last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1 AND tag_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		tag.UserID,
		tag.TagID,
		tag.Name,
		tag.Color,
		tag.LastUpdatedAt,
		tag.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to update tag %s: %w", tag.TagID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTag removes the tag row and every transaction association that
// points at it, in one transaction.
func (r *PgxTagRepository) DeleteTag(ctx context.Context, userID string, tagID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		DELETE FROM transaction_tags
		WHERE tag_id = $2
		  AND tag_id IN (SELECT tag_id FROM tags WHERE user_id = $1);
	`, userID, tagID)
	if err != nil {
		return fmt.Errorf("failed to detach tag %s: %w", tagID, err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM tags WHERE user_id = $1 AND tag_id = $2;`, userID, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
