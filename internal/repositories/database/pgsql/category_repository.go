package pgsql

import (
	"context"
	"database/sql"
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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Name:       m.Name,
		Type:       domain.CategoryType(m.Type),
		ParentID:   m.ParentID,
		Icon:       m.Icon,
		Color:      m.Color,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const categoryColumns = `category_id, user_id, name, type, parent_id, icon, color, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var m models.Category
	var parentID sql.NullString
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&parentID,
		&m.Icon,
		&m.Color,
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
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	m.ParentID = parentID.String
	category := toDomainCategory(m)
	return &category, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.UserID,
		category.Name,
		models.CategoryType(category.Type),
		nullIfEmpty(category.ParentID),
		category.Icon,
		category.Color,
		category.IsActive,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %s already exists", apperrors.ErrDuplicate, category.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND category_id = $2;`
	return scanCategory(r.Pool.QueryRow(ctx, query, userID, categoryID))
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY parent_id NULLS FIRST, name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, icon = $4, color = $5, last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $1 AND category_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		category.UserID,
		category.CategoryID,
		category.Name,
		category.Icon,
		category.Color,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCategoryWithChildren hides a category and its children in
// one statement, so no interleaved write can observe a hidden parent
// with visible children.
func (r *PgxCategoryRepository) DeactivateCategoryWithChildren(ctx context.Context, userID string, categoryID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND (category_id = $2 OR parent_id = $2);
	`
	tag, err := r.Pool.Exec(ctx, query, userID, categoryID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) ActivateCategory(ctx context.Context, userID string, categoryID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND category_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, categoryID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to activate category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
