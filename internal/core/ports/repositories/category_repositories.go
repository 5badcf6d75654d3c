package repositories

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category owned by userID.
	FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories for a user, parents before
	// children, ordered by name.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates name, icon and color.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeactivateCategoryWithChildren marks a category and all of its
	// children inactive in one database transaction.
	DeactivateCategoryWithChildren(ctx context.Context, userID string, categoryID string, updatedBy string, now time.Time) error

	// ActivateCategory reactivates a single category. Children are not
	// cascaded; the cascade is one-directional, on deactivation only.
	ActivateCategory(ctx context.Context, userID string, categoryID string, updatedBy string, now time.Time) error
}

// CategoryRepositoryFacade combines all category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
