package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category owned by userID.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all of the user's categories.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category. Subcategories inherit the
	// parent's type; nesting is limited to one level.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory updates name, icon and color.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeactivateCategory marks a category inactive and cascades to its
	// children.
	DeactivateCategory(ctx context.Context, userID string, categoryID string) error

	// ActivateCategory reactivates a single category without touching
	// its children.
	ActivateCategory(ctx context.Context, userID string, categoryID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
