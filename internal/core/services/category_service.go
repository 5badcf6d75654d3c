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
	"github.com/google/uuid"
)

// categoryService implements CategorySvcFacade. Nesting is one level
// deep and a child's type always follows its parent.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	catType := req.Type
	if req.ParentID != "" {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, userID, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != "" {
			return nil, fmt.Errorf("%w: subcategories cannot have children", apperrors.ErrValidation)
		}
		catType = parent.Type
	} else if catType == "" {
		return nil, fmt.Errorf("%w: type is required for top-level categories", apperrors.ErrValidation)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Type:       catType,
		ParentID:   req.ParentID,
		Icon:       req.Icon,
		Color:      req.Color,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeactivateCategory cascades to children so a hidden parent cannot
// leave orphaned visible subcategories.
func (s *categoryService) DeactivateCategory(ctx context.Context, userID string, categoryID string) error {
	err := s.categoryRepo.DeactivateCategoryWithChildren(ctx, userID, categoryID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate category", slog.String("category_id", categoryID))
		}
		return err
	}
	s.LogInfo(ctx, "Category deactivated", slog.String("category_id", categoryID))
	return nil
}

// ActivateCategory touches only the named category. Children stay as
// they are; the cascade is one-directional.
func (s *categoryService) ActivateCategory(ctx context.Context, userID string, categoryID string) error {
	err := s.categoryRepo.ActivateCategory(ctx, userID, categoryID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to activate category", slog.String("category_id", categoryID))
		}
		return err
	}
	s.LogInfo(ctx, "Category activated", slog.String("category_id", categoryID))
	return nil
}
