package dto

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
// Type is ignored when ParentID is set; children always inherit the
// parent's type.
type CreateCategoryRequest struct {
	Name     string              `json:"name" binding:"required"`
	Type     domain.CategoryType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	ParentID string              `json:"parentID"`
	Icon     string              `json:"icon"`
	Color    string              `json:"color" binding:"omitempty,hexcolor"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Type and ParentID are fixed at creation.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	ParentID   string              `json:"parentID"`
	Icon       string              `json:"icon"`
	Color      string              `json:"color"`
	IsActive   bool                `json:"isActive"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		Type:       cat.Type,
		ParentID:   cat.ParentID,
		Icon:       cat.Icon,
		Color:      cat.Color,
		IsActive:   cat.IsActive,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}
