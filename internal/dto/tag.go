package dto

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CreateTagRequest defines the data needed to create a tag. Names are
// unique per user, compared case-insensitively.
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// UpdateTagRequest defines the data allowed for updating a tag.
type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// TagResponse defines the data returned for a tag.
type TagResponse struct {
	TagID string `json:"tagID"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ToTagResponse converts a domain.Tag to TagResponse DTO
func ToTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		TagID: tag.TagID,
		Name:  tag.Name,
		Color: tag.Color,
	}
}

// ToListTagResponse converts a slice of domain.Tag to DTOs
func ToListTagResponse(tags []domain.Tag) []TagResponse {
	res := make([]TagResponse, len(tags))
	for i, tag := range tags {
		res[i] = ToTagResponse(&tag)
	}
	return res
}
