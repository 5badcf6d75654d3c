package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// TagReaderSvc defines read operations for tag data
type TagReaderSvc interface {
	// GetTagByID retrieves a specific tag owned by userID.
	GetTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error)

	// ListTags retrieves all of the user's tags ordered by name.
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
}

// TagWriterSvc defines write operations for tag data
type TagWriterSvc interface {
	// CreateTag persists a new tag. Names clash case-insensitively per
	// user.
	CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error)

	// UpdateTag updates a tag's name and color.
	UpdateTag(ctx context.Context, userID string, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error)

	// DeleteTag removes a tag and detaches it from every transaction.
	DeleteTag(ctx context.Context, userID string, tagID string) error
}

// TagSvcFacade combines all tag-related service interfaces
type TagSvcFacade interface {
	TagReaderSvc
	TagWriterSvc
}
