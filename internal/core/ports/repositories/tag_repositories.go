package repositories

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// TagReader defines read operations for tag data.
type TagReader interface {
	// FindTagByID retrieves a specific tag owned by userID.
	FindTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error)

	// FindTagByName retrieves a tag by name, compared case-insensitively.
	FindTagByName(ctx context.Context, userID string, name string) (*domain.Tag, error)

	// FindTagsByIDs retrieves multiple tags owned by userID.
	FindTagsByIDs(ctx context.Context, userID string, tagIDs []string) (map[string]domain.Tag, error)

	// ListTags retrieves all tags for a user ordered by name.
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
}

// TagWriter defines write operations for tag data.
type TagWriter interface {
	// SaveTag persists a new tag.
	SaveTag(ctx context.Context, tag domain.Tag) error

	// UpdateTag updates a tag's name and color.
	UpdateTag(ctx context.Context, tag domain.Tag) error

	// DeleteTag removes a tag and its transaction associations.
	DeleteTag(ctx context.Context, userID string, tagID string) error
}

// TagRepositoryFacade combines all tag repository interfaces.
type TagRepositoryFacade interface {
	TagReader
	TagWriter
}
