package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
)

// tagService implements TagSvcFacade. Tag names are unique per user,
// compared case-insensitively; the original casing is preserved.
type tagService struct {
	BaseService
	tagRepo portsrepo.TagRepositoryFacade
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo portsrepo.TagRepositoryFacade) portssvc.TagSvcFacade {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	existing, err := s.tagRepo.FindTagByName(ctx, userID, name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check tag name", slog.String("name", name))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, existing.Name)
	}

	now := time.Now()
	tag := domain.Tag{
		TagID:  uuid.NewString(),
		UserID: userID,
		Name:   name,
		Color:  req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		s.LogError(ctx, err, "Failed to save tag", slog.String("tag_id", tag.TagID))
		return nil, err
	}

	s.LogInfo(ctx, "Tag created", slog.String("tag_id", tag.TagID))
	return &tag, nil
}

func (s *tagService) GetTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, userID, tagID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tag", slog.String("tag_id", tagID))
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tags")
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

func (s *tagService) UpdateTag(ctx context.Context, userID string, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		// Renames must not collide with another tag; a pure case change
		// of the same tag is allowed.
		existing, err := s.tagRepo.FindTagByName(ctx, userID, name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.TagID != tagID {
			return nil, fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, existing.Name)
		}
		tag.Name = name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	tag.LastUpdatedAt = time.Now()
	tag.LastUpdatedBy = userID

	if err := s.tagRepo.UpdateTag(ctx, *tag); err != nil {
		s.LogError(ctx, err, "Failed to update tag", slog.String("tag_id", tagID))
		return nil, err
	}

	s.LogInfo(ctx, "Tag updated", slog.String("tag_id", tagID))
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID string, tagID string) error {
	err := s.tagRepo.DeleteTag(ctx, userID, tagID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete tag", slog.String("tag_id", tagID))
		}
		return err
	}
	s.LogInfo(ctx, "Tag deleted", slog.String("tag_id", tagID))
	return nil
}
