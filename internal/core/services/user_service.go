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
	"github.com/granaapp/grana_backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements UserSvcFacade.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokenSvc portssvc.TokenSvcFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, tokenSvc portssvc.TokenSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email")
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateUser verifies credentials, returning ErrUnauthorized for
// both unknown emails and wrong passwords so callers cannot probe which
// one failed.
func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find user by email")
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// AuthenticateGoogleCode exchanges a web-flow authorization code for an
// ID token, then authenticates with it.
func (s *userService) AuthenticateGoogleCode(ctx context.Context, code string) (*domain.User, error) {
	idToken, err := s.tokenSvc.ExchangeGoogleCode(ctx, code)
	if err != nil {
		s.LogInfo(ctx, "Google code exchange failed", slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}
	return s.AuthenticateGoogleUser(ctx, idToken)
}

// AuthenticateGoogleUser validates the ID token and provisions a user
// on first login. Google-provisioned users carry no password hash.
func (s *userService) AuthenticateGoogleUser(ctx context.Context, idToken string) (*domain.User, error) {
	payload, err := s.tokenSvc.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		s.LogInfo(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: ID token carries no email", apperrors.ErrUnauthorized)
	}
	email = strings.ToLower(email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find user by email")
		return nil, err
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}
	now := time.Now()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID: userID,
		Name:   name,
		Email:  email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to provision Google user", slog.String("user_id", newUser.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User provisioned from Google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password", slog.String("user_id", userID))
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdateUserPassword(ctx, userID, hash); err != nil {
		s.LogError(ctx, err, "Failed to store new password", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}
