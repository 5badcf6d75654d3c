package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates a user's profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// ChangePassword verifies the current password and stores a hash of
	// the new one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

// UserAuthenticatorSvc defines credential checks.
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies email/password credentials.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// AuthenticateGoogleUser validates a Google ID token, provisioning
	// the user on first login.
	AuthenticateGoogleUser(ctx context.Context, idToken string) (*domain.User, error)

	// AuthenticateGoogleCode exchanges a web-flow authorization code for
	// an ID token and authenticates with it.
	AuthenticateGoogleCode(ctx context.Context, code string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
