package repositories

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email (case-insensitive).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's profile fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserPassword replaces a user's password hash.
	UpdateUserPassword(ctx context.Context, userID string, passwordHash string) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
