package services

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateGoogleIDToken validates an ID token string from Google and
	// returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)

	// ExchangeGoogleCode trades an authorization code from the web
	// sign-in flow for the ID token Google issued with it.
	ExchangeGoogleCode(ctx context.Context, code string) (string, error)
}
