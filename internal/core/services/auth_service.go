package services

import (
	"context"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/platform/config"
	"github.com/granaapp/grana_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements TokenSvcFacade for JWT issuance and Google
// ID token validation. It only needs the application configuration for
// secrets, expiry and the Google client ID.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// ValidateGoogleIDToken verifies the token's signature and audience
// against the configured Google client ID.
func (s *tokenService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("google sign-in is not configured")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google ID token: %w", err)
	}
	return payload, nil
}

// ExchangeGoogleCode trades an authorization code from the web sign-in
// flow for the ID token Google attached to the token response.
func (s *tokenService) ExchangeGoogleCode(ctx context.Context, code string) (string, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleClientSecret == "" {
		return "", fmt.Errorf("google sign-in is not configured")
	}
	oauthCfg := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("token response carries no id_token")
	}
	return idToken, nil
}
