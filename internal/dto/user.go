package dto

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines email/password login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained client-side.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleExchangeCodeRequest carries an authorization code from the
// server-side Google sign-in flow.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// ChangePasswordRequest rotates the user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}
}
