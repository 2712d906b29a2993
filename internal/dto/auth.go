package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest contains refresh token for renewal
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Auth Response DTOs

// TokenResponse contains authentication tokens
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	IsAdmin      bool      `json:"is_admin"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID          uuid.UUID                 `json:"id"`
	Email       string                    `json:"email"`
	DisplayName string                    `json:"display_name,omitempty"`
	IsAdmin     bool                      `json:"is_admin"`
	Family      *FamilyMembershipResponse `json:"family,omitempty"`
	LastLoginAt *time.Time                `json:"last_login_at,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
}

func NewUserProfileResponse(user *models.User, isAdmin bool) *UserProfileResponse {
	return &UserProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     isAdmin,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
