package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CustomClaims are the claims carried by access and refresh tokens. The
// subject is the user id.
type CustomClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
}

func (c *CustomClaims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Expiry returns the expiry claim, or the zero time when absent.
func (c *CustomClaims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
