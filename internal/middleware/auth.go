package middleware

import (
	"errors"

	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid JWT access token
// that has not been blacklisted by a logout. Admin status is decided by the
// policy on every request, so changes to the allow-list apply to issued tokens.
func RequireAuth(
	tokenService services.TokenServiceInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	adminPolicy services.AdminPolicyInterface,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apierrors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, apierrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			blacklistedToken, err := blacklistedTokenRepo.GetByJTI(claims.ID)
			if err == nil && blacklistedToken != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat, apierrors.WithDetails("Token has been revoked"))
			}

			userID, err := claims.UserUUID()
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat, apierrors.WithDetails("Invalid user ID in token"))
			}

			c.Set("user_id", userID)
			c.Set("user_email", claims.Email)
			c.Set("token_jti", claims.ID)
			c.Set("is_admin", adminPolicy.IsAdmin(claims.Email))

			return next(c)
		}
	}
}

// RequireAdmin allows only users on the admin allow-list. It must run after
// RequireAuth.
func RequireAdmin(adminPolicy services.AdminPolicyInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !adminPolicy.Configured() {
				return handlers.SendError(c, apierrors.AdminNotConfigured)
			}

			email, ok := c.Get("user_email").(string)
			if !ok {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat, apierrors.WithDetails("User email not found in token"))
			}

			if !adminPolicy.IsAdmin(email) {
				return handlers.SendError(c, apierrors.AuthInsufficientPermission)
			}

			return next(c)
		}
	}
}
