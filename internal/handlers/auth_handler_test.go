package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"
	"finance-tracker/internal/services/service_mocks"

	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	authService  *service_mocks.MockAuthServiceInterface
	tokenService *service_mocks.MockTokenServiceInterface
	handler      *AuthHandler
	e            *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService, s.tokenService)
	s.e = newTestEcho()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) TestRegister_Success() {
	user := &models.User{
		ID:          uuid.New(),
		Email:       "sari@example.com",
		DisplayName: "Sari",
		CreatedAt:   time.Now(),
	}

	s.authService.EXPECT().
		Register(gomock.Any()).
		DoAndReturn(func(req *dto.RegisterRequest) (*models.User, error) {
			s.Equal("Sari@Example.com", req.Email)
			s.Equal("Sari", req.DisplayName)
			return user, nil
		})

	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":        "Sari@Example.com",
		"password":     "rahasia123",
		"display_name": "Sari",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusCreated, rec.Code)

	var profile dto.UserProfileResponse
	response, err := decodeSuccess(rec, &profile)
	s.Require().NoError(err)
	s.Equal(user.ID, profile.ID)
	s.False(profile.IsAdmin)
	s.Equal("User registered successfully", response.Message)
}

func (s *AuthHandlerSuite) TestRegister_DuplicateEmail() {
	s.authService.EXPECT().Register(gomock.Any()).Return(nil, services.ErrUserAlreadyExists)

	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "sari@example.com",
		"password": "rahasia123",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("AUTH_007", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestRegister_WeakPassword() {
	s.authService.EXPECT().
		Register(gomock.Any()).
		Return(nil, fmt.Errorf("failed to hash password: %w", services.ErrPasswordNoNumber))

	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "sari@example.com",
		"password": "tanpaangka",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("AUTH_009", decodeErrorCode(rec))
	s.Contains(rec.Body.String(), services.ErrPasswordNoNumber.Error())
}

func (s *AuthHandlerSuite) TestRegister_ValidationError() {
	c, _ := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "short",
	})

	err := s.handler.Register(c)

	var validationErrors validator.ValidationErrors
	s.True(errors.As(err, &validationErrors))
	s.Len(validationErrors, 2)
}

func (s *AuthHandlerSuite) TestRegister_InvalidBody() {
	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/register", "invalid json")

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestLogin() {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"account locked", services.ErrAccountLocked, http.StatusForbidden, "AUTH_006"},
		{"unexpected failure", errors.New("connection reset"), http.StatusInternalServerError, "SYSTEM_001"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.authService.EXPECT().Login(gomock.Any()).Return(nil, tt.serviceErr)

			c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/login", map[string]string{
				"email":    "sari@example.com",
				"password": "rahasia123",
			})

			s.NoError(s.handler.Login(c))
			s.Equal(tt.wantStatus, rec.Code)
			s.Equal(tt.wantCode, decodeErrorCode(rec))
		})
	}
}

func (s *AuthHandlerSuite) TestLogin_Success() {
	tokens := &dto.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
		IsAdmin:      true,
	}
	s.authService.EXPECT().Login(gomock.Any()).Return(tokens, nil)

	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "rahasia123",
	})

	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"access_token":"access"`)
	s.Contains(rec.Body.String(), `"is_admin":true`)
}

func (s *AuthHandlerSuite) TestRefreshToken() {
	s.Run("rotates tokens", func() {
		s.authService.EXPECT().RefreshTokens("old-refresh").Return(&dto.TokenResponse{AccessToken: "new"}, nil)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "old-refresh"})

		s.NoError(s.handler.RefreshToken(c))
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"access_token":"new"`)
	})

	s.Run("invalid refresh token", func() {
		s.authService.EXPECT().RefreshTokens("revoked").Return(nil, services.ErrInvalidRefreshToken)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "revoked"})

		s.NoError(s.handler.RefreshToken(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_008", decodeErrorCode(rec))
	})
}

func (s *AuthHandlerSuite) TestLogout() {
	s.Run("missing header", func() {
		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/logout", nil)

		s.NoError(s.handler.Logout(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_002", decodeErrorCode(rec))
	})

	s.Run("malformed header", func() {
		s.tokenService.EXPECT().ExtractTokenFromHeader("Token abc").Return("", errors.New("invalid authorization header format"))

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/logout", nil)
		c.Request().Header.Set("Authorization", "Token abc")

		s.NoError(s.handler.Logout(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_004", decodeErrorCode(rec))
	})

	s.Run("succeeds even when revocation fails", func() {
		s.tokenService.EXPECT().ExtractTokenFromHeader("Bearer abc").Return("abc", nil)
		s.authService.EXPECT().Logout("abc").Return(errors.New("database down"))

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/auth/logout", nil)
		c.Request().Header.Set("Authorization", "Bearer abc")

		s.NoError(s.handler.Logout(c))
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Logout successful")
	})
}

func (s *AuthHandlerSuite) TestMe() {
	userID := uuid.New()

	s.Run("returns profile", func() {
		s.authService.EXPECT().GetProfile(userID).Return(&dto.UserProfileResponse{
			ID:      userID,
			Email:   "sari@example.com",
			IsAdmin: true,
			Family:  &dto.FamilyMembershipResponse{FamilyName: "Keluarga Wijaya", Role: models.FamilyRoleOwner},
		}, nil)

		c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/auth/me", nil)
		authenticate(c, userID)

		s.NoError(s.handler.Me(c))
		s.Equal(http.StatusOK, rec.Code)

		var profile dto.UserProfileResponse
		_, err := decodeSuccess(rec, &profile)
		s.Require().NoError(err)
		s.True(profile.IsAdmin)
		s.Equal("Keluarga Wijaya", profile.Family.FamilyName)
	})

	s.Run("deleted user", func() {
		s.authService.EXPECT().GetProfile(userID).Return(nil, repositories.ErrUserNotFound)

		c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/auth/me", nil)
		authenticate(c, userID)

		s.NoError(s.handler.Me(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("no user in context", func() {
		c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/auth/me", nil)

		s.NoError(s.handler.Me(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
