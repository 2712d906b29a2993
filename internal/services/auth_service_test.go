package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/repositories/repository_mocks"
	"finance-tracker/internal/services/service_mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	userRepo             *repository_mocks.MockUserRepositoryInterface
	refreshTokenRepo     *repository_mocks.MockRefreshTokenRepositoryInterface
	blacklistedTokenRepo *repository_mocks.MockBlacklistedTokenRepositoryInterface
	familyRepo           *repository_mocks.MockFamilyRepositoryInterface
	passwordService      *service_mocks.MockPasswordServiceInterface
	tokenService         *service_mocks.MockTokenServiceInterface
	authService          AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.refreshTokenRepo = repository_mocks.NewMockRefreshTokenRepositoryInterface(s.ctrl)
	s.blacklistedTokenRepo = repository_mocks.NewMockBlacklistedTokenRepositoryInterface(s.ctrl)
	s.familyRepo = repository_mocks.NewMockFamilyRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.authService = NewAuthService(
		s.userRepo,
		s.refreshTokenRepo,
		s.blacklistedTokenRepo,
		s.familyRepo,
		s.passwordService,
		s.tokenService,
		NewAdminPolicy([]string{"admin@example.com"}),
		nil,
		config.SecurityConfig{MaxFailedAttempts: 3, LockoutDuration: 15 * time.Minute},
		slog.Default(),
	)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) expectTokenIssue(user *models.User) {
	s.tokenService.EXPECT().GenerateAccessToken(user).Return("access-token", time.Now().Add(time.Hour), nil)
	s.tokenService.EXPECT().GenerateRefreshToken(user.ID).Return("refresh-token", time.Now().Add(24*time.Hour), nil)
	s.refreshTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(token *models.RefreshToken) error {
		s.Equal(user.ID, token.UserID)
		s.Equal(hashToken("refresh-token"), token.TokenHash)
		return nil
	})
}

func (s *AuthServiceTestSuite) TestRegister_Success() {
	req := &dto.RegisterRequest{
		Email:       "  Ayu@Example.com ",
		Password:    "tabungan1",
		DisplayName: " Ayu ",
	}

	s.userRepo.EXPECT().GetByEmail("ayu@example.com").Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword("tabungan1").Return("hashed_password", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil)

	user, err := s.authService.Register(req)

	s.Require().NoError(err)
	s.Equal("ayu@example.com", user.Email)
	s.Equal("Ayu", user.DisplayName)
	s.Equal("hashed_password", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	s.userRepo.EXPECT().GetByEmail("ayu@example.com").Return(&models.User{ID: uuid.New()}, nil)

	user, err := s.authService.Register(&dto.RegisterRequest{Email: "ayu@example.com", Password: "tabungan1"})

	s.Nil(user)
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestRegister_CreateRaceMapsToDuplicate() {
	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword(gomock.Any()).Return("hashed", nil)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrUserAlreadyExists)

	_, err := s.authService.Register(&dto.RegisterRequest{Email: "ayu@example.com", Password: "tabungan1"})

	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestRegister_WeakPassword() {
	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(nil, repositories.ErrUserNotFound)
	s.passwordService.EXPECT().HashPassword("abcdefgh").Return("", ErrPasswordNoNumber)

	_, err := s.authService.Register(&dto.RegisterRequest{Email: "ayu@example.com", Password: "abcdefgh"})

	s.ErrorIs(err, ErrPasswordNoNumber)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	user := &models.User{ID: uuid.New(), Email: "admin@example.com", PasswordHash: "hash"}

	s.userRepo.EXPECT().GetByEmail("admin@example.com").Return(user, nil)
	s.passwordService.EXPECT().ComparePassword("tabungan1", "hash").Return(true)
	s.userRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	s.expectTokenIssue(user)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: "Admin@Example.com", Password: "tabungan1"})

	s.Require().NoError(err)
	s.Equal("access-token", tokens.AccessToken)
	s.Equal("refresh-token", tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)
	s.True(tokens.IsAdmin)
	s.NotNil(user.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLogin_ResetsFailedAttempts() {
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com", PasswordHash: "hash", FailedLoginAttempts: 2}

	s.userRepo.EXPECT().GetByEmail("ayu@example.com").Return(user, nil)
	s.passwordService.EXPECT().ComparePassword("tabungan1", "hash").Return(true)
	s.userRepo.EXPECT().ResetFailedLoginAttempts(user.ID).Return(nil)
	s.userRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	s.expectTokenIssue(user)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: "ayu@example.com", Password: "tabungan1"})

	s.Require().NoError(err)
	s.False(tokens.IsAdmin)
	s.Equal(0, user.FailedLoginAttempts)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.userRepo.EXPECT().GetByEmail("nobody@example.com").Return(nil, repositories.ErrUserNotFound)

	_, err := s.authService.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "x"})

	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_RepositoryError() {
	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := s.authService.Login(&dto.LoginRequest{Email: "ayu@example.com", Password: "x"})

	s.Error(err)
	s.NotErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPasswordCountsAttempt() {
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com", PasswordHash: "hash"}

	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(user, nil)
	s.passwordService.EXPECT().ComparePassword("wrong", "hash").Return(false)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil)

	_, err := s.authService.Login(&dto.LoginRequest{Email: "ayu@example.com", Password: "wrong"})

	s.ErrorIs(err, ErrInvalidCredentials)
	s.Equal(1, user.FailedLoginAttempts)
	s.Nil(user.LockedAt)
}

func (s *AuthServiceTestSuite) TestLogin_LocksAfterMaxAttempts() {
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com", PasswordHash: "hash", FailedLoginAttempts: 2}

	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(user, nil)
	s.passwordService.EXPECT().ComparePassword("wrong", "hash").Return(false)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil)

	_, err := s.authService.Login(&dto.LoginRequest{Email: "ayu@example.com", Password: "wrong"})

	s.ErrorIs(err, ErrInvalidCredentials)
	s.Equal(3, user.FailedLoginAttempts)
	s.NotNil(user.LockedAt)
}

func (s *AuthServiceTestSuite) TestLogin_LockedAccount() {
	lockedAt := time.Now().Add(-time.Minute)
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com", PasswordHash: "hash", LockedAt: &lockedAt}

	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(user, nil)

	_, err := s.authService.Login(&dto.LoginRequest{Email: "ayu@example.com", Password: "tabungan1"})

	s.ErrorIs(err, ErrAccountLocked)
}

func (s *AuthServiceTestSuite) TestLogin_ExpiredLockStartsCountingAgain() {
	lockedAt := time.Now().Add(-time.Hour)
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com", PasswordHash: "hash", FailedLoginAttempts: 3, LockedAt: &lockedAt}

	s.userRepo.EXPECT().GetByEmail(gomock.Any()).Return(user, nil)
	s.passwordService.EXPECT().ComparePassword("wrong", "hash").Return(false)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil)

	_, err := s.authService.Login(&dto.LoginRequest{Email: "ayu@example.com", Password: "wrong"})

	s.ErrorIs(err, ErrInvalidCredentials)
	s.Equal(1, user.FailedLoginAttempts)
	s.Nil(user.LockedAt)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_Success() {
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com"}

	gomock.InOrder(
		s.tokenService.EXPECT().ValidateRefreshToken("old-refresh").Return(claimsFor(user.ID), nil),
		s.refreshTokenRepo.EXPECT().Consume(hashToken("old-refresh"), user.ID).Return(nil),
		s.userRepo.EXPECT().GetByID(user.ID).Return(user, nil),
	)
	s.expectTokenIssue(user)

	tokens, err := s.authService.RefreshTokens("old-refresh")

	s.Require().NoError(err)
	s.Equal("refresh-token", tokens.RefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_InvalidToken() {
	s.tokenService.EXPECT().ValidateRefreshToken("bad").Return(nil, ErrInvalidToken)

	_, err := s.authService.RefreshTokens("bad")

	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_SpentOrForeignToken() {
	userID := uuid.New()

	s.tokenService.EXPECT().ValidateRefreshToken("old").Return(claimsFor(userID), nil)
	s.refreshTokenRepo.EXPECT().Consume(hashToken("old"), userID).Return(repositories.ErrRefreshTokenNotFound)

	_, err := s.authService.RefreshTokens("old")

	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_StoreFailure() {
	userID := uuid.New()

	s.tokenService.EXPECT().ValidateRefreshToken("old").Return(claimsFor(userID), nil)
	s.refreshTokenRepo.EXPECT().Consume(gomock.Any(), userID).Return(errors.New("connection reset"))

	_, err := s.authService.RefreshTokens("old")

	s.Error(err)
	s.NotErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_DeletedUser() {
	userID := uuid.New()

	s.tokenService.EXPECT().ValidateRefreshToken("old").Return(claimsFor(userID), nil)
	s.refreshTokenRepo.EXPECT().Consume(gomock.Any(), userID).Return(nil)
	s.userRepo.EXPECT().GetByID(userID).Return(nil, repositories.ErrUserNotFound)

	_, err := s.authService.RefreshTokens("old")

	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestLogout_BlacklistsAndRevokes() {
	userID := uuid.New()
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := claimsFor(userID)
	claims.ID = "jti-1"
	claims.ExpiresAt = jwt.NewNumericDate(expiry)

	s.tokenService.EXPECT().ValidateAccessToken("access").Return(claims, nil)
	s.blacklistedTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(token *models.BlacklistedToken) error {
		s.Equal("jti-1", token.JTI)
		s.Equal(userID, token.UserID)
		s.True(expiry.Equal(token.ExpiresAt))
		return nil
	})
	s.refreshTokenRepo.EXPECT().RevokeAllForUser(userID).Return(nil)

	s.NoError(s.authService.Logout("access"))
}

func (s *AuthServiceTestSuite) TestLogout_ExpiredTokenStillBlacklisted() {
	s.tokenService.EXPECT().ValidateAccessToken("expired").Return(nil, ErrExpiredToken)
	s.tokenService.EXPECT().GetJTI("expired").Return("jti-2", nil)
	s.blacklistedTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(token *models.BlacklistedToken) error {
		s.Equal("jti-2", token.JTI)
		return nil
	})

	s.NoError(s.authService.Logout("expired"))
}

func (s *AuthServiceTestSuite) TestGetProfile_WithFamily() {
	user := &models.User{ID: uuid.New(), Email: "admin@example.com", DisplayName: "Admin"}
	membership := &models.FamilyMember{
		FamilyID: uuid.New(),
		UserID:   user.ID,
		Role:     models.FamilyRoleOwner,
		Family:   models.Family{Name: "Keluarga Santoso", InviteCode: "AB12CD"},
	}

	s.userRepo.EXPECT().GetByID(user.ID).Return(user, nil)
	s.familyRepo.EXPECT().GetMembership(user.ID).Return(membership, nil)

	profile, err := s.authService.GetProfile(user.ID)

	s.Require().NoError(err)
	s.True(profile.IsAdmin)
	s.Require().NotNil(profile.Family)
	s.Equal("Keluarga Santoso", profile.Family.FamilyName)
	s.Equal(models.FamilyRoleOwner, profile.Family.Role)
}

func (s *AuthServiceTestSuite) TestGetProfile_WithoutFamily() {
	user := &models.User{ID: uuid.New(), Email: "ayu@example.com"}

	s.userRepo.EXPECT().GetByID(user.ID).Return(user, nil)
	s.familyRepo.EXPECT().GetMembership(user.ID).Return(nil, repositories.ErrMembershipNotFound)

	profile, err := s.authService.GetProfile(user.ID)

	s.Require().NoError(err)
	s.False(profile.IsAdmin)
	s.Nil(profile.Family)
}

func (s *AuthServiceTestSuite) TestGetProfile_UnknownUser() {
	userID := uuid.New()
	s.userRepo.EXPECT().GetByID(userID).Return(nil, repositories.ErrUserNotFound)

	_, err := s.authService.GetProfile(userID)

	s.ErrorIs(err, repositories.ErrUserNotFound)
}

func claimsFor(userID uuid.UUID) *models.CustomClaims {
	return &models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}
}
