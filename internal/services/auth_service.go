package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("account is locked due to too many failed attempts")
	ErrUserAlreadyExists   = errors.New("user with this email already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo             repositories.UserRepositoryInterface
	refreshTokenRepo     repositories.RefreshTokenRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	familyRepo           repositories.FamilyRepositoryInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	adminPolicy          AdminPolicyInterface
	metrics              MetricsRecorderInterface
	maxFailedAttempts    int
	lockoutDuration      time.Duration
	logger               *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	refreshTokenRepo repositories.RefreshTokenRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	familyRepo repositories.FamilyRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	adminPolicy AdminPolicyInterface,
	metrics MetricsRecorderInterface,
	security config.SecurityConfig,
	logger *slog.Logger,
) AuthServiceInterface {
	if security.MaxFailedAttempts <= 0 {
		security.MaxFailedAttempts = models.MaxFailedLoginAttempts
	}
	if security.LockoutDuration <= 0 {
		security.LockoutDuration = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		userRepo:             userRepo,
		refreshTokenRepo:     refreshTokenRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		familyRepo:           familyRepo,
		passwordService:      passwordService,
		tokenService:         tokenService,
		adminPolicy:          adminPolicy,
		metrics:              metricsOrNoop(metrics),
		maxFailedAttempts:    security.MaxFailedAttempts,
		lockoutDuration:      security.LockoutDuration,
		logger:               logger,
	}
}

// Register creates a new user
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	email := models.NormalizeEmail(req.Email)

	existingUser, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		s.recordAuthEvent("register_duplicate")
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  strings.TrimSpace(req.DisplayName),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.recordAuthEvent("register")
	s.logger.Info("user registered", "user_id", user.ID)

	return user, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(models.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordAuthEvent("login_failed")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsLocked(s.lockoutDuration) {
		s.recordAuthEvent("login_locked")
		return nil, ErrAccountLocked
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		if user.LockedAt != nil {
			// previous lockout has expired, start counting again
			user.Unlock()
		}
		user.IncrementFailedAttempts(s.maxFailedAttempts)
		if err := s.userRepo.UpdateFailedLoginAttempts(user); err != nil {
			s.logger.Error("failed to update login attempts",
				"error", err,
				"user_id", user.ID)
		}

		if user.IsLocked(s.lockoutDuration) {
			s.recordAuthEvent("account_locked")
			s.logger.Warn("account locked after failed logins",
				"user_id", user.ID,
				"failed_attempts", user.FailedLoginAttempts)
		}

		s.recordAuthEvent("login_failed")
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedAt != nil {
		if err := s.userRepo.ResetFailedLoginAttempts(user.ID); err != nil {
			s.logger.Warn("failed to reset login attempts",
				"error", err,
				"user_id", user.ID)
		}
		user.ResetFailedAttempts()
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		s.logger.Warn("failed to update last login",
			"error", err,
			"user_id", user.ID)
	}
	user.LastLoginAt = &now

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.recordAuthEvent("login")

	return tokens, nil
}

// RefreshTokens exchanges a refresh token for a new pair. The presented
// token is spent even when issuing the new pair fails.
func (s *AuthService) RefreshTokens(refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.recordAuthEvent("refresh_failed")
		return nil, ErrInvalidRefreshToken
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.refreshTokenRepo.Consume(hashToken(refreshToken), userID); err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			s.recordAuthEvent("refresh_failed")
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	s.recordAuthEvent("refresh")

	return tokens, nil
}

// Logout blacklists the access token and revokes all refresh tokens of its owner
func (s *AuthService) Logout(accessToken string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		// expired tokens are still blacklisted so they cannot be replayed
		jti, _ := s.tokenService.GetJTI(accessToken)
		if jti != "" {
			if err := s.blacklistToken(jti, uuid.Nil, time.Now().Add(24*time.Hour)); err != nil {
				s.logger.Error("failed to blacklist expired token",
					"error", err,
					"jti", jti)
			}
		}
		return nil
	}

	userID, _ := claims.UserUUID()

	if err := s.blacklistToken(claims.ID, userID, claims.Expiry()); err != nil {
		s.logger.Error("failed to blacklist token",
			"error", err,
			"jti", claims.ID,
			"user_id", userID)
	}

	if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
		s.logger.Warn("failed to revoke refresh tokens",
			"error", err,
			"user_id", userID)
	}

	s.recordAuthEvent("logout")

	return nil
}

// GetProfile returns the user with admin flag and family membership
func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	profile := dto.NewUserProfileResponse(user, s.adminPolicy.IsAdmin(user.Email))

	membership, err := s.familyRepo.GetMembership(userID)
	switch {
	case err == nil:
		profile.Family = dto.NewFamilyMembershipResponse(membership)
	case errors.Is(err, repositories.ErrMembershipNotFound):
	default:
		return nil, fmt.Errorf("failed to get family membership: %w", err)
	}

	return profile, nil
}

func (s *AuthService) generateTokens(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: refreshExpiresAt,
	}

	if err := s.refreshTokenRepo.Create(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		IsAdmin:      s.adminPolicy.IsAdmin(user.Email),
	}, nil
}

func (s *AuthService) blacklistToken(jti string, userID uuid.UUID, expiresAt time.Time) error {
	token := &models.BlacklistedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return s.blacklistedTokenRepo.Create(token)
}

func (s *AuthService) recordAuthEvent(eventType string) {
	s.metrics.IncrementCounter(MetricAuthEvent, map[string]string{"event_type": eventType})
}

func hashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}
