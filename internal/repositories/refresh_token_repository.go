package repositories

import (
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository keeps the hashes of issued refresh tokens. A token
// is single use: refreshing consumes it and a new one is stored.
type RefreshTokenRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepositoryInterface {
	return &RefreshTokenRepository{db: db, now: time.Now}
}

func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	if token == nil {
		return errors.New("refresh token cannot be nil")
	}

	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Consume revokes the live token with tokenHash owned by userID in a single
// conditional update, so a token can be exchanged at most once.
// ErrRefreshTokenNotFound covers unknown, foreign, expired and spent tokens.
func (r *RefreshTokenRepository) Consume(tokenHash string, userID uuid.UUID) error {
	now := r.now()

	result := r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, userID, now).
		Update("revoked_at", now)
	if result.Error != nil {
		return fmt.Errorf("failed to consume refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}

	return nil
}

// RevokeAllForUser ends every session of userID.
func (r *RefreshTokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	err := r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", r.now()).Error
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens of user: %w", err)
	}

	return nil
}

// Prune deletes expired tokens and tokens revoked longer than retention ago.
func (r *RefreshTokenRepository) Prune(retention time.Duration) (int64, error) {
	now := r.now()

	result := r.db.
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", now, now.Add(-retention)).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune refresh tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}
