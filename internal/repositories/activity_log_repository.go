package repositories

import (
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepositoryInterface {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(log *models.ActivityLog) error {
	if log == nil {
		return errors.New("activity log cannot be nil")
	}
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create activity log: %w", err)
	}
	return nil
}

// ListByActor returns the actor's latest entries
func (r *activityLogRepository) ListByActor(actorID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := r.db.Where("actor_user_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}

// ListByFamily returns the family's entries in [start, end), latest first
func (r *activityLogRepository) ListByFamily(familyID uuid.UUID, start, end time.Time, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := r.db.Where("family_id = ? AND created_at >= ? AND created_at < ?", familyID, start, end).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list family activity logs: %w", err)
	}
	return logs, nil
}
