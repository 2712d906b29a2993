package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100

	activityPublishTimeout = 5 * time.Second
)

// ActivityService writes activity log entries and forwards them to the
// configured publisher. Recording never fails the caller.
type ActivityService struct {
	repo      repositories.ActivityLogRepositoryInterface
	publisher ActivityPublisherInterface
	events    EventLoggerInterface
	logger    *slog.Logger
}

func NewActivityService(
	repo repositories.ActivityLogRepositoryInterface,
	publisher ActivityPublisherInterface,
	events EventLoggerInterface,
	logger *slog.Logger,
) ActivityServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = NewNoopPublisher(logger)
	}
	if events == nil {
		events = NewEventLogger(logger)
	}
	return &ActivityService{
		repo:      repo,
		publisher: publisher,
		events:    events,
		logger:    logger,
	}
}

func (s *ActivityService) Record(entry *models.ActivityLog) {
	if entry == nil {
		return
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Warn("failed to record activity",
			"error", err,
			"actor_user_id", entry.ActorUserID,
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), activityPublishTimeout)
	defer cancel()

	s.events.LogActivityRecorded(ctx, entry)

	if err := s.publisher.PublishActivity(ctx, entry); err != nil {
		if errors.Is(err, ErrCircuitBreakerOpen) {
			s.logger.Debug("activity event dropped, publisher circuit open", "activity_id", entry.ID)
			return
		}
		s.logger.Warn("failed to publish activity event",
			"error", err,
			"activity_id", entry.ID)
	}
}

// ListByActor returns the newest entries written by actorID. limit is clamped
// to [1, MaxActivityLimit]; zero means DefaultActivityLimit.
func (s *ActivityService) ListByActor(actorID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}

	logs, err := s.repo.ListByActor(actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return logs, nil
}

// ListFamilyMonth returns up to MaxActivityLimit family entries in [start, end)
func (s *ActivityService) ListFamilyMonth(familyID uuid.UUID, start, end time.Time) ([]models.ActivityLog, error) {
	logs, err := s.repo.ListByFamily(familyID, start, end, MaxActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list family activity: %w", err)
	}
	return logs, nil
}
