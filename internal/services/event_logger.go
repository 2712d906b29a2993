package services

import (
	"context"
	"log/slog"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

type correlationKey struct{}

// CorrelationIDKey is the context key carrying the request trace ID into
// event log lines.
var CorrelationIDKey = correlationKey{}

// WithCorrelationID returns a context that tags event log lines with id
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

type EventLogger struct {
	logger *slog.Logger
}

// NewEventLogger writes structured domain events to logger
func NewEventLogger(logger *slog.Logger) EventLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLogger{
		logger: logger,
	}
}

func (el *EventLogger) LogActivityRecorded(ctx context.Context, entry *models.ActivityLog) {
	attrs := []slog.Attr{
		slog.String("event_type", "activity_recorded"),
		slog.String("activity_id", entry.ID.String()),
		slog.String("actor_user_id", entry.ActorUserID.String()),
		slog.String("action", entry.Action),
		slog.String("entity_type", entry.EntityType),
		slog.String("entity_id", entry.EntityID.String()),
		slog.String("scope", entry.Scope),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	}

	if entry.FamilyID != nil {
		attrs = append(attrs, slog.String("family_id", entry.FamilyID.String()))
	}

	el.logger.LogAttrs(ctx, slog.LevelDebug, "activity recorded", attrs...)
}

func (el *EventLogger) LogActivityPublishFailed(ctx context.Context, activityID uuid.UUID, errorMsg string) {
	el.logger.WarnContext(ctx, "activity publish failed",
		slog.String("event_type", "activity_publish_failed"),
		slog.String("activity_id", activityID.String()),
		slog.String("error", errorMsg),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (el *EventLogger) LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string) {
	el.logger.WarnContext(ctx, "circuit breaker state change",
		slog.String("event_type", "circuit_breaker_state_change"),
		slog.String("service", service),
		slog.String("old_state", oldState),
		slog.String("new_state", newState),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (el *EventLogger) LogFamilyMembershipChange(ctx context.Context, familyID, userID uuid.UUID, event string) {
	el.logger.InfoContext(ctx, "family membership change",
		slog.String("event_type", "family_"+event),
		slog.String("family_id", familyID.String()),
		slog.String("user_id", userID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func getCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}

	return ""
}
