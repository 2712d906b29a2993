package services

import (
	"context"
	"log/slog"

	"finance-tracker/internal/models"
)

const activityPublisherName = "activity_publisher"

// BreakerPublisher guards an activity publisher with a circuit breaker. While
// the breaker is open events are dropped without touching the broker.
type BreakerPublisher struct {
	next    ActivityPublisherInterface
	breaker CircuitBreakerInterface
	events  EventLoggerInterface
	metrics MetricsRecorderInterface
}

func NewBreakerPublisher(
	next ActivityPublisherInterface,
	breaker CircuitBreakerInterface,
	events EventLoggerInterface,
	metrics MetricsRecorderInterface,
) ActivityPublisherInterface {
	return &BreakerPublisher{
		next:    next,
		breaker: breaker,
		events:  events,
		metrics: metricsOrNoop(metrics),
	}
}

func (p *BreakerPublisher) PublishActivity(ctx context.Context, entry *models.ActivityLog) error {
	if p.breaker.IsOpen() {
		p.recordResult("skipped")
		return ErrCircuitBreakerOpen
	}

	before := p.breaker.GetState()

	err := p.next.PublishActivity(ctx, entry)
	if err != nil {
		p.breaker.RecordFailure()
		p.recordResult("failed")
		p.events.LogActivityPublishFailed(ctx, entry.ID, err.Error())
	} else {
		p.breaker.RecordSuccess()
		p.recordResult("success")
	}

	if after := p.breaker.GetState(); after != before {
		p.events.LogCircuitBreakerStateChange(ctx, activityPublisherName, before.String(), after.String())
		p.metrics.RecordGauge(MetricCircuitBreakerState, float64(after), map[string]string{"service": activityPublisherName})
	}

	return err
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}

func (p *BreakerPublisher) recordResult(status string) {
	p.metrics.IncrementCounter(MetricActivityPublished, map[string]string{"status": status})
}

// NoopPublisher is used when no message broker is configured
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) ActivityPublisherInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishActivity(ctx context.Context, entry *models.ActivityLog) error {
	p.logger.DebugContext(ctx, "activity event not published, no broker configured", "activity_id", entry.ID)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
