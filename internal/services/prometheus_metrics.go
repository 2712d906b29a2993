package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricTransactionRecorded = "transaction.recorded"
	MetricSavingsDeposit      = "savings.deposit"
	MetricFamilyEvent         = "family.event"
	MetricAuthEvent           = "authentication_event"
	MetricActivityPublished   = "activity.published"
	MetricCircuitBreakerState = "circuit_breaker_state"
	MetricHealthScore         = "financial_health_score"
	MetricDashboardBuild      = "dashboard.build"
	MetricAdminOverview       = "admin.overview"
)

type PrometheusMetrics struct {
	transactionsRecorded   *prometheus.CounterVec
	savingsDeposits        prometheus.Counter
	familyEvents           *prometheus.CounterVec
	authenticationEvents   *prometheus.CounterVec
	activityPublished      *prometheus.CounterVec
	circuitBreakerState    *prometheus.GaugeVec
	healthScore            *prometheus.HistogramVec
	dashboardBuildDuration prometheus.Histogram
	adminOverviewDuration  prometheus.Histogram
}

// NewPrometheusMetrics registers the application metrics with reg. A nil
// registerer uses the default Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		transactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_transactions_recorded_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"scope", "type"},
		),
		savingsDeposits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finance_savings_deposits_total",
				Help: "Total number of deposits into savings targets",
			},
		),
		familyEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_family_events_total",
				Help: "Total number of family membership events",
			},
			[]string{"event"},
		),
		authenticationEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		activityPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activity_events_published_total",
				Help: "Total number of activity events handed to the message broker",
			},
			[]string{"status"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		healthScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "financial_health_score",
				Help:    "Distribution of computed financial health scores",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 85, 100},
			},
			[]string{"scope"},
		),
		dashboardBuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_build_duration_milliseconds",
				Help:    "Time to assemble a dashboard in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		adminOverviewDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "admin_overview_duration_milliseconds",
				Help:    "Time to assemble the admin overview in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricTransactionRecorded:
		m.transactionsRecorded.WithLabelValues(tags["scope"], tags["type"]).Inc()
	case MetricSavingsDeposit:
		m.savingsDeposits.Inc()
	case MetricFamilyEvent:
		if event := tags["event"]; event != "" {
			m.familyEvents.WithLabelValues(event).Inc()
		}
	case MetricAuthEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEvents.WithLabelValues(eventType).Inc()
		}
	case MetricActivityPublished:
		if status := tags["status"]; status != "" {
			m.activityPublished.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricDashboardBuild:
		m.dashboardBuildDuration.Observe(float64(duration.Milliseconds()))
	case MetricAdminOverview:
		m.adminOverviewDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	case MetricHealthScore:
		m.healthScore.WithLabelValues(tags["scope"]).Observe(value)
	}
}

// noopMetrics discards everything. Used when no recorder is supplied.
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)     {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}

func metricsOrNoop(m MetricsRecorderInterface) MetricsRecorderInterface {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
