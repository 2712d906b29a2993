package main

import (
	"fmt"
	"log/slog"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/events"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
)

type repositorySet struct {
	users       repositories.UserRepositoryInterface
	refresh     repositories.RefreshTokenRepositoryInterface
	blacklist   repositories.BlacklistedTokenRepositoryInterface
	families    repositories.FamilyRepositoryInterface
	transaction repositories.TransactionRepositoryInterface
	savings     repositories.SavingsRepositoryInterface
	activity    repositories.ActivityLogRepositoryInterface
	tables      repositories.AdminTableRepositoryInterface
}

type serviceSet struct {
	adminPolicy services.AdminPolicyInterface
	token       services.TokenServiceInterface
	auth        services.AuthServiceInterface
	activity    services.ActivityServiceInterface
	transaction services.TransactionServiceInterface
	savings     services.SavingsServiceInterface
	family      services.FamilyServiceInterface
	dashboard   services.DashboardServiceInterface
	health      services.FinancialHealthServiceInterface
	admin       services.AdminServiceInterface
	demoData    services.DemoDataServiceInterface
}

// application holds everything built from the configuration.
type application struct {
	cfg      *config.Config
	db       *database.DB
	logger   *slog.Logger
	language finance.Language
	repos    repositorySet
	services serviceSet
	amqp     *events.Client
}

// newApplication connects to the database and wires repositories and
// services. Metrics are registered on reg.
func newApplication(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*application, error) {
	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &application{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		language: finance.ParseLanguage(cfg.App.Language),
		repos: repositorySet{
			users:       repositories.NewUserRepository(db.DB),
			refresh:     repositories.NewRefreshTokenRepository(db.DB),
			blacklist:   repositories.NewBlacklistedTokenRepository(db.DB),
			families:    repositories.NewFamilyRepository(db.DB),
			transaction: repositories.NewTransactionRepository(db.DB),
			savings:     repositories.NewSavingsRepository(db.DB),
			activity:    repositories.NewActivityLogRepository(db.DB),
			tables:      repositories.NewAdminTableRepository(db.DB),
		},
	}

	metrics := services.NewPrometheusMetrics(reg)
	eventLogger := services.NewEventLogger(logger)
	publisher := app.newPublisher(eventLogger, metrics)

	r := app.repos
	location := cfg.App.Location

	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&cfg.JWT)
	adminPolicy := services.NewAdminPolicy(cfg.Admin.Emails)
	activity := services.NewActivityService(r.activity, publisher, eventLogger, logger)

	app.services = serviceSet{
		adminPolicy: adminPolicy,
		token:       tokenService,
		auth: services.NewAuthService(
			r.users, r.refresh, r.blacklist, r.families,
			passwordService, tokenService, adminPolicy, metrics, cfg.Security, logger,
		),
		activity:    activity,
		transaction: services.NewTransactionService(r.transaction, activity, metrics, location, logger),
		savings:     services.NewSavingsService(r.savings, activity, metrics, logger),
		family: services.NewFamilyService(
			r.families, r.transaction, r.savings, activity, eventLogger, metrics, location, logger,
		),
		dashboard: services.NewDashboardService(
			r.transaction, r.savings, r.families, metrics, location, app.language, logger,
		),
		health: services.NewFinancialHealthService(r.transaction, r.savings, r.families, metrics, location),
		admin: services.NewAdminService(
			r.users, r.families, r.transaction, r.savings, r.tables, metrics, app.language, logger,
		),
		demoData: services.NewDemoDataService(r.transaction, r.savings, 0, logger),
	}

	return app, nil
}

// newPublisher returns the AMQP publisher behind a circuit breaker, or a
// no-op publisher when AMQP is not configured or unreachable.
func (a *application) newPublisher(
	eventLogger services.EventLoggerInterface,
	metrics services.MetricsRecorderInterface,
) services.ActivityPublisherInterface {
	if !a.cfg.AMQP.Enabled() {
		return services.NewNoopPublisher(a.logger)
	}

	client, err := events.NewClient(a.cfg.AMQP.URL, a.cfg.AMQP.Exchange, a.cfg.AMQP.Queue, a.logger)
	if err != nil {
		a.logger.Warn("activity events disabled, AMQP unavailable", "error", err)
		return services.NewNoopPublisher(a.logger)
	}
	a.amqp = client

	breaker := services.NewCircuitBreaker(services.DefaultCircuitBreakerConfig())
	return services.NewBreakerPublisher(client, breaker, eventLogger, metrics)
}

// Close releases the broker connection and the database pool.
func (a *application) Close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close AMQP client", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}
