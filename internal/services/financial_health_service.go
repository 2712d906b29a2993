package services

import (
	"fmt"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FinancialHealthService scores the current month of a personal or family scope
type FinancialHealthService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	savingsRepo     repositories.SavingsRepositoryInterface
	familyRepo      repositories.FamilyRepositoryInterface
	metrics         MetricsRecorderInterface
	location        *time.Location

	now func() time.Time
}

func NewFinancialHealthService(
	transactionRepo repositories.TransactionRepositoryInterface,
	savingsRepo repositories.SavingsRepositoryInterface,
	familyRepo repositories.FamilyRepositoryInterface,
	metrics MetricsRecorderInterface,
	location *time.Location,
) FinancialHealthServiceInterface {
	if location == nil {
		location = time.UTC
	}
	return &FinancialHealthService{
		transactionRepo: transactionRepo,
		savingsRepo:     savingsRepo,
		familyRepo:      familyRepo,
		metrics:         metricsOrNoop(metrics),
		location:        location,
		now:             time.Now,
	}
}

// GetFinancialHealth feeds month-to-date income and expense plus the savings
// totals of scope into finance.ScoreHealth.
func (s *FinancialHealthService) GetFinancialHealth(userID uuid.UUID, scope string) (*dto.FinancialHealthResponse, error) {
	if scope == "" {
		scope = models.ScopePersonal
	}

	txFilters, savingsFilters, err := scopeFilters(s.familyRepo, userID, scope)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := finance.MonthStart(now, s.location)
	txFilters.StartDate = &monthStart

	var (
		g       errgroup.Group
		month   models.TransactionTotals
		savings models.SavingsTotals
	)
	g.Go(func() error {
		var err error
		month, err = s.transactionRepo.GetTotals(txFilters)
		return err
	})
	g.Go(func() error {
		var err error
		savings, err = s.savingsRepo.GetTotals(savingsFilters)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load financial health inputs: %w", err)
	}

	report := finance.ScoreHealth(finance.HealthInput{
		MonthlyIncome:  month.Income.InexactFloat64(),
		MonthlyExpense: month.Expense.InexactFloat64(),
		SavingsTarget:  savings.Target.InexactFloat64(),
		SavingsCurrent: savings.Current.InexactFloat64(),
	})
	s.metrics.RecordGauge(MetricHealthScore, float64(report.HealthScore), map[string]string{"scope": scope})

	return &dto.FinancialHealthResponse{
		Scope:          scope,
		Month:          monthStart.Format(finance.MonthLayout),
		MonthlyIncome:  month.Income,
		MonthlyExpense: month.Expense,
		SavingsTarget:  savings.Target,
		SavingsCurrent: savings.Current,
		HealthReport:   report,
	}, nil
}
