package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DashboardService assembles the dashboard of a personal or family scope
type DashboardService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	savingsRepo     repositories.SavingsRepositoryInterface
	familyRepo      repositories.FamilyRepositoryInterface
	metrics         MetricsRecorderInterface
	location        *time.Location
	language        finance.Language
	logger          *slog.Logger

	now func() time.Time
}

func NewDashboardService(
	transactionRepo repositories.TransactionRepositoryInterface,
	savingsRepo repositories.SavingsRepositoryInterface,
	familyRepo repositories.FamilyRepositoryInterface,
	metrics MetricsRecorderInterface,
	location *time.Location,
	language finance.Language,
	logger *slog.Logger,
) DashboardServiceInterface {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		transactionRepo: transactionRepo,
		savingsRepo:     savingsRepo,
		familyRepo:      familyRepo,
		metrics:         metricsOrNoop(metrics),
		location:        location,
		language:        finance.ParseLanguage(string(language)),
		logger:          logger,
		now:             time.Now,
	}
}

func (s *DashboardService) GetDashboard(userID uuid.UUID, query *dto.DashboardQuery) (*dto.DashboardResponse, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime(MetricDashboardBuild, time.Since(started))
	}()

	query.Normalize()

	txFilters, savingsFilters, err := scopeFilters(s.familyRepo, userID, query.Scope)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := finance.MonthStart(now, s.location)
	notesStart := finance.DaysBack(now, query.Range)

	monthFilters := txFilters
	monthFilters.StartDate = &monthStart

	monthExpenseFilters := monthFilters
	monthExpenseFilters.Type = models.TransactionTypeExpense

	notesFilters := txFilters
	notesFilters.Type = query.Type
	notesFilters.StartDate = &notesStart

	var (
		g             errgroup.Group
		allTime       models.TransactionTotals
		month         models.TransactionTotals
		savings       models.SavingsTotals
		monthExpenses []models.Transaction
		categories    []models.CategorySummary
		notes         []models.Transaction
	)

	g.Go(func() error {
		var err error
		allTime, err = s.transactionRepo.GetTotals(txFilters)
		return err
	})
	g.Go(func() error {
		var err error
		month, err = s.transactionRepo.GetTotals(monthFilters)
		return err
	})
	g.Go(func() error {
		var err error
		savings, err = s.savingsRepo.GetTotals(savingsFilters)
		return err
	})
	g.Go(func() error {
		var err error
		monthExpenses, _, err = s.transactionRepo.GetWithFilters(monthExpenseFilters)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.transactionRepo.GetCategorySummary(monthExpenseFilters)
		return err
	})
	g.Go(func() error {
		var err error
		notes, _, err = s.transactionRepo.GetWithFilters(notesFilters)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	current := savings.Current.InexactFloat64()
	target := savings.Target.InexactFloat64()

	response := &dto.DashboardResponse{
		Scope:               query.Scope,
		TotalBalance:        allTime.Net(),
		MonthIncome:         month.Income,
		MonthSpending:       month.Expense,
		SavingsTotalTarget:  savings.Target,
		SavingsTotalCurrent: savings.Current,
		SavingsProgress:     finance.Percent(current, target),
		DailySpending:       dailyTotals(monthExpenses, s.location),
		CategoryBreakdown:   categories,
		Notes:               dto.NewTransactionResponses(topByAmount(notes, dto.MaxNotes)),
	}
	if response.CategoryBreakdown == nil {
		response.CategoryBreakdown = []models.CategorySummary{}
	}
	if warning, ok := finance.SavingWarningIn(s.language, current, target); ok {
		response.SavingWarning = &warning
	}

	return response, nil
}

// scopeFilters returns the transaction and savings filters selecting the
// caller's records in scope. The family scope requires a membership.
func scopeFilters(familyRepo repositories.FamilyRepositoryInterface, userID uuid.UUID, scope string) (models.TransactionFilters, models.SavingsFilters, error) {
	if scope != models.ScopeFamily {
		return models.TransactionFilters{UserID: userID, Scope: models.ScopePersonal},
			models.SavingsFilters{UserID: userID, Scope: models.ScopePersonal},
			nil
	}

	membership, err := familyRepo.GetMembership(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return models.TransactionFilters{}, models.SavingsFilters{}, ErrNotFamilyMember
		}
		return models.TransactionFilters{}, models.SavingsFilters{}, fmt.Errorf("failed to get family membership: %w", err)
	}

	familyID := membership.FamilyID
	return models.TransactionFilters{FamilyID: &familyID, Scope: models.ScopeFamily},
		models.SavingsFilters{FamilyID: &familyID, Scope: models.ScopeFamily},
		nil
}

// dailyTotals sums amounts per local calendar day, oldest day first
func dailyTotals(transactions []models.Transaction, loc *time.Location) []dto.DailyAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		key := finance.LocalDateKey(t.CreatedAt, loc)
		sums[key] = sums[key].Add(t.Amount)
	}

	days := make([]dto.DailyAmount, 0, len(sums))
	for date, amount := range sums {
		days = append(days, dto.DailyAmount{Date: date, Amount: amount})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// topByAmount returns at most n transactions, largest amount first. Ties keep
// the newest-first order of the input.
func topByAmount(transactions []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
