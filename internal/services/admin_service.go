package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"golang.org/x/sync/errgroup"
)

const (
	AdminRowLimit     = 100
	AdminLatestLimit  = 10
	AdminUserPageSize = 100
)

var ErrUnknownColumn = errors.New("unknown column")

// AdminService backs the admin panel: the overview and raw table editing
type AdminService struct {
	userRepo        repositories.UserRepositoryInterface
	familyRepo      repositories.FamilyRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	savingsRepo     repositories.SavingsRepositoryInterface
	tableRepo       repositories.AdminTableRepositoryInterface
	metrics         MetricsRecorderInterface
	language        finance.Language
	logger          *slog.Logger
}

func NewAdminService(
	userRepo repositories.UserRepositoryInterface,
	familyRepo repositories.FamilyRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	savingsRepo repositories.SavingsRepositoryInterface,
	tableRepo repositories.AdminTableRepositoryInterface,
	metrics MetricsRecorderInterface,
	language finance.Language,
	logger *slog.Logger,
) AdminServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		userRepo:        userRepo,
		familyRepo:      familyRepo,
		transactionRepo: transactionRepo,
		savingsRepo:     savingsRepo,
		tableRepo:       tableRepo,
		metrics:         metricsOrNoop(metrics),
		language:        finance.ParseLanguage(string(language)),
		logger:          logger,
	}
}

// GetOverview loads counts, totals, users and the latest records
// concurrently. Any failing query fails the whole overview.
func (s *AdminService) GetOverview() (*dto.AdminOverviewResponse, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime(MetricAdminOverview, time.Since(started))
	}()

	var (
		g            errgroup.Group
		counts       dto.AdminCounts
		totals       models.TransactionTotals
		users        []*models.User
		transactions []models.Transaction
		savings      []models.SavingsTarget
	)

	g.Go(func() error {
		var err error
		counts.Users, err = s.userRepo.Count()
		return err
	})
	g.Go(func() error {
		var err error
		counts.Families, err = s.familyRepo.Count()
		return err
	})
	g.Go(func() error {
		var err error
		counts.Transactions, err = s.transactionRepo.Count()
		return err
	})
	g.Go(func() error {
		var err error
		counts.SavingsTargets, err = s.savingsRepo.Count()
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.transactionRepo.GetTotals(models.TransactionFilters{})
		return err
	})
	g.Go(func() error {
		var err error
		users, _, err = s.userRepo.ListUsers(0, AdminUserPageSize)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.GetRecent(AdminLatestLimit)
		return err
	})
	g.Go(func() error {
		var err error
		savings, err = s.savingsRepo.GetRecent(AdminLatestLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load admin overview", "error", err)
		return nil, fmt.Errorf("failed to load admin overview: %w", err)
	}

	return &dto.AdminOverviewResponse{
		Counts:             counts,
		TotalIncome:        totals.Income,
		TotalExpense:       totals.Expense,
		Users:              dto.NewAdminUserResponses(users),
		LatestTransactions: dto.NewTransactionResponses(transactions),
		LatestSavings:      dto.NewSavingsResponses(savings, s.language),
	}, nil
}

func (s *AdminService) ListTableRows(table string) (*dto.AdminTableResponse, error) {
	rows, err := s.tableRepo.ListRows(table, AdminRowLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.TableRow{}
	}
	return &dto.AdminTableResponse{
		Table: table,
		Rows:  rows,
		Count: len(rows),
	}, nil
}

// UpdateTableRow decodes each raw editor value against the kind of the
// stored cell and writes the result. The id column is never written.
func (s *AdminService) UpdateTableRow(table, id string, raw map[string]string) (models.TableRow, error) {
	row, err := s.tableRepo.GetRow(table, id)
	if err != nil {
		return nil, err
	}

	values := make(map[string]interface{}, len(raw))
	for column, text := range raw {
		if column == "id" {
			continue
		}
		original, ok := row[column]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
		values[column] = models.DecodeCell(text, original).DBValue()
	}

	if err := s.tableRepo.UpdateRow(table, id, values); err != nil {
		return nil, err
	}

	s.logger.Info("admin row updated", "table", table, "row_id", id, "columns", len(values))

	return s.tableRepo.GetRow(table, id)
}

func (s *AdminService) DeleteTableRow(table, id string) error {
	if err := s.tableRepo.DeleteRow(table, id); err != nil {
		return err
	}
	s.logger.Info("admin row deleted", "table", table, "row_id", id)
	return nil
}
