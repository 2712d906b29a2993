package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	inviteCodeAttempts = 5
	inviteCodeSpace    = 36 * 36 * 36 * 36 * 36 * 36
)

var (
	ErrAlreadyInFamily     = errors.New("user already belongs to a family")
	ErrNotFamilyMember     = errors.New("user is not a member of any family")
	ErrInviteCodeExhausted = errors.New("could not allocate a unique invite code")
)

// FamilyService manages families, memberships and the records members share
type FamilyService struct {
	familyRepo      repositories.FamilyRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	savingsRepo     repositories.SavingsRepositoryInterface
	activity        ActivityServiceInterface
	events          EventLoggerInterface
	metrics         MetricsRecorderInterface
	location        *time.Location
	logger          *slog.Logger

	newInviteCode func() (string, error)
	now           func() time.Time
}

func NewFamilyService(
	familyRepo repositories.FamilyRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	savingsRepo repositories.SavingsRepositoryInterface,
	activity ActivityServiceInterface,
	events EventLoggerInterface,
	metrics MetricsRecorderInterface,
	location *time.Location,
	logger *slog.Logger,
) FamilyServiceInterface {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = NewEventLogger(logger)
	}
	return &FamilyService{
		familyRepo:      familyRepo,
		transactionRepo: transactionRepo,
		savingsRepo:     savingsRepo,
		activity:        activity,
		events:          events,
		metrics:         metricsOrNoop(metrics),
		location:        location,
		logger:          logger,
		newInviteCode:   GenerateInviteCode,
		now:             time.Now,
	}
}

// GenerateInviteCode returns a random six character base36 code in upper case
func GenerateInviteCode() (string, error) {
	n, err := secureRandomInt(inviteCodeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	code := strings.ToUpper(strconv.FormatInt(int64(n), 36))
	return strings.Repeat("0", models.InviteCodeLength-len(code)) + code, nil
}

func (s *FamilyService) CreateFamily(userID uuid.UUID, name string) (*dto.FamilyResponse, error) {
	if _, err := s.GetMembership(userID); err == nil {
		return nil, ErrAlreadyInFamily
	} else if !errors.Is(err, ErrNotFamilyMember) {
		return nil, err
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := s.newInviteCode()
		if err != nil {
			return nil, err
		}

		family := &models.Family{
			Name:       strings.TrimSpace(name),
			InviteCode: code,
			CreatedBy:  userID,
		}
		owner := &models.FamilyMember{UserID: userID, Role: models.FamilyRoleOwner}

		err = s.familyRepo.Create(family, owner)
		switch {
		case err == nil:
			s.events.LogFamilyMembershipChange(context.Background(), family.ID, userID, "created")
			s.metrics.IncrementCounter(MetricFamilyEvent, map[string]string{"event": "created"})
			return s.familyResponse(family, owner.Role)
		case errors.Is(err, repositories.ErrInviteCodeCollision):
			s.logger.Debug("invite code collision, retrying", "attempt", attempt+1)
			continue
		case errors.Is(err, repositories.ErrAlreadyFamilyMember):
			return nil, ErrAlreadyInFamily
		default:
			return nil, fmt.Errorf("failed to create family: %w", err)
		}
	}

	return nil, ErrInviteCodeExhausted
}

func (s *FamilyService) JoinFamily(userID uuid.UUID, inviteCode string) (*dto.FamilyResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if !models.IsValidInviteCode(code) {
		return nil, repositories.ErrFamilyNotFound
	}

	family, err := s.familyRepo.GetByInviteCode(code)
	if err != nil {
		return nil, err
	}

	member := &models.FamilyMember{
		FamilyID: family.ID,
		UserID:   userID,
		Role:     models.FamilyRoleMember,
	}
	if err := s.familyRepo.AddMember(member); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFamilyMember) {
			return nil, ErrAlreadyInFamily
		}
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	s.events.LogFamilyMembershipChange(context.Background(), family.ID, userID, "joined")
	s.metrics.IncrementCounter(MetricFamilyEvent, map[string]string{"event": "joined"})

	return s.familyResponse(family, member.Role)
}

// LeaveFamily removes the caller's membership. An owner leaving does not
// dissolve the family.
func (s *FamilyService) LeaveFamily(userID uuid.UUID) error {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return err
	}

	if err := s.familyRepo.RemoveMember(userID); err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return ErrNotFamilyMember
		}
		return fmt.Errorf("failed to leave family: %w", err)
	}

	s.events.LogFamilyMembershipChange(context.Background(), membership.FamilyID, userID, "left")
	s.metrics.IncrementCounter(MetricFamilyEvent, map[string]string{"event": "left"})

	return nil
}

func (s *FamilyService) GetMyFamily(userID uuid.UUID) (*dto.FamilyResponse, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, err
	}
	return s.familyResponse(&membership.Family, membership.Role)
}

func (s *FamilyService) GetMembership(userID uuid.UUID) (*models.FamilyMember, error) {
	membership, err := s.familyRepo.GetMembership(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, ErrNotFamilyMember
		}
		return nil, fmt.Errorf("failed to get family membership: %w", err)
	}
	return membership, nil
}

func (s *FamilyService) ListTransactions(userID uuid.UUID, query *dto.TransactionListQuery) ([]models.Transaction, int64, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, 0, err
	}

	filters, err := listFilters(query, s.location)
	if err != nil {
		return nil, 0, err
	}
	filters.FamilyID = &membership.FamilyID
	filters.Scope = models.ScopeFamily

	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list family transactions: %w", err)
	}
	return transactions, total, nil
}

func (s *FamilyService) CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	createdAt, err := parseCreatedAt(req.CreatedAt, s.now())
	if err != nil {
		return nil, err
	}

	familyID := membership.FamilyID
	transaction := &models.Transaction{
		UserID:      userID,
		FamilyID:    &familyID,
		Scope:       models.ScopeFamily,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    normalizeCategory(req.Category),
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   userID,
		CreatedAt:   createdAt,
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create family transaction: %w", err)
	}

	s.activity.Record(transactionActivity(models.ActivityActionCreate, transaction, userID))
	s.metrics.IncrementCounter(MetricTransactionRecorded, map[string]string{
		"scope": transaction.Scope,
		"type":  transaction.Type,
	})

	return transaction, nil
}

// UpdateTransaction edits a family transaction. Any member may edit any of
// the family's rows; ownership and timestamps are kept.
func (s *FamilyService) UpdateTransaction(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.getFamilyTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}

	changes, err := applyTransactionUpdate(transaction, req)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update family transaction: %w", err)
	}

	s.activity.Record(withChanges(transactionActivity(models.ActivityActionUpdate, transaction, userID), changes))

	return transaction, nil
}

func (s *FamilyService) DeleteTransaction(userID, transactionID uuid.UUID) error {
	transaction, err := s.getFamilyTransaction(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(transaction.ID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete family transaction: %w", err)
	}

	s.activity.Record(transactionActivity(models.ActivityActionDelete, transaction, userID))

	return nil
}

func (s *FamilyService) ListSavings(userID uuid.UUID) ([]models.SavingsTarget, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, err
	}

	targets, err := s.savingsRepo.List(models.SavingsFilters{
		FamilyID: &membership.FamilyID,
		Scope:    models.ScopeFamily,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list family savings: %w", err)
	}
	return targets, nil
}

func (s *FamilyService) CreateSavings(userID uuid.UUID, req *dto.CreateSavingsRequest) (*models.SavingsTarget, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, err
	}

	familyID := membership.FamilyID
	target := newSavingsTarget(userID, req)
	target.FamilyID = &familyID
	target.Scope = models.ScopeFamily

	if err := s.savingsRepo.Create(target); err != nil {
		return nil, fmt.Errorf("failed to create family savings target: %w", err)
	}

	s.activity.Record(savingsActivity(models.ActivityActionCreate, target, userID))

	return target, nil
}

func (s *FamilyService) DeleteSavings(userID, targetID uuid.UUID) error {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return err
	}

	target, err := s.savingsRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if !belongsToFamily(target.Scope, target.FamilyID, membership.FamilyID) {
		return repositories.ErrSavingsTargetNotFound
	}

	if err := s.savingsRepo.Delete(target.ID); err != nil {
		if errors.Is(err, repositories.ErrSavingsTargetNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete family savings target: %w", err)
	}

	s.activity.Record(savingsActivity(models.ActivityActionDelete, target, userID))

	return nil
}

// GetSummary aggregates one YYYY-MM month of the caller's family. An empty
// month selects the current one.
func (s *FamilyService) GetSummary(userID uuid.UUID, month string) (*dto.FamilySummaryResponse, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(month) == "" {
		month = s.now().In(s.location).Format(finance.MonthLayout)
	}
	start, end, err := finance.MonthRange(month, s.location)
	if err != nil {
		return nil, err
	}

	familyID := membership.FamilyID
	var (
		g        errgroup.Group
		totals   models.TransactionTotals
		savings  models.SavingsTotals
		activity []models.ActivityLog
	)

	g.Go(func() error {
		var err error
		totals, err = s.transactionRepo.GetTotals(models.TransactionFilters{
			FamilyID:  &familyID,
			Scope:     models.ScopeFamily,
			StartDate: &start,
			EndDate:   &end,
		})
		return err
	})
	g.Go(func() error {
		var err error
		savings, err = s.savingsRepo.GetTotals(models.SavingsFilters{
			FamilyID:  &familyID,
			Scope:     models.ScopeFamily,
			StartDate: &start,
			EndDate:   &end,
		})
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.activity.ListFamilyMonth(familyID, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build family summary: %w", err)
	}

	return &dto.FamilySummaryResponse{
		Month:              month,
		Income:             totals.Income,
		Expense:            totals.Expense,
		Net:                totals.Net(),
		TransactionCount:   totals.Count,
		SavingsTargetAdded: savings.Target,
		SavingsCount:       savings.Count,
		Activity:           dto.NewActivityLogResponses(activity),
	}, nil
}

func (s *FamilyService) getFamilyTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	membership, err := s.GetMembership(userID)
	if err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if !belongsToFamily(transaction.Scope, transaction.FamilyID, membership.FamilyID) {
		return nil, repositories.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *FamilyService) familyResponse(family *models.Family, role string) (*dto.FamilyResponse, error) {
	members, err := s.familyRepo.ListMembers(family.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	return dto.NewFamilyResponse(family, role, members), nil
}

func belongsToFamily(scope string, rowFamilyID *uuid.UUID, familyID uuid.UUID) bool {
	return scope == models.ScopeFamily && rowFamilyID != nil && *rowFamilyID == familyID
}
