package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsService manages personal savings targets
type SavingsService struct {
	savingsRepo repositories.SavingsRepositoryInterface
	activity    ActivityServiceInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

func NewSavingsService(
	savingsRepo repositories.SavingsRepositoryInterface,
	activity ActivityServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) SavingsServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &SavingsService{
		savingsRepo: savingsRepo,
		activity:    activity,
		metrics:     metricsOrNoop(metrics),
		logger:      logger,
	}
}

func (s *SavingsService) CreateTarget(userID uuid.UUID, req *dto.CreateSavingsRequest) (*models.SavingsTarget, error) {
	target := newSavingsTarget(userID, req)

	if err := s.savingsRepo.Create(target); err != nil {
		return nil, fmt.Errorf("failed to create savings target: %w", err)
	}

	s.activity.Record(savingsActivity(models.ActivityActionCreate, target, userID))

	return target, nil
}

func (s *SavingsService) ListTargets(userID uuid.UUID) ([]models.SavingsTarget, error) {
	targets, err := s.savingsRepo.List(models.SavingsFilters{
		UserID: userID,
		Scope:  models.ScopePersonal,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list savings targets: %w", err)
	}
	return targets, nil
}

func (s *SavingsService) UpdateTarget(userID, targetID uuid.UUID, req *dto.UpdateSavingsRequest) (*models.SavingsTarget, error) {
	target, err := s.getOwnTarget(userID, targetID)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != target.Name {
			target.Name = name
			changes["name"] = name
		}
	}
	if req.TargetAmount != nil && !req.TargetAmount.Equal(target.TargetAmount) {
		target.TargetAmount = *req.TargetAmount
		changes["target_amount"] = target.TargetAmount.InexactFloat64()
	}
	if req.CurrentAmount != nil && !req.CurrentAmount.Equal(target.CurrentAmount) {
		target.CurrentAmount = *req.CurrentAmount
		changes["current_amount"] = target.CurrentAmount.InexactFloat64()
	}
	target.UpdatedAt = time.Now()

	if err := s.savingsRepo.Update(target); err != nil {
		if errors.Is(err, repositories.ErrSavingsTargetNotFound) ||
			errors.Is(err, models.ErrInvalidTargetAmount) ||
			errors.Is(err, models.ErrInvalidCurrentAmount) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update savings target: %w", err)
	}

	s.activity.Record(withChanges(savingsActivity(models.ActivityActionUpdate, target, userID), changes))

	return target, nil
}

func (s *SavingsService) DeleteTarget(userID, targetID uuid.UUID) error {
	target, err := s.getOwnTarget(userID, targetID)
	if err != nil {
		return err
	}

	if err := s.savingsRepo.Delete(target.ID); err != nil {
		if errors.Is(err, repositories.ErrSavingsTargetNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete savings target: %w", err)
	}

	s.activity.Record(savingsActivity(models.ActivityActionDelete, target, userID))

	return nil
}

// Deposit adds amount to the target's current amount
func (s *SavingsService) Deposit(userID, targetID uuid.UUID, amount decimal.Decimal) (*models.SavingsTarget, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	if _, err := s.getOwnTarget(userID, targetID); err != nil {
		return nil, err
	}

	target, err := s.savingsRepo.AddAmount(targetID, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrSavingsTargetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to deposit into savings target: %w", err)
	}

	entry := savingsActivity(models.ActivityActionUpdate, target, userID)
	entry.SetChange("deposit", amount.InexactFloat64())
	entry.SetChange("current_amount", target.CurrentAmount.InexactFloat64())
	s.activity.Record(entry)
	s.metrics.IncrementCounter(MetricSavingsDeposit, nil)

	return target, nil
}

func (s *SavingsService) getOwnTarget(userID, targetID uuid.UUID) (*models.SavingsTarget, error) {
	target, err := s.savingsRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target.UserID != userID || target.Scope != models.ScopePersonal {
		return nil, repositories.ErrSavingsTargetNotFound
	}
	return target, nil
}

func newSavingsTarget(userID uuid.UUID, req *dto.CreateSavingsRequest) *models.SavingsTarget {
	return &models.SavingsTarget{
		UserID:        userID,
		Scope:         models.ScopePersonal,
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		CreatedBy:     userID,
	}
}
