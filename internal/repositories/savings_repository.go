package repositories

import (
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSavingsTargetNotFound = errors.New("savings target not found")
)

type savingsRepository struct {
	db *gorm.DB
}

// NewSavingsRepository creates a new savings target repository
func NewSavingsRepository(db *gorm.DB) SavingsRepositoryInterface {
	return &savingsRepository{db: db}
}

func (r *savingsRepository) Create(target *models.SavingsTarget) error {
	if target == nil {
		return errors.New("savings target cannot be nil")
	}
	if err := r.db.Create(target).Error; err != nil {
		return fmt.Errorf("failed to create savings target: %w", err)
	}
	return nil
}

func (r *savingsRepository) GetByID(id uuid.UUID) (*models.SavingsTarget, error) {
	target := &models.SavingsTarget{ID: id}
	if err := r.db.First(target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavingsTargetNotFound
		}
		return nil, fmt.Errorf("failed to get savings target: %w", err)
	}
	return target, nil
}

// Update persists name and amounts
func (r *savingsRepository) Update(target *models.SavingsTarget) error {
	if target == nil {
		return errors.New("savings target cannot be nil")
	}
	if err := target.Validate(); err != nil {
		return err
	}

	result := r.db.Model(&models.SavingsTarget{ID: target.ID}).Updates(map[string]interface{}{
		"name":           target.Name,
		"target_amount":  target.TargetAmount,
		"current_amount": target.CurrentAmount,
		"updated_at":     target.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update savings target: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSavingsTargetNotFound
	}
	return nil
}

func (r *savingsRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.SavingsTarget{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete savings target: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSavingsTargetNotFound
	}
	return nil
}

// AddAmount increments current_amount in place and returns the updated row
func (r *savingsRepository) AddAmount(id uuid.UUID, amount decimal.Decimal) (*models.SavingsTarget, error) {
	var target models.SavingsTarget

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SavingsTarget{ID: id}).Updates(map[string]interface{}{
			"current_amount": gorm.Expr("current_amount + ?", amount),
			"updated_at":     time.Now(),
		})
		if result.Error != nil {
			return fmt.Errorf("failed to add to savings target: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSavingsTargetNotFound
		}

		return tx.First(&target, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	return &target, nil
}

// List returns matching savings targets newest first
func (r *savingsRepository) List(filters models.SavingsFilters) ([]models.SavingsTarget, error) {
	var targets []models.SavingsTarget

	query := applySavingsFilters(r.db.Model(&models.SavingsTarget{}), filters)
	if err := query.Order("created_at DESC").Find(&targets).Error; err != nil {
		return nil, fmt.Errorf("failed to list savings targets: %w", err)
	}
	return targets, nil
}

// GetTotals sums target and current amounts over the matching targets
func (r *savingsRepository) GetTotals(filters models.SavingsFilters) (models.SavingsTotals, error) {
	var row struct {
		Target  decimal.Decimal
		Current decimal.Decimal
		Count   int64
	}

	query := applySavingsFilters(r.db.Model(&models.SavingsTarget{}), filters)
	if err := query.
		Select("COALESCE(SUM(target_amount), 0) as target, COALESCE(SUM(current_amount), 0) as current, COUNT(*) as count").
		Scan(&row).Error; err != nil {
		return models.SavingsTotals{}, fmt.Errorf("failed to get savings totals: %w", err)
	}

	return models.SavingsTotals{Target: row.Target, Current: row.Current, Count: row.Count}, nil
}

// GetRecent returns the latest savings targets across all users
func (r *savingsRepository) GetRecent(limit int) ([]models.SavingsTarget, error) {
	var targets []models.SavingsTarget
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&targets).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent savings targets: %w", err)
	}
	return targets, nil
}

func (r *savingsRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.SavingsTarget{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count savings targets: %w", err)
	}
	return count, nil
}

func applySavingsFilters(query *gorm.DB, filters models.SavingsFilters) *gorm.DB {
	switch {
	case filters.FamilyID != nil:
		query = query.Where("family_id = ?", *filters.FamilyID)
	case filters.UserID != uuid.Nil:
		query = query.Where("user_id = ?", filters.UserID)
	}

	if filters.Scope != "" {
		query = query.Where("scope = ?", filters.Scope)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at < ?", *filters.EndDate)
	}

	return query
}
