package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidTargetAmount  = errors.New("target amount must be positive")
	ErrInvalidCurrentAmount = errors.New("current amount must not be negative")
)

// SavingsTarget is a saving goal with its progress so far.
type SavingsTarget struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	FamilyID      *uuid.UUID      `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Scope         string          `gorm:"type:varchar(20);not null;default:'personal'" json:"scope"`
	Name          string          `gorm:"type:varchar(120);not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"current_amount"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *SavingsTarget) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Scope == "" {
		s.Scope = ScopePersonal
	}
	if s.CreatedBy == uuid.Nil {
		s.CreatedBy = s.UserID
	}

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}

	return s.Validate()
}

func (s *SavingsTarget) Validate() error {
	if s.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if s.Name == "" {
		return errors.New("name is required")
	}
	if !s.TargetAmount.IsPositive() {
		return ErrInvalidTargetAmount
	}
	if s.CurrentAmount.IsNegative() {
		return ErrInvalidCurrentAmount
	}
	if !IsValidScope(s.Scope) {
		return fmt.Errorf("%w: %s", ErrInvalidScope, s.Scope)
	}
	if s.Scope == ScopeFamily && (s.FamilyID == nil || *s.FamilyID == uuid.Nil) {
		return ErrFamilyRequired
	}
	return nil
}

// Remaining is how much is still missing to reach the target, never negative.
func (s *SavingsTarget) Remaining() decimal.Decimal {
	remaining := s.TargetAmount.Sub(s.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func (s *SavingsTarget) IsReached() bool {
	return s.CurrentAmount.GreaterThanOrEqual(s.TargetAmount)
}

func (s *SavingsTarget) TableName() string {
	return "savings_targets"
}
