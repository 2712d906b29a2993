package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	ScopePersonal = "personal"
	ScopeFamily   = "family"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidScope           = errors.New("invalid scope")
	ErrInvalidAmount          = errors.New("amount must not be negative")
	ErrFamilyRequired         = errors.New("family scope requires a family ID")
)

// Transaction is a single income or expense entry, personal or shared with a family.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	FamilyID    *uuid.UUID      `gorm:"type:uuid;index" json:"family_id,omitempty"`
	Scope       string          `gorm:"type:varchar(20);not null;default:'personal';index" json:"scope"`
	Type        string          `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Scope == "" {
		t.Scope = ScopePersonal
	}
	if t.Category == "" {
		t.Category = CategoryOther
	}
	if t.CreatedBy == uuid.Nil {
		t.CreatedBy = t.UserID
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if !IsValidTransactionType(t.Type) {
		return fmt.Errorf("%w: %s", ErrInvalidTransactionType, t.Type)
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !IsValidScope(t.Scope) {
		return fmt.Errorf("%w: %s", ErrInvalidScope, t.Scope)
	}
	if t.Scope == ScopeFamily && (t.FamilyID == nil || *t.FamilyID == uuid.Nil) {
		return ErrFamilyRequired
	}
	return nil
}

// SignedAmount is the amount with expenses negated.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

func (t *Transaction) TableName() string {
	return "transactions"
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TransactionTypeIncome || transactionType == TransactionTypeExpense
}

func IsValidScope(scope string) bool {
	return scope == ScopePersonal || scope == ScopeFamily
}
