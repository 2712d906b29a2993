package dto

import (
	"time"

	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSavingsRequest creates a savings target
type CreateSavingsRequest struct {
	Name          string          `json:"name" validate:"required,max=120"`
	TargetAmount  decimal.Decimal `json:"target_amount" validate:"money_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" validate:"nonnegative_amount"`
}

// UpdateSavingsRequest changes only the fields that are present
type UpdateSavingsRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=120"`
	TargetAmount  *decimal.Decimal `json:"target_amount" validate:"omitempty,money_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount" validate:"omitempty,nonnegative_amount"`
}

// DepositRequest adds money to a savings target
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"money_amount"`
}

// SavingsResponse is a savings target with its progress and warning
type SavingsResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	FamilyID      *uuid.UUID      `json:"family_id,omitempty"`
	Scope         string          `json:"scope"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Progress      int             `json:"progress"`
	Warning       *string         `json:"warning"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewSavingsResponse(target *models.SavingsTarget, lang finance.Language) SavingsResponse {
	current := target.CurrentAmount.InexactFloat64()
	goal := target.TargetAmount.InexactFloat64()

	response := SavingsResponse{
		ID:            target.ID,
		UserID:        target.UserID,
		FamilyID:      target.FamilyID,
		Scope:         target.Scope,
		Name:          target.Name,
		TargetAmount:  target.TargetAmount,
		CurrentAmount: target.CurrentAmount,
		Remaining:     target.Remaining(),
		Progress:      finance.Percent(current, goal),
		CreatedBy:     target.CreatedBy,
		CreatedAt:     target.CreatedAt,
		UpdatedAt:     target.UpdatedAt,
	}
	if warning, ok := finance.SavingWarningIn(lang, current, goal); ok {
		response.Warning = &warning
	}
	return response
}

func NewSavingsResponses(targets []models.SavingsTarget, lang finance.Language) []SavingsResponse {
	responses := make([]SavingsResponse, 0, len(targets))
	for i := range targets {
		responses = append(responses, NewSavingsResponse(&targets[i], lang))
	}
	return responses
}
