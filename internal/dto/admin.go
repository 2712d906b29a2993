package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Admin Request DTOs

// UpdateRowRequest carries raw editor text per column
type UpdateRowRequest struct {
	Values map[string]string `json:"values" validate:"required,min=1"`
}

// Admin Response DTOs

// AdminUserResponse represents a registered user in the admin overview
type AdminUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type AdminCounts struct {
	Users          int64 `json:"users"`
	Families       int64 `json:"families"`
	Transactions   int64 `json:"transactions"`
	SavingsTargets int64 `json:"savings_targets"`
}

type AdminOverviewResponse struct {
	Counts             AdminCounts           `json:"counts"`
	TotalIncome        decimal.Decimal       `json:"total_income"`
	TotalExpense       decimal.Decimal       `json:"total_expense"`
	Users              []AdminUserResponse   `json:"users"`
	LatestTransactions []TransactionResponse `json:"latest_transactions"`
	LatestSavings      []SavingsResponse     `json:"latest_savings"`
}

type AdminTableResponse struct {
	Table string            `json:"table"`
	Rows  []models.TableRow `json:"rows"`
	Count int               `json:"count"`
}

func NewAdminUserResponses(users []*models.User) []AdminUserResponse {
	responses := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, AdminUserResponse{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			CreatedAt:   u.CreatedAt,
			LastLoginAt: u.LastLoginAt,
		})
	}
	return responses
}

// SeedRequest asks for demo data for the caller
type SeedRequest struct {
	Transactions int `json:"transactions" validate:"omitempty,min=1,max=500"`
	Savings      int `json:"savings" validate:"omitempty,min=1,max=20"`
	Months       int `json:"months" validate:"omitempty,min=1,max=12"`
}

type SeedResponse struct {
	Transactions int `json:"transactions"`
	Savings      int `json:"savings"`
}
