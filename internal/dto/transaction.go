package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CreateTransactionRequest records an income or expense. CreatedAt is
// optional and allows backdating.
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required,transaction_type"`
	Amount      decimal.Decimal `json:"amount" validate:"money_amount"`
	Category    string          `json:"category" validate:"omitempty,max=50"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	CreatedAt   string          `json:"created_at"`
}

// UpdateTransactionRequest changes only the fields that are present.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type" validate:"omitempty,transaction_type"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,money_amount"`
	Category    *string          `json:"category" validate:"omitempty,max=50"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	CreatedAt   *string          `json:"created_at"`
}

// TransactionListQuery contains filtering and paging options for transaction lists
type TransactionListQuery struct {
	Type      string `query:"type" validate:"omitempty,transaction_type"`
	Category  string `query:"category" validate:"omitempty,max=50"`
	Scope     string `query:"scope" validate:"omitempty,scope"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PageSize  int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// Normalize applies paging defaults.
func (q *TransactionListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

func (q *TransactionListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TransactionResponse is a transaction as returned by the API
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	FamilyID    *uuid.UUID      `json:"family_id,omitempty"`
	Scope       string          `json:"scope"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		FamilyID:    t.FamilyID,
		Scope:       t.Scope,
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, NewTransactionResponse(&transactions[i]))
	}
	return responses
}

// PaginationMeta is returned in the meta field of paginated lists
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginationMeta(page, pageSize int, total int64) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// CategoriesResponse lists the suggested categories. Category stays free text.
type CategoriesResponse struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}
