package dto

import (
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultNotesRange = 7
	MaxNotes          = 12
)

// DashboardQuery selects the scope and the notes window of the dashboard
type DashboardQuery struct {
	Scope string `query:"scope" validate:"omitempty,scope"`
	Range int    `query:"range" validate:"omitempty,oneof=7 30"`
	Type  string `query:"type" validate:"omitempty,transaction_type"`
}

// Normalize applies defaults: personal scope, 7 day notes of expenses.
func (q *DashboardQuery) Normalize() {
	if q.Scope == "" {
		q.Scope = models.ScopePersonal
	}
	if q.Range == 0 {
		q.Range = DefaultNotesRange
	}
	if q.Type == "" {
		q.Type = models.TransactionTypeExpense
	}
}

// DailyAmount is the sum of one local calendar day
type DailyAmount struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type DashboardResponse struct {
	Scope               string                   `json:"scope"`
	TotalBalance        decimal.Decimal          `json:"total_balance"`
	MonthIncome         decimal.Decimal          `json:"month_income"`
	MonthSpending       decimal.Decimal          `json:"month_spending"`
	SavingsTotalTarget  decimal.Decimal          `json:"savings_total_target"`
	SavingsTotalCurrent decimal.Decimal          `json:"savings_total_current"`
	SavingsProgress     int                      `json:"savings_progress"`
	SavingWarning       *string                  `json:"saving_warning"`
	DailySpending       []DailyAmount            `json:"daily_spending"`
	CategoryBreakdown   []models.CategorySummary `json:"category_breakdown"`
	Notes               []TransactionResponse    `json:"notes"`
}

// FinancialHealthQuery selects the scope of the health report
type FinancialHealthQuery struct {
	Scope string `query:"scope" validate:"omitempty,scope"`
}

type FinancialHealthResponse struct {
	Scope          string          `json:"scope"`
	Month          string          `json:"month"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	MonthlyExpense decimal.Decimal `json:"monthly_expense"`
	SavingsTarget  decimal.Decimal `json:"savings_target"`
	SavingsCurrent decimal.Decimal `json:"savings_current"`
	finance.HealthReport
}
