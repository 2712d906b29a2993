package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.CategoryOther
	}
	return category
}

// parseCreatedAt reads a client supplied timestamp. Empty input means now.
func parseCreatedAt(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now, nil
	}
	t, ok := finance.TryParseAppDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// parseDateFilter parses a list filter bound. Date-only bounds start at
// midnight in loc and a date-only end bound covers the whole day.
func parseDateFilter(raw string, end bool, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if len(raw) == len(finance.DateKeyLayout) {
		t, ok := finance.ParseDateKey(raw, loc)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		if end {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}

	t, ok := finance.TryParseAppDate(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return &t, nil
}

func listFilters(query *dto.TransactionListQuery, loc *time.Location) (models.TransactionFilters, error) {
	query.Normalize()

	start, err := parseDateFilter(query.StartDate, false, loc)
	if err != nil {
		return models.TransactionFilters{}, err
	}
	end, err := parseDateFilter(query.EndDate, true, loc)
	if err != nil {
		return models.TransactionFilters{}, err
	}

	return models.TransactionFilters{
		Type:      query.Type,
		Category:  strings.TrimSpace(query.Category),
		StartDate: start,
		EndDate:   end,
		Offset:    query.Offset(),
		Limit:     query.PageSize,
	}, nil
}

// applyTransactionUpdate copies the present fields of req onto t and returns
// what changed. Ownership columns are not part of the request.
func applyTransactionUpdate(t *models.Transaction, req *dto.UpdateTransactionRequest) (map[string]interface{}, error) {
	changes := make(map[string]interface{})

	if req.Type != nil && *req.Type != t.Type {
		t.Type = *req.Type
		changes["type"] = t.Type
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrNonPositiveAmount
		}
		if !req.Amount.Equal(t.Amount) {
			t.Amount = *req.Amount
			changes["amount"] = t.Amount.InexactFloat64()
		}
	}
	if req.Category != nil {
		if category := normalizeCategory(*req.Category); category != t.Category {
			t.Category = category
			changes["category"] = category
		}
	}
	if req.Description != nil {
		if description := strings.TrimSpace(*req.Description); description != t.Description {
			t.Description = description
			changes["description"] = description
		}
	}

	t.UpdatedAt = time.Now()
	return changes, nil
}

// transactionNote renders a transaction as "<type> <category> Rp <amount>"
func transactionNote(t *models.Transaction) string {
	return fmt.Sprintf("%s %s %s", t.Type, t.Category, finance.FormatRupiah(t.Amount.InexactFloat64()))
}

func savingsNote(s *models.SavingsTarget) string {
	return fmt.Sprintf("%s %s", s.Name, finance.FormatRupiah(s.TargetAmount.InexactFloat64()))
}

func transactionActivity(action string, t *models.Transaction, actorID uuid.UUID) *models.ActivityLog {
	target := t.UserID
	entry := &models.ActivityLog{
		ActorUserID:  actorID,
		Action:       action,
		EntityType:   models.EntityTransaction,
		EntityID:     t.ID,
		Scope:        t.Scope,
		TargetUserID: &target,
		FamilyID:     t.FamilyID,
		Note:         transactionNote(t),
	}
	if action == models.ActivityActionCreate {
		entry.SetChange("type", t.Type)
		entry.SetChange("amount", t.Amount.InexactFloat64())
		entry.SetChange("category", t.Category)
	}
	return entry
}

func savingsActivity(action string, s *models.SavingsTarget, actorID uuid.UUID) *models.ActivityLog {
	target := s.UserID
	entry := &models.ActivityLog{
		ActorUserID:  actorID,
		Action:       action,
		EntityType:   models.EntitySavingsTarget,
		EntityID:     s.ID,
		Scope:        s.Scope,
		TargetUserID: &target,
		FamilyID:     s.FamilyID,
		Note:         savingsNote(s),
	}
	if action == models.ActivityActionCreate {
		entry.SetChange("target_amount", s.TargetAmount.InexactFloat64())
		entry.SetChange("current_amount", s.CurrentAmount.InexactFloat64())
	}
	return entry
}

func withChanges(entry *models.ActivityLog, changes map[string]interface{}) *models.ActivityLog {
	for key, value := range changes {
		entry.SetChange(key, value)
	}
	return entry
}
