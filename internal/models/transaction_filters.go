package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters selects transactions. FamilyID takes precedence over
// UserID; a zero Limit means no limit.
type TransactionFilters struct {
	UserID    uuid.UUID
	FamilyID  *uuid.UUID
	Scope     string
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// SavingsFilters selects savings targets. FamilyID takes precedence over UserID.
type SavingsFilters struct {
	UserID    uuid.UUID
	FamilyID  *uuid.UUID
	Scope     string
	StartDate *time.Time
	EndDate   *time.Time
}
