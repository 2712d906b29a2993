package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateFamilyRequest creates a family owned by the caller
type CreateFamilyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// JoinFamilyRequest joins a family by invite code. The code is case-insensitive.
type JoinFamilyRequest struct {
	InviteCode string `json:"invite_code" validate:"required,invite_code"`
}

// FamilySummaryQuery selects the month of a family summary
type FamilySummaryQuery struct {
	Month string `query:"month" validate:"omitempty,month"`
}

type FamilyMemberResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

type FamilyResponse struct {
	ID         uuid.UUID              `json:"id"`
	Name       string                 `json:"name"`
	InviteCode string                 `json:"invite_code"`
	CreatedBy  uuid.UUID              `json:"created_by"`
	CreatedAt  time.Time              `json:"created_at"`
	Role       string                 `json:"role"`
	Members    []FamilyMemberResponse `json:"members"`
}

func NewFamilyResponse(family *models.Family, role string, members []models.FamilyMember) *FamilyResponse {
	response := &FamilyResponse{
		ID:         family.ID,
		Name:       family.Name,
		InviteCode: family.InviteCode,
		CreatedBy:  family.CreatedBy,
		CreatedAt:  family.CreatedAt,
		Role:       role,
		Members:    make([]FamilyMemberResponse, 0, len(members)),
	}
	for _, m := range members {
		response.Members = append(response.Members, FamilyMemberResponse{
			UserID:      m.UserID,
			Email:       m.User.Email,
			DisplayName: m.User.Label(),
			Role:        m.Role,
			JoinedAt:    m.JoinedAt,
		})
	}
	return response
}

// FamilyMembershipResponse is the caller's membership as shown in their profile
type FamilyMembershipResponse struct {
	FamilyID   uuid.UUID `json:"family_id"`
	FamilyName string    `json:"family_name"`
	InviteCode string    `json:"invite_code"`
	Role       string    `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
}

func NewFamilyMembershipResponse(m *models.FamilyMember) *FamilyMembershipResponse {
	return &FamilyMembershipResponse{
		FamilyID:   m.FamilyID,
		FamilyName: m.Family.Name,
		InviteCode: m.Family.InviteCode,
		Role:       m.Role,
		JoinedAt:   m.JoinedAt,
	}
}

// ActivityLogResponse is an activity log entry as returned by the API
type ActivityLogResponse struct {
	ID          uuid.UUID       `json:"id"`
	ActorUserID uuid.UUID       `json:"actor_user_id"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    uuid.UUID       `json:"entity_id"`
	Scope       string          `json:"scope"`
	FamilyID    *uuid.UUID      `json:"family_id,omitempty"`
	Note        string          `json:"note,omitempty"`
	Changes     models.JSONBMap `json:"changes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewActivityLogResponses(logs []models.ActivityLog) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, ActivityLogResponse{
			ID:          l.ID,
			ActorUserID: l.ActorUserID,
			Action:      l.Action,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
			Scope:       l.Scope,
			FamilyID:    l.FamilyID,
			Note:        l.Note,
			Changes:     l.Changes,
			CreatedAt:   l.CreatedAt,
		})
	}
	return responses
}

// FamilySummaryResponse aggregates one month of family finances
type FamilySummaryResponse struct {
	Month              string                `json:"month"`
	Income             decimal.Decimal       `json:"income"`
	Expense            decimal.Decimal       `json:"expense"`
	Net                decimal.Decimal       `json:"net"`
	TransactionCount   int64                 `json:"transaction_count"`
	SavingsTargetAdded decimal.Decimal       `json:"savings_target_added"`
	SavingsCount       int64                 `json:"savings_count"`
	Activity           []ActivityLogResponse `json:"activity"`
}
