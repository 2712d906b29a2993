package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FamilyRoleOwner  = "owner"
	FamilyRoleMember = "member"

	InviteCodeLength = 6
)

var inviteCodeRegex = regexp.MustCompile(`^[0-9A-Z]{6}$`)

// Family groups users that share transactions and savings targets.
type Family struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	InviteCode string    `gorm:"type:varchar(6);uniqueIndex;not null" json:"invite_code"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`

	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"-"`
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}

	return f.Validate()
}

func (f *Family) Validate() error {
	if f.Name == "" {
		return errors.New("family name is required")
	}
	if !IsValidInviteCode(f.InviteCode) {
		return errors.New("invalid invite code")
	}
	if f.CreatedBy == uuid.Nil {
		return errors.New("creator is required")
	}
	return nil
}

func (f *Family) TableName() string {
	return "families"
}

// FamilyMember links a user to a family. A user has at most one membership.
type FamilyMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FamilyID uuid.UUID `gorm:"type:uuid;not null;index" json:"family_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Role     string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	Family Family `gorm:"foreignKey:FamilyID;constraint:OnDelete:CASCADE" json:"-"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *FamilyMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Role == "" {
		m.Role = FamilyRoleMember
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	if m.Role != FamilyRoleOwner && m.Role != FamilyRoleMember {
		return errors.New("invalid family role")
	}
	return nil
}

func (m *FamilyMember) IsOwner() bool {
	return m.Role == FamilyRoleOwner
}

func (m *FamilyMember) TableName() string {
	return "family_members"
}

func IsValidInviteCode(code string) bool {
	return inviteCodeRegex.MatchString(code)
}
