package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsValidInviteCode(t *testing.T) {
	assert.True(t, IsValidInviteCode("A1B2C3"))
	assert.True(t, IsValidInviteCode("000000"))
	assert.False(t, IsValidInviteCode("a1b2c3"))
	assert.False(t, IsValidInviteCode("A1B2C"))
	assert.False(t, IsValidInviteCode("A1B2C3D"))
	assert.False(t, IsValidInviteCode("A1-2C3"))
}

func TestFamily_Validate(t *testing.T) {
	family := Family{Name: "Keluarga Santoso", InviteCode: "K8X2QZ", CreatedBy: uuid.New()}
	assert.NoError(t, family.Validate())

	family.Name = ""
	assert.EqualError(t, family.Validate(), "family name is required")

	family.Name = "Keluarga Santoso"
	family.InviteCode = "bad"
	assert.EqualError(t, family.Validate(), "invalid invite code")
}

func TestFamilyMember_BeforeCreate(t *testing.T) {
	member := &FamilyMember{FamilyID: uuid.New(), UserID: uuid.New()}
	assert.NoError(t, member.BeforeCreate(nil))
	assert.Equal(t, FamilyRoleMember, member.Role)
	assert.NotEqual(t, uuid.Nil, member.ID)
	assert.False(t, member.JoinedAt.IsZero())
	assert.False(t, member.IsOwner())

	bad := &FamilyMember{Role: "guest"}
	assert.Error(t, bad.BeforeCreate(nil))
}
