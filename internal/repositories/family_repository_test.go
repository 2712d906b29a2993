package repositories

import (
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestFamilyRepository(t *testing.T) {
	suite.Run(t, new(FamilyRepositorySuite))
}

type FamilyRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  FamilyRepositoryInterface
	owner *models.User
	guest *models.User
}

func (s *FamilyRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewFamilyRepository(s.db.DB)
	s.owner = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.guest = database.CreateTestUser(s.T(), s.db, "guest@example.com")
}

func (s *FamilyRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *FamilyRepositorySuite) createFamily(code string) *models.Family {
	family := &models.Family{Name: "Keluarga", InviteCode: code, CreatedBy: s.owner.ID}
	s.Require().NoError(s.repo.Create(family, &models.FamilyMember{UserID: s.owner.ID}))
	return family
}

func (s *FamilyRepositorySuite) TestCreate_AddsOwnerMembership() {
	family := s.createFamily("K3L4RG")

	membership, err := s.repo.GetMembership(s.owner.ID)
	s.NoError(err)
	s.Equal(family.ID, membership.FamilyID)
	s.True(membership.IsOwner())
	s.Equal("K3L4RG", membership.Family.InviteCode)
}

func (s *FamilyRepositorySuite) TestCreate_InviteCodeCollision() {
	s.createFamily("AAAAAA")

	other := &models.Family{Name: "Other", InviteCode: "AAAAAA", CreatedBy: s.guest.ID}
	err := s.repo.Create(other, &models.FamilyMember{UserID: s.guest.ID})
	s.ErrorIs(err, ErrInviteCodeCollision)

	_, err = s.repo.GetMembership(s.guest.ID)
	s.ErrorIs(err, ErrMembershipNotFound, "owner membership must roll back with the family")
}

func (s *FamilyRepositorySuite) TestGetByInviteCodeAndExists() {
	family := s.createFamily("ZX9Y8W")

	found, err := s.repo.GetByInviteCode("ZX9Y8W")
	s.NoError(err)
	s.Equal(family.ID, found.ID)

	_, err = s.repo.GetByInviteCode("NOPE00")
	s.ErrorIs(err, ErrFamilyNotFound)

	exists, err := s.repo.InviteCodeExists("ZX9Y8W")
	s.NoError(err)
	s.True(exists)

	exists, err = s.repo.InviteCodeExists("000000")
	s.NoError(err)
	s.False(exists)

	_, err = s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrFamilyNotFound)
}

func (s *FamilyRepositorySuite) TestMembers() {
	family := s.createFamily("MEMBR1")

	s.NoError(s.repo.AddMember(&models.FamilyMember{
		FamilyID: family.ID,
		UserID:   s.guest.ID,
		JoinedAt: time.Now().Add(time.Minute),
	}))

	members, err := s.repo.ListMembers(family.ID)
	s.NoError(err)
	s.Require().Len(members, 2)
	s.Equal(s.owner.ID, members[0].UserID)
	s.Equal("guest@example.com", members[1].User.Email)
	s.Equal(models.FamilyRoleMember, members[1].Role)

	err = s.repo.AddMember(&models.FamilyMember{FamilyID: family.ID, UserID: s.guest.ID})
	s.ErrorIs(err, ErrAlreadyFamilyMember)

	s.NoError(s.repo.RemoveMember(s.guest.ID))
	s.ErrorIs(s.repo.RemoveMember(s.guest.ID), ErrMembershipNotFound)

	count, err := s.repo.Count()
	s.NoError(err)
	s.Equal(int64(1), count)
}
