package repositories

import (
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestSavingsRepository(t *testing.T) {
	suite.Run(t, new(SavingsRepositorySuite))
}

type SavingsRepositorySuite struct {
	suite.Suite
	db     *database.DB
	repo   SavingsRepositoryInterface
	user   *models.User
	family *models.Family
}

func (s *SavingsRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewSavingsRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "saver@example.com")
	s.family = database.CreateTestFamily(s.T(), s.db, s.user, "SAVE01")
}

func (s *SavingsRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *SavingsRepositorySuite) create(name string, target, current int64, family bool) *models.SavingsTarget {
	st := &models.SavingsTarget{
		UserID:        s.user.ID,
		Name:          name,
		TargetAmount:  decimal.NewFromInt(target),
		CurrentAmount: decimal.NewFromInt(current),
	}
	if family {
		familyID := s.family.ID
		st.FamilyID = &familyID
		st.Scope = models.ScopeFamily
	}
	s.Require().NoError(s.repo.Create(st))
	return st
}

func (s *SavingsRepositorySuite) TestCreateAndGet() {
	st := s.create("Emergency fund", 10000000, 0, false)
	s.Equal(models.ScopePersonal, st.Scope)

	found, err := s.repo.GetByID(st.ID)
	s.NoError(err)
	s.Equal("Emergency fund", found.Name)

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrSavingsTargetNotFound, err)
}

func (s *SavingsRepositorySuite) TestCreate_RejectsNonPositiveTarget() {
	st := &models.SavingsTarget{UserID: s.user.ID, Name: "x", TargetAmount: decimal.Zero}
	s.ErrorIs(s.repo.Create(st), models.ErrInvalidTargetAmount)
}

func (s *SavingsRepositorySuite) TestUpdateDelete() {
	st := s.create("Laptop", 15000000, 1000000, false)

	st.Name = "Gaming laptop"
	st.TargetAmount = decimal.NewFromInt(20000000)
	s.NoError(s.repo.Update(st))

	found, err := s.repo.GetByID(st.ID)
	s.NoError(err)
	s.Equal("Gaming laptop", found.Name)
	s.True(decimal.NewFromInt(20000000).Equal(found.TargetAmount))

	s.NoError(s.repo.Delete(st.ID))
	s.Equal(ErrSavingsTargetNotFound, s.repo.Delete(st.ID))
}

func (s *SavingsRepositorySuite) TestAddAmount() {
	st := s.create("Holiday", 5000000, 1000000, false)

	updated, err := s.repo.AddAmount(st.ID, decimal.NewFromInt(250000))
	s.NoError(err)
	s.True(decimal.NewFromInt(1250000).Equal(updated.CurrentAmount))

	_, err = s.repo.AddAmount(uuid.New(), decimal.NewFromInt(1))
	s.ErrorIs(err, ErrSavingsTargetNotFound)
}

func (s *SavingsRepositorySuite) TestListAndTotalsByScope() {
	s.create("Personal A", 1000, 500, false)
	s.create("Personal B", 3000, 1000, false)
	s.create("Family house", 100000, 20000, true)

	personal, err := s.repo.List(models.SavingsFilters{UserID: s.user.ID, Scope: models.ScopePersonal})
	s.NoError(err)
	s.Len(personal, 2)

	totals, err := s.repo.GetTotals(models.SavingsFilters{UserID: s.user.ID, Scope: models.ScopePersonal})
	s.NoError(err)
	s.True(decimal.NewFromInt(4000).Equal(totals.Target))
	s.True(decimal.NewFromInt(1500).Equal(totals.Current))
	s.Equal(int64(2), totals.Count)

	familyID := s.family.ID
	familyTotals, err := s.repo.GetTotals(models.SavingsFilters{FamilyID: &familyID, Scope: models.ScopeFamily})
	s.NoError(err)
	s.True(decimal.NewFromInt(100000).Equal(familyTotals.Target))
	s.Equal(int64(1), familyTotals.Count)

	future := time.Now().Add(time.Hour)
	none, err := s.repo.GetTotals(models.SavingsFilters{UserID: s.user.ID, StartDate: &future})
	s.NoError(err)
	s.Zero(none.Count)
	s.True(none.Target.IsZero())
}

func (s *SavingsRepositorySuite) TestRecentAndCount() {
	s.create("A", 10, 0, false)
	s.create("B", 10, 0, false)

	recent, err := s.repo.GetRecent(10)
	s.NoError(err)
	s.Len(recent, 2)

	count, err := s.repo.Count()
	s.NoError(err)
	s.Equal(int64(2), count)
}
