package services

import (
	"log/slog"
	"testing"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/repositories/repository_mocks"
	"finance-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SavingsServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	savingsRepo *repository_mocks.MockSavingsRepositoryInterface
	activity    *service_mocks.MockActivityServiceInterface
	metrics     *recordingMetrics
	service     SavingsServiceInterface
	userID      uuid.UUID
}

func (s *SavingsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.savingsRepo = repository_mocks.NewMockSavingsRepositoryInterface(s.ctrl)
	s.activity = service_mocks.NewMockActivityServiceInterface(s.ctrl)
	s.metrics = newRecordingMetrics()
	s.service = NewSavingsService(s.savingsRepo, s.activity, s.metrics, slog.Default())
	s.userID = uuid.New()
}

func (s *SavingsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSavingsServiceSuite(t *testing.T) {
	suite.Run(t, new(SavingsServiceTestSuite))
}

func (s *SavingsServiceTestSuite) ownTarget() *models.SavingsTarget {
	return &models.SavingsTarget{
		ID:            uuid.New(),
		UserID:        s.userID,
		Scope:         models.ScopePersonal,
		Name:          "Dana darurat",
		TargetAmount:  decimal.NewFromInt(10000000),
		CurrentAmount: decimal.NewFromInt(2500000),
		CreatedBy:     s.userID,
	}
}

func (s *SavingsServiceTestSuite) TestCreateTarget() {
	req := &dto.CreateSavingsRequest{
		Name:          " Liburan ",
		TargetAmount:  decimal.NewFromInt(3000000),
		CurrentAmount: decimal.NewFromInt(500000),
	}

	s.savingsRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.activity.EXPECT().Record(gomock.Any()).Do(func(entry *models.ActivityLog) {
		s.Equal(models.EntitySavingsTarget, entry.EntityType)
		s.Equal(models.ActivityActionCreate, entry.Action)
		s.Equal("Liburan Rp 3.000.000", entry.Note)
	})

	target, err := s.service.CreateTarget(s.userID, req)

	s.Require().NoError(err)
	s.Equal("Liburan", target.Name)
	s.Equal(models.ScopePersonal, target.Scope)
	s.Equal(s.userID, target.CreatedBy)
}

func (s *SavingsServiceTestSuite) TestListTargets_PersonalOnly() {
	s.savingsRepo.EXPECT().List(models.SavingsFilters{UserID: s.userID, Scope: models.ScopePersonal}).
		Return([]models.SavingsTarget{*s.ownTarget()}, nil)

	targets, err := s.service.ListTargets(s.userID)

	s.NoError(err)
	s.Len(targets, 1)
}

func (s *SavingsServiceTestSuite) TestUpdateTarget() {
	existing := s.ownTarget()
	name := "Dana darurat keluarga"
	current := decimal.NewFromInt(3000000)

	s.savingsRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.savingsRepo.EXPECT().Update(existing).Return(nil)
	s.activity.EXPECT().Record(gomock.Any()).Do(func(entry *models.ActivityLog) {
		s.Equal(models.ActivityActionUpdate, entry.Action)
		s.Equal(name, entry.Changes["name"])
		s.Equal(3000000.0, entry.Changes["current_amount"])
		s.NotContains(entry.Changes, "target_amount")
	})

	target, err := s.service.UpdateTarget(s.userID, existing.ID, &dto.UpdateSavingsRequest{
		Name:          &name,
		CurrentAmount: &current,
	})

	s.Require().NoError(err)
	s.Equal(name, target.Name)
}

func (s *SavingsServiceTestSuite) TestUpdateTarget_ValidationErrorPassesThrough() {
	existing := s.ownTarget()
	zero := decimal.Zero

	s.savingsRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.savingsRepo.EXPECT().Update(existing).Return(models.ErrInvalidTargetAmount)

	_, err := s.service.UpdateTarget(s.userID, existing.ID, &dto.UpdateSavingsRequest{TargetAmount: &zero})

	s.ErrorIs(err, models.ErrInvalidTargetAmount)
}

func (s *SavingsServiceTestSuite) TestDeleteTarget_OtherUser() {
	other := s.ownTarget()
	other.UserID = uuid.New()

	s.savingsRepo.EXPECT().GetByID(other.ID).Return(other, nil)

	err := s.service.DeleteTarget(s.userID, other.ID)

	s.ErrorIs(err, repositories.ErrSavingsTargetNotFound)
}

func (s *SavingsServiceTestSuite) TestDeleteTarget() {
	existing := s.ownTarget()

	s.savingsRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.savingsRepo.EXPECT().Delete(existing.ID).Return(nil)
	s.activity.EXPECT().Record(gomock.Any())

	s.NoError(s.service.DeleteTarget(s.userID, existing.ID))
}

func (s *SavingsServiceTestSuite) TestDeposit() {
	existing := s.ownTarget()
	amount := decimal.NewFromInt(500000)
	updated := *existing
	updated.CurrentAmount = existing.CurrentAmount.Add(amount)

	s.savingsRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.savingsRepo.EXPECT().AddAmount(existing.ID, amount).Return(&updated, nil)
	s.activity.EXPECT().Record(gomock.Any()).Do(func(entry *models.ActivityLog) {
		s.Equal(500000.0, entry.Changes["deposit"])
		s.Equal(3000000.0, entry.Changes["current_amount"])
	})

	target, err := s.service.Deposit(s.userID, existing.ID, amount)

	s.Require().NoError(err)
	s.True(target.CurrentAmount.Equal(decimal.NewFromInt(3000000)))
	s.Len(s.metrics.counters[MetricSavingsDeposit], 1)
}

func (s *SavingsServiceTestSuite) TestDeposit_NonPositive() {
	_, err := s.service.Deposit(s.userID, uuid.New(), decimal.NewFromInt(-1))
	s.ErrorIs(err, ErrNonPositiveAmount)
}
