package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

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

type TransactionServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	activity        *service_mocks.MockActivityServiceInterface
	metrics         *recordingMetrics
	service         TransactionServiceInterface
	userID          uuid.UUID
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.activity = service_mocks.NewMockActivityServiceInterface(s.ctrl)
	s.metrics = newRecordingMetrics()
	s.service = NewTransactionService(s.transactionRepo, s.activity, s.metrics, time.UTC, slog.Default())
	s.userID = uuid.New()
}

func (s *TransactionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) ownTransaction() *models.Transaction {
	return &models.Transaction{
		ID:        uuid.New(),
		UserID:    s.userID,
		Scope:     models.ScopePersonal,
		Type:      models.TransactionTypeExpense,
		Amount:    decimal.NewFromInt(50000),
		Category:  models.CategoryDining,
		CreatedBy: s.userID,
		CreatedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	req := &dto.CreateTransactionRequest{
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(75000),
		Category:    "  Groceries ",
		Description: " Belanja mingguan ",
	}

	s.transactionRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.activity.EXPECT().Record(gomock.Any()).Do(func(entry *models.ActivityLog) {
		s.Equal(models.ActivityActionCreate, entry.Action)
		s.Equal(models.EntityTransaction, entry.EntityType)
		s.Equal(s.userID, entry.ActorUserID)
		s.Equal("expense Groceries Rp 75.000", entry.Note)
		s.Equal(75000.0, entry.Changes["amount"])
	})

	transaction, err := s.service.CreateTransaction(s.userID, req)

	s.Require().NoError(err)
	s.Equal(s.userID, transaction.UserID)
	s.Equal(s.userID, transaction.CreatedBy)
	s.Equal(models.ScopePersonal, transaction.Scope)
	s.Equal("Groceries", transaction.Category)
	s.Equal("Belanja mingguan", transaction.Description)
	s.WithinDuration(time.Now(), transaction.CreatedAt, time.Minute)
	s.Equal([]map[string]string{{"scope": "personal", "type": "expense"}}, s.metrics.counters[MetricTransactionRecorded])
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Backdated() {
	req := &dto.CreateTransactionRequest{
		Type:      models.TransactionTypeIncome,
		Amount:    decimal.NewFromInt(5000000),
		CreatedAt: "2025-01-25 08:30:00",
	}

	s.transactionRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.activity.EXPECT().Record(gomock.Any())

	transaction, err := s.service.CreateTransaction(s.userID, req)

	s.Require().NoError(err)
	s.Equal(time.Date(2025, 1, 25, 8, 30, 0, 0, time.UTC), transaction.CreatedAt)
	s.Equal(models.CategoryOther, transaction.Category)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Rejects() {
	_, err := s.service.CreateTransaction(s.userID, &dto.CreateTransactionRequest{
		Type:   models.TransactionTypeExpense,
		Amount: decimal.Zero,
	})
	s.ErrorIs(err, ErrNonPositiveAmount)

	_, err = s.service.CreateTransaction(s.userID, &dto.CreateTransactionRequest{
		Type:      models.TransactionTypeExpense,
		Amount:    decimal.NewFromInt(10),
		CreatedAt: "kemarin",
	})
	s.ErrorIs(err, ErrInvalidDate)
}

func (s *TransactionServiceTestSuite) TestGetTransaction_HidesOtherRows() {
	other := s.ownTransaction()
	other.UserID = uuid.New()
	s.transactionRepo.EXPECT().GetByID(other.ID).Return(other, nil)

	_, err := s.service.GetTransaction(s.userID, other.ID)
	s.ErrorIs(err, repositories.ErrTransactionNotFound)

	familyID := uuid.New()
	shared := s.ownTransaction()
	shared.Scope = models.ScopeFamily
	shared.FamilyID = &familyID
	s.transactionRepo.EXPECT().GetByID(shared.ID).Return(shared, nil)

	_, err = s.service.GetTransaction(s.userID, shared.ID)
	s.ErrorIs(err, repositories.ErrTransactionNotFound)
}

func (s *TransactionServiceTestSuite) TestListTransactions_ForcesOwnerAndScope() {
	query := &dto.TransactionListQuery{
		Type:      models.TransactionTypeExpense,
		Scope:     models.ScopeFamily,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Page:      2,
		PageSize:  10,
	}

	s.transactionRepo.EXPECT().GetWithFilters(gomock.Any()).DoAndReturn(func(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
		s.Equal(s.userID, filters.UserID)
		s.Equal(models.ScopePersonal, filters.Scope)
		s.Equal(models.TransactionTypeExpense, filters.Type)
		s.Equal(10, filters.Offset)
		s.Equal(10, filters.Limit)
		s.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *filters.StartDate)
		s.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *filters.EndDate)
		return []models.Transaction{*s.ownTransaction()}, 11, nil
	})

	transactions, total, err := s.service.ListTransactions(s.userID, query)

	s.Require().NoError(err)
	s.Len(transactions, 1)
	s.Equal(int64(11), total)
}

func (s *TransactionServiceTestSuite) TestListTransactions_DayBoundsFollowAppTimezone() {
	jakarta := time.FixedZone("WIB", 7*60*60)
	service := NewTransactionService(s.transactionRepo, s.activity, s.metrics, jakarta, slog.Default())

	s.transactionRepo.EXPECT().GetWithFilters(gomock.Any()).DoAndReturn(func(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
		s.True(time.Date(2026, 3, 1, 0, 0, 0, 0, jakarta).Equal(*filters.StartDate), "start %v", filters.StartDate)
		s.True(time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta).Equal(*filters.EndDate), "end %v", filters.EndDate)
		return nil, 0, nil
	})

	_, _, err := service.ListTransactions(s.userID, &dto.TransactionListQuery{StartDate: "2026-03-01", EndDate: "2026-03-01"})
	s.Require().NoError(err)
}

func (s *TransactionServiceTestSuite) TestListTransactions_TimestampBoundsKeepTheirZone() {
	s.transactionRepo.EXPECT().GetWithFilters(gomock.Any()).DoAndReturn(func(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
		s.True(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).Equal(*filters.StartDate))
		s.Nil(filters.EndDate)
		return nil, 0, nil
	})

	_, _, err := s.service.ListTransactions(s.userID, &dto.TransactionListQuery{StartDate: "2026-03-01T17:00:00+07:00"})
	s.Require().NoError(err)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_AcceptsEpoch() {
	s.transactionRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.activity.EXPECT().Record(gomock.Any())

	transaction, err := s.service.CreateTransaction(s.userID, &dto.CreateTransactionRequest{
		Type:      models.TransactionTypeIncome,
		Amount:    decimal.NewFromInt(1000),
		CreatedAt: "1970-01-01T00:00:00Z",
	})

	s.Require().NoError(err)
	s.True(time.Unix(0, 0).Equal(transaction.CreatedAt))
}

func (s *TransactionServiceTestSuite) TestListTransactions_InvalidDate() {
	_, _, err := s.service.ListTransactions(s.userID, &dto.TransactionListQuery{StartDate: "31/03/2025"})
	s.ErrorIs(err, ErrInvalidDate)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_RecordsChanges() {
	existing := s.ownTransaction()
	amount := decimal.NewFromInt(65000)
	category := "Groceries"
	createdAt := "2025-03-09T10:00:00Z"

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.transactionRepo.EXPECT().Update(existing).Return(nil)
	s.activity.EXPECT().Record(gomock.Any()).Do(func(entry *models.ActivityLog) {
		s.Equal(models.ActivityActionUpdate, entry.Action)
		s.Equal(65000.0, entry.Changes["amount"])
		s.Equal("Groceries", entry.Changes["category"])
		s.Equal("2025-03-09T10:00:00Z", entry.Changes["created_at"])
		s.NotContains(entry.Changes, "type")
	})

	updated, err := s.service.UpdateTransaction(s.userID, existing.ID, &dto.UpdateTransactionRequest{
		Amount:    &amount,
		Category:  &category,
		CreatedAt: &createdAt,
	})

	s.Require().NoError(err)
	s.True(updated.Amount.Equal(amount))
	s.Equal(time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC), updated.CreatedAt)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_RejectsZeroAmount() {
	existing := s.ownTransaction()
	zero := decimal.Zero

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)

	_, err := s.service.UpdateTransaction(s.userID, existing.ID, &dto.UpdateTransactionRequest{Amount: &zero})

	s.ErrorIs(err, ErrNonPositiveAmount)
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction() {
	existing := s.ownTransaction()

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.transactionRepo.EXPECT().Delete(existing.ID).Return(nil)
	s.activity.EXPECT().Record(gomock.Any()).Do(func(entry *models.ActivityLog) {
		s.Equal(models.ActivityActionDelete, entry.Action)
		s.Equal(existing.ID, entry.EntityID)
	})

	s.NoError(s.service.DeleteTransaction(s.userID, existing.ID))
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_RepositoryError() {
	existing := s.ownTransaction()

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.transactionRepo.EXPECT().Delete(existing.ID).Return(errors.New("constraint"))

	err := s.service.DeleteTransaction(s.userID, existing.ID)

	s.Error(err)
	s.NotErrorIs(err, repositories.ErrTransactionNotFound)
}
