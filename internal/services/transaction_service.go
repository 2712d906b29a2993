package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

// TransactionService manages personal transactions. Rows that are not the
// caller's personal rows are reported as not found.
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	activity        ActivityServiceInterface
	metrics         MetricsRecorderInterface
	location        *time.Location
	logger          *slog.Logger
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	activity ActivityServiceInterface,
	metrics MetricsRecorderInterface,
	location *time.Location,
	logger *slog.Logger,
) TransactionServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	if location == nil {
		location = time.UTC
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		activity:        activity,
		metrics:         metricsOrNoop(metrics),
		location:        location,
		logger:          logger,
	}
}

func (s *TransactionService) CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	createdAt, err := parseCreatedAt(req.CreatedAt, time.Now())
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Scope:       models.ScopePersonal,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    normalizeCategory(req.Category),
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   userID,
		CreatedAt:   createdAt,
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.activity.Record(transactionActivity(models.ActivityActionCreate, transaction, userID))
	s.metrics.IncrementCounter(MetricTransactionRecorded, map[string]string{
		"scope": transaction.Scope,
		"type":  transaction.Type,
	})

	return transaction, nil
}

func (s *TransactionService) GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.UserID != userID || transaction.Scope != models.ScopePersonal {
		return nil, repositories.ErrTransactionNotFound
	}

	return transaction, nil
}

func (s *TransactionService) ListTransactions(userID uuid.UUID, query *dto.TransactionListQuery) ([]models.Transaction, int64, error) {
	filters, err := listFilters(query, s.location)
	if err != nil {
		return nil, 0, err
	}
	filters.UserID = userID
	filters.Scope = models.ScopePersonal

	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

func (s *TransactionService) UpdateTransaction(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}

	changes, err := applyTransactionUpdate(transaction, req)
	if err != nil {
		return nil, err
	}

	if req.CreatedAt != nil {
		createdAt, err := parseCreatedAt(*req.CreatedAt, transaction.CreatedAt)
		if err != nil {
			return nil, err
		}
		if !createdAt.Equal(transaction.CreatedAt) {
			transaction.CreatedAt = createdAt
			changes["created_at"] = createdAt.Format(time.RFC3339)
		}
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.activity.Record(withChanges(transactionActivity(models.ActivityActionUpdate, transaction, userID), changes))

	return transaction, nil
}

func (s *TransactionService) DeleteTransaction(userID, transactionID uuid.UUID) error {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(transaction.ID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.activity.Record(transactionActivity(models.ActivityActionDelete, transaction, userID))

	return nil
}
