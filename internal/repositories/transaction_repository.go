package repositories

import (
	"errors"
	"fmt"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// Update persists the editable columns of a transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}
	if err := transaction.Validate(); err != nil {
		return err
	}

	result := r.db.Model(&models.Transaction{ID: transaction.ID}).Updates(map[string]interface{}{
		"type":        transaction.Type,
		"amount":      transaction.Amount,
		"category":    transaction.Category,
		"description": transaction.Description,
		"created_at":  transaction.CreatedAt,
		"updated_at":  transaction.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetWithFilters lists matching transactions newest first together with the
// unpaginated total
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := applyTransactionFilters(r.db.Model(&models.Transaction{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query = query.Order("created_at DESC")
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetTotals sums income and expense over the matching transactions. The
// filter's Type is ignored.
func (r *transactionRepository) GetTotals(filters models.TransactionFilters) (models.TransactionTotals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
		Count int64
	}

	filters.Type = ""
	query := applyTransactionFilters(r.db.Model(&models.Transaction{}), filters)
	if err := query.
		Select("type, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Group("type").
		Scan(&rows).Error; err != nil {
		return models.TransactionTotals{}, fmt.Errorf("failed to get transaction totals: %w", err)
	}

	totals := models.TransactionTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			totals.Income = row.Total
		case models.TransactionTypeExpense:
			totals.Expense = row.Total
		}
		totals.Count += row.Count
	}
	return totals, nil
}

// GetCategorySummary groups the matching transactions by category, largest
// total first
func (r *transactionRepository) GetCategorySummary(filters models.TransactionFilters) ([]models.CategorySummary, error) {
	var summaries []models.CategorySummary

	query := applyTransactionFilters(r.db.Model(&models.Transaction{}), filters)
	if err := query.
		Select("category, COUNT(*) as transaction_count, COALESCE(SUM(amount), 0) as total_amount").
		Group("category").
		Order("total_amount DESC").
		Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}

	return summaries, nil
}

// GetRecent returns the latest transactions across all users
func (r *transactionRepository) GetRecent(limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

// Count returns the number of stored transactions
func (r *transactionRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func applyTransactionFilters(query *gorm.DB, filters models.TransactionFilters) *gorm.DB {
	switch {
	case filters.FamilyID != nil:
		query = query.Where("family_id = ?", *filters.FamilyID)
	case filters.UserID != uuid.Nil:
		query = query.Where("user_id = ?", filters.UserID)
	}

	if filters.Scope != "" {
		query = query.Where("scope = ?", filters.Scope)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at < ?", *filters.EndDate)
	}

	return query
}
